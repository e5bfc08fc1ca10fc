package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Sprite tags with a dedicated look.
const (
	TagHit         = "hit"
	TagFloatText   = "float-text"
	TagExplosion   = "explosion"
	TagBarrierHigh = "barrier-high"
	TagBarrierMid  = "barrier-mid"
	TagBarrierLow  = "barrier-low"
)

// tagPriority decides which tag styles a sprite carrying several.
var tagPriority = []string{TagHit, TagFloatText, TagBarrierLow, TagBarrierMid, TagBarrierHigh}

// Theme holds the styles of one terminal.
type Theme struct {
	tags map[string]lipgloss.Style

	Title   lipgloss.Style
	Text    lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
	Warning lipgloss.Style
	Panel   lipgloss.Style
}

// NewTheme builds styles rendered for w. SSH sessions are not detected as
// terminals by their writer, so the 256-color profile is forced.
func NewTheme(w io.Writer) *Theme {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return &Theme{
		tags: map[string]lipgloss.Style{
			TagHit:         r.NewStyle().Background(lipgloss.Color("160")),
			TagFloatText:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
			TagBarrierHigh: r.NewStyle().Background(lipgloss.Color("28")),
			TagBarrierMid:  r.NewStyle().Background(lipgloss.Color("178")),
			TagBarrierLow:  r.NewStyle().Background(lipgloss.Color("124")),
		},
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		Text:    r.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("244")),
		Accent:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		Warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// Sprite renders glyph with the style of its highest-priority tag.
func (t *Theme) Sprite(glyph string, tags []string) string {
	if t == nil {
		return glyph
	}
	for _, want := range tagPriority {
		for _, tag := range tags {
			if tag == want {
				return t.tags[want].Render(glyph)
			}
		}
	}
	return glyph
}
