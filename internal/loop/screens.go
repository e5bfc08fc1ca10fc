package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/config"
)

const (
	bonusMeterWidth = 10
	groundY         = config.StageHeight - config.PlayerStartOffset + config.PlayerSize + 8
)

// drawFrame writes one frame: scenery after a full clear, the sprite diff,
// the HUD row, then the overlay of the current screen.
func (t *Terminal) drawFrame() error {
	if t.needsClear {
		t.cw.Clear()
		t.sprites.Forget()
		t.drawScenery()
		t.needsClear = false
	}

	if t.screen != screenShutdown {
		t.sprites.Render(t.cw, t.canvas, t.theme)
	}
	t.drawHUD()

	switch t.screen {
	case screenTitle:
		t.drawTitleScreen()
	case screenOver:
		t.drawOverScreen()
	case screenShutdown:
		t.drawShutdownScreen()
	}

	return t.cw.Flush()
}

// drawScenery renders the static parts of the stage.
func (t *Terminal) drawScenery() {
	t.canvas.Clear()
	t.canvas.DrawLine(draw.Point{X: 0, Y: groundY}, draw.Point{X: config.StageWidth - 1, Y: groundY})
	t.canvas.RenderBorder(t.cw)
	t.canvas.Render(t.cw)
}

func (t *Terminal) drawHUD() {
	if t.screen != screenPlaying && t.screen != screenOver {
		t.cw.WriteAt(1, 0, strings.Repeat(" ", t.canvas.TerminalWidth()))
		return
	}
	t.cw.WriteAt(1, 0, t.theme.Text.Render(formatHUD(t.hud.state, t.canvas.TerminalWidth())))
}

// formatHUD lays out the status row, padded or cut to width cells.
func formatHUD(s HUDState, width int) string {
	parts := []string{
		fmt.Sprintf("SCORE %04d", s.Score),
		fmt.Sprintf("HI %04d", s.HighScore),
		"LIVES " + strings.Repeat("♥", s.Lives),
		"TIME " + s.Elapsed,
		fmt.Sprintf("BONUS %4d %s", s.TimeBonus, draw.Meter(float64(s.TimeBonus)/config.TimeBonusMax, bonusMeterWidth)),
	}
	if s.BonusActive {
		parts = append(parts, "⚡RAPID FIRE")
	}
	line := " " + strings.Join(parts, "  ")

	if w := draw.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	for draw.Width(line) > width && len(line) > 0 {
		_, size := utf8.DecodeLastRuneInString(line)
		line = line[:len(line)-size]
	}
	return line
}

func (t *Terminal) drawTitleScreen() {
	lines := []string{
		t.theme.Title.Render("E M O J I   I N V A D E R S"),
		"",
		config.BasicEnemyGlyph + "  " + config.GhostEnemyGlyph + "  " + config.SquidEnemyGlyph,
		"",
		t.theme.Accent.Render("Press SPACE to start"),
		"",
		t.theme.Text.Render("A/D or ←/→ to move, firing is automatic"),
		t.theme.Text.Render(fmt.Sprintf("%s and %s grant rapid fire", config.GhostEnemyGlyph, config.SquidEnemyGlyph)),
		t.theme.Dim.Render("Q to quit"),
	}
	if hs := t.match.HighScore(); hs > 0 {
		lines = append(lines, "", t.theme.Text.Render(fmt.Sprintf("High score %04d", hs)))
	}
	t.drawPanel(lines)
}

func (t *Terminal) drawOverScreen() {
	res := t.match.Result()
	if res == nil {
		return
	}

	title := t.theme.Warning.Render("G A M E   O V E R")
	if res.Victory {
		title = t.theme.Accent.Render("V I C T O R Y")
	}
	high := fmt.Sprintf("High score   %04d", res.HighScore)
	if res.Score > 0 && res.Score >= res.HighScore {
		high += "  NEW!"
	}

	lines := []string{
		title,
		"",
		t.theme.Text.Render(fmt.Sprintf("Time         %s", FormatTime(res.Elapsed))),
		t.theme.Text.Render(fmt.Sprintf("Time bonus  +%d", res.TimeBonus)),
		t.theme.Accent.Render(fmt.Sprintf("Final score  %04d", res.Score)),
		t.theme.Text.Render(high),
	}

	if t.opts.TopScores != nil {
		if top := t.opts.TopScores(config.TopScoresShown); len(top) > 0 {
			lines = append(lines, "", t.theme.Title.Render("Online now"))
			for i, e := range top {
				lines = append(lines, t.theme.Text.Render(fmt.Sprintf("%d. %-12s %5d", i+1, e.Username, e.Score)))
			}
		}
	}

	prompt := t.theme.Accent.Render("Press ENTER to play again")
	if time.Since(t.overAt) < config.ReplayDelay {
		prompt = t.theme.Dim.Render("Press ENTER to play again")
	}
	lines = append(lines, "", prompt, t.theme.Dim.Render("Q to quit"))
	t.drawPanel(lines)
}

func (t *Terminal) drawShutdownScreen() {
	remaining := int((config.ShutdownDisplayTime - time.Since(t.shutdownAt)).Seconds()) + 1
	remaining = max(remaining, 1)

	t.drawPanel([]string{
		t.theme.Warning.Render("SERVER SHUTTING DOWN"),
		"",
		t.theme.Text.Render("The server is restarting for maintenance."),
		t.theme.Text.Render("Please reconnect in a moment."),
		"",
		t.theme.Accent.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)),
		t.theme.Dim.Render("Press Q to disconnect now"),
	})
}

// drawPanel centers a bordered block over the stage.
func (t *Terminal) drawPanel(lines []string) {
	block := t.theme.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	col := max(1, (t.canvas.TerminalWidth()-lipgloss.Width(block))/2+1)
	row := max(1, (t.canvas.TerminalHeight()-lipgloss.Height(block))/2+1)
	t.cw.WriteLines(col, row, block)
}
