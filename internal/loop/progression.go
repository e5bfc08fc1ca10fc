package loop

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
)

// ComputeTimeBonus returns the time bonus for a match that lasted elapsed.
// It stays at the maximum through the grace period, then decays linearly.
func ComputeTimeBonus(elapsed time.Duration) int {
	if elapsed <= config.TimeBonusGrace {
		return config.TimeBonusMax
	}
	over := (elapsed - config.TimeBonusGrace).Seconds()
	return max(0, config.TimeBonusMax-int(math.Floor(over*config.TimeBonusDecayPerSec)))
}

// FormatTime renders d as MM:SS.
func FormatTime(d time.Duration) string {
	secs := int(max(0, d) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (m *Match) addScore(points int) {
	if points <= 0 {
		return
	}
	m.state.Score += points
	m.saveHighScoreIfNeeded()
}

func (m *Match) saveHighScoreIfNeeded() {
	if m.state.Score <= m.highScore {
		return
	}
	m.highScore = m.state.Score
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.highScore); err != nil {
		m.logger.Warn("failed to save high score", "score", m.highScore, "err", err)
	}
}

func (m *Match) loadHighScore() {
	if m.store == nil {
		return
	}
	v, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to load high score", "err", err)
		return
	}
	m.highScore = max(m.highScore, v)
}

// activateBonus arms the bonus weapon. A later special kill restarts the
// timer instead of extending it.
func (m *Match) activateBonus(now time.Duration) {
	p := m.state.Player
	p.HasBonus = true
	p.BonusEndsAt = now + config.BonusDuration
}

func (m *Match) updateBonusStatus(now time.Duration) {
	p := m.state.Player
	if p.HasBonus && now >= p.BonusEndsAt {
		p.HasBonus = false
	}
}

// checkWinLose ends the match when the formation reaches the defense line,
// the player runs out of lives, or no enemies remain.
func (m *Match) checkWinLose(now time.Duration) {
	st := &m.state
	line := st.Player.Y - config.DefenseLineOffset
	for _, e := range st.Enemies {
		if e.Y >= line {
			m.endGame(now, false)
			return
		}
	}
	if st.Lives <= 0 {
		m.endGame(now, false)
		return
	}
	if len(st.Enemies) == 0 {
		m.endGame(now, true)
	}
}

// endGame finishes the match once, adding the time bonus to the score.
func (m *Match) endGame(now time.Duration, victory bool) {
	st := &m.state
	if st.GameOver {
		return
	}
	st.Running = false
	st.GameOver = true
	st.Victory = victory
	st.EndedAt = now

	elapsed := st.Elapsed(now)
	if bonus := ComputeTimeBonus(elapsed); bonus > 0 {
		st.TimeBonusAward = bonus
		m.addScore(bonus)
	}
	m.saveHighScoreIfNeeded()

	m.result = &Result{
		Victory:   victory,
		Score:     st.Score,
		TimeBonus: st.TimeBonusAward,
		Elapsed:   elapsed,
		HighScore: m.highScore,
	}
	m.logger.Info("match over",
		"victory", victory,
		"score", st.Score,
		"timeBonus", st.TimeBonusAward,
		"elapsed", FormatTime(elapsed),
		"lives", st.Lives,
	)
}
