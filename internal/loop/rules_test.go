package loop

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

func TestComputeTimeBonus(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1000},
		{10 * time.Second, 1000},
		{20 * time.Second, 1000},
		{20*time.Second + 19*time.Millisecond, 1000},
		{20*time.Second + 40*time.Millisecond, 998},
		{20*time.Second + 500*time.Millisecond, 975},
		{21 * time.Second, 950},
		{30 * time.Second, 500},
		{40 * time.Second, 0},
		{5 * time.Minute, 0},
	}
	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTimeBonus(tt.elapsed))
		})
	}
}

func TestComputeTimeBonus_MonotoneDecay(t *testing.T) {
	prev := ComputeTimeBonus(0)
	for d := time.Duration(0); d <= time.Minute; d += 7 * time.Millisecond {
		b := ComputeTimeBonus(d)
		require.LessOrEqual(t, b, prev, "at %v", d)
		require.GreaterOrEqual(t, b, 0)
		prev = b
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00", FormatTime(0))
	assert.Equal(t, "00:59", FormatTime(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "01:05", FormatTime(65*time.Second))
	assert.Equal(t, "12:00", FormatTime(12*time.Minute))
	assert.Equal(t, "00:00", FormatTime(-time.Second))
}

func TestMoveInterval(t *testing.T) {
	assert.Equal(t, 420*time.Millisecond, moveInterval(config.EnemyTotal))
	assert.Equal(t, 300*time.Millisecond, moveInterval(33))
	assert.Equal(t, 180*time.Millisecond, moveInterval(0))
	assert.Equal(t, 420*time.Millisecond, moveInterval(config.EnemyTotal+10), "speedup never negative")

	prev := moveInterval(config.EnemyTotal)
	for n := config.EnemyTotal; n >= 0; n-- {
		d := moveInterval(n)
		assert.GreaterOrEqual(t, d, config.EnemyMinMoveInterval)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
}

func TestUpdateEnemies_LateralStep(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	a := tm.addEnemy(300, 100, object.EnemyBasic)
	b := tm.addEnemy(400, 100, object.EnemyBasic)
	st := tm.State()
	st.EnemyNextMoveAt = now

	tm.updateEnemies(now - time.Millisecond)
	assert.Equal(t, 300.0, a.X, "gated before the move time")

	tm.updateEnemies(now)
	assert.Equal(t, 316.0, a.X)
	assert.Equal(t, 416.0, b.X)
	assert.Equal(t, 100.0, a.Y)
	assert.Equal(t, 1, st.MarchDirection)
	assert.Equal(t, now+moveInterval(2), st.EnemyNextMoveAt)

	s, _ := tm.sprite(a.ID)
	assert.Equal(t, 316.0, s.X)
}

func TestUpdateEnemies_EdgeForcesDescentAndReversal(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	edge := tm.addEnemy(680, 100, object.EnemyBasic)
	inner := tm.addEnemy(300, 150, object.EnemyBasic)
	ghost := tm.addEnemy(400, 50, object.EnemyGhost)
	ghost.NextBurstAt = now
	st := tm.State()
	st.EnemyNextMoveAt = now

	tm.updateEnemies(now)
	assert.Equal(t, []float64{680, 300, 400}, []float64{edge.X, inner.X, ghost.X})
	assert.Equal(t, []float64{122, 172, 72}, []float64{edge.Y, inner.Y, ghost.Y})
	assert.Equal(t, -1, st.MarchDirection)
	assert.Equal(t, config.SpecialBurstCount, ghost.BurstLeft, "bursts run on the descent branch")
	assert.Empty(t, st.Projectiles, "no aimed shot on descent")

	next := st.EnemyNextMoveAt
	tm.updateEnemies(next)
	assert.Equal(t, 664.0, edge.X, "the step after a descent is lateral")
	assert.Equal(t, 122.0, edge.Y)
	assert.Equal(t, -1, st.MarchDirection)
}

func TestUpdateEnemies_LeftEdge(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	e := tm.addEnemy(40, 100, object.EnemyBasic)
	st := tm.State()
	st.MarchDirection = -1
	st.EnemyNextMoveAt = now

	tm.updateEnemies(now)
	assert.Equal(t, 40.0, e.X)
	assert.Equal(t, 122.0, e.Y)
	assert.Equal(t, 1, st.MarchDirection)
}

func TestUpdateEnemies_AimedShot(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	tm.addEnemy(300, 100, object.EnemyBasic)
	tm.addEnemy(400, 100, object.EnemyBasic)
	ghost := tm.addEnemy(500, 100, object.EnemyGhost)
	ghost.NextBurstAt = now + time.Hour
	tm.State().EnemyNextMoveAt = now

	tm.rng.floats = []float64{0.1}
	tm.rng.ints = []int{1}
	tm.updateEnemies(now)

	require.Len(t, tm.State().Projectiles, 1)
	p := tm.State().Projectiles[0]
	assert.Equal(t, object.SourceEnemy, p.Source)
	// Fired from the second basic enemy after its step to x=416.
	assert.Equal(t, 424.0, p.X)
	assert.Equal(t, 118.0, p.Y)
	assert.InDelta(t, config.BasicProjectileSpeed, math.Hypot(p.VX, p.VY), 1e-9)
	assert.Negative(t, p.VX)
	assert.Positive(t, p.VY)
}

func TestUpdateEnemies_NoAimedShotAboveChance(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	tm.addEnemy(300, 100, object.EnemyBasic)
	tm.State().EnemyNextMoveAt = tm.clk.Now()

	tm.rng.floats = []float64{config.EnemyShotChancePerStep}
	tm.updateEnemies(tm.clk.Now())
	assert.Empty(t, tm.State().Projectiles)
}

func TestUpdateSpecialBursts_Cadence(t *testing.T) {
	tests := []struct {
		typ   object.EnemyType
		speed float64
	}{
		{object.EnemyGhost, config.GhostProjectileSpeed},
		{object.EnemySquid, config.SquidProjectileSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			tm := newTestMatch(t, nil)
			tm.Reset()
			tm.clearStage()
			tm.rng.fallback = 0
			now := tm.clk.Now()
			e := tm.addEnemy(300, 100, tt.typ)
			e.NextBurstAt = now
			st := tm.State()

			tm.updateSpecialBursts(now)
			assert.Equal(t, 3, e.BurstLeft)
			assert.Equal(t, now, e.NextShotAt)
			assert.Empty(t, st.Projectiles, "first shot fires on the next frame")

			tm.updateSpecialBursts(now + frame)
			require.Len(t, st.Projectiles, 1)
			assert.Equal(t, now+config.SpecialShotGap, e.NextShotAt)

			tm.updateSpecialBursts(now + 159*time.Millisecond)
			assert.Len(t, st.Projectiles, 1)

			// A late shot keeps the burst's cadence.
			tm.updateSpecialBursts(now + 200*time.Millisecond)
			require.Len(t, st.Projectiles, 2)
			assert.Equal(t, now+2*config.SpecialShotGap, e.NextShotAt)

			last := now + 2*config.SpecialShotGap
			tm.updateSpecialBursts(last)
			require.Len(t, st.Projectiles, 3)

			for _, p := range st.Projectiles {
				assert.Equal(t, 0.0, p.VX)
				assert.Equal(t, tt.speed, p.VY)
				assert.Equal(t, 308.0, p.X)
				assert.Equal(t, 118.0, p.Y)
			}
			assert.Zero(t, e.BurstLeft)
			assert.Equal(t, last+config.SpecialReload, e.NextBurstAt, "zero jitter from the scripted source")

			tm.updateSpecialBursts(e.NextBurstAt - time.Millisecond)
			assert.Zero(t, e.BurstLeft)
			tm.updateSpecialBursts(e.NextBurstAt)
			assert.Equal(t, 3, e.BurstLeft)
		})
	}
}

func TestUpdateProjectiles_IntegrateAndPrune(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()

	moving := tm.spawnProjectile(object.SourceEnemy, 100, 100, 30, -40)
	leaving := tm.spawnProjectile(object.SourcePlayer, 100, -50, 0, -560)
	edge := tm.spawnProjectile(object.SourceEnemy, config.StageWidth+39, 100, 0, 0)

	tm.updateProjectiles(500 * time.Millisecond)

	st := tm.State()
	require.Len(t, st.Projectiles, 2)
	assert.Same(t, moving, st.Projectiles[0])
	assert.Same(t, edge, st.Projectiles[1])
	assert.Equal(t, 115.0, moving.X)
	assert.Equal(t, 80.0, moving.Y)

	_, ok := tm.sprite(leaving.ID)
	assert.False(t, ok, "pruned projectile loses its sprite")
	s, ok := tm.sprite(moving.ID)
	require.True(t, ok)
	assert.Equal(t, 80.0, s.Y)
}

func TestDetectCollisions_EnemyBeforeBarrier(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	e := tm.addEnemy(300, 300, object.EnemyBasic)
	b := tm.addBarrier(300, 300)
	tm.spawnProjectile(object.SourcePlayer, 305, 305, 0, 0)

	tm.detectCollisions(now)

	st := tm.State()
	assert.Empty(t, st.Enemies)
	assert.Empty(t, st.Projectiles)
	require.Len(t, st.Barriers, 1)
	assert.Equal(t, config.BarrierHP, b.HP)
	assert.Equal(t, config.ScoreBasic, st.Score)
	assert.False(t, st.Player.HasBonus)

	_, ok := tm.sprite(e.ID)
	assert.False(t, ok)
}

func TestDetectCollisions_FirstEnemyInListOrder(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()

	first := tm.addEnemy(310, 300, object.EnemyBasic)
	second := tm.addEnemy(290, 300, object.EnemyBasic)
	tm.spawnProjectile(object.SourcePlayer, 300, 305, 0, 0)

	tm.detectCollisions(tm.clk.Now())

	st := tm.State()
	require.Len(t, st.Enemies, 1)
	assert.Same(t, second, st.Enemies[0])
	assert.True(t, first.IsDestroyed())
	assert.Equal(t, config.ScoreBasic, st.Score)
}

func TestDetectCollisions_SpecialKillGrantsBonus(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	now := tm.clk.Now()

	tm.addEnemy(300, 300, object.EnemySquid)
	tm.spawnProjectile(object.SourcePlayer, 300, 300, 0, 0)
	tm.detectCollisions(now)

	p := tm.State().Player
	assert.Equal(t, config.ScoreSpecial, tm.State().Score)
	assert.True(t, p.HasBonus)
	assert.Equal(t, now+config.BonusDuration, p.BonusEndsAt)
	assert.Equal(t, config.PlayerBonusShotCooldown, p.ShotCooldown())

	// A later special kill restarts the timer.
	later := now + time.Second
	tm.addEnemy(300, 300, object.EnemyGhost)
	tm.spawnProjectile(object.SourcePlayer, 300, 300, 0, 0)
	tm.detectCollisions(later)
	assert.Equal(t, later+config.BonusDuration, p.BonusEndsAt)
	assert.Equal(t, 2*config.ScoreSpecial, tm.State().Score)
}

func TestDetectCollisions_OneBarrierPerProjectile(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()

	first := tm.addBarrier(300, 300)
	second := tm.addBarrier(310, 300)
	tm.spawnProjectile(object.SourceEnemy, 305, 305, 0, 0)

	tm.detectCollisions(tm.clk.Now())

	assert.Equal(t, config.BarrierHP-1, first.HP)
	assert.Equal(t, config.BarrierHP, second.HP)
	assert.Empty(t, tm.State().Projectiles)
}

func TestDetectCollisions_BarrierWearsDown(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	b := tm.addBarrier(300, 300)

	wantTiers := []object.BarrierTier{
		object.BarrierHigh, object.BarrierHigh, object.BarrierMid, object.BarrierMid, object.BarrierLow,
	}
	prev := b.HP
	for i, want := range wantTiers {
		tm.spawnProjectile(object.SourcePlayer, 300, 310, 0, 0)
		tm.detectCollisions(tm.clk.Now())

		require.Len(t, tm.State().Barriers, 1, "hit %d", i+1)
		assert.Less(t, b.HP, prev)
		prev = b.HP
		assert.Equal(t, want, b.Tier(), "hit %d", i+1)
		s, ok := tm.sprite(b.ID)
		require.True(t, ok)
		assert.True(t, s.HasTag(want.Tag()))
	}

	tm.spawnProjectile(object.SourceEnemy, 300, 310, 0, 0)
	tm.detectCollisions(tm.clk.Now())
	assert.Zero(t, b.HP)
	assert.Empty(t, tm.State().Barriers)
	_, ok := tm.sprite(b.ID)
	assert.False(t, ok)
}

func TestDetectCollisions_EnemyShotHitsPlayer(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	tm.addScore(30)

	b := tm.addBarrier(360, 620)
	tm.spawnProjectile(object.SourceEnemy, 365, 625, 0, 0)
	tm.detectCollisions(tm.clk.Now())

	st := tm.State()
	assert.Equal(t, 2, st.Lives)
	assert.Equal(t, 30, st.Score)
	assert.Equal(t, config.BarrierHP, b.HP, "the player absorbs the shot first")
	assert.Empty(t, st.Projectiles)
}

func TestDetectCollisions_PlayerShotsIgnorePlayer(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()

	tm.spawnProjectile(object.SourcePlayer, 365, 625, 0, 0)
	tm.detectCollisions(tm.clk.Now())

	assert.Equal(t, config.InitialLives, tm.State().Lives)
	assert.Len(t, tm.State().Projectiles, 1)
}

func TestCheckWinLose_ThreeHitsEndTheMatch(t *testing.T) {
	tm := newTestMatch(t, nil)
	epoch := tm.Reset()
	tm.clearStage()
	tm.addEnemy(100, 20, object.EnemyBasic)

	for hit := 1; hit <= 3; hit++ {
		tm.spawnProjectile(object.SourceEnemy, 365, 625, 0, 0)
		tm.clk.Advance(frame)
		running := tm.Tick(epoch, input.Input{})
		assert.Equal(t, 3-hit, tm.State().Lives)
		assert.Equal(t, hit < 3, running)
	}

	st := tm.State()
	assert.True(t, st.GameOver)
	assert.False(t, st.Running)
	assert.False(t, st.Victory)
	assert.Len(t, st.Enemies, 1)

	res := tm.Result()
	require.NotNil(t, res)
	assert.False(t, res.Victory)
}

func TestCheckWinLose_DefenseLine(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	tm.clearStage()
	line := tm.State().Player.Y - config.DefenseLineOffset

	e := tm.addEnemy(100, line-1, object.EnemyBasic)
	tm.checkWinLose(tm.clk.Now())
	assert.True(t, tm.State().Running)

	e.Y = line
	tm.checkWinLose(tm.clk.Now())
	assert.False(t, tm.State().Running)
	assert.True(t, tm.State().GameOver)
	assert.False(t, tm.State().Victory)
}

func TestEndGame_TimeBonusAwardedOnce(t *testing.T) {
	tm := newTestMatch(t, nil)
	epoch := tm.Reset()
	tm.clearStage()

	tm.clk.Advance(20 * time.Second)
	assert.False(t, tm.Tick(epoch, input.Input{}))

	st := tm.State()
	assert.True(t, st.Victory)
	assert.Equal(t, 1000, st.TimeBonusAward)
	assert.Equal(t, 1000, st.Score)
	assert.Equal(t, 1000, tm.HighScore())

	res := tm.Result()
	require.NotNil(t, res)
	assert.Equal(t, Result{Victory: true, Score: 1000, TimeBonus: 1000, Elapsed: 20 * time.Second, HighScore: 1000}, *res)

	tm.clk.Advance(time.Second)
	assert.False(t, tm.Tick(epoch, input.Input{}))
	tm.endGame(tm.clk.Now(), true)
	assert.Equal(t, 1000, st.Score)
	assert.Equal(t, 20*time.Second, tm.Elapsed(), "clock frozen at the end")
}

func TestEndGame_LossStillEarnsTimeBonus(t *testing.T) {
	tm := newTestMatch(t, nil)
	epoch := tm.Reset()
	tm.clearStage()
	tm.addEnemy(100, 20, object.EnemyBasic)
	tm.State().Lives = 0

	tm.clk.Advance(30 * time.Second)
	tm.Tick(epoch, input.Input{})

	st := tm.State()
	assert.False(t, st.Victory)
	assert.Equal(t, 500, st.TimeBonusAward)
	assert.Equal(t, 500, st.Score)
}

func TestEndGame_NoBonusAfterDecay(t *testing.T) {
	tm := newTestMatch(t, nil)
	epoch := tm.Reset()
	tm.clearStage()

	tm.clk.Advance(time.Minute)
	tm.Tick(epoch, input.Input{})

	assert.Zero(t, tm.State().TimeBonusAward)
	assert.Zero(t, tm.State().Score)
	assert.Zero(t, tm.Result().TimeBonus)
}

func TestUpdateBonusStatus_Idempotent(t *testing.T) {
	tm := newTestMatch(t, nil)
	tm.Reset()
	now := tm.clk.Now()
	p := tm.State().Player

	tm.activateBonus(now)
	tm.updateBonusStatus(now + config.BonusDuration - time.Millisecond)
	assert.True(t, p.HasBonus)

	tm.updateBonusStatus(now + config.BonusDuration)
	assert.False(t, p.HasBonus)
	tm.updateBonusStatus(now + config.BonusDuration)
	tm.updateBonusStatus(now + 2*config.BonusDuration)
	assert.False(t, p.HasBonus)
	assert.Equal(t, now+config.BonusDuration, p.BonusEndsAt)
}
