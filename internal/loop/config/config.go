// Package config centralizes all fixed game parameters.
// Distances are stage pixels, speeds are pixels per second.
package config

import "time"

// Stage - the logical play field. Rendering scales to fit the terminal.
const (
	StageWidth  = 720.0
	StageHeight = 700.0
)

// Player
const (
	PlayerSize        = 32.0
	PlayerSpeed       = 360.0
	PlayerStartOffset = 80.0 // Distance of the player row above the stage bottom
	PlayerMinX        = 8.0
	PlayerMaxXInset   = 40.0 // Player x is clamped to StageWidth - PlayerMaxXInset
	InitialLives      = 3

	PlayerShotCooldown      = 180 * time.Millisecond
	PlayerBonusShotCooldown = 70 * time.Millisecond
	BonusDuration           = 4 * time.Second
)

// Enemy formation
const (
	EnemyColumns     = 11
	EnemyRows        = 6
	EnemyTotal       = EnemyColumns * EnemyRows
	EnemySize        = 32.0
	EnemyXSpacing    = 56.0
	EnemyYSpacing    = 52.0
	EnemyTopOffset   = 20.0
	EnemySidePadding = 32.0
	EnemyStep        = 16.0
	EnemyDescent     = 22.0

	EnemyMoveInterval    = 420 * time.Millisecond
	EnemyMinMoveInterval = 130 * time.Millisecond
	EnemyMaxSpeedup      = 240 * time.Millisecond

	EnemyShotChancePerStep = 0.24
	SpecialRows            = 2 // Rows from the top that may hold special enemies
	SpecialChance          = 0.55

	// Loss when any enemy reaches this far above the player row.
	DefenseLineOffset = 40.0
)

// Special enemy bursts
const (
	SpecialBurstCount     = 3
	SpecialShotGap        = 160 * time.Millisecond
	SpecialReload         = 2200 * time.Millisecond
	SpecialReloadJitter   = 500 * time.Millisecond
	SpecialFirstBurst     = 1200 * time.Millisecond
	SpecialFirstBurstSpan = 800 * time.Millisecond
)

// Projectiles
const (
	ProjectileSize = 24.0

	PlayerProjectileSpeed = 560.0
	BasicProjectileSpeed  = 320.0
	GhostProjectileSpeed  = 250.0
	SquidProjectileSpeed  = 420.0

	// Pruning bounds around the stage.
	ProjectileMarginX = 40.0
	ProjectileMarginY = 60.0

	// Muzzle offsets relative to the shooter's top-left corner.
	PlayerMuzzleX = 8.0
	PlayerMuzzleY = -10.0
	EnemyMuzzleX  = 8.0
	EnemyMuzzleY  = 18.0
	AimOffsetX    = 12.0
)

// Barriers
const (
	BarrierColumns    = 6
	BarrierRows       = 4
	BarrierHP         = 6
	BarrierSize       = 32.0
	BarrierMarginX    = 60.0
	BarrierBaseOffset = 240.0 // Distance of the lowest barrier row above the stage bottom
	BarrierRowSpacing = 34.0
	BarrierVariants   = 11
)

// Scoring
const (
	ScoreBasic   = 15
	ScoreSpecial = 60

	TimeBonusMax         = 1000
	TimeBonusGrace       = 20 * time.Second
	TimeBonusDecayPerSec = 50
)

// Transient effects
const (
	ExplosionLifetime = 240 * time.Millisecond
	FloatTextLifetime = 650 * time.Millisecond
	HitFlashLifetime  = 120 * time.Millisecond
)

// Glyphs
const (
	PlayerGlyph           = "🛌"
	BasicEnemyGlyph       = "👾"
	GhostEnemyGlyph       = "👻"
	SquidEnemyGlyph       = "🐙"
	PlayerProjectileGlyph = "🐝"
	EnemyProjectileGlyph  = "🔶"

	BasicExplosionGlyph = "💥"
	GhostExplosionGlyph = "🔥"
	SquidExplosionGlyph = "⚡"
)

// BarrierGlyphs are the decorative barrier variants, indexed by Barrier.Variant.
var BarrierGlyphs = [BarrierVariants]string{"🏢", "🏨", "🏩", "🏪", "🏫", "🏬", "🏭", "🏯", "🏰", "💒", "🗼"}

// Collision broad phase. Must be >= the largest anchor offset between two
// overlapping boxes (max(EnemySize, BarrierSize, PlayerSize)).
const CollisionCellSize = 64.0

// Terminal front end
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	MaxTermWidth  = 180
	MaxTermHeight = 60

	HUDRows = 1 // Terminal rows above the stage

	ShutdownDisplayTime = 5 * time.Second
	ReplayDelay         = time.Second // Overlay ignores replay keys this long after a match ends
	TopScoresShown      = 5
)
