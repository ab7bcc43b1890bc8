package shatter

import (
	"fmt"
	"math"

	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/core"
	"github.com/tetraplane/ricochet/internal/games/shatter/levels"
	"github.com/tetraplane/ricochet/internal/registry"
	"github.com/tetraplane/ricochet/internal/sim"
)

// Visual characters for rendering
const (
	PaddleChar   = '='
	BallChar     = '●'
	MegaBallChar = '◉'
	ShotChar     = '|'
	BorderHoriz  = '─'
)

// Obstacle glyphs by row (cycling through)
var ObstacleGlyphs = []rune{'█', '▓', '▒', '░', '#', '+', '*', '='}

// Glyphs for the special obstacle kinds
const (
	ToughGlyph      = '▓'
	SolidGlyph      = '█'
	PowerDropGlyph  = '◆'
	DetonatorGlyph  = '◎'
	RelocatingGlyph = '◇'
	DuplicatorGlyph = '◈'
	CatalystGlyph   = '✦'
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// levelsPath stores the custom level pack directory set via CLI
var levelsPath string

// startLevel stores a 1-based starting level selection; 0 means first
var startLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetLevelsPath sets a directory to load a custom level pack from.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetStartLevel picks the level the next run starts on (1-based).
// Zero starts from the first level.
func SetStartLevel(level int) {
	startLevel = level
}

// Game adapts a Session to the registry interface: it translates input
// frames into intents, drives the fixed-step simulation, and renders the
// entity store. All rules live in the session.
type Game struct {
	mode GameMode
	sess *Session

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.ShatterConfig

	// Layout
	playTop        int // Y position where the playfield starts (below HUD)
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Shatter game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Shatter game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "shatter_endless"
	}
	return "shatter"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Shatter (Endless)"
	}
	return "Shatter"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadShatter(configPath)
	if err != nil {
		cfg = config.DefaultShatterConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyShatterPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg

	// HUD takes the top 2 rows; the playfield gets the rest
	g.playTop = 2

	// Check screen size
	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	// Load a custom level pack if one was set
	var pack []*Level
	if levelsPath != "" {
		if specs, lerr := levels.NewLoader(levelsPath).LoadAll(); lerr == nil {
			for _, spec := range specs {
				pack = append(pack, ParseLevel(spec.ID, spec.Name, spec.Rows))
			}
		}
	}

	g.sess = NewSession(cfg, g.mode, runtime.ScreenW, runtime.ScreenH-g.playTop, runtime.Seed, pack)
	if startLevel > 0 {
		g.sess.StartAtLevel(startLevel - 1)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.sess == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.sess.Inject(sim.Intent{Kind: sim.IntentMove, Dir: -1})
	}
	if in.Has(core.ActionRight) {
		g.sess.Inject(sim.Intent{Kind: sim.IntentMove, Dir: 1})
	}
	if in.Has(core.ActionLaunch) {
		g.sess.Inject(sim.Intent{Kind: sim.IntentLaunch})
	}
	if in.Has(core.ActionPause) {
		g.sess.Inject(sim.Intent{Kind: sim.IntentPause})
	}
	if in.Has(core.ActionRestart) {
		g.sess.Inject(sim.Intent{Kind: sim.IntentRestart})
	}

	outcomes := g.sess.Advance(sim.FixedStep)

	return core.StepResult{
		State:   g.State(),
		Notices: g.buildNotices(outcomes),
	}
}

// buildNotices turns the tick's outcome records into HUD messages.
func (g *Game) buildNotices(outcomes []sim.Outcome) []string {
	var notices []string
	for _, o := range outcomes {
		switch v := o.(type) {
		case sim.PickupCollectedOutcome:
			notices = append(notices, fmt.Sprintf("%s collected", PickupKind(v.Pickup)))
		case sim.LevelClearOutcome:
			notices = append(notices, fmt.Sprintf("Level %d cleared", v.Level+1))
		case sim.LifeLostOutcome:
			if v.Remaining > 0 {
				notices = append(notices, fmt.Sprintf("Ball lost, %d left", v.Remaining))
			}
		case sim.CatalystOutcome:
			notices = append(notices, "Catalyst armed: guaranteed drops")
		case sim.OriginDestroyedOutcome:
			notices = append(notices, fmt.Sprintf("Chain collapse +%d", v.Bonus))
		}
	}
	return notices
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.sess == nil {
		return
	}

	g.renderHUD(dst)
	g.renderObstacles(dst)
	g.renderPickups(dst)
	g.renderShots(dst)
	g.renderParticles(dst)
	g.renderPaddle(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)
}

// cellY converts a playfield y coordinate to a screen row.
func (g *Game) cellY(y float64) int {
	return g.playTop + int(math.Floor(y))
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	// Score on left
	scoreText := fmt.Sprintf("Score: %d", g.sess.Score())
	dst.DrawText(1, 0, scoreText)

	// Lives in center
	livesText := fmt.Sprintf("Lives: %d", g.sess.Lives())
	dst.DrawTextCentered(0, livesText)

	// Level on right
	var levelText string
	if g.mode == ModeEndless {
		totalLevel := g.sess.EndlessCycle()*g.sess.LevelCount() + g.sess.LevelIndex() + 1
		levelText = fmt.Sprintf("Level: %d", totalLevel)
	} else {
		levelText = fmt.Sprintf("Level: %d/%d", g.sess.LevelIndex()+1, g.sess.LevelCount())
	}
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	// Combo and effects display (compact) on row 1
	statusStr := g.buildStatusString()
	if statusStr != "" {
		dst.DrawText(1, 1, statusStr)
	} else {
		// Separator line if nothing to show
		for x := range dst.Width() {
			dst.Set(x, 1, BorderHoriz)
		}
	}
}

// buildStatusString creates a compact combo-and-effects display.
func (g *Game) buildStatusString() string {
	result := ""
	if combo := g.sess.Combo(); combo > 1 {
		result = fmt.Sprintf("Combo x%d", combo)
	}

	for _, ref := range g.sess.Effects().ActiveKinds() {
		secs := g.sess.Effects().Remaining(ref) / 60
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s(%d)", EffectName(ref), secs)
	}
	return result
}

// renderObstacles draws all live obstacles.
func (g *Game) renderObstacles(dst *core.Screen) {
	for _, e := range g.sess.Store().All(sim.KindObstacle) {
		ob := obstacleData(e)
		if ob.Phase == PhaseDestroyed {
			continue
		}

		screenY := g.cellY(e.Pos.Y)
		startX := int(math.Round(e.Pos.X))
		endX := int(math.Round(e.Pos.X + e.W))
		glyph, color := g.obstacleStyle(ob, screenY)

		for x := startX; x < endX; x++ {
			if x >= 0 && x < dst.Width() && screenY >= 0 && screenY < dst.Height() {
				dst.SetCell(x, screenY, glyph, color)
			}
		}
	}
}

// obstacleStyle picks the glyph and color for an obstacle's kind and condition.
func (g *Game) obstacleStyle(ob *Obstacle, row int) (rune, core.Color) {
	if ob.Phase == PhaseDestroying {
		// Fade out in two stages
		if ob.Fade > g.cfg.Obstacles.FadeTicks/2 {
			return '▒', core.ColorGray
		}
		return '░', core.ColorGray
	}

	switch ob.Kind {
	case ObstacleReinforced:
		if ob.Hits > 1 {
			return ToughGlyph, core.ColorYellow
		}
	case ObstacleHeavy:
		if ob.Hits > 2 {
			return SolidGlyph, core.ColorBrightRed
		}
		if ob.Hits > 1 {
			return ToughGlyph, core.ColorBrightRed
		}
	case ObstacleIndestructible:
		return SolidGlyph, core.ColorGray
	case ObstaclePowerDrop:
		return PowerDropGlyph, core.ColorBrightGreen
	case ObstacleDetonator:
		return DetonatorGlyph, core.ColorOrange
	case ObstacleCyclingBonus:
		// Show the pickup it would currently grant
		return ob.CurrentPickup().Glyph(), core.ColorBrightYellow
	case ObstacleRelocating:
		return RelocatingGlyph, core.ColorMagenta
	case ObstacleDuplicator:
		return DuplicatorGlyph, core.ColorBrightCyan
	case ObstacleCatalyst:
		return CatalystGlyph, core.ColorBrightMagenta
	}
	return ObstacleGlyphs[row%len(ObstacleGlyphs)], core.ColorDefault
}

// renderPickups draws falling power-ups.
func (g *Game) renderPickups(dst *core.Screen) {
	for _, pk := range g.sess.Store().All(sim.KindPickup) {
		x := int(math.Floor(pk.Pos.X))
		y := g.cellY(pk.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= 0 && y < dst.Height() {
			dst.SetCell(x, y, pickupData(pk).Glyph(), core.ColorBrightYellow)
		}
	}
}

// renderShots draws laser projectiles.
func (g *Game) renderShots(dst *core.Screen) {
	for _, shot := range g.sess.Store().All(sim.KindProjectile) {
		x := int(math.Floor(shot.Pos.X + shot.W/2))
		y := g.cellY(shot.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= 0 && y < dst.Height() {
			dst.SetCell(x, y, ShotChar, core.ColorBrightRed)
		}
	}
}

// renderParticles draws destruction debris.
func (g *Game) renderParticles(dst *core.Screen) {
	for _, p := range g.sess.Store().All(sim.KindParticle) {
		x := int(math.Floor(p.Pos.X))
		y := g.cellY(p.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= g.playTop && y < dst.Height() {
			dst.Set(x, y, particleMeta(p).Glyph)
		}
	}
}

// renderPaddle draws the player's paddle.
func (g *Game) renderPaddle(dst *core.Screen) {
	p := g.sess.Paddle()
	y := g.cellY(p.Pos.Y)
	startX := int(math.Round(p.Pos.X))
	width := int(math.Round(p.W))
	for i := range width {
		if startX+i >= 0 && startX+i < dst.Width() && y >= 0 && y < dst.Height() {
			dst.Set(startX+i, y, PaddleChar)
		}
	}
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen) {
	glyph := BallChar
	color := core.ColorDefault
	if g.sess.Effects().Active(EffectMega) {
		glyph, color = MegaBallChar, core.ColorBrightWhite
	}

	for _, ball := range g.sess.Store().All(sim.KindBall) {
		x := int(math.Floor(ball.Pos.X))
		y := g.cellY(ball.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= 0 && y < dst.Height() {
			dst.SetCell(x, y, glyph, color)
		}
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.sess.State() {
	case StateServe:
		if g.sess.ServeDelay() <= 0 {
			dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
		} else {
			dst.DrawTextCentered(dst.Height()-1, "Get ready...")
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.sess.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.sess.Score())
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// Snapshot returns the current session state for replay/save.
func (g *Game) Snapshot() Snapshot {
	return g.sess.Snapshot()
}

// ApplySnapshot restores session state from a snapshot.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.sess.ApplySnapshot(snap)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sess == nil {
		return core.GameState{}
	}

	level := g.sess.LevelIndex() + 1
	if g.mode == ModeEndless {
		level = g.sess.EndlessCycle()*g.sess.LevelCount() + g.sess.LevelIndex() + 1
	}

	return core.GameState{
		Score:    g.sess.Score(),
		Lives:    g.sess.Lives(),
		Level:    level,
		GameOver: g.sess.State() == StateGameOver || g.sess.State() == StateWin,
		Paused:   g.sess.State() == StatePaused,
	}
}

// Register the games with the registry
func init() {
	registry.Register("shatter", func() registry.Game {
		return New()
	})
	registry.Register("shatter_endless", func() registry.Game {
		return NewEndless()
	})
}
