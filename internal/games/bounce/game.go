package bounce

import (
	"fmt"
	"math"

	"github.com/tetraplane/ricochet/internal/config"
	"github.com/tetraplane/ricochet/internal/core"
	"github.com/tetraplane/ricochet/internal/registry"
	"github.com/tetraplane/ricochet/internal/sim"
)

// Visual characters for rendering
const (
	BallChar       = '●'
	CloneBallChar  = '○'
	InvertBallChar = '◉'
	BorderHoriz    = '─'
)

// Glyphs for the platform kinds
const (
	NormalGlyph     = '━'
	BreakableGlyph  = '┄'
	PropulsiveGlyph = '▲'
	GravityGlyph    = '≈'
	SplittingGlyph  = '╪'
	ConsumedGlyph   = '─'
)

// levelStep is how many cells of climb count as one display level.
const levelStep = 50

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

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

// Game adapts a Session to the registry interface: it translates input
// frames into intents, drives the fixed-step simulation, and renders the
// entity store through the camera. All rules live in the session.
type Game struct {
	sess *Session

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.BounceConfig

	// Layout
	playTop        int // Y position where the playfield starts (below HUD)
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new Bounce game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "bounce"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Bounce"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadBounce(configPath)
	if err != nil {
		cfg = config.DefaultBounceConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyBouncePreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg

	// HUD takes the top 2 rows; the playfield gets the rest
	g.playTop = 2

	// Check screen size
	g.minScreenW = 30
	g.minScreenH = 15
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.sess = NewSession(cfg, runtime.ScreenW, runtime.ScreenH-g.playTop, runtime.Seed)
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
		case sim.SplitOutcome:
			notices = append(notices, "Ball split!")
		case sim.GravityFlipOutcome:
			notices = append(notices, fmt.Sprintf("Gravity inverted for %ds", v.Ticks/60))
		case sim.LifeLostOutcome:
			notices = append(notices, fmt.Sprintf("Ball lost, %d left", v.Remaining))
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
	g.renderPlatforms(dst)
	g.renderParticles(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)
}

// cellY converts a world y coordinate to a screen row via the camera.
func (g *Game) cellY(y float64) int {
	return g.playTop + int(math.Floor(y-g.sess.CameraY()))
}

// renderHUD draws the score, climb height, and ball count.
func (g *Game) renderHUD(dst *core.Screen) {
	// Score on left
	scoreText := fmt.Sprintf("Score: %d", g.sess.Score())
	dst.DrawText(1, 0, scoreText)

	// Height in center
	heightText := fmt.Sprintf("Height: %d", g.sess.Height())
	dst.DrawTextCentered(0, heightText)

	// Ball count on right
	ballsText := fmt.Sprintf("Balls: %d", g.sess.Balls())
	dst.DrawText(dst.Width()-len(ballsText)-1, 0, ballsText)

	// Combo and inverted-gravity display (compact) on row 1
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

// buildStatusString creates a compact combo-and-modifiers display.
func (g *Game) buildStatusString() string {
	result := ""
	if combo := g.sess.Combo(); combo > 1 {
		result = fmt.Sprintf("Combo x%d", combo)
	}

	if ticks := g.maxInvert(); ticks > 0 {
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("Inverted(%d)", ticks/60)
	}
	return result
}

// maxInvert returns the longest remaining inverted-gravity countdown
// across live balls.
func (g *Game) maxInvert() int {
	best := 0
	for _, ball := range g.sess.Store().All(sim.KindBall) {
		if meta := ballMeta(ball); meta.Invert > best {
			best = meta.Invert
		}
	}
	return best
}

// renderPlatforms draws every platform inside the camera window.
func (g *Game) renderPlatforms(dst *core.Screen) {
	for _, e := range g.sess.Store().All(sim.KindPlatform) {
		screenY := g.cellY(e.Pos.Y)
		if screenY < g.playTop || screenY >= dst.Height() {
			continue
		}

		glyph, color := g.platformStyle(platformData(e))
		startX := int(math.Round(e.Pos.X))
		endX := int(math.Round(e.Pos.X + e.W))
		for x := startX; x < endX; x++ {
			if x >= 0 && x < dst.Width() {
				dst.SetCell(x, screenY, glyph, color)
			}
		}
	}
}

// platformStyle picks the glyph and color for a platform's kind and condition.
func (g *Game) platformStyle(meta *PlatformMeta) (rune, core.Color) {
	if meta.Consumed && meta.Kind == PlatformNormal {
		return ConsumedGlyph, core.ColorGray
	}

	switch meta.Kind {
	case PlatformBreakable:
		return BreakableGlyph, core.ColorYellow
	case PlatformPropulsive:
		return PropulsiveGlyph, core.ColorOrange
	case PlatformGravity:
		return GravityGlyph, core.ColorMagenta
	case PlatformSplitting:
		return SplittingGlyph, core.ColorCyan
	}
	return NormalGlyph, core.ColorGreen
}

// renderParticles draws crumble debris.
func (g *Game) renderParticles(dst *core.Screen) {
	for _, p := range g.sess.Store().All(sim.KindParticle) {
		x := int(math.Floor(p.Pos.X))
		y := g.cellY(p.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= g.playTop && y < dst.Height() {
			dst.Set(x, y, particleMeta(p).Glyph)
		}
	}
}

// renderBalls draws all balls.
func (g *Game) renderBalls(dst *core.Screen) {
	for _, ball := range g.sess.Store().All(sim.KindBall) {
		meta := ballMeta(ball)
		glyph, color := BallChar, core.ColorDefault
		switch {
		case meta.Invert > 0:
			glyph, color = InvertBallChar, core.ColorMagenta
		case meta.Clone:
			glyph, color = CloneBallChar, core.ColorCyan
		}

		x := int(math.Floor(ball.Pos.X))
		y := g.cellY(ball.Pos.Y)
		if x >= 0 && x < dst.Width() && y >= g.playTop && y < dst.Height() {
			dst.SetCell(x, y, glyph, color)
		}
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.sess.State() {
	case StateReady:
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to bounce")

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  Height: %d  |  Press R to restart", g.sess.Score(), g.sess.Height())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
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

	return core.GameState{
		Score:    g.sess.Score(),
		Lives:    g.sess.Balls(),
		Level:    1 + g.sess.Height()/levelStep,
		GameOver: g.sess.State() == StateGameOver,
		Paused:   g.sess.State() == StatePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("bounce", func() registry.Game {
		return New()
	})
}
