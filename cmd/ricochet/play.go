package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tetraplane/ricochet/internal/core"
	"github.com/tetraplane/ricochet/internal/games/bounce"
	"github.com/tetraplane/ricochet/internal/games/shatter"
	"github.com/tetraplane/ricochet/internal/platform/tui"
	"github.com/tetraplane/ricochet/internal/registry"
	"github.com/tetraplane/ricochet/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  A/D or Left/Right - Move paddle (Shatter) or steer (Bounce)
  Space             - Launch the ball (Shatter)
  P/Esc             - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  ricochet play shatter
  ricochet play bounce --difficulty easy
  ricochet play shatter --difficulty hard
  ricochet play shatter --levels ./my-levels.yaml
  ricochet play bounce --config ./my-bounce.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to custom Shatter level pack YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'ricochet list' to see available games.")
		os.Exit(1)
	}

	// Get terminal size early for mode selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty for games before creation
	switch gameID {
	case "shatter":
		shatter.SetConfigPath(flagConfig)
		shatter.SetDifficultyPreset(flagDifficulty)
		shatter.SetLevelsPath(flagLevels)

		// Show Shatter mode/level selector
		selection, updatedCfg, selErr := tui.RunShatterModeSelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return
		}

		// Apply selection
		if selection.Preset != "" {
			shatter.SetDifficultyPreset(selection.Preset)
		}
		if selection.Mode == tui.ShatterModeEndless {
			gameID = "shatter_endless"
		}
		if selection.Level > 0 {
			shatter.SetStartLevel(selection.Level)
		}

	case "shatter_endless":
		shatter.SetConfigPath(flagConfig)
		shatter.SetDifficultyPreset(flagDifficulty)
		shatter.SetLevelsPath(flagLevels)

	case "bounce":
		bounce.SetConfigPath(flagConfig)
		bounce.SetDifficultyPreset(flagDifficulty)

		// Show Bounce options menu
		bounceSelection, updatedCfg, bounceErr := tui.RunBounceModeSelector(cfg)
		if bounceErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", bounceErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if bounceSelection == nil {
			return
		}

		// Apply selection
		if bounceSelection.Preset != "" {
			bounce.SetDifficultyPreset(bounceSelection.Preset)
		}
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
