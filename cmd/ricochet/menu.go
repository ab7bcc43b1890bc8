package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tetraplane/ricochet/internal/core"
	"github.com/tetraplane/ricochet/internal/games/bounce"
	"github.com/tetraplane/ricochet/internal/games/shatter"
	"github.com/tetraplane/ricochet/internal/platform/tui"
	"github.com/tetraplane/ricochet/internal/registry"
	"github.com/tetraplane/ricochet/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  ricochet menu
  ricochet menu --fps 30
  ricochet menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db)
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
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

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		// Set config path and difficulty for games before creation
		switch gameID {
		case "shatter":
			shatter.SetConfigPath(flagConfig)
			shatter.SetDifficultyPreset(flagDifficulty)
			shatter.SetLevelsPath(flagLevels)

			// Show Shatter mode/level selector
			selection, updatedCfg, shatterErr := tui.RunShatterModeSelector(cfg)
			if shatterErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", shatterErr)
				continue
			}
			cfg = updatedCfg

			// User pressed back or quit
			if selection == nil {
				continue
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

		case "bounce":
			bounce.SetConfigPath(flagConfig)
			bounce.SetDifficultyPreset(flagDifficulty)

			// Show Bounce options menu
			bounceSelection, updatedCfg2, bounceErr := tui.RunBounceModeSelector(cfg)
			if bounceErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", bounceErr)
				continue
			}
			cfg = updatedCfg2

			// User pressed back or quit
			if bounceSelection == nil {
				continue
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
			continue
		}

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()

		// Run the game
		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
