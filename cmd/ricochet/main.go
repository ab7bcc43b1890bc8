// ricochet is a TUI arcade for two terminal games: Shatter, a brick
// breaker with a level campaign, and Bounce, a vertical platform climber.
//
// Usage:
//
//	ricochet list              - List available games
//	ricochet play <game>       - Play a game
//	ricochet menu              - Start menu to pick games interactively
//	ricochet serve             - Start SSH server for remote play
//	ricochet scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.ricochet/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/tetraplane/ricochet/internal/games/bounce"
	_ "github.com/tetraplane/ricochet/internal/games/shatter"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ricochet",
	Short: "Ricochet - Brick breaking and platform climbing in your terminal",
	Long: `Ricochet is a terminal arcade with two deterministic games:

  shatter  - Break bricks across a level campaign, or endlessly
  bounce   - Climb an endless tower of platforms

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  ricochet list
  ricochet play shatter
  ricochet menu
  ricochet serve --ssh :2222
  ricochet scores bounce`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ricochet/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
