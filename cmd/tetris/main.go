// tetris plays a falling-block puzzle game in the terminal.
//
// Usage:
//
//	tetris                 - Play tetris
//	tetris play [game]     - Play a registered game (default: tetris)
//	tetris list            - List available games
//	tetris config          - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file while the game runs
//
// Every flag can also be set from the environment as TETRIS_<FLAG>,
// for example TETRIS_FPS=30 or TETRIS_LOG_FILE=/tmp/tetris.log.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// settings resolves flag values, falling back to TETRIS_* environment variables.
var settings = newSettings()

func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("tetris")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `Play tetris directly in your terminal.

Available commands:
  play     - Play a game (the default)
  list     - Show all available games
  config   - Print the effective configuration

Examples:
  tetris
  tetris play --difficulty hard
  tetris --seed 42 --log-file /tmp/tetris.log
  tetris config > ~/.arcade/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("fps", 60, "Tick rate (frames per second)")
	flags.Int64("seed", 0, "RNG seed (0 = random based on time)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Write logs to this file (logs are discarded otherwise while playing)")
	flags.String("config", "", "Path to custom game config YAML")
	flags.String("difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	if err := settings.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
