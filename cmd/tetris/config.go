package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the search path
and the difficulty preset are applied.

Search order:
  --config <path>
  ~/.arcade/configs/tetris.yaml
  ./configs/tetris.yaml
  built-in defaults

Examples:
  tetris config
  tetris config --difficulty hard
  tetris config --defaults > ./configs/tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagDefaults {
		fmt.Print(string(config.GetDefaultYAML("tetris")))
		return
	}

	cfg, err := config.LoadTetris(settings.GetString("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	difficulty := settings.GetString("difficulty")
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", difficulty)
		os.Exit(1)
	}
	config.ApplyTetrisPreset(&cfg, preset)

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}
