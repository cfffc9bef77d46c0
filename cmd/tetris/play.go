package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (tetris when omitted).

Controls:
  Left/A, Right/D  - Move
  Up/W             - Rotate clockwise
  Down/S           - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, speeds up as lines are cleared
  normal - Classic start, speeds up as lines are cleared
  hard   - Fast start, speeds up as lines are cleared
  fixed  - Constant pace from the config

Examples:
  tetris play
  tetris play tetris --difficulty easy
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	difficulty := settings.GetString("difficulty")
	if _, ok := config.ParsePreset(difficulty); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", difficulty)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(settings.GetString("log-level"), settings.GetString("log-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit
	logger = logger.With("session", uuid.NewString())

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = settings.GetInt("fps")
	cfg.Seed = settings.GetInt64("seed")

	// Set config path and difficulty before the game is created
	tetris.SetConfigPath(settings.GetString("config"))
	tetris.SetDifficultyPreset(difficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("starting", "game", gameID, "fps", cfg.TickRate, "width", cfg.ScreenW, "height", cfg.ScreenH)
	if err := tui.Run(game, cfg, logger); err != nil {
		logger.Error("game loop failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		closeLog() //nolint:errcheck // Exiting anyway
		os.Exit(1)
	}
}
