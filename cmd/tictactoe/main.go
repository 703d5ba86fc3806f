package main

import (
	"context"
	"ctchen222/minimax-tictactoe/internal/bot"
	"ctchen222/minimax-tictactoe/internal/config"
	"ctchen222/minimax-tictactoe/internal/logger"
	"ctchen222/minimax-tictactoe/internal/match"
	"ctchen222/minimax-tictactoe/internal/telemetry"
	"ctchen222/minimax-tictactoe/internal/tui"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, conf.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	// Initialize logger; the terminal belongs to the UI, so records go to a file.
	level, err := logger.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger.Init(level, logFile)

	calculator, err := bot.NewBotMoveCalculator()
	if err != nil {
		return err
	}
	m, err := match.NewMatch(calculator)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	slog.InfoContext(ctx, "game started", "match.id", m.ID)
	if err := tui.New(screen, m).Run(ctx); err != nil {
		return fmt.Errorf("ui stopped: %w", err)
	}
	slog.InfoContext(ctx, "game closed", "match.id", m.ID)

	return nil
}
