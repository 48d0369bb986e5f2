package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/target-hunter/internal/audio"
	"github.com/tomz197/target-hunter/internal/config"
	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/logx"
	"github.com/tomz197/target-hunter/internal/loop"
	"github.com/tomz197/target-hunter/internal/storage"
	"github.com/tomz197/target-hunter/internal/tui"
)

const defaultDBPath = "target-hunter.db"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// frontend is a loop.Frontend that also feeds popups from session events.
type frontend interface {
	loop.Frontend
	Overlay() *loop.Overlay
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	logger, closeLog, err := logx.NewFile("game")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(config.GetEnv("TH_DB_PATH", defaultDBPath))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	player := audio.NewPlayer()
	player.SetVolume(float64(config.GetEnvInt("TH_VOLUME", 0)))
	if config.GetEnvBool("TH_AUDIO", true) {
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		}
	}
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fe frontend
	switch mode := config.GetEnv("TH_FRONTEND", "tcell"); mode {
	case "tcell":
		t, err := tui.NewDefault()
		if err != nil {
			return err
		}
		if err := t.Open(); err != nil {
			return err
		}
		defer t.Close()
		fe = t
	case "ansi":
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()

		a := loop.NewANSI(bufio.NewReader(os.Stdin), os.Stdout, loop.ANSIOptions{})
		if err := a.Open(); err != nil {
			return err
		}
		defer a.Close()
		fe = a
	default:
		return fmt.Errorf("unknown frontend %q", mode)
	}

	sess := game.NewSession(game.Options{
		Store:     store,
		Notifier:  game.Notifiers{fe.Overlay(), player},
		FieldSize: fe.FieldSize,
		Logger:    logger,
	})
	logger.Info("session started", "frontend", config.GetEnv("TH_FRONTEND", "tcell"))

	return loop.Run(ctx, sess, fe)
}
