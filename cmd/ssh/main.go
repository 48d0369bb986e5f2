package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/target-hunter/internal/config"
	"github.com/tomz197/target-hunter/internal/draw"
	"github.com/tomz197/target-hunter/internal/game"
	gameconfig "github.com/tomz197/target-hunter/internal/game/config"
	"github.com/tomz197/target-hunter/internal/logx"
	"github.com/tomz197/target-hunter/internal/loop"
	"github.com/tomz197/target-hunter/internal/storage"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "/app/data/target-hunter.db"
)

// server holds what all SSH sessions share.
type server struct {
	store  storage.Backend
	hub    *loop.Hub
	logger *log.Logger
}

func main() {
	_ = config.LoadDotEnv()
	logger := logx.New(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("TH_DB_PATH", defaultDBPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "db", dbPath)

	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open storage", "err", err)
	}
	defer store.Close()

	srv := &server{store: store, hub: loop.NewHub(), logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Stop every game so progress is saved before connections drop
	logger.Info("Stopping sessions", "count", srv.hub.Count())
	srv.hub.Shutdown(gameconfig.ShutdownGracePeriod)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game session per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		user := sess.User()
		handle, ctx, ok := srv.hub.TryRegister(sess.Context(), user)
		if !ok {
			fmt.Fprintf(sess, "A game for %q is already running.\n", user)
			return
		}
		defer srv.hub.Unregister(handle.ID)

		srv.logger.Info("New game session", "user", user, "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		fe := loop.NewANSI(bufio.NewReader(sess), sess, loop.ANSIOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     user,
			IdleTimeout:  true,
		})
		if err := fe.Open(); err != nil {
			srv.logger.Error("terminal setup failed", "user", user, "err", err)
			return
		}
		defer fe.Close()

		gs := game.NewSession(game.Options{
			Store:     srv.store,
			SaveKey:   game.UserSaveKey(user),
			Notifier:  fe.Overlay(),
			FieldSize: fe.FieldSize,
			Logger:    srv.logger.WithPrefix("ssh " + user),
		})
		if err := loop.Run(ctx, gs, fe); err != nil {
			srv.logger.Error("Game error", "user", user, "err", err)
		}

		srv.logger.Info("Session ended", "user", user, "duration", time.Since(handle.Started).Round(time.Second))
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
