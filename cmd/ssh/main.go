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

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	ilog "github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/session"
)

func main() {
	cfg, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := ilog.New(os.Stderr, cfg.Log.Level)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config",
		"host", cfg.SSH.Host,
		"port", cfg.SSH.Port,
		"hostKeyPath", cfg.SSH.HostKeyPath,
		"highscore", cfg.HighScore.Backend,
		"workingDir", workingDir,
	)

	store, err := highscore.New(cfg.HighScore)
	if err != nil {
		logger.Fatal("failed to open high score store", "err", err)
	}

	g := &game{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sessions: session.NewManager(),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			g.middleware,
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
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", g.sessions.Count())

	// Notify players and give them time to see the notice before closing.
	g.sessions.Shutdown(cfg.SSH.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("failed to close high score store", "err", err)
	}
}

// game holds what SSH sessions share: the high score store and the session registry.
type game struct {
	cfg      *config.Config
	logger   *log.Logger
	store    highscore.Store
	sessions *session.Manager
}

// middleware runs one independent match per SSH session.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		handle := g.sessions.Register(sess.User())
		defer g.sessions.Unregister(handle.ID)

		logger := g.logger.With("user", sess.User(), "session", handle.ID)
		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		err := loop.Run(bufio.NewReader(sess), sess, loop.RunOptions{
			TermSizeFunc: sizeTracker.getSize,
			Store:        g.store,
			Logger:       logger,
			Seed:         g.cfg.Game.Seed,
			FPS:          g.cfg.Game.FPS,
			Events:       handle.Events,
			IdleTimeout:  g.cfg.SSH.IdleTimeout,
			OnResult: func(r loop.Result) {
				g.sessions.ReportScore(handle.ID, r.Score)
			},
			TopScores: g.sessions.TopScores,
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
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
