package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/freelancehub/internal/client/client"
	"github.com/dmitrijs2005/freelancehub/internal/client/config"
	"github.com/dmitrijs2005/freelancehub/internal/client/models"
	"github.com/dmitrijs2005/freelancehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/freelancehub/internal/client/services"
	"github.com/dmitrijs2005/freelancehub/internal/filex"
	"github.com/dmitrijs2005/freelancehub/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type App struct {
	config        *config.Config
	cache         metadata.Repository
	authService   services.AuthService
	marketService services.MarketService
	reader        *bufio.Reader
	out           io.Writer

	mu      sync.Mutex
	mode    Mode
	session *models.Session
}

func NewApp(c *config.Config) (*App, error) {

	dir, err := filex.EnsureDir(c.CacheDir)
	if err != nil {
		return nil, err
	}

	cache, err := metadata.NewPebbleRepository(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening local cache: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	logger := logging.New("warn", "text", os.Stderr)

	return &App{
		config:        c,
		cache:         cache,
		authService:   services.NewAuthService(apiClient, cache),
		marketService: services.NewMarketService(apiClient, cache, logger.With("module", "market")),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

// Run probes the server once, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.cache.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to freelancehub CLI (type 'help' for commands)")
	a.probe(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentSession() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) setSession(s *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.currentSession(); sess != nil {
		s = sess.User.ID + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// probe pings the server with a short timeout and records the outcome.
// A reachable server always means online; an unreachable one keeps a
// disabled app disabled.
func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(ctx)
	cancel()

	if err == nil {
		a.setMode(ModeOnline)
		return
	}
	if a.Mode() != ModeDisabled {
		a.setMode(ModeOffline)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}
