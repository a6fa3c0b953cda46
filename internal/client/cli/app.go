package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/trainingportal/internal/client/config"
	"github.com/dmitrijs2005/trainingportal/internal/client/feed"
	"github.com/dmitrijs2005/trainingportal/internal/client/services"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	session services.SessionService
	catalog services.CatalogService
	feed    *feed.Controller
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(c *config.Config, session services.SessionService, catalog services.CatalogService, fc *feed.Controller, logger logging.Logger) *App {
	return &App{
		config:  c,
		session: session,
		catalog: catalog,
		feed:    fc,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

// StartOnlineStatusWatcher pings the API every interval and flips Mode
// between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.session.Ping(pingCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
