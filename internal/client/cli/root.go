package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if identity := a.session.Identity(); identity != nil {
		s = identity.Login + " "
	}
	if mode := a.Mode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the session, starts the feed poller and the connectivity
// watcher, then runs the REPL until the user exits or ctx is done.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the training portal CLI (type 'help' for commands)")

	a.session.Init(ctx)
	if !a.session.IsAuthenticated() {
		_ = a.Login(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.feed.Run(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
