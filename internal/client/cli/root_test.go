package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoot_RestoredSessionSkipsLogin(t *testing.T) {
	silencePrintln(t)
	s := &fakeSession{current: alice}
	app, out := newTestApp(s, sampleCatalog(), readerFromLines("whoami", "exit"))

	app.Root(context.Background())

	assert.True(t, s.initCalled)
	assert.Empty(t, s.lastLogin)
	assert.Contains(t, out.String(), "Welcome to the training portal CLI")
	assert.Contains(t, out.String(), "login=alice")
}

func TestRoot_AnonymousPromptsLogin(t *testing.T) {
	silencePrintln(t)
	stubPassword(t, "pw")
	s := &fakeSession{loginWith: alice}
	app, out := newTestApp(s, sampleCatalog(), readerFromLines("alice", "quit"))

	app.Root(context.Background())

	assert.Equal(t, "alice", s.lastLogin)
	assert.Contains(t, out.String(), "Welcome, Alice")
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	app, _ := newTestApp(&fakeSession{}, sampleCatalog(), readerFromLines())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
