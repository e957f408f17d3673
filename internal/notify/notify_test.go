package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/flipclock/internal/state"
)

var target = time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)

type recorder struct {
	calls []string
	fail  map[string]error
}

func (r *recorder) send(u, msg string) error {
	r.calls = append(r.calls, u+" "+msg)
	return r.fail[u]
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "New Year reached Thu, 31 Dec 2026 23:59:00 UTC",
		Message(state.Snapshot{Caption: "New Year", Target: target}))
	assert.Equal(t, "Countdown reached Thu, 31 Dec 2026 23:59:00 UTC",
		Message(state.Snapshot{Target: target}))
}

func TestExpired_SendsToEveryService(t *testing.T) {
	rec := &recorder{}
	n := New([]string{"ntfy://ntfy.sh/a", "generic://example.com/hook"}).WithSender(rec.send)

	require.NoError(t, n.Expired(context.Background(), state.Snapshot{Caption: "Launch", Target: target}))
	require.Len(t, rec.calls, 2)
	assert.Equal(t, "ntfy://ntfy.sh/a Launch reached Thu, 31 Dec 2026 23:59:00 UTC", rec.calls[0])
}

func TestExpired_JoinsFailuresAndContinues(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{fail: map[string]error{"discord://token@id": boom}}
	n := New([]string{"discord://token@id", "ntfy://ntfy.sh/a"}).WithSender(rec.send)

	var outcomes []error
	n.Observe = func(err error) { outcomes = append(outcomes, err) }

	err := n.Expired(context.Background(), state.Snapshot{Target: target})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, err.Error(), "token", "error must not leak credentials")
	assert.Len(t, rec.calls, 2)
	require.Len(t, outcomes, 2)
	assert.ErrorIs(t, outcomes[0], boom)
	assert.NoError(t, outcomes[1])
}

func TestExpired_StopsOnCancelledContext(t *testing.T) {
	rec := &recorder{}
	n := New([]string{"ntfy://ntfy.sh/a"}).WithSender(rec.send)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Expired(ctx, state.Snapshot{Target: target})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls)
}

func TestExpired_Disabled(t *testing.T) {
	var n *Notifier
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Expired(context.Background(), state.Snapshot{}))
	assert.False(t, New(nil).Enabled())
}

func TestService(t *testing.T) {
	assert.Equal(t, "telegram", service("telegram://token@telegram?chats=1"))
	assert.Equal(t, "unknown", service("no scheme"))
}
