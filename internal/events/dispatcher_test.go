package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherFansOutToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var kinds []string
	dispatcher.Subscribe(EventTokenRejected, func(_ context.Context, event Event) error {
		kinds = append(kinds, event.Reason)
		return nil
	})
	dispatcher.Subscribe(EventTokenRejected, func(_ context.Context, event Event) error {
		kinds = append(kinds, event.Reason+"-second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTokenRejected, Reason: "expired"})
	require.NoError(t, err)
	assert.Equal(t, []string{"expired", "expired-second"}, kinds)
}

func TestDispatcherIgnoresHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		calls++
		return errors.New("telemetry sink down")
	})
	dispatcher.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventLoginFailed})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDispatcherUnrelatedEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventAccessDenied}))
	assert.False(t, called)
}
