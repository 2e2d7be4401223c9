package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserOnboarded, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	event := NewEvent(EventUserOnboarded, "octocat", nil)
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, got, 1)
	assert.Equal(t, "octocat", got[0].Subject)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventStoreCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventStoreCreated, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventStoreCreated, "store", nil)))
	assert.True(t, secondCalled)
}

func TestDispatcherIgnoresUnrelatedEvents(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventProductCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventUserRegistered, "bob", nil)))
	assert.False(t, called)
}
