package eventbus

import (
	"SignalConsole/internal/core/ports"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_PublishReachesAllSubscribers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	var got []ports.Event

	handler := func(ctx context.Context, event ports.Event) error {
		mu.Lock()
		got = append(got, event)
		mu.Unlock()
		wg.Done()
		return nil
	}

	bus.Subscribe(ports.TopicStepChanged, handler)
	bus.Subscribe(ports.TopicStepChanged, handler)

	payload := ports.StepChangedEvent{From: "phone", To: "verify"}
	err := bus.Publish(context.Background(), ports.TopicStepChanged, payload)
	require.NoError(t, err)

	waitDone(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	for _, event := range got {
		assert.Equal(t, ports.TopicStepChanged, event.Topic)
		assert.Equal(t, payload, event.Data)
	}
}

func TestInMemoryEventBus_PublishWithoutSubscribersIsFine(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	err := bus.Publish(context.Background(), "nobody:listens", "data")
	assert.NoError(t, err)
}

func TestInMemoryEventBus_TopicsAreIsolated(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var wg sync.WaitGroup
	wg.Add(1)

	calledTopic := make(chan string, 2)
	bus.Subscribe(ports.TopicAttestationRefresh, func(ctx context.Context, event ports.Event) error {
		calledTopic <- event.Topic
		wg.Done()
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), ports.TopicRegistrationDone, "+14155551234"))
	require.NoError(t, bus.Publish(context.Background(), ports.TopicAttestationRefresh, nil))

	waitDone(t, &wg)
	assert.Equal(t, ports.TopicAttestationRefresh, <-calledTopic)
	assert.Empty(t, calledTopic)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var wg sync.WaitGroup
	wg.Add(2)

	bus.Subscribe(ports.TopicStepChanged, func(ctx context.Context, event ports.Event) error {
		wg.Done()
		return errors.New("handler exploded")
	})

	secondRan := make(chan struct{}, 1)
	bus.Subscribe(ports.TopicStepChanged, func(ctx context.Context, event ports.Event) error {
		secondRan <- struct{}{}
		wg.Done()
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), ports.TopicStepChanged, nil))

	waitDone(t, &wg)
	assert.Len(t, secondRan, 1)
}

// waitDone fails the test if the handlers never run.
func waitDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event handlers")
	}
}
