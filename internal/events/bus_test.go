package events_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raikerian/go-discord-bootstrap/internal/events"
)

func TestBus_OnceRunsOnce(t *testing.T) {
	bus := events.NewBus()
	calls := 0
	bus.Once("READY", func(...any) { calls++ })

	assert.Equal(t, 1, bus.Emit("READY"))
	assert.Equal(t, 0, bus.Emit("READY"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Listeners("READY"))
}

func TestBus_OnForwardsArgumentsEveryTime(t *testing.T) {
	bus := events.NewBus()
	type payload struct{ n int }
	p := &payload{n: 7}

	var got [][]any
	bus.On("MESSAGE_CREATE", func(args ...any) { got = append(got, args) })

	for i := 0; i < 3; i++ {
		bus.Emit("MESSAGE_CREATE", p, "two", i)
	}

	assert.Len(t, got, 3)
	for i, args := range got {
		assert.Len(t, args, 3)
		assert.Same(t, p, args[0])
		assert.Equal(t, "two", args[1])
		assert.Equal(t, i, args[2])
	}
}

func TestBus_EmitOtherNameDoesNothing(t *testing.T) {
	bus := events.NewBus()
	bus.On("A", func(...any) { t.Fatal("should not run") })

	assert.Equal(t, 0, bus.Emit("B"))
}

func TestBus_Off(t *testing.T) {
	bus := events.NewBus()
	calls := 0
	off := bus.On("A", func(...any) { calls++ })
	bus.On("A", func(...any) { calls += 10 })

	bus.Emit("A")
	off()
	off()
	bus.Emit("A")

	assert.Equal(t, 21, calls)
	assert.Equal(t, 1, bus.Listeners("A"))
}

func TestBus_OnceUnderConcurrentEmits(t *testing.T) {
	bus := events.NewBus()
	var calls atomic.Int32
	bus.Once("READY", func(...any) { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Emit("READY")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
