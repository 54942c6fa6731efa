package signal

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/beaconhq/beacon-go/internal/concurrency"
)

var event = ExceptionEvent{Err: errors.New("test event"), Task: "test"}

func TestEmitReceive(t *testing.T) {
	Emit(event)
	output, stop := Receive()
	assert.False(t, stop)
	assert.Equal(t, event.Task, output.Task)
	assert.EqualError(t, output.Err, "test event")
}

func TestCreateListener(t *testing.T) {
	called := concurrency.AtomicBool{}
	CreateListener(func(event ExceptionEvent) {
		called.Set(true)
	})
	defer DisposeListener()
	Emit(event)
	assert.Eventually(t, func() bool {
		return called.Get()
	}, 2*time.Second, time.Millisecond)
}

func TestMockHub(t *testing.T) {
	hub := NewMockHub()
	var received ExceptionEvent
	hub.CreateListener(func(event ExceptionEvent) {
		received = event
	})
	hub.Emit(event)
	assert.Equal(t, 1, hub.EmitCount())
	assert.EqualError(t, received.Err, "test event")
}
