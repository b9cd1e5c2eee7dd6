package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesEvents(t *testing.T) {
	manager := NewManager(zerolog.Nop())
	ch, cancel := manager.Subscribe()
	defer cancel()

	manager.Emit(WinConfirmed, "wins", map[string]interface{}{"win_id": "abc"})

	event := <-ch
	assert.Equal(t, WinConfirmed, event.Type)
	assert.Equal(t, "wins", event.Module)
	assert.Equal(t, "abc", event.Data["win_id"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	manager := NewManager(zerolog.Nop())
	ch, cancel := manager.Subscribe()
	cancel()

	manager.Emit(RemindersSent, "scheduler", nil)

	select {
	case event := <-ch:
		t.Fatalf("unexpected event after cancel: %v", event.Type)
	default:
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	manager := NewManager(zerolog.Nop())
	ch, cancel := manager.Subscribe()
	defer cancel()

	// Overflow the buffer; Emit must never block
	for i := 0; i < 50; i++ {
		manager.Emit(CacheRefreshed, "scheduler", nil)
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Greater(t, received, 0)
	assert.LessOrEqual(t, received, 16)
}

func TestEmitErrorCarriesMessage(t *testing.T) {
	manager := NewManager(zerolog.Nop())
	ch, cancel := manager.Subscribe()
	defer cancel()

	manager.EmitError("scheduler", assert.AnError, map[string]interface{}{"job": "backup"})

	event := <-ch
	assert.Equal(t, ErrorOccurred, event.Type)
	assert.Equal(t, assert.AnError.Error(), event.Data["error"])
	assert.Equal(t, "backup", event.Data["job"])
}
