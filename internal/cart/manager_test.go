package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_GetCreatesOnFirstTouch(t *testing.T) {
	m := NewManager(time.Hour, zap.NewNop())

	id := m.NewSessionID()
	store := m.Get(id)
	require.NotNil(t, store)
	assert.Equal(t, 1, m.Len())

	// Same session, same store
	store.AddItem(Item{ID: "a", Price: 10, Quantity: 1})
	assert.Equal(t, 1, m.Get(id).Snapshot().ItemCount)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(time.Hour, zap.NewNop())

	first := m.NewSessionID()
	second := m.NewSessionID()

	m.Get(first).AddItem(Item{ID: "a", Price: 10, Quantity: 1})

	assert.Equal(t, 1, m.Get(first).Snapshot().ItemCount)
	assert.Equal(t, 0, m.Get(second).Snapshot().ItemCount)
}

func TestManager_Drop(t *testing.T) {
	m := NewManager(time.Hour, zap.NewNop())

	id := m.NewSessionID()
	m.Get(id).AddItem(Item{ID: "a", Price: 10, Quantity: 1})
	m.Drop(id)

	// A fresh cart appears on next touch
	assert.Equal(t, 0, m.Get(id).Snapshot().ItemCount)
}

func TestManager_Sweep(t *testing.T) {
	m := NewManager(time.Nanosecond, zap.NewNop())

	m.Get(m.NewSessionID())
	m.Get(m.NewSessionID())
	time.Sleep(5 * time.Millisecond)

	removed := m.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, m.Len())
}
