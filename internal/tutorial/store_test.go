package tutorial

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreIsolatesSessions(t *testing.T) {
	store := NewSessionStore()
	m := NewMachine()

	alice := store.Progress("alice")
	bob := store.Progress("bob")

	m.Start(alice)
	m.Advance(alice)

	assert.Equal(t, 1, alice.CurrentIndex)
	assert.False(t, bob.Active)
	assert.Equal(t, 0, bob.CurrentIndex)
}

func TestSessionStoreReturnsSameProgress(t *testing.T) {
	store := NewSessionStore()

	first := store.Progress("session-1")
	second := store.Progress("session-1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStoreDrop(t *testing.T) {
	store := NewSessionStore()
	m := NewMachine()

	p := store.Progress("session-1")
	m.Start(p)
	m.Advance(p)

	store.Drop("session-1")

	fresh := store.Progress("session-1")
	assert.NotSame(t, p, fresh)
	assert.False(t, fresh.Active)
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sessionID := string(rune('a' + id%10))
			store.Progress(sessionID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
