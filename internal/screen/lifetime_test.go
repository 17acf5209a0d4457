package screen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketLiveUntilSuperseded(t *testing.T) {
	var l Lifetime
	first := l.Begin()
	assert.True(t, first.Live())

	second := l.Begin()
	assert.False(t, first.Live())
	assert.True(t, second.Live())

	applied := false
	assert.ErrorIs(t, first.Apply(func() { applied = true }), ErrStale)
	assert.False(t, applied)

	assert.NoError(t, second.Apply(func() { applied = true }))
	assert.True(t, applied)
}

func TestCloseInvalidatesTickets(t *testing.T) {
	var l Lifetime
	ticket := l.Begin()
	l.Close()

	assert.True(t, l.Closed())
	assert.False(t, ticket.Live())
	assert.ErrorIs(t, ticket.Apply(func() {}), ErrStale)
	assert.False(t, l.Begin().Live())
}

func TestZeroTicket(t *testing.T) {
	var ticket Ticket
	assert.False(t, ticket.Live())
	assert.ErrorIs(t, ticket.Apply(func() {}), ErrStale)
}

func TestConcurrentBegin(t *testing.T) {
	var l Lifetime
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Begin()
		}()
	}
	wg.Wait()

	last := l.Begin()
	assert.True(t, last.Live())
	assert.Equal(t, uint64(51), last.gen)
}
