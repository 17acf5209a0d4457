package nav

import (
	"context"
	"testing"

	"github.com/joshua-takyi/grooviti/internal/models"
	"github.com/joshua-takyi/grooviti/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoute(t *testing.T) {
	r := Event("e1")
	assert.Equal(t, Route("/events/e1"), r)

	id, ok := r.EventID()
	assert.True(t, ok)
	assert.Equal(t, "e1", id)

	_, ok = Bookings.EventID()
	assert.False(t, ok)

	id, ok = Event("a b").EventID()
	assert.True(t, ok)
	assert.Equal(t, "a b", id)
}

func TestGuardRedirectsAfterLogout(t *testing.T) {
	ctx := context.Background()
	s := session.New(nil, nil)

	assert.Equal(t, Login, Guard(s, Profile))

	require.NoError(t, s.Set(ctx, "tok", &models.User{ID: "u1"}))
	assert.Equal(t, Profile, Guard(s, Profile))
	assert.Equal(t, Bookings, Guard(s, Bookings))

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, Login, Guard(s, Profile))
	assert.Equal(t, Login, Guard(s, Bookings))
	assert.Equal(t, Login, Guard(nil, Profile))
}
