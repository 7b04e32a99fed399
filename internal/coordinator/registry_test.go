package coordinator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strangerchat/backend/internal/coordinator"
	"strangerchat/backend/internal/models"
)

func TestRegistryRegisterDefaults(t *testing.T) {
	r := coordinator.NewRegistry()

	p := r.Register("user_A")
	assert.Equal(t, "user_A", p.ID)
	assert.Equal(t, models.DefaultNickname, p.Nickname)
	assert.Equal(t, models.StatusIdle, p.Status)
	assert.False(t, p.ConnectedAt.IsZero())
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySetNickname(t *testing.T) {
	r := coordinator.NewRegistry()
	r.Register("user_A")

	require.NoError(t, r.SetNickname("user_A", "Aye"))
	p, _ := r.Get("user_A")
	assert.Equal(t, "Aye", p.Nickname)

	// Empty name keeps the current one.
	require.NoError(t, r.SetNickname("user_A", ""))
	p, _ = r.Get("user_A")
	assert.Equal(t, "Aye", p.Nickname)

	err := r.SetNickname("ghost", "Boo")
	assert.ErrorIs(t, err, coordinator.ErrNotFound)

	// The name is frozen mid-session.
	require.NoError(t, r.Transition("user_A", models.StatusChatting, "user_B", "s1"))
	err = r.SetNickname("user_A", "Other")
	assert.ErrorIs(t, err, coordinator.ErrConflict)
	p, _ = r.Get("user_A")
	assert.Equal(t, "Aye", p.Nickname)
}

func TestRegistryRemoveReturnsPriorState(t *testing.T) {
	r := coordinator.NewRegistry()
	r.Register("user_A")
	require.NoError(t, r.Transition("user_A", models.StatusChatting, "user_B", "s1"))

	prior, ok := r.Remove("user_A")
	require.True(t, ok)
	assert.Equal(t, models.StatusChatting, prior.Status)
	assert.Equal(t, "user_B", prior.PartnerID)
	assert.Equal(t, "s1", prior.SessionID)

	_, ok = r.Remove("user_A")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryGetReturnsSnapshot(t *testing.T) {
	r := coordinator.NewRegistry()
	r.Register("user_A")

	p, _ := r.Get("user_A")
	p.Nickname = "mutated copy"

	fresh, _ := r.Get("user_A")
	assert.Equal(t, models.DefaultNickname, fresh.Nickname)
}
