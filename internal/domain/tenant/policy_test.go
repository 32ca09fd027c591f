package tenant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanDecide(t *testing.T) {
	tests := []struct {
		name     string
		actor    Actor
		settings *Settings
		want     bool
	}{
		{
			name:     "actor holds a configured approval role",
			actor:    Actor{ID: "u1", RoleIDs: []string{"r1", "r2"}},
			settings: &Settings{ApprovalRoleIDs: []string{"r2"}},
			want:     true,
		},
		{
			name:     "actor holds none of the configured roles",
			actor:    Actor{ID: "u1", RoleIDs: []string{"r9"}},
			settings: &Settings{ApprovalRoleIDs: []string{"r1", "r2"}},
			want:     false,
		},
		{
			name: "administrator is not exempt when roles are configured",
			actor: Actor{
				ID:            "u1",
				Administrator: true,
			},
			settings: &Settings{ApprovalRoleIDs: []string{"r1"}},
			want:     false,
		},
		{
			name:     "no roles configured falls back to administrators",
			actor:    Actor{ID: "u1", Administrator: true},
			settings: &Settings{},
			want:     true,
		},
		{
			name:     "no roles configured rejects non-administrators",
			actor:    Actor{ID: "u1", RoleIDs: []string{"r1"}},
			settings: &Settings{},
			want:     false,
		},
		{
			name:     "nil settings behaves like empty settings",
			actor:    Actor{ID: "u1", Administrator: true},
			settings: nil,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDecide(tt.actor, tt.settings))
		})
	}
}

func TestActor_HasRole(t *testing.T) {
	actor := Actor{RoleIDs: []string{"r1", "r2"}}
	assert.True(t, actor.HasRole("r1"))
	assert.False(t, actor.HasRole("r3"))
	assert.False(t, Actor{}.HasRole("r1"))
}

func TestSettings_Location(t *testing.T) {
	fallback := time.UTC

	t.Run("resolves a configured timezone", func(t *testing.T) {
		s := &Settings{Timezone: "Asia/Tokyo"}
		assert.Equal(t, "Asia/Tokyo", s.Location(fallback).String())
	})

	t.Run("falls back when unset", func(t *testing.T) {
		s := &Settings{}
		assert.Equal(t, fallback, s.Location(fallback))
	})

	t.Run("falls back when unparsable", func(t *testing.T) {
		s := &Settings{Timezone: "Mars/Olympus"}
		assert.Equal(t, fallback, s.Location(fallback))
	})

	t.Run("falls back on nil settings", func(t *testing.T) {
		var s *Settings
		assert.Equal(t, fallback, s.Location(fallback))
	})
}
