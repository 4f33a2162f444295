package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestScopeForAdminSeesAll(t *testing.T) {
	v := ScopeFor(&Actor{UserID: 1, Role: Superuser}, nil)
	assert.True(t, v.All)

	v = ScopeFor(&Actor{UserID: 2, Role: Admin}, nil)
	assert.True(t, v.All)
}

func TestScopeForAdminNarrowsByTeamParam(t *testing.T) {
	v := ScopeFor(&Actor{UserID: 1, Role: Admin}, uintPtr(7))
	assert.False(t, v.All)
	if assert.NotNil(t, v.TeamID) {
		assert.Equal(t, uint(7), *v.TeamID)
	}
}

func TestScopeForTeamRoles(t *testing.T) {
	for _, r := range []Role{TeamLeader, Coordinator, Engineer} {
		v := ScopeFor(&Actor{UserID: 3, Role: r, TeamID: uintPtr(4)}, nil)
		if assert.NotNil(t, v.TeamID) {
			assert.Equal(t, uint(4), *v.TeamID)
		}

		// без команды — ничего
		v = ScopeFor(&Actor{UserID: 3, Role: r}, nil)
		assert.True(t, v.None)
	}
}

func TestScopeForOtherRolesOwnRowsOnly(t *testing.T) {
	v := ScopeFor(&Actor{UserID: 9, Role: Member}, nil)
	if assert.NotNil(t, v.OwnerID) {
		assert.Equal(t, uint(9), *v.OwnerID)
	}
	// явный параметр команды не расширяет видимость рядовой роли
	v = ScopeFor(&Actor{UserID: 9, Role: Member}, uintPtr(1))
	assert.NotNil(t, v.OwnerID)
	assert.Nil(t, v.TeamID)
}

func TestScopeForFailClosed(t *testing.T) {
	assert.True(t, ScopeFor(nil, nil).None)
	assert.True(t, ScopeFor(&Actor{}, uintPtr(5)).None)
}
