package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAidType(t *testing.T) {
	for _, valid := range []string{"Blood", "Medicine", "Oxygen", "Other"} {
		parsed, ok := ParseAidType(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, AidType(valid), parsed)
	}

	for _, invalid := range []string{"", "blood", "Food", "OTHER"} {
		_, ok := ParseAidType(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestParseRequestStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "In Progress", "Fulfilled", "Cancelled"} {
		parsed, ok := ParseRequestStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, RequestStatus(valid), parsed)
	}

	for _, invalid := range []string{"", "pending", "InProgress", "Done"} {
		_, ok := ParseRequestStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestRequestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusFulfilled.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"Seeker", "Donor", "Admin"} {
		parsed, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), parsed)
	}

	_, ok := ParseRole("seeker")
	assert.False(t, ok)
}

func TestRole_Registrable(t *testing.T) {
	assert.True(t, RoleSeeker.Registrable())
	assert.True(t, RoleDonor.Registrable())
	assert.False(t, RoleAdmin.Registrable())
	assert.False(t, Role("Helper").Registrable())
}
