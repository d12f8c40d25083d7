package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusDelivered, true},
		{StatusPaid, StatusDelivered, true},
		{StatusPaid, StatusPending, false},
		{StatusDelivered, StatusPaid, false},
		{StatusPending, StatusPending, false},
		{StatusDelivered, StatusCancelled, true},
		{StatusCancelled, StatusPaid, false},
		{statusCancelledLegacy, StatusPending, false},
		{StatusPending, statusCancelledLegacy, true},
		{StatusPending, Status(9), false},
	}

	for _, testCase := range tests {
		t.Run(testCase.from.String()+"->"+testCase.to.String(), func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.from.CanTransitionTo(testCase.to))
		})
	}
}

func TestStatus_Normalize(t *testing.T) {
	assert.Equal(t, StatusCancelled, Status(5).Normalize())
	assert.Equal(t, StatusPaid, StatusPaid.Normalize())
	assert.True(t, Status(5).Valid())
	assert.False(t, Status(0).Valid())
}

func TestPrincipalPatch_ApplyKeepsUnsetFields(t *testing.T) {
	name := "Noor"
	p := Principal{ID: "u1", Name: "Old", Email: "noor@example.com", Image: "avatars/1.png"}

	got := PrincipalPatch{Name: &name}.Apply(p)

	assert.Equal(t, "Noor", got.Name)
	assert.Equal(t, "noor@example.com", got.Email)
	assert.Equal(t, "avatars/1.png", got.Image)
	assert.Equal(t, map[string]any{"name": "Noor"}, PrincipalPatch{Name: &name}.Values())
	assert.True(t, PrincipalPatch{}.IsEmpty())
}
