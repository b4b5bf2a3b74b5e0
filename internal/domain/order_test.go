package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

func TestPaymentAttempt_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AttemptState
		to      AttemptState
		allowed bool
	}{
		{AttemptIdle, AttemptOrderCreated, true},
		{AttemptIdle, AttemptVerifying, false},
		{AttemptOrderCreated, AttemptGatewayOpen, true},
		{AttemptOrderCreated, AttemptPaid, false},
		{AttemptGatewayOpen, AttemptVerifying, true},
		{AttemptGatewayOpen, AttemptFailed, true},
		{AttemptGatewayOpen, AttemptPaid, false},
		{AttemptVerifying, AttemptPaid, true},
		{AttemptVerifying, AttemptFailed, true},
		{AttemptPaid, AttemptVerifying, false},
		{AttemptPaid, AttemptFailed, false},
		{AttemptFailed, AttemptVerifying, false},
		{AttemptFailed, AttemptPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &PaymentAttempt{State: tt.from}
			err := a.CanTransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, customError.ErrInvalidTransition))
			}
		})
	}
}

func TestPaymentAttempt_TransitionToStampsTime(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	a := &PaymentAttempt{State: AttemptGatewayOpen}

	assert.NoError(t, a.TransitionTo(AttemptVerifying, now))
	assert.Equal(t, AttemptVerifying, a.State)
	assert.Equal(t, now, a.UpdatedAt)

	assert.Error(t, a.TransitionTo(AttemptGatewayOpen, now))
	assert.Equal(t, AttemptVerifying, a.State)
}

func TestAttemptState_IsTerminal(t *testing.T) {
	assert.True(t, AttemptPaid.IsTerminal())
	assert.True(t, AttemptFailed.IsTerminal())
	assert.False(t, AttemptGatewayOpen.IsTerminal())
	assert.False(t, AttemptVerifying.IsTerminal())
}
