package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad %s", "input"), KindValidation},
		{"wrapped conflict", fmt.Errorf("ctx: %w", ErrEmailTaken), KindConflict},
		{"storage", Storage("select users", errors.New("conn refused")), KindStorage},
		{"foreign", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessage_HidesStorageDetail(t *testing.T) {
	err := Storage("insert member", errors.New(`pq: relation "members" does not exist`))

	assert.Equal(t, "internal error", Message(err))
	assert.Contains(t, err.Error(), "relation")
	assert.Equal(t, "internal error", Message(errors.New("driver text")))
	assert.Equal(t, "email already exists", Message(ErrEmailTaken))
}

func TestIs_MatchesSentinels(t *testing.T) {
	err := fmt.Errorf("signin: %w", ErrInvalidCredentials)

	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.False(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, &Error{Kind: KindAuthentication}))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Storage("op", cause)
	assert.ErrorIs(t, err, cause)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not found", KindNotFound.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
