package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
		{name: "typed", err: NewNotFoundError("get", "index", "byAge"), want: KindNotFound},
		{name: "wrapped typed", err: fmt.Errorf("outer: %w", NewIllegalStateError("enable", "byAge", "disabled")), want: KindIllegalState},
		{name: "sentinel", err: fmt.Errorf("insert: %w", ErrConflict), want: KindConflict},
		{name: "unavailable", err: NewUnavailableError("ping", errors.New("refused")), want: KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConflictError("create_vertex_label", "vertex label", "user", cause)

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `create_vertex_label: conflict vertex label "user": duplicate key`, err.Error())

	assert.Equal(t, `enable: illegal_state index "byAge": cannot skip REGISTERED`,
		NewIllegalStateError("enable", "byAge", "cannot skip REGISTERED").Error())
	assert.Equal(t, "decode: invalid_argument: name is required",
		NewInvalidArgumentError("decode", "name is required").Error())
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(NewUnavailableError("commit", nil)))
	assert.True(t, Retryable(fmt.Errorf("x: %w", ErrConflict)))
	assert.False(t, Retryable(NewNotFoundError("get", "label", "user")))
	assert.False(t, Retryable(errors.New("boom")))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError("op", nil))

	typed := NewNotFoundError("get", "label", "user")
	assert.Same(t, typed, WrapError("outer", typed))

	wrapped := WrapError("list indices", errors.New("connection reset"))
	assert.EqualError(t, wrapped, "list indices: connection reset")
	assert.Equal(t, KindUnknown, KindOf(wrapped))
}

func TestGRPCCode(t *testing.T) {
	tests := map[Kind]codes.Code{
		KindInvalidArgument: codes.InvalidArgument,
		KindNotFound:        codes.NotFound,
		KindConflict:        codes.AlreadyExists,
		KindIllegalState:    codes.FailedPrecondition,
		KindUnavailable:     codes.Unavailable,
		KindUnknown:         codes.Internal,
	}
	for kind, want := range tests {
		assert.Equal(t, want, GRPCCode(kind), kind.String())
	}
}
