package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greet struct {
	Name string
}

type farewell struct {
	Name string
}

func TestExecuteRoutesByMessageType(t *testing.T) {
	b := New()

	err := Register(b, func(_ context.Context, msg greet) (string, error) {
		return "hello " + msg.Name, nil
	})
	require.NoError(t, err)

	err = Register(b, func(_ context.Context, msg farewell) (string, error) {
		return "bye " + msg.Name, nil
	})
	require.NoError(t, err)

	got, err := Execute[string](context.Background(), b, greet{Name: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "hello ada", got)

	got, err = Execute[string](context.Background(), b, farewell{Name: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "bye ada", got)
}

func TestExecuteUnregisteredMessage(t *testing.T) {
	b := New()

	_, err := b.Execute(context.Background(), greet{})
	assert.ErrorIs(t, err, ErrNoHandler)
}

func TestRegisterDuplicateHandlerFails(t *testing.T) {
	b := New()

	err := Register(b, func(_ context.Context, _ greet) (string, error) {
		return "", nil
	})
	require.NoError(t, err)

	err = Register(b, func(_ context.Context, _ greet) (string, error) {
		return "", nil
	})
	assert.Error(t, err)
}

func TestExecutePropagatesHandlerError(t *testing.T) {
	b := New()
	boom := errors.New("boom")

	err := Register(b, func(_ context.Context, _ greet) (string, error) {
		return "", boom
	})
	require.NoError(t, err)

	_, err = Execute[string](context.Background(), b, greet{})
	assert.ErrorIs(t, err, boom)
}

func TestExecuteResultTypeMismatch(t *testing.T) {
	b := New()

	err := Register(b, func(_ context.Context, _ greet) (string, error) {
		return "hello", nil
	})
	require.NoError(t, err)

	_, err = Execute[int](context.Background(), b, greet{})
	assert.Error(t, err)
}
