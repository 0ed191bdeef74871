// Package bus routes command and query values to their registered handlers.
//
// Every use case in the application goes through a single Bus instance that
// is assembled once at startup. Dispatch is keyed by the concrete type of the
// message, so each command or query type has exactly one handler.
package bus

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrNoHandler is returned by Execute when no handler is registered for the
// message type. This is a wiring defect, not a runtime condition: a correctly
// assembled bus never returns it in production.
var ErrNoHandler = errors.New("bus: no handler registered")

// Message is any command or query value routed through the bus.
type Message any

// HandlerFunc is the type-erased handler shape stored in the routing table.
type HandlerFunc func(ctx context.Context, msg Message) (any, error)

// Bus dispatches messages to handlers by concrete message type. The routing
// table is built once at startup and never mutated afterwards, so Execute is
// safe for concurrent use.
type Bus struct {
	handlers map[reflect.Type]HandlerFunc
}

func New() *Bus {
	return &Bus{handlers: make(map[reflect.Type]HandlerFunc)}
}

func (b *Bus) register(t reflect.Type, h HandlerFunc) error {
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("bus: handler already registered for %s", t)
	}
	b.handlers[t] = h
	return nil
}

// Execute routes msg to its handler and returns the handler's result.
// Storage and handler errors propagate unchanged to the caller.
func (b *Bus) Execute(ctx context.Context, msg Message) (any, error) {
	t := reflect.TypeOf(msg)
	handler, ok := b.handlers[t]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoHandler, t)
	}
	return handler(ctx, msg)
}

// Module groups related handler registrations. Feature packages implement it
// and main wires every module into the bus at boot.
type Module interface {
	Register(b *Bus) error
}

// Register binds a typed handler to messages of type M. Registering a second
// handler for the same message type is an error so that duplicate wiring
// fails fast at boot.
func Register[M Message, R any](b *Bus, handler func(ctx context.Context, msg M) (R, error)) error {
	t := reflect.TypeOf((*M)(nil)).Elem()
	return b.register(t, func(ctx context.Context, msg Message) (any, error) {
		return handler(ctx, msg.(M))
	})
}

// Execute dispatches msg and asserts the result to R, keeping call sites
// type-safe without giving up the single type-erased routing table.
func Execute[R any](ctx context.Context, b *Bus, msg Message) (R, error) {
	res, err := b.Execute(ctx, msg)
	if err != nil {
		var zero R
		return zero, err
	}
	typed, ok := res.(R)
	if !ok {
		var zero R
		return zero, fmt.Errorf("bus: handler for %T returned %T, want %T", msg, res, zero)
	}
	return typed, nil
}
