package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during frame N are
// dispatched at the start of frame N+1, in emission order. Emit may be
// called from any goroutine; SwapBuffers and DispatchAll belong to the
// loop goroutine.
type Bus struct {
	mu       sync.Mutex // protects back and handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 16),
		back:     make([]any, 0, 16),
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event into the back buffer (dispatched next frame).
func Emit[T any](b *Bus, event T) {
	b.mu.Lock()
	b.back = append(b.back, event)
	b.mu.Unlock()
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at frame start.
func (b *Bus) SwapBuffers() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front[:0]
	b.mu.Unlock()
}

// Pending is the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.back)
}

// DispatchAll delivers the front buffer to subscribed handlers. The first
// handler error stops dispatch; undelivered events are dropped with the
// buffer.
func (b *Bus) DispatchAll() error {
	for _, ev := range b.front {
		b.mu.Lock()
		handlers := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range handlers {
			if err := callHandler(h, ev); err != nil {
				return err
			}
		}
	}
	b.front = b.front[:0]
	return nil
}

func callHandler(handler any, event any) error {
	out := reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
	if err, ok := out[0].Interface().(error); ok {
		return err
	}
	return nil
}
