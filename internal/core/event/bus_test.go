package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsDeliveredNextFrameInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(TogglePause) error { got = append(got, "pause"); return nil })
	Subscribe(b, func(s Spawn) error {
		got = append(got, "spawn")
		assert.Equal(t, 5, s.Count)
		return nil
	})

	Emit(b, TogglePause{})
	Emit(b, Spawn{Count: 5})
	Emit(b, StepOnce{}) // nobody listens
	assert.Equal(t, 3, b.Pending())

	require.NoError(t, b.DispatchAll())
	assert.Empty(t, got, "nothing is visible before the swap")

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	require.NoError(t, b.DispatchAll())
	assert.Equal(t, []string{"pause", "spawn"}, got)

	b.SwapBuffers()
	require.NoError(t, b.DispatchAll())
	assert.Len(t, got, 2, "events are delivered once")
}

func TestDispatchStopsOnHandlerError(t *testing.T) {
	b := NewBus()
	boom := errors.New("boom")
	calls := 0
	Subscribe(b, func(Quit) error { calls++; return boom })

	Emit(b, Quit{})
	Emit(b, Quit{})
	b.SwapBuffers()
	assert.ErrorIs(t, b.DispatchAll(), boom)
	assert.Equal(t, 1, calls)
}

func TestEmitDuringDispatchLandsNextFrame(t *testing.T) {
	b := NewBus()
	steps := 0
	Subscribe(b, func(StepOnce) error {
		steps++
		if steps == 1 {
			Emit(b, StepOnce{})
		}
		return nil
	})
	Emit(b, StepOnce{})
	b.SwapBuffers()
	require.NoError(t, b.DispatchAll())
	assert.Equal(t, 1, steps)
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	require.NoError(t, b.DispatchAll())
	assert.Equal(t, 2, steps)
}
