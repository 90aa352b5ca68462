package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coconina/storefront/pkg/event"
)

func TestBus_FireInOrder(t *testing.T) {
	bus := event.NewBus()
	var got []string

	bus.Listen("cache.warmed", func(p interface{}) { got = append(got, "a:"+p.(string)) })
	bus.Listen("cache.warmed", func(p interface{}) { got = append(got, "b:"+p.(string)) })
	bus.Listen("other", func(interface{}) { got = append(got, "other") })

	bus.Fire("cache.warmed", "x")
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := event.NewBus()
	calls := 0

	stop := bus.Listen("e", func(interface{}) { calls++ })
	keep := bus.Listen("e", func(interface{}) {})
	assert.Equal(t, 2, bus.Count("e"))

	stop()
	stop()
	bus.Fire("e", nil)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, bus.Count("e"))

	keep()
	assert.Equal(t, 0, bus.Count("e"))
}

func TestBus_UnsubscribeDuringFire(t *testing.T) {
	bus := event.NewBus()
	calls := 0

	var stop func()
	stop = bus.Listen("e", func(interface{}) {
		calls++
		stop()
	})

	bus.Fire("e", nil)
	bus.Fire("e", nil)
	assert.Equal(t, 1, calls)
}
