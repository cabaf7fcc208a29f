package multiselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClickBusPublish(t *testing.T) {
	bus := NewClickBus()

	var order []string
	bus.Subscribe(func(Click) { order = append(order, "first") })
	bus.Subscribe(func(Click) { order = append(order, "second") })

	bus.Publish(Click{X: 1, Y: 2})
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, bus.Len())
}

func TestSubscriptionCancel(t *testing.T) {
	bus := NewClickBus()

	calls := 0
	sub := bus.Subscribe(func(Click) { calls++ })
	assert.True(t, sub.Active())

	sub.Cancel()
	sub.Cancel()
	assert.False(t, sub.Active())
	assert.Equal(t, 0, bus.Len())

	bus.Publish(Click{})
	assert.Equal(t, 0, calls)

	var nilSub *Subscription
	assert.NotPanics(t, nilSub.Cancel)
}

func TestClickBusCancelDuringPublish(t *testing.T) {
	bus := NewClickBus()

	var second *Subscription
	calls := 0
	bus.Subscribe(func(Click) { second.Cancel() })
	second = bus.Subscribe(func(Click) { calls++ })

	bus.Publish(Click{})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, bus.Len())
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 2, MinY: 1, MaxX: 5, MaxY: 3}

	assert.True(t, r.Contains(2, 1))
	assert.True(t, r.Contains(4, 2))
	assert.False(t, r.Contains(5, 2))
	assert.False(t, r.Contains(3, 3))
	assert.False(t, Rect{}.Contains(0, 0))
}
