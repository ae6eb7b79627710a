package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
)

func TestBus_DispatchesInSubscriptionOrder(t *testing.T) {
	bus := New()
	var got []string
	bus.On(ItemsChanged, func(Event) { got = append(got, "first") })
	bus.OnAll(func(ev Event) { got = append(got, "all:"+ev.Name()) })
	bus.On(ItemsChanged, func(Event) { got = append(got, "second") })
	bus.On(ModalOpen, func(Event) { got = append(got, "modal") })

	bus.Emit(Event{Kind: ItemsChanged})

	assert.Equal(t, []string{"first", "all:items:changed", "second"}, got)
}

func TestBus_GroupFiltering(t *testing.T) {
	bus := New()
	var order, contacts, anyForm int
	bus.OnGroup(FormSubmit, GroupOrder, func(Event) { order++ })
	bus.OnGroup(FormSubmit, GroupContacts, func(Event) { contacts++ })
	bus.On(FormSubmit, func(Event) { anyForm++ })

	bus.Emit(Event{Kind: FormSubmit, Group: GroupOrder})
	bus.Emit(Event{Kind: FormSubmit, Group: GroupContacts})
	bus.Emit(Event{Kind: FormSubmit, Group: GroupContacts})

	assert.Equal(t, 1, order)
	assert.Equal(t, 2, contacts)
	assert.Equal(t, 3, anyForm)
}

func TestBus_Off(t *testing.T) {
	bus := New()
	calls := 0
	sub := bus.On(BasketOpen, func(Event) { calls++ })
	all := bus.OnAll(func(Event) { calls++ })

	bus.Emit(Event{Kind: BasketOpen})
	require.Equal(t, 2, calls)

	bus.Off(sub)
	bus.Off(all)
	bus.Off(sub)
	bus.Emit(Event{Kind: BasketOpen})
	assert.Equal(t, 2, calls)
}

func TestBus_ReentrantEmit(t *testing.T) {
	bus := New()
	var got []Kind
	bus.On(OrderClear, func(Event) {
		bus.Emit(Event{Kind: ItemsChanged})
	})
	bus.OnAll(func(ev Event) { got = append(got, ev.Kind) })

	bus.Emit(Event{Kind: OrderClear})

	assert.Equal(t, []Kind{ItemsChanged, OrderClear}, got)
}

func TestBus_SubscribeDuringDispatchAppliesToNextEmit(t *testing.T) {
	bus := New()
	late := 0
	bus.On(ModalOpen, func(Event) {
		bus.On(ModalOpen, func(Event) { late++ })
	})

	bus.Emit(Event{Kind: ModalOpen})
	assert.Equal(t, 0, late)
	bus.Emit(Event{Kind: ModalOpen})
	assert.Equal(t, 1, late)
}

func TestBus_PanicAbortsDispatch(t *testing.T) {
	bus := New()
	reached := false
	bus.On(AddProduct, func(Event) { panic("boom") })
	bus.On(AddProduct, func(Event) { reached = true })

	assert.PanicsWithValue(t, "boom", func() {
		bus.Emit(Event{Kind: AddProduct})
	})
	assert.False(t, reached)
}

func TestEvent_Name(t *testing.T) {
	assert.Equal(t, "order:submit", Event{Kind: FormSubmit, Group: GroupOrder}.Name())
	assert.Equal(t, "contacts.email:change", Event{
		Kind:    FieldChange,
		Group:   GroupContacts,
		Payload: FieldChangePayload{Field: domain.FieldEmail, Value: "a@b.co"},
	}.Name())
	assert.Equal(t, "cart:open", Event{Kind: BasketOpen}.Name())
}
