package view

import (
	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/domain"
	"web-larek/internal/events"
)

const activePaymentClass = "button_alt-active"

// OrderForm is the first checkout step: payment method and address.
type OrderForm struct {
	*Form
	card *goquery.Selection
	cash *goquery.Selection
}

// NewOrderForm binds an order form clone.
func NewOrderForm(container *goquery.Selection, bus events.Emitter, actions *Actions) (*OrderForm, error) {
	form, err := newForm(container, bus, actions)
	if err != nil {
		return nil, err
	}
	card, err := Ensure(container, `button[name="card"]`)
	if err != nil {
		return nil, err
	}
	cash, err := Ensure(container, `button[name="cash"]`)
	if err != nil {
		return nil, err
	}
	if _, err := Ensure(container, `input[name="address"]`); err != nil {
		return nil, err
	}
	o := &OrderForm{Form: form, card: card, cash: cash}
	actions.Bind(card, TriggerClick, func(Values) { o.TogglePaymentMethod(domain.PaymentCard) })
	actions.Bind(cash, TriggerClick, func(Values) { o.TogglePaymentMethod(domain.PaymentCash) })
	return o, nil
}

// TogglePaymentMethod selects method, deselecting the other one. Selecting
// the active method again clears the payment.
func (o *OrderForm) TogglePaymentMethod(method domain.Payment) {
	var selected, other *goquery.Selection
	switch method {
	case domain.PaymentCard:
		selected, other = o.card, o.cash
	case domain.PaymentCash:
		selected, other = o.cash, o.card
	default:
		return
	}

	wasActive := selected.HasClass(activePaymentClass)
	toggleClass(selected, activePaymentClass, !wasActive)
	if wasActive {
		o.setPayment(domain.PaymentUnset)
		return
	}
	toggleClass(other, activePaymentClass, false)
	o.setPayment(method)
}

// ActivePayment reports the highlighted method.
func (o *OrderForm) ActivePayment() domain.Payment {
	switch {
	case o.card.HasClass(activePaymentClass):
		return domain.PaymentCard
	case o.cash.HasClass(activePaymentClass):
		return domain.PaymentCash
	default:
		return domain.PaymentUnset
	}
}

// ResetPaymentButtons clears both highlights without emitting anything.
func (o *OrderForm) ResetPaymentButtons() {
	toggleClass(o.card, activePaymentClass, false)
	toggleClass(o.cash, activePaymentClass, false)
}

// SetAddress fills the address input.
func (o *OrderForm) SetAddress(value string) {
	o.setInput(domain.FieldAddress, value)
}

func (o *OrderForm) setPayment(p domain.Payment) {
	o.bus.Emit(events.Event{Kind: events.SetPaymentMethod, Payload: events.PaymentChange{PaymentType: p}})
}

// Render applies the form state and address and returns the container.
func (o *OrderForm) Render(state FormState, address string) *goquery.Selection {
	o.renderState(state)
	o.SetAddress(address)
	return o.container
}
