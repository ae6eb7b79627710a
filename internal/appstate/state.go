// Package appstate holds the storefront session state: catalog, basket
// membership, order draft, validation errors and preview selection. Every
// mutation notifies the bus before returning.
package appstate

import (
	"maps"

	"web-larek/internal/domain"
	"web-larek/internal/events"
)

const (
	errContactsBoth   = "Specify email and phone"
	errContactsEmail  = "Specify email"
	errContactsPhone  = "Specify phone"
	errAddressMissing = "Specify delivery address"
	errPaymentMissing = "Select payment method"
)

// State is the single mutable owner of session data. It is not safe for
// concurrent use; callers serialize access.
type State struct {
	bus        events.Emitter
	catalog    []domain.Product
	basket     map[string]struct{}
	order      domain.Order
	preview    string
	formErrors domain.FormErrors
}

// New returns an empty State emitting on bus.
func New(bus events.Emitter) *State {
	return &State{
		bus:        bus,
		basket:     make(map[string]struct{}),
		formErrors: domain.FormErrors{},
	}
}

func (s *State) emitCatalog(kind events.Kind) {
	s.bus.Emit(events.Event{Kind: kind, Payload: events.CatalogChange{Catalog: s.Catalog()}})
}

// SetCatalog replaces the catalog wholesale.
func (s *State) SetCatalog(items []domain.Product) {
	s.catalog = append([]domain.Product(nil), items...)
	s.emitCatalog(events.ItemsChanged)
}

// Catalog returns a copy of the catalog in display order.
func (s *State) Catalog() []domain.Product {
	return append([]domain.Product(nil), s.catalog...)
}

// AddToCart puts p in the basket. Adding a member again is a no-op.
func (s *State) AddToCart(p domain.Product) {
	if _, ok := s.basket[p.ID]; ok {
		return
	}
	s.basket[p.ID] = struct{}{}
	s.emitCatalog(events.ItemsChanged)
}

// RemoveFromCart drops p from the basket and asks an open basket view to
// redraw. Removing a non-member is a no-op.
func (s *State) RemoveFromCart(p domain.Product) {
	if _, ok := s.basket[p.ID]; !ok {
		return
	}
	delete(s.basket, p.ID)
	s.emitCatalog(events.BasketOpen)
	s.emitCatalog(events.ItemsChanged)
}

// InBasket reports basket membership of id.
func (s *State) InBasket(id string) bool {
	_, ok := s.basket[id]
	return ok
}

// Basket returns the catalog products in the basket, in catalog order.
func (s *State) Basket() []domain.Product {
	var out []domain.Product
	for _, p := range s.catalog {
		if _, ok := s.basket[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// TotalPrice sums the prices of the basket items.
func (s *State) TotalPrice() int64 {
	var total int64
	for _, p := range s.Basket() {
		total += p.PriceValue()
	}
	return total
}

// ClearBasket empties the basket.
func (s *State) ClearBasket() {
	clear(s.basket)
	s.emitCatalog(events.ItemsChanged)
}

// SetPreview selects p for the detail view.
func (s *State) SetPreview(p domain.Product) {
	s.preview = p.ID
	s.bus.Emit(events.Event{Kind: events.ChangedPreview, Payload: p})
}

// Preview returns the selected product id, or "" when nothing was selected.
func (s *State) Preview() string {
	return s.preview
}

// Order returns a copy of the order draft.
func (s *State) Order() domain.Order {
	o := s.order
	o.Items = append([]string(nil), s.order.Items...)
	return o
}

// PrepareOrder returns the draft with items and total taken from the basket.
func (s *State) PrepareOrder() domain.Order {
	o := s.Order()
	basket := s.Basket()
	o.Items = make([]string, 0, len(basket))
	for _, p := range basket {
		o.Items = append(o.Items, p.ID)
	}
	o.Total = s.TotalPrice()
	return o
}

// ClearOrder resets the draft without notifying anyone.
func (s *State) ClearOrder() {
	s.order = domain.Order{}
}

// SetOrderField stores one form value and validates the field's group. When
// the group is clean, the draft is announced as ready.
func (s *State) SetOrderField(field domain.OrderField, value string) {
	switch field {
	case domain.FieldPayment:
		s.order.Payment = domain.Payment(value)
	case domain.FieldEmail:
		s.order.Email = value
	case domain.FieldPhone:
		s.order.Phone = value
	case domain.FieldAddress:
		s.order.Address = value
	}
	if s.Validate(field) {
		s.bus.Emit(events.Event{Kind: events.OrderReady, Payload: s.Order()})
	}
}

// Validate recomputes the error map for the group field belongs to and
// publishes it. Email and phone are checked together and may share one
// message. Address and payment are checked in sequence, and a missing payment
// is reported under the address key.
func (s *State) Validate(field domain.OrderField) bool {
	errs := domain.FormErrors{}

	if field.Contact() {
		emailBad := !domain.EmailPattern.MatchString(s.order.Email)
		phoneBad := !domain.PhonePattern.MatchString(s.order.Phone)
		switch {
		case emailBad && phoneBad:
			errs[domain.FieldEmail] = errContactsBoth
		case emailBad:
			errs[domain.FieldEmail] = errContactsEmail
		case phoneBad:
			errs[domain.FieldPhone] = errContactsPhone
		}
	} else if s.order.Address == "" {
		errs[domain.FieldAddress] = errAddressMissing
	} else if !s.order.Payment.Valid() {
		errs[domain.FieldAddress] = errPaymentMissing
	}

	s.formErrors = errs
	s.bus.Emit(events.Event{Kind: events.FormErrorsChanged, Payload: s.FormErrors()})
	return len(errs) == 0
}

// FormErrors returns a copy of the current error map.
func (s *State) FormErrors() domain.FormErrors {
	return maps.Clone(s.formErrors)
}
