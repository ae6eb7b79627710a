// Package events is the in-process bus that couples application state and
// views. Events are tagged values: a Kind discriminant plus an optional form
// Group, so families like "any field change" are subscribed to by kind rather
// than by matching event names.
package events

import (
	"web-larek/internal/domain"
)

// Kind is the event discriminant.
type Kind string

const (
	ItemsChanged      Kind = "items:changed"
	OpenPreview       Kind = "product:open-preview"
	ChangedPreview    Kind = "product:changed-preview"
	AddProduct        Kind = "cart:add-product"
	RemoveProduct     Kind = "cart:remove-product"
	BasketOpen        Kind = "cart:open"
	CreateOrder       Kind = "cart:create-order"
	OrderClear        Kind = "order:clear"
	FormErrorsChanged Kind = "form:errors-changed"
	OrderOpen         Kind = "order:open"
	OrderReady        Kind = "order:ready"
	SetPaymentMethod  Kind = "order:set-payment-method"
	ModalOpen         Kind = "modal:open"
	ModalClose        Kind = "modal:close"

	// FormSubmit and FieldChange are always emitted with a Group.
	FormSubmit  Kind = "form:submit"
	FieldChange Kind = "form:change"
)

// Group tags form events with the form that produced them.
type Group string

const (
	GroupNone     Group = ""
	GroupOrder    Group = "order"
	GroupContacts Group = "contacts"
)

// Event is a single bus notification.
type Event struct {
	Kind    Kind
	Group   Group
	Payload any
}

// Name renders the event the way it is named on the wire, e.g.
// "contacts.email:change" or "order:submit".
func (e Event) Name() string {
	switch e.Kind {
	case FormSubmit:
		return string(e.Group) + ":submit"
	case FieldChange:
		if fc, ok := e.Payload.(FieldChangePayload); ok {
			return string(e.Group) + "." + string(fc.Field) + ":change"
		}
		return string(e.Group) + ":change"
	default:
		return string(e.Kind)
	}
}

// CatalogChange is the payload of ItemsChanged.
type CatalogChange struct {
	Catalog []domain.Product
}

// FieldChangePayload is the payload of FieldChange.
type FieldChangePayload struct {
	Field domain.OrderField
	Value string
}

// PaymentChange is the payload of SetPaymentMethod. An unset PaymentType
// means the active method was deselected.
type PaymentChange struct {
	PaymentType domain.Payment
}
