package view

import (
	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/domain"
	"web-larek/internal/events"
)

// ContactsForm is the second checkout step: email and phone.
type ContactsForm struct {
	*Form
}

// NewContactsForm binds a contacts form clone.
func NewContactsForm(container *goquery.Selection, bus events.Emitter, actions *Actions) (*ContactsForm, error) {
	form, err := newForm(container, bus, actions)
	if err != nil {
		return nil, err
	}
	for _, field := range []domain.OrderField{domain.FieldEmail, domain.FieldPhone} {
		if _, err := Ensure(container, `input[name="`+string(field)+`"]`); err != nil {
			return nil, err
		}
	}
	return &ContactsForm{Form: form}, nil
}

func (c *ContactsForm) SetEmail(value string) {
	c.setInput(domain.FieldEmail, value)
}

func (c *ContactsForm) SetPhone(value string) {
	c.setInput(domain.FieldPhone, value)
}

// Render applies the form state and contact values and returns the container.
func (c *ContactsForm) Render(state FormState, email, phone string) *goquery.Selection {
	c.renderState(state)
	c.SetEmail(email)
	c.SetPhone(phone)
	return c.container
}
