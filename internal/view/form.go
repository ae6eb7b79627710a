package view

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/domain"
	"web-larek/internal/events"
)

// FormState is the part of a form every form renders.
type FormState struct {
	Valid  bool
	Errors []string
}

// Form tracks validity and errors of a form element and turns input and
// submission into bus events tagged with the form's name.
type Form struct {
	container *goquery.Selection
	submit    *goquery.Selection
	errors    *goquery.Selection
	group     events.Group
	bus       events.Emitter
}

func newForm(container *goquery.Selection, bus events.Emitter, actions *Actions) (*Form, error) {
	submit, err := Ensure(container, `button[type="submit"]`)
	if err != nil {
		return nil, err
	}
	errs, err := Ensure(container, ".form__errors")
	if err != nil {
		return nil, err
	}
	f := &Form{
		container: container,
		submit:    submit,
		errors:    errs,
		group:     events.Group(container.AttrOr("name", "")),
		bus:       bus,
	}
	actions.Bind(container, TriggerInput, func(v Values) {
		f.HandleInput(domain.OrderField(v["field"]), v["value"])
	})
	actions.Bind(container, TriggerSubmit, func(Values) {
		f.HandleSubmit()
	})
	return f, nil
}

// Group is the form's name.
func (f *Form) Group() events.Group {
	return f.group
}

// HandleInput records the typed value and emits a field change.
func (f *Form) HandleInput(field domain.OrderField, value string) {
	f.setInput(field, value)
	f.bus.Emit(events.Event{
		Kind:    events.FieldChange,
		Group:   f.group,
		Payload: events.FieldChangePayload{Field: field, Value: value},
	})
}

// HandleSubmit emits a submit event for this form.
func (f *Form) HandleSubmit() {
	f.bus.Emit(events.Event{Kind: events.FormSubmit, Group: f.group})
}

// SetValid enables the submit button when valid.
func (f *Form) SetValid(valid bool) {
	setDisabled(f.submit, !valid)
}

// Valid reports whether submission is enabled.
func (f *Form) Valid() bool {
	_, disabled := f.submit.Attr("disabled")
	return !disabled
}

// SetErrors shows the error line.
func (f *Form) SetErrors(text string) {
	setText(f.errors, text)
}

// Errors returns the error line.
func (f *Form) Errors() string {
	return f.errors.Text()
}

func (f *Form) setInput(field domain.OrderField, value string) {
	f.container.Find(`input[name="` + string(field) + `"]`).SetAttr("value", value)
}

func (f *Form) renderState(s FormState) {
	f.SetValid(s.Valid)
	f.SetErrors(strings.Join(s.Errors, ", "))
}

func (f *Form) Element() *goquery.Selection {
	return f.container
}
