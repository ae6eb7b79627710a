package view

import (
	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/events"
)

const activeModalClass = "modal_active"

// Modal hosts one fragment at a time over the page.
type Modal struct {
	container *goquery.Selection
	content   *goquery.Selection
	bus       events.Emitter
}

// NewModal binds the modal container of the page.
func NewModal(container *goquery.Selection, bus events.Emitter, actions *Actions) (*Modal, error) {
	closeBtn, err := Ensure(container, ".modal__close")
	if err != nil {
		return nil, err
	}
	content, err := Ensure(container, ".modal__content")
	if err != nil {
		return nil, err
	}
	m := &Modal{container: container, content: content, bus: bus}
	actions.Bind(closeBtn, TriggerClick, func(Values) { m.Close() })
	return m, nil
}

// SetContent replaces the hosted fragment; nil empties the modal.
func (m *Modal) SetContent(content *goquery.Selection) {
	if content == nil {
		m.content.Empty()
		return
	}
	replaceChildren(m.content, []*goquery.Selection{content})
}

// Content returns the hosted fragment.
func (m *Modal) Content() *goquery.Selection {
	return m.content.Children()
}

// IsOpen reports whether the modal is shown.
func (m *Modal) IsOpen() bool {
	return m.container.HasClass(activeModalClass)
}

func (m *Modal) Open() {
	m.container.AddClass(activeModalClass)
	m.bus.Emit(events.Event{Kind: events.ModalOpen})
}

func (m *Modal) Close() {
	m.container.RemoveClass(activeModalClass)
	m.SetContent(nil)
	m.bus.Emit(events.Event{Kind: events.ModalClose})
}

// Render shows content and opens the modal.
func (m *Modal) Render(content *goquery.Selection) {
	m.SetContent(content)
	m.Open()
}
