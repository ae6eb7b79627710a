package view

import (
	"github.com/PuerkitoBio/goquery"
)

// Success is the order outcome dialog.
type Success struct {
	container   *goquery.Selection
	title       *goquery.Selection
	description *goquery.Selection
}

// NewSuccess binds a success clone; onClose fires on its close button.
func NewSuccess(container *goquery.Selection, actions *Actions, onClose Callback) (*Success, error) {
	title, err := Ensure(container, ".order-success__title")
	if err != nil {
		return nil, err
	}
	description, err := Ensure(container, ".order-success__description")
	if err != nil {
		return nil, err
	}
	if onClose != nil {
		if closeBtn := container.Find(".order-success__close").First(); closeBtn.Length() > 0 {
			actions.Bind(closeBtn, TriggerClick, onClose)
		}
	}
	return &Success{container: container, title: title, description: description}, nil
}

// Render sets both texts and returns the container.
func (s *Success) Render(title, description string) *goquery.Selection {
	setText(s.title, title)
	setText(s.description, description)
	return s.container
}
