package view

import (
	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/events"
)

// Basket lists basket lines with the total and the checkout button.
type Basket struct {
	container *goquery.Selection
	list      *goquery.Selection
	total     *goquery.Selection
	button    *goquery.Selection
}

// NewBasket binds a basket clone. Checkout emits order:open.
func NewBasket(container *goquery.Selection, bus events.Emitter, actions *Actions) (*Basket, error) {
	list, err := Ensure(container, ".basket__list")
	if err != nil {
		return nil, err
	}
	b := &Basket{
		container: container,
		list:      list,
		total:     container.Find(".basket__price").First(),
		button:    container.Find(".basket__button").First(),
	}
	if b.button.Length() > 0 {
		actions.Bind(b.button, TriggerClick, func(Values) {
			bus.Emit(events.Event{Kind: events.OrderOpen})
		})
	}
	b.SetItems(nil)
	return b, nil
}

// SetItems replaces the lines. An empty basket shows a placeholder and
// disables checkout.
func (b *Basket) SetItems(items []*goquery.Selection) {
	if len(items) == 0 {
		b.list.Empty()
		b.list.AppendHtml("<p>Basket is empty</p>")
		setDisabled(b.button, true)
		return
	}
	replaceChildren(b.list, items)
	setDisabled(b.button, false)
}

// SetTotal shows the basket total.
func (b *Basket) SetTotal(total int64) {
	setText(b.total, FormatPrice(&total))
}

// Render applies items and total and returns the container.
func (b *Basket) Render(items []*goquery.Selection, total int64) *goquery.Selection {
	b.SetItems(items)
	b.SetTotal(total)
	return b.container
}

func (b *Basket) Element() *goquery.Selection {
	return b.container
}
