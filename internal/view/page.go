package view

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"web-larek/internal/events"
)

const lockedClass = "page__wrapper_locked"

// Page is the shell: basket counter, gallery and scroll lock.
type Page struct {
	counter *goquery.Selection
	catalog *goquery.Selection
	wrapper *goquery.Selection
}

// NewPage binds the page body. The basket button emits cart:open.
func NewPage(body *goquery.Selection, bus events.Emitter, actions *Actions) (*Page, error) {
	counter, err := Ensure(body, ".header__basket-counter")
	if err != nil {
		return nil, err
	}
	catalog, err := Ensure(body, ".gallery")
	if err != nil {
		return nil, err
	}
	wrapper, err := Ensure(body, ".page__wrapper")
	if err != nil {
		return nil, err
	}
	basket, err := Ensure(body, ".header__basket")
	if err != nil {
		return nil, err
	}
	actions.Bind(basket, TriggerClick, func(Values) {
		bus.Emit(events.Event{Kind: events.BasketOpen})
	})
	return &Page{counter: counter, catalog: catalog, wrapper: wrapper}, nil
}

func (p *Page) SetCounter(n int) {
	setText(p.counter, strconv.Itoa(n))
}

func (p *Page) SetCatalog(items []*goquery.Selection) {
	replaceChildren(p.catalog, items)
}

func (p *Page) SetLocked(locked bool) {
	toggleClass(p.wrapper, lockedClass, locked)
}

// Locked reports whether page scroll is locked.
func (p *Page) Locked() bool {
	return p.wrapper.HasClass(lockedClass)
}
