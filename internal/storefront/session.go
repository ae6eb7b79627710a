// Package storefront runs one storefront per visitor: a session owns its bus,
// application state and views, and replays user interactions against them.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"web-larek/internal/appstate"
	"web-larek/internal/domain"
	"web-larek/internal/events"
	"web-larek/internal/view"
)

const (
	titleOrderPlaced = "Order placed"
	titleOrderFailed = "Order failed"
)

// errorFieldOrder fixes the order error messages are joined in.
var errorFieldOrder = []domain.OrderField{
	domain.FieldPayment,
	domain.FieldAddress,
	domain.FieldEmail,
	domain.FieldPhone,
}

// API is the part of the backend client a session uses.
type API interface {
	GetProducts(ctx context.Context) (*domain.ProductList, error)
	CreateOrder(ctx context.Context, order domain.Order) (*domain.OrderResult, error)
}

// job is network work queued by a handler and run once the dispatch that
// queued it has returned.
type job func(ctx context.Context)

// Session is one visitor's storefront. All methods are safe for concurrent
// use; interactions are applied one at a time.
type Session struct {
	mu sync.Mutex

	id        string
	api       API
	cdnURL    string
	logger    zerolog.Logger
	templates *view.Templates

	bus     *events.Bus
	state   *appstate.State
	actions *view.Actions
	doc     *goquery.Document

	page         *view.Page
	modal        *view.Modal
	basket       *view.Basket
	orderForm    *view.OrderForm
	contactsForm *view.ContactsForm

	pending []job
}

// NewSession builds the page, the reusable components and the bus wiring of
// a session. The catalog is empty until Load runs.
func NewSession(id string, api API, templates *view.Templates, cdnURL string, logger *zerolog.Logger) (*Session, error) {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	doc, err := view.NewPageDocument()
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:        id,
		api:       api,
		cdnURL:    strings.TrimRight(cdnURL, "/"),
		logger:    l.With().Str("session", id).Logger(),
		templates: templates,
		bus:       events.New(),
		actions:   view.NewActions(),
		doc:       doc,
	}
	s.state = appstate.New(s.bus)

	if s.page, err = view.NewPage(doc.Find("body"), s.bus, s.actions); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	if s.modal, err = view.NewModal(doc.Find("#modal-container"), s.bus, s.actions); err != nil {
		return nil, fmt.Errorf("modal: %w", err)
	}

	basketEl, err := templates.Clone("basket")
	if err != nil {
		return nil, err
	}
	if s.basket, err = view.NewBasket(basketEl, s.bus, s.actions); err != nil {
		return nil, fmt.Errorf("basket: %w", err)
	}
	orderEl, err := templates.Clone("order")
	if err != nil {
		return nil, err
	}
	if s.orderForm, err = view.NewOrderForm(orderEl, s.bus, s.actions); err != nil {
		return nil, fmt.Errorf("order form: %w", err)
	}
	contactsEl, err := templates.Clone("contacts")
	if err != nil {
		return nil, err
	}
	if s.contactsForm, err = view.NewContactsForm(contactsEl, s.bus, s.actions); err != nil {
		return nil, fmt.Errorf("contacts form: %w", err)
	}

	s.subscribe()
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Load fetches the catalog. A failed fetch is logged and leaves the catalog
// empty.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueue(s.loadCatalog)
	s.drain(ctx)
	s.prune()
}

// Handle dispatches the callback bound under action and then runs the
// network work it queued.
func (s *Session) Handle(ctx context.Context, action string, values view.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.actions.Dispatch(action, values); err != nil {
		return err
	}
	s.drain(ctx)
	s.prune()
	return nil
}

// Render serializes the current page.
func (s *Session) Render() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.doc.Html()
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out, nil
}

// Inspect runs fn with the session locked. It exists for callers that need a
// consistent read of state and views.
func (s *Session) Inspect(fn func(state *appstate.State, doc *goquery.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state, s.doc)
}

func (s *Session) enqueue(j job) {
	s.pending = append(s.pending, j)
}

// drain runs queued jobs in order. Jobs may queue more work.
func (s *Session) drain(ctx context.Context) {
	for len(s.pending) > 0 {
		j := s.pending[0]
		s.pending = s.pending[1:]
		j(ctx)
	}
	s.pending = nil
}

// prune forgets callbacks of fragments that are no longer reachable. The
// reusable components stay live while detached.
func (s *Session) prune() {
	s.actions.Prune(
		s.doc.Selection,
		s.basket.Element(),
		s.orderForm.Element(),
		s.contactsForm.Element(),
	)
}

func (s *Session) loadCatalog(ctx context.Context) {
	list, err := s.api.GetProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("load catalog")
		return
	}
	s.state.SetCatalog(list.Items)
}

func (s *Session) submitOrder(order domain.Order) job {
	return func(ctx context.Context) {
		defer s.bus.Emit(events.Event{Kind: events.OrderClear})

		result, err := s.api.CreateOrder(ctx, order)
		if err != nil {
			s.logger.Error().Err(err).Int("items", len(order.Items)).Msg("create order")
			return
		}

		el, err := s.templates.Clone("success")
		if err != nil {
			s.logger.Error().Err(err).Msg("render order result")
			return
		}
		success, err := view.NewSuccess(el, s.actions, func(view.Values) {
			s.modal.Close()
			s.bus.Emit(events.Event{Kind: events.OrderClear})
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("render order result")
			return
		}

		title, description := titleOrderPlaced, fmt.Sprintf("Charged %d synapses", result.Total)
		if result.Error != "" {
			title, description = titleOrderFailed, result.Error
		}
		s.modal.Render(success.Render(title, description))
	}
}

func (s *Session) image(path string) string {
	if path == "" {
		return ""
	}
	return s.cdnURL + path
}

func productData[S any](s *Session, p domain.Product, status S) view.ProductData[S] {
	return view.ProductData[S]{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       s.image(p.Image),
		Category:    p.Category,
		Status:      status,
	}
}

// subscribe wires the bus. Registration order is dispatch order.
func (s *Session) subscribe() {
	b := s.bus

	b.OnAll(func(ev events.Event) {
		s.logger.Debug().Str("event", ev.Name()).Interface("data", ev.Payload).Msg("bus")
	})

	b.On(events.ItemsChanged, func(events.Event) {
		catalog := s.state.Catalog()
		cards := make([]*goquery.Selection, 0, len(catalog))
		for _, p := range catalog {
			el, err := s.templates.Clone("card-catalog")
			if err != nil {
				s.logger.Error().Err(err).Msg("render catalog")
				return
			}
			card, err := view.NewCatalogItem(el, s.actions, func(view.Values) {
				b.Emit(events.Event{Kind: events.OpenPreview, Payload: p})
			})
			if err != nil {
				s.logger.Error().Err(err).Msg("render catalog")
				return
			}
			status := view.CatalogStatus{InBasket: s.state.InBasket(p.ID)}
			cards = append(cards, view.RenderProduct[view.CatalogStatus](card, productData(s, p, status)))
		}
		s.page.SetCatalog(cards)
		s.page.SetCounter(len(s.state.Basket()))
	})

	b.On(events.OpenPreview, func(ev events.Event) {
		if p, ok := ev.Payload.(domain.Product); ok {
			s.state.SetPreview(p)
		}
	})

	b.On(events.ChangedPreview, func(ev events.Event) {
		p, ok := ev.Payload.(domain.Product)
		if !ok {
			return
		}
		el, err := s.templates.Clone("card-preview")
		if err != nil {
			s.logger.Error().Err(err).Msg("render preview")
			return
		}
		card, err := view.NewCatalogItem(el, s.actions, func(view.Values) {
			b.Emit(events.Event{Kind: events.AddProduct, Payload: p})
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("render preview")
			return
		}
		status := view.CatalogStatus{InBasket: s.state.InBasket(p.ID)}
		s.modal.Render(view.RenderProduct[view.CatalogStatus](card, productData(s, p, status)))
	})

	b.On(events.AddProduct, func(ev events.Event) {
		if p, ok := ev.Payload.(domain.Product); ok {
			s.state.AddToCart(p)
			s.modal.Close()
		}
	})

	b.On(events.BasketOpen, func(events.Event) {
		basket := s.state.Basket()
		lines := make([]*goquery.Selection, 0, len(basket))
		for i, p := range basket {
			el, err := s.templates.Clone("card-basket")
			if err != nil {
				s.logger.Error().Err(err).Msg("render basket")
				return
			}
			line, err := view.NewBasketItem(el, s.actions, func(view.Values) {
				b.Emit(events.Event{Kind: events.RemoveProduct, Payload: p})
			})
			if err != nil {
				s.logger.Error().Err(err).Msg("render basket")
				return
			}
			lines = append(lines, view.RenderProduct[view.BasketStatus](line, productData(s, p, view.BasketStatus{Index: i + 1})))
		}
		s.modal.Render(s.basket.Render(lines, s.state.TotalPrice()))
	})

	b.On(events.RemoveProduct, func(ev events.Event) {
		if p, ok := ev.Payload.(domain.Product); ok {
			s.state.RemoveFromCart(p)
		}
	})

	for _, group := range []events.Group{events.GroupOrder, events.GroupContacts} {
		b.OnGroup(events.FormSubmit, group, func(events.Event) {
			order := s.state.Order()
			if order.Email == "" || order.Address == "" || order.Phone == "" {
				b.Emit(events.Event{Kind: events.OrderOpen})
				return
			}
			prepared := s.state.PrepareOrder()
			b.Emit(events.Event{Kind: events.CreateOrder, Payload: prepared})
			s.enqueue(s.submitOrder(prepared))
		})
	}

	b.On(events.OrderClear, func(events.Event) {
		s.state.ClearBasket()
		s.state.ClearOrder()
		s.orderForm.ResetPaymentButtons()
	})

	b.On(events.FormErrorsChanged, func(ev events.Event) {
		errs, _ := ev.Payload.(domain.FormErrors)
		var messages []string
		for _, field := range errorFieldOrder {
			if msg := errs[field]; msg != "" {
				messages = append(messages, msg)
			}
		}
		joined := strings.Join(messages, ", ")

		s.orderForm.SetValid(errs[domain.FieldAddress] == "" && errs[domain.FieldPayment] == "")
		s.orderForm.SetErrors(joined)
		s.contactsForm.SetValid(errs[domain.FieldEmail] == "" && errs[domain.FieldPhone] == "")
		s.contactsForm.SetErrors(joined)
	})

	for _, group := range []events.Group{events.GroupOrder, events.GroupContacts} {
		b.OnGroup(events.FieldChange, group, func(ev events.Event) {
			if fc, ok := ev.Payload.(events.FieldChangePayload); ok {
				s.state.SetOrderField(fc.Field, fc.Value)
			}
		})
	}

	b.On(events.OrderOpen, func(events.Event) {
		order := s.state.Order()
		if order.Address == "" && order.Payment == domain.PaymentUnset {
			s.modal.Render(s.orderForm.Render(view.FormState{}, ""))
			return
		}
		s.modal.Render(s.contactsForm.Render(view.FormState{}, "", ""))
	})

	b.On(events.SetPaymentMethod, func(ev events.Event) {
		if pc, ok := ev.Payload.(events.PaymentChange); ok {
			s.state.SetOrderField(domain.FieldPayment, string(pc.PaymentType))
		}
	})

	b.On(events.ModalOpen, func(events.Event) {
		s.page.SetLocked(true)
	})

	b.On(events.ModalClose, func(events.Event) {
		s.page.SetLocked(false)
		s.state.ClearOrder()
	})
}

// IsUnknownAction reports whether err comes from dispatching an id no
// callback is bound to.
func IsUnknownAction(err error) bool {
	return errors.Is(err, view.ErrUnknownAction)
}
