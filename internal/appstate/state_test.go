package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
	"web-larek/internal/events"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(ev events.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []events.Kind {
	out := make([]events.Kind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (r *recorder) count(kind events.Kind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind events.Kind) (events.Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}

func price(v int64) *int64 {
	return &v
}

func product(id string, p *int64) domain.Product {
	return domain.Product{ID: id, Title: "Title " + id, Price: p, Category: domain.CategoryOther}
}

func TestSetCatalog_EmitsItemsChanged(t *testing.T) {
	rec := &recorder{}
	st := New(rec)
	items := []domain.Product{product("p1", price(100)), product("p2", nil)}

	st.SetCatalog(items)

	require.Equal(t, []events.Kind{events.ItemsChanged}, rec.kinds())
	payload, ok := rec.events[0].Payload.(events.CatalogChange)
	require.True(t, ok)
	assert.Equal(t, items, payload.Catalog)

	items[0].Title = "mutated"
	assert.Equal(t, "Title p1", st.Catalog()[0].Title)
}

func TestAddToCart_Idempotent(t *testing.T) {
	rec := &recorder{}
	st := New(rec)
	p1 := product("p1", price(100))
	st.SetCatalog([]domain.Product{p1})

	st.AddToCart(p1)
	afterFirst := len(rec.events)
	st.AddToCart(p1)

	assert.Equal(t, afterFirst, len(rec.events))
	assert.Equal(t, []domain.Product{p1}, st.Basket())
	assert.True(t, st.InBasket("p1"))
}

func TestRemoveFromCart(t *testing.T) {
	rec := &recorder{}
	st := New(rec)
	p1 := product("p1", price(100))
	p2 := product("p2", price(50))
	st.SetCatalog([]domain.Product{p1, p2})

	st.AddToCart(p1)
	rec.events = nil

	st.RemoveFromCart(p2)
	assert.Empty(t, rec.events)
	assert.Equal(t, []domain.Product{p1}, st.Basket())

	st.RemoveFromCart(p1)
	assert.Equal(t, []events.Kind{events.BasketOpen, events.ItemsChanged}, rec.kinds())
	assert.Empty(t, st.Basket())
}

func TestTotalPrice(t *testing.T) {
	st := New(&recorder{})
	assert.Equal(t, int64(0), st.TotalPrice())

	p1 := product("p1", price(750))
	p2 := product("p2", price(1450))
	p3 := product("p3", price(10))
	st.SetCatalog([]domain.Product{p1, p2, p3})
	st.AddToCart(p3)
	st.AddToCart(p1)

	assert.Equal(t, int64(760), st.TotalPrice())
	assert.Equal(t, []domain.Product{p1, p3}, st.Basket(), "basket keeps catalog order")
}

func TestEndToEndBasket(t *testing.T) {
	st := New(&recorder{})
	p1 := product("p1", price(100))

	st.SetCatalog([]domain.Product{p1})
	st.AddToCart(p1)
	assert.Equal(t, []domain.Product{p1}, st.Basket())
	assert.Equal(t, int64(100), st.TotalPrice())

	st.RemoveFromCart(p1)
	assert.Empty(t, st.Basket())
}

func TestBasketSurvivesCatalogReplacement(t *testing.T) {
	st := New(&recorder{})
	p1 := product("p1", price(100))
	st.SetCatalog([]domain.Product{p1})
	st.AddToCart(p1)

	st.SetCatalog([]domain.Product{product("p2", price(5))})

	assert.True(t, st.InBasket("p1"))
	assert.Empty(t, st.Basket())
	assert.Equal(t, int64(0), st.TotalPrice())
}

func TestSetPreview(t *testing.T) {
	rec := &recorder{}
	st := New(rec)
	p1 := product("p1", price(100))

	st.SetPreview(p1)

	assert.Equal(t, "p1", st.Preview())
	ev, ok := rec.last(events.ChangedPreview)
	require.True(t, ok)
	assert.Equal(t, p1, ev.Payload)
}

func TestValidate_Contacts(t *testing.T) {
	tests := []struct {
		name  string
		email string
		phone string
		want  domain.FormErrors
	}{
		{name: "both_invalid", email: "a@b", phone: "12345", want: domain.FormErrors{domain.FieldEmail: errContactsBoth}},
		{name: "email_invalid", email: "a@b", phone: "89991234567", want: domain.FormErrors{domain.FieldEmail: errContactsEmail}},
		{name: "phone_invalid", email: "a@b.co", phone: "12345", want: domain.FormErrors{domain.FieldPhone: errContactsPhone}},
		{name: "formatted_phone", email: "a@b.co", phone: "+7 (999) 123-45-67", want: domain.FormErrors{}},
		{name: "plain_phone", email: "a@b.co", phone: "89991234567", want: domain.FormErrors{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			st := New(rec)
			st.order.Email = tt.email
			st.order.Phone = tt.phone

			ok := st.Validate(domain.FieldPhone)

			assert.Equal(t, len(tt.want) == 0, ok)
			assert.Equal(t, tt.want, st.FormErrors())
			ev, found := rec.last(events.FormErrorsChanged)
			require.True(t, found)
			assert.Equal(t, tt.want, ev.Payload)
		})
	}
}

func TestValidate_AddressThenPayment(t *testing.T) {
	st := New(&recorder{})

	assert.False(t, st.Validate(domain.FieldAddress))
	assert.Equal(t, domain.FormErrors{domain.FieldAddress: errAddressMissing}, st.FormErrors())

	st.order.Address = "Main St"
	assert.False(t, st.Validate(domain.FieldAddress))
	assert.Equal(t, domain.FormErrors{domain.FieldAddress: errPaymentMissing}, st.FormErrors(),
		"payment error is reported under the address key")

	st.order.Payment = domain.PaymentCard
	assert.True(t, st.Validate(domain.FieldPayment))
	assert.Empty(t, st.FormErrors())
}

func TestValidate_ReplacesPreviousErrors(t *testing.T) {
	st := New(&recorder{})
	st.Validate(domain.FieldEmail)
	require.Contains(t, st.FormErrors(), domain.FieldEmail)

	st.Validate(domain.FieldAddress)
	assert.Equal(t, domain.FormErrors{domain.FieldAddress: errAddressMissing}, st.FormErrors())
}

func TestSetOrderField_ReadyOnlyWhenGroupComplete(t *testing.T) {
	rec := &recorder{}
	st := New(rec)

	st.SetOrderField(domain.FieldEmail, "a@b.co")
	assert.Equal(t, 0, rec.count(events.OrderReady))
	st.SetOrderField(domain.FieldPhone, "+7 (999) 123-45-67")
	assert.Equal(t, 1, rec.count(events.OrderReady))

	rec.events = nil
	st.SetOrderField(domain.FieldPayment, string(domain.PaymentCash))
	assert.Equal(t, 0, rec.count(events.OrderReady), "address still missing")

	st.SetOrderField(domain.FieldAddress, "Main St")
	require.Equal(t, 1, rec.count(events.OrderReady))
	ev, _ := rec.last(events.OrderReady)
	order, ok := ev.Payload.(domain.Order)
	require.True(t, ok)
	assert.Equal(t, domain.PaymentCash, order.Payment)
	assert.Equal(t, "Main St", order.Address)
}

func TestPrepareOrder(t *testing.T) {
	st := New(&recorder{})
	p1 := product("p1", price(100))
	p2 := product("p2", price(200))
	st.SetCatalog([]domain.Product{p1, p2})
	st.AddToCart(p2)
	st.AddToCart(p1)
	st.SetOrderField(domain.FieldAddress, "Main St")

	order := st.PrepareOrder()

	assert.Equal(t, []string{"p1", "p2"}, order.Items)
	assert.Equal(t, int64(300), order.Total)
	assert.Equal(t, "Main St", order.Address)
	assert.Empty(t, st.Order().Items, "draft itself is untouched")
}

func TestClearOrderAndBasket(t *testing.T) {
	rec := &recorder{}
	st := New(rec)
	p1 := product("p1", price(100))
	st.SetCatalog([]domain.Product{p1})
	st.AddToCart(p1)
	st.SetOrderField(domain.FieldEmail, "a@b.co")
	rec.events = nil

	st.ClearOrder()
	assert.Empty(t, rec.events)
	assert.Equal(t, domain.Order{}, st.Order())

	st.ClearBasket()
	assert.Equal(t, []events.Kind{events.ItemsChanged}, rec.kinds())
	assert.Empty(t, st.Basket())
}
