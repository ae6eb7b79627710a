package view

import (
	"errors"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// ErrUnknownAction is returned by Dispatch for an id nothing is bound to.
var ErrUnknownAction = errors.New("view: unknown action")

// Triggers a callback can be bound to.
const (
	TriggerClick  = "click"
	TriggerInput  = "input"
	TriggerSubmit = "submit"
)

var triggers = []string{TriggerClick, TriggerInput, TriggerSubmit}

// Values carries the posted form fields of an interaction.
type Values map[string]string

// Callback handles one interaction.
type Callback func(Values)

// Actions binds DOM nodes to callbacks. A bound node carries a
// data-on-<trigger> attribute whose value is the id to dispatch.
type Actions struct {
	mu       sync.Mutex
	seq      uint64
	handlers map[string]Callback
}

// NewActions returns an empty registry.
func NewActions() *Actions {
	return &Actions{handlers: make(map[string]Callback)}
}

// Bind attaches fn to sel for trigger and returns the generated id.
func (a *Actions) Bind(sel *goquery.Selection, trigger string, fn Callback) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	id := strconv.FormatUint(a.seq, 36)
	sel.SetAttr("data-on-"+trigger, id)
	a.handlers[id] = fn
	return id
}

// Dispatch runs the callback bound under id.
func (a *Actions) Dispatch(id string, values Values) error {
	a.mu.Lock()
	fn, ok := a.handlers[id]
	a.mu.Unlock()
	if !ok {
		return ErrUnknownAction
	}
	if values == nil {
		values = Values{}
	}
	fn(values)
	return nil
}

// Len reports how many callbacks are registered.
func (a *Actions) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.handlers)
}

// Prune forgets callbacks whose nodes are not under any of roots. Roots must
// cover every live fragment, including detached reusable components.
func (a *Actions) Prune(roots ...*goquery.Selection) {
	live := make(map[string]struct{})
	for _, root := range roots {
		for _, trigger := range triggers {
			attr := "data-on-" + trigger
			collect := func(_ int, s *goquery.Selection) {
				if id, ok := s.Attr(attr); ok {
					live[id] = struct{}{}
				}
			}
			root.Filter("[" + attr + "]").Each(collect)
			root.Find("[" + attr + "]").Each(collect)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for id := range a.handlers {
		if _, ok := live[id]; !ok {
			delete(a.handlers, id)
		}
	}
}
