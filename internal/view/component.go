// Package view renders the storefront as DOM fragments. Components bind to a
// container cloned from a template and expose setters that mutate the bound
// nodes directly. User interaction is routed back through Actions.
package view

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrMissingElement is returned when a template lacks a required node.
	ErrMissingElement = errors.New("view: element not found")
	// ErrUnknownTemplate is returned by Templates.Clone for an unknown id.
	ErrUnknownTemplate = errors.New("view: template not found")
)

//go:embed assets/*.html
var assets embed.FS

// Ensure returns the first descendant of root matching query, failing when
// there is none.
func Ensure(root *goquery.Selection, query string) (*goquery.Selection, error) {
	sel := root.Find(query).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, query)
	}
	return sel, nil
}

// Templates holds the parsed <template> elements components are cloned from.
type Templates struct {
	doc *goquery.Document
}

// LoadTemplates parses the embedded template document.
func LoadTemplates() (*Templates, error) {
	doc, err := parseAsset("assets/templates.html")
	if err != nil {
		return nil, err
	}
	return &Templates{doc: doc}, nil
}

// Clone returns a detached copy of the first element inside template #id.
func (t *Templates) Clone(id string) (*goquery.Selection, error) {
	tpl := t.doc.Find("template#" + id)
	if tpl.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	content := tpl.Children().First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnknownTemplate, id)
	}
	return content.Clone(), nil
}

// NewPageDocument parses a fresh copy of the page shell.
func NewPageDocument() (*goquery.Document, error) {
	return parseAsset("assets/page.html")
}

func parseAsset(name string) (*goquery.Document, error) {
	raw, err := assets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return doc, nil
}

func setText(sel *goquery.Selection, value string) {
	if sel == nil || sel.Length() == 0 {
		return
	}
	sel.SetText(value)
}

func setDisabled(sel *goquery.Selection, state bool) {
	if sel == nil || sel.Length() == 0 {
		return
	}
	if state {
		sel.SetAttr("disabled", "disabled")
	} else {
		sel.RemoveAttr("disabled")
	}
}

func toggleClass(sel *goquery.Selection, class string, state bool) {
	if sel == nil || sel.Length() == 0 {
		return
	}
	if state {
		sel.AddClass(class)
	} else {
		sel.RemoveClass(class)
	}
}

func setImage(sel *goquery.Selection, src, alt string) {
	if sel == nil || sel.Length() == 0 {
		return
	}
	sel.SetAttr("src", src)
	if alt != "" {
		sel.SetAttr("alt", alt)
	}
}

func replaceChildren(parent *goquery.Selection, children []*goquery.Selection) {
	parent.Empty()
	for _, child := range children {
		parent.AppendSelection(child)
	}
}

// FormatPrice renders a price label; an unpriced item is "Priceless".
func FormatPrice(price *int64) string {
	if price == nil {
		return "Priceless"
	}
	return fmt.Sprintf("%d synapses", *price)
}
