package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Product is a catalog entry as served by the backend. A nil Price means the
// item is not for sale.
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description StringList `json:"description"`
	Price       *int64     `json:"price"`
	Image       string     `json:"image"`
	Category    Category   `json:"category"`
	Position    int        `json:"-"`
}

// Priced reports whether the product can be bought.
func (p Product) Priced() bool {
	return p.Price != nil
}

// PriceValue returns the price, treating an unpriced product as zero.
func (p Product) PriceValue() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// ProductList is the payload of GET /product/.
type ProductList struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}

// StringList decodes from either a JSON string or an array of strings.
// A single entry is encoded back as a plain string.
type StringList []string

func (l StringList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("string list: unexpected json %s", data)
	}
}

// String joins the entries with a blank line between paragraphs.
func (l StringList) String() string {
	return strings.Join(l, "\n\n")
}
