package view

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"web-larek/internal/domain"
)

const (
	descriptionQuery = ".card__text"
	categoryClass    = "card__category_"
)

// ProductView is the settable contract shared by product renderers. S is the
// status payload that differs per variant.
type ProductView[S any] interface {
	SetID(id string)
	SetTitle(title string)
	SetDescription(desc domain.StringList)
	SetPrice(price *int64)
	SetImage(src string)
	SetCategory(c domain.Category)
	SetStatus(status S)
	Element() *goquery.Selection
}

// ProductData is everything RenderProduct applies to a ProductView.
type ProductData[S any] struct {
	ID          string
	Title       string
	Description domain.StringList
	Price       *int64
	Image       string
	Category    domain.Category
	Status      S
}

// RenderProduct applies d to v and returns the bound element. Price is set
// before status because the status of an unpriced card depends on it.
func RenderProduct[S any](v ProductView[S], d ProductData[S]) *goquery.Selection {
	v.SetID(d.ID)
	v.SetTitle(d.Title)
	v.SetDescription(d.Description)
	v.SetImage(d.Image)
	v.SetCategory(d.Category)
	v.SetPrice(d.Price)
	v.SetStatus(d.Status)
	return v.Element()
}

// productCard holds the nodes both card variants share.
type productCard struct {
	container   *goquery.Selection
	title       *goquery.Selection
	image       *goquery.Selection
	description *goquery.Selection
	category    *goquery.Selection
	price       *goquery.Selection
	button      *goquery.Selection
	priced      bool
}

func newProductCard(container *goquery.Selection, actions *Actions, onClick Callback) (productCard, error) {
	title, err := Ensure(container, ".card__title")
	if err != nil {
		return productCard{}, err
	}
	c := productCard{
		container:   container,
		title:       title,
		image:       container.Find(".card__image").First(),
		description: container.Find(descriptionQuery).First(),
		category:    container.Find(".card__category").First(),
		price:       container.Find(".card__price").First(),
		button:      container.Find(".card__button").First(),
	}
	if onClick != nil && actions != nil {
		target := c.button
		if target.Length() == 0 {
			target = container
		}
		actions.Bind(target, TriggerClick, onClick)
	}
	return c, nil
}

func (c *productCard) SetID(id string) {
	c.container.SetAttr("data-id", id)
}

func (c *productCard) SetTitle(title string) {
	setText(c.title, title)
}

func (c *productCard) SetImage(src string) {
	setImage(c.image, src, c.title.Text())
}

func (c *productCard) SetCategory(cat domain.Category) {
	if c.category.Length() == 0 {
		return
	}
	setText(c.category, string(cat))
	for _, class := range strings.Fields(c.category.AttrOr("class", "")) {
		if strings.HasPrefix(class, categoryClass) {
			c.category.RemoveClass(class)
		}
	}
	c.category.AddClass(categoryClass + cat.Modifier())
}

func (c *productCard) SetPrice(price *int64) {
	c.priced = price != nil
	setText(c.price, FormatPrice(price))
}

// SetDescription writes one paragraph per entry, cloning the description node
// for every entry after the first.
func (c *productCard) SetDescription(desc domain.StringList) {
	if c.description.Length() == 0 {
		return
	}
	if len(desc) <= 1 {
		setText(c.description, strings.Join(desc, ""))
		return
	}
	nodes := make([]*html.Node, 0, len(desc))
	for _, para := range desc {
		clone := c.description.Clone()
		clone.SetText(para)
		nodes = append(nodes, clone.Nodes...)
	}
	c.description.ReplaceWithNodes(nodes...)
	c.description = c.container.Find(descriptionQuery).First()
}

func (c *productCard) Element() *goquery.Selection {
	return c.container
}

// CatalogStatus is the status of catalog and preview cards.
type CatalogStatus struct {
	InBasket bool
}

// CatalogItem renders gallery and preview cards.
type CatalogItem struct {
	productCard
}

var _ ProductView[CatalogStatus] = (*CatalogItem)(nil)

// NewCatalogItem binds a card-catalog or card-preview clone. onClick fires on
// the card button when present, otherwise on the whole card.
func NewCatalogItem(container *goquery.Selection, actions *Actions, onClick Callback) (*CatalogItem, error) {
	if _, err := Ensure(container, ".card__image"); err != nil {
		return nil, err
	}
	card, err := newProductCard(container, actions, onClick)
	if err != nil {
		return nil, err
	}
	return &CatalogItem{productCard: card}, nil
}

// SetStatus updates the buy button: unpriced items cannot be bought and
// basket members cannot be added twice.
func (c *CatalogItem) SetStatus(s CatalogStatus) {
	if c.button.Length() == 0 {
		return
	}
	if !c.priced {
		setText(c.button, "Unavailable")
		setDisabled(c.button, true)
		return
	}
	if s.InBasket {
		setText(c.button, "Already in basket")
	} else {
		setText(c.button, "Add to basket")
	}
	setDisabled(c.button, s.InBasket)
}

// BasketStatus is the status of a basket line: its 1-based position.
type BasketStatus struct {
	Index int
}

// BasketItem renders one basket line.
type BasketItem struct {
	productCard
	index *goquery.Selection
}

var _ ProductView[BasketStatus] = (*BasketItem)(nil)

// NewBasketItem binds a card-basket clone; onClick fires on the delete button.
func NewBasketItem(container *goquery.Selection, actions *Actions, onClick Callback) (*BasketItem, error) {
	index, err := Ensure(container, ".basket__item-index")
	if err != nil {
		return nil, err
	}
	card, err := newProductCard(container, actions, onClick)
	if err != nil {
		return nil, err
	}
	return &BasketItem{productCard: card, index: index}, nil
}

func (b *BasketItem) SetStatus(s BasketStatus) {
	setText(b.index, strconv.Itoa(s.Index))
}
