package seed

import (
	"context"
	"fmt"

	"web-larek/internal/domain"
)

type productSaver interface {
	Save(ctx context.Context, p domain.Product) (*domain.Product, error)
}

func price(v int64) *int64 {
	return &v
}

// Products is the demo catalog, in display order.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "854cef69-976d-4c2a-a18c-2aa45046c390",
			Title:       "+1 hour in a day",
			Description: domain.StringList{"If you feel like you are short on time, this item is for you."},
			Price:       price(750),
			Image:       "/5_Dots.svg",
			Category:    domain.CategorySoftSkill,
		},
		{
			ID:          "c101ab44-ed99-4a54-990d-47aa2bb4e7d9",
			Title:       "HEX-lollipop",
			Description: domain.StringList{"Lick it and you will see in #000000 and #FFFFFF."},
			Price:       price(1450),
			Image:       "/Shell.svg",
			Category:    domain.CategoryOther,
		},
		{
			ID:          "b06cde61-912f-4663-9751-09956c0eed67",
			Title:       "Mamka timer",
			Description: domain.StringList{"Will stop you from writing everything in one commit."},
			Image:       "/Asterisk_2.svg",
			Category:    domain.CategorySoftSkill,
		},
		{
			ID:          "412bcf81-7e75-4e70-bdb9-d3c73c9803b7",
			Title:       "Fedorov's fraction",
			Description: domain.StringList{"It is unknown what it does.", "But it does it well."},
			Image:       "/Soft_Flower.svg",
			Category:    domain.CategoryAdditional,
		},
		{
			ID:          "1c521d84-c48d-48fa-8cfb-9d911fa515fd",
			Title:       "Frame of the BEM-tree",
			Description: domain.StringList{"To make sure your blocks stay in place."},
			Price:       price(2500),
			Image:       "/Pill.svg",
			Category:    domain.CategoryAdditional,
		},
		{
			ID:          "f3867296-45c7-4603-bd34-29cea3a061d5",
			Title:       "Bonus pill",
			Description: domain.StringList{"Gives you a feeling of accomplishment for one hour."},
			Price:       price(1500),
			Image:       "/Polygon.svg",
			Category:    domain.CategoryOther,
		},
		{
			ID:          "54df7dcb-1213-4b3c-ab61-92ed5f845535",
			Title:       "Button \"Buy\"",
			Description: domain.StringList{"It will be clicked over and over again."},
			Price:       price(2000),
			Image:       "/Butterfly.svg",
			Category:    domain.CategoryButton,
		},
		{
			ID:          "6a834fb8-350a-440c-ab55-d0e9b959b6e3",
			Title:       "Whip of the team lead",
			Description: domain.StringList{"A tool for motivation."},
			Price:       price(100000),
			Image:       "/Mithosis.svg",
			Category:    domain.CategoryHardSkill,
		},
		{
			ID:          "48e86fc0-ca99-4e13-b164-b98d65928b53",
			Title:       "Pre-deadline lucky charm",
			Description: domain.StringList{"Keeps the build green until Friday evening."},
			Price:       price(10000),
			Image:       "/Leaf.svg",
			Category:    domain.CategoryOther,
		},
		{
			ID:          "90973ae5-285c-4b6f-a6d0-65d1d760b102",
			Title:       "Pill of memory",
			Description: domain.StringList{"You will remember every shortcut you ever learned."},
			Price:       price(3000),
			Image:       "/Shell.svg",
			Category:    domain.CategoryHardSkill,
		},
	}
}

// Apply upserts the demo catalog. It is idempotent.
func Apply(ctx context.Context, saver productSaver) (int, error) {
	n := 0
	for i, p := range Products() {
		p.Position = i
		if _, err := saver.Save(ctx, p); err != nil {
			return n, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		n++
	}
	return n, nil
}
