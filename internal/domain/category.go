package domain

// Category is the fixed product classification used for card styling.
type Category string

const (
	CategorySoftSkill  Category = "soft-skill"
	CategoryHardSkill  Category = "hard-skill"
	CategoryButton     Category = "button"
	CategoryOther      Category = "other"
	CategoryAdditional Category = "additional"
)

var categoryModifiers = map[Category]string{
	CategorySoftSkill:  "soft",
	CategoryHardSkill:  "hard",
	CategoryButton:     "button",
	CategoryOther:      "other",
	CategoryAdditional: "additional",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryModifiers[c]
	return ok
}

// Modifier returns the BEM modifier for the card category badge. Unknown
// categories are styled as "other".
func (c Category) Modifier() string {
	if m, ok := categoryModifiers[c]; ok {
		return m
	}
	return categoryModifiers[CategoryOther]
}

// ParseCategory maps a raw value onto a known category, falling back to other.
func ParseCategory(raw string) Category {
	c := Category(raw)
	if c.Valid() {
		return c
	}
	return CategoryOther
}
