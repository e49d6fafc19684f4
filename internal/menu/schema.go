package menu

import (
	"errors"
	"fmt"
	"regexp"
)

// Dish category labels produced by the marker-symbol convention on
// Slovenian lunch menus: one asterisk marks a meat dish, two a fish dish,
// three a soup. Items without markers may carry free-form labels.
const (
	TypeMeat = "meat"
	TypeFish = "fish"
	TypeSoup = "soup"
)

// ErrSchema marks validation failures: the model returned something that
// does not conform to the Menu schema.
var ErrSchema = errors.New("response does not match menu schema")

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// MenuItem is a single dish on the weekly menu. All fields are required.
type MenuItem struct {
	// Name is the dish name as printed, free text.
	Name string `json:"name"`

	// Date is the day the dish is served, normalized to YYYY-MM-DD.
	Date string `json:"date"`

	// Price is the textual price including currency, e.g. "8,60 €".
	// It is deliberately not parsed to a number.
	Price string `json:"price"`

	// Type is the dish category, e.g. "meat", "fish", "soup".
	Type string `json:"type"`
}

// Menu is the pipeline's final output: menu items in source-text order.
// Items may repeat; no uniqueness is enforced.
type Menu struct {
	Items []MenuItem `json:"items"`
}

// Validate checks that every item carries all four required fields and a
// normalized date. Failures wrap ErrSchema and name the first offending
// item.
func (m *Menu) Validate() error {
	for i, item := range m.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d has no name", ErrSchema, i)
		}
		if item.Date == "" {
			return fmt.Errorf("%w: item %d (%s) has no date", ErrSchema, i, item.Name)
		}
		if !dateFormat.MatchString(item.Date) {
			return fmt.Errorf("%w: item %d (%s) has malformed date %q, want YYYY-MM-DD",
				ErrSchema, i, item.Name, item.Date)
		}
		if item.Price == "" {
			return fmt.Errorf("%w: item %d (%s) has no price", ErrSchema, i, item.Name)
		}
		if item.Type == "" {
			return fmt.Errorf("%w: item %d (%s) has no type", ErrSchema, i, item.Name)
		}
	}
	return nil
}
