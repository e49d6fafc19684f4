package menu

import (
	"errors"
	"strings"
	"testing"
)

func validItem() MenuItem {
	return MenuItem{
		Name:  "Goveja juha",
		Date:  "2024-12-02",
		Price: "8,60 €",
		Type:  TypeMeat,
	}
}

func TestMenuValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MenuItem)
		wantErr bool
	}{
		{"valid item", func(i *MenuItem) {}, false},
		{"missing name", func(i *MenuItem) { i.Name = "" }, true},
		{"missing date", func(i *MenuItem) { i.Date = "" }, true},
		{"missing price", func(i *MenuItem) { i.Price = "" }, true},
		{"missing type", func(i *MenuItem) { i.Type = "" }, true},
		{"slovene date form", func(i *MenuItem) { i.Date = "2.12.2024" }, true},
		{"date with time", func(i *MenuItem) { i.Date = "2024-12-02T00:00:00" }, true},
		{"free-form type", func(i *MenuItem) { i.Type = "dessert" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)
			m := &Menu{Items: []MenuItem{item}}

			err := m.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrSchema) {
					t.Fatalf("Validate() = %v, want ErrSchema", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestMenuValidate_Empty(t *testing.T) {
	m := &Menu{Items: []MenuItem{}}
	if err := m.Validate(); err != nil {
		t.Fatalf("empty menu should validate, got %v", err)
	}
}

func TestMenuValidate_NamesOffendingItem(t *testing.T) {
	m := &Menu{Items: []MenuItem{
		validItem(),
		{Name: "Postrv", Date: "2024-12-03", Price: "9,90 €"},
	}}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "Postrv") {
		t.Errorf("error %q does not name the offending item", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	ocrText := "ponedeljek 2.12.\nGoveja juha * 8,60 €\n"
	prompt := BuildPrompt(ocrText)

	if !strings.Contains(prompt, ocrText) {
		t.Error("prompt does not embed the OCR text")
	}
	for _, required := range []string{
		"YYYY-MM-DD",
		"meat",
		"fish",
		"soup",
		"RENDELICE",
		`"items"`,
	} {
		if !strings.Contains(prompt, required) {
			t.Errorf("prompt missing %q", required)
		}
	}
}
