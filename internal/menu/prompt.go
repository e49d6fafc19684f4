package menu

import "fmt"

// promptTemplate carries the fixed domain rules for reading a Slovenian
// weekly lunch menu out of noisy OCR text. The %s placeholder receives the
// raw OCR text.
const promptTemplate = `You are an expert at extracting structured information from restaurant menu text.
You are given OCR text from a photograph of a Slovenian restaurant's weekly lunch menu.

Extract the menu into JSON with this exact shape:
{"items": [{"name": string, "date": string, "price": string, "type": string}, ...]}

RULES:
1. Dates appear in varied Slovenian forms (e.g. "ponedeljek 2.12.", "torek, 3. december"). Convert every date to YYYY-MM-DD.
2. Asterisk markers encode the dish category: one asterisk (*) means a meat dish ("meat"), two (**) a fish dish ("fish"), three (***) a soup ("soup"). Put the category in the "type" field.
3. Prices appear as "8,60 €", "8, 60 €" or "8.60€". Normalize them to a consistent "X,XX €" form in the "price" field; keep the currency symbol.
4. Vertical or decorative text such as "RENDELICE" is filler. Ignore it.
5. Group items by day, in the order they appear in the text.
6. Keep regular menu items separate from daily specials; do not merge them into one entry.
7. The OCR text is noisy. Repair obviously broken words where the intent is clear and skip fragments that are not menu content.

Every item must have all four fields. Respond with the JSON object only.

OCR TEXT:
%s
`

// BuildPrompt builds the extraction prompt embedding the raw OCR text.
func BuildPrompt(ocrText string) string {
	return fmt.Sprintf(promptTemplate, ocrText)
}
