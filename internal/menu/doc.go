// Package menu structures raw OCR text into a typed weekly lunch menu using
// Google's Gemini API.
//
// The OCR output of a photographed Slovenian menu is noisy: broken words,
// misread diacritics, decorative filler. Rather than parse it with rules,
// the package builds an instruction prompt embedding the raw text and a
// fixed set of domain conventions (date normalization, asterisk markers for
// dish categories, price punctuation) and asks the model for JSON conforming
// to the Menu schema.
//
// Gemini is reached through its OpenAI-compatible chat completions endpoint
// with JSON response mode enabled, so the model is constrained to emit a
// single JSON object. The decoded response is then re-validated locally:
// every item must carry all four fields and a normalized YYYY-MM-DD date.
// A response that decodes but fails validation is an error, never a partial
// menu.
package menu
