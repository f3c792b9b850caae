// Package detector identifies the language of a text using lingua-go,
// restricted to a closed set of Latin-script languages.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// supported maps lowercase ISO 639-1 codes to the lingua languages the
// detector is built from. Codes outside this map cannot be identified.
var supported = map[string]lingua.Language{
	"cs": lingua.Czech,
	"da": lingua.Danish,
	"de": lingua.German,
	"en": lingua.English,
	"es": lingua.Spanish,
	"et": lingua.Estonian,
	"fi": lingua.Finnish,
	"fr": lingua.French,
	"hr": lingua.Croatian,
	"hu": lingua.Hungarian,
	"it": lingua.Italian,
	"lt": lingua.Lithuanian,
	"lv": lingua.Latvian,
	"nl": lingua.Dutch,
	"pl": lingua.Polish,
	"pt": lingua.Portuguese,
	"ro": lingua.Romanian,
	"sk": lingua.Slovak,
	"sl": lingua.Slovene,
	"sv": lingua.Swedish,
}

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	languages := make([]lingua.Language, 0, len(supported))
	for _, lang := range supported {
		languages = append(languages, lang)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &Detector{detector: detector}
}

// Supports reports whether code is in the detector's closed language set.
func (d *Detector) Supports(code string) bool {
	_, ok := supported[strings.ToLower(code)]
	return ok
}

// Identify returns the lowercase ISO 639-1 code of the detected language.
// reliable is false when the text is empty or the detector cannot settle
// on a single language from its set.
func (d *Detector) Identify(text string) (code string, reliable bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
