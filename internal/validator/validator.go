// Package validator decides whether a candidate sentence is acceptable
// output for a given language before it is written to a corpus file.
package validator

import (
	"log/slog"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/valpere/opusfetch/internal/detector"
)

const (
	// maxNonAlphaRatio is the highest tolerated fraction of characters
	// that are neither letters nor whitespace. Segments above it are
	// usually markup residue or alignment garbage.
	maxNonAlphaRatio = 0.10

	// cacheSize caps the verdict memo. Web-crawled corpora repeat the
	// same segments often enough that memoization pays for itself.
	cacheSize = 65536
)

// Validator checks sentences against script, language-identity and
// character-composition heuristics. Verdicts are memoized per
// (language, text) pair. Not safe for concurrent use.
type Validator struct {
	det    *detector.Detector
	cache  *lru.Cache[string, bool]
	log    *slog.Logger
	warned map[string]bool
}

// New creates a Validator backed by the lingua-go language detector.
// The detector is expensive to build; reuse the instance.
func New(log *slog.Logger) *Validator {
	if log == nil {
		log = slog.Default()
	}
	cache, _ := lru.New[string, bool](cacheSize)
	return &Validator{
		det:    detector.New(),
		cache:  cache,
		log:    log,
		warned: make(map[string]bool),
	}
}

// IsValid reports whether text is acceptable as a lang sentence.
//
// A sentence is rejected when its first letter is outside the Latin
// script, when the language identifier reliably detects a language
// other than lang, or when more than maxNonAlphaRatio of its characters
// are neither letters nor whitespace. Language codes outside the
// identifier's supported set skip the identity check entirely; the
// first occurrence of such a code is logged.
func (v *Validator) IsValid(text, lang string) bool {
	lang = strings.ToLower(lang)
	key := lang + "\x00" + text
	if verdict, ok := v.cache.Get(key); ok {
		return verdict
	}

	verdict := v.check(text, lang)
	v.cache.Add(key, verdict)
	return verdict
}

func (v *Validator) check(text, lang string) bool {
	if !startsWithLatinLetter(text) {
		return false
	}
	if nonAlphaRatio(text) > maxNonAlphaRatio {
		return false
	}

	if !v.det.Supports(lang) {
		if !v.warned[lang] {
			v.warned[lang] = true
			v.log.Warn("language not supported by identifier, skipping language check", "lang", lang)
		}
		return true
	}

	detected, reliable := v.det.Identify(text)
	return reliable && detected == lang
}

// startsWithLatinLetter reports whether the first letter in text belongs
// to the Latin script. Text without any letter is rejected.
func startsWithLatinLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return unicode.Is(unicode.Latin, r)
		}
	}
	return false
}

// nonAlphaRatio returns the fraction of runes that are neither letters
// nor whitespace.
func nonAlphaRatio(text string) float64 {
	var total, other int
	for _, r := range text {
		total++
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			other++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(other) / float64(total)
}
