// Package tmx walks TMX translation-memory documents as a token stream.
//
// Memory use is bounded by the currently open element, never by document
// size, so multi-gigabyte archives can be processed from a decompressing
// reader without materializing the tree.
package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// unitDepth is the fixed nesting level at which translation units live:
// <tmx> <body> <tu>.
const unitDepth = 3

// Unit is one translation unit: a sentence per language variant present
// in the markup. Variant keys are the xml:lang values as written in the
// source document; a duplicated language within one unit keeps the last
// segment.
type Unit struct {
	ID       string
	Variants map[string]string
}

// UnitFunc is invoked once per translation unit in document order.
// Returning false stops the walk; the walk then finishes without error.
type UnitFunc func(Unit) bool

// Walk streams the TMX document from r, calling fn for every <tu>
// element found at the fixed tmx/body/tu depth. Units with missing
// language attributes are delivered with whatever variants parsed;
// the defective variant is logged and dropped. Other structure in the
// document is ignored.
func Walk(r io.Reader, log *slog.Logger, fn UnitFunc) error {
	if log == nil {
		log = slog.Default()
	}

	d := xml.NewDecoder(r)
	depth := 0

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tmx: read token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == unitDepth && t.Name.Local == "tu" {
				unit, err := parseUnit(d, t, log)
				// parseUnit consumes through the closing </tu>.
				depth--
				if err != nil {
					return err
				}
				if !fn(unit) {
					return nil
				}
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseUnit consumes one <tu> subtree, the start tag already read.
func parseUnit(d *xml.Decoder, start xml.StartElement, log *slog.Logger) (Unit, error) {
	unit := Unit{Variants: make(map[string]string)}
	for _, attr := range start.Attr {
		if attr.Name.Local == "tuid" {
			unit.ID = attr.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return unit, fmt.Errorf("tmx: unit %q: %w", unit.ID, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tuv" {
				if err := parseVariant(d, t, unit, log); err != nil {
					return unit, err
				}
			} else if err := d.Skip(); err != nil {
				return unit, fmt.Errorf("tmx: unit %q: %w", unit.ID, err)
			}
		case xml.EndElement:
			// Nested subtrees are fully consumed above, so the first
			// end element at this level closes the unit.
			return unit, nil
		}
	}
}

// parseVariant consumes one <tuv> subtree and records its segment text.
// Inline markup inside <seg> is stripped; only character data is kept.
func parseVariant(d *xml.Decoder, start xml.StartElement, unit Unit, log *slog.Logger) error {
	var lang string
	for _, attr := range start.Attr {
		if attr.Name.Local == "lang" {
			lang = attr.Value
		}
	}

	var seg strings.Builder
	segDepth := 0

	for {
		tok, err := d.Token()
		if err != nil {
			return fmt.Errorf("tmx: unit %q variant %q: %w", unit.ID, lang, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if segDepth > 0 || t.Name.Local == "seg" {
				segDepth++
			} else if err := d.Skip(); err != nil {
				return fmt.Errorf("tmx: unit %q variant %q: %w", unit.ID, lang, err)
			}
		case xml.CharData:
			if segDepth > 0 {
				seg.Write(t)
			}
		case xml.EndElement:
			if segDepth > 0 {
				segDepth--
				continue
			}
			// </tuv>
			if lang == "" {
				log.Debug("ignoring variant without language attribute", "tuid", unit.ID)
				return nil
			}
			unit.Variants[lang] = seg.String()
			return nil
		}
	}
}
