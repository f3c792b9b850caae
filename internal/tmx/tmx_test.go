package tmx_test

import (
	"strings"
	"testing"

	"github.com/valpere/opusfetch/internal/tmx"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<tmx version="1.4">
  <header creationtool="test" srclang="en"/>
  <body>
    <tu tuid="1">
      <tuv xml:lang="en"><seg>Hello world.</seg></tuv>
      <tuv xml:lang="de"><seg>Hallo Welt.</seg></tuv>
    </tu>
    <tu tuid="2">
      <tuv xml:lang="en"><seg>Second sentence.</seg></tuv>
      <tuv xml:lang="de"><seg>Zweiter Satz.</seg></tuv>
    </tu>
    <tu tuid="3">
      <tuv xml:lang="en"><seg>Third sentence.</seg></tuv>
      <tuv xml:lang="de"><seg>Dritter Satz.</seg></tuv>
    </tu>
  </body>
</tmx>`

func TestWalk_AllUnitsInOrder(t *testing.T) {
	var units []tmx.Unit
	err := tmx.Walk(strings.NewReader(sampleDoc), nil, func(u tmx.Unit) bool {
		units = append(units, u)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	for i, wantID := range []string{"1", "2", "3"} {
		if units[i].ID != wantID {
			t.Errorf("unit %d: expected tuid %q, got %q", i, wantID, units[i].ID)
		}
	}
	if units[0].Variants["en"] != "Hello world." {
		t.Errorf("unexpected en variant: %q", units[0].Variants["en"])
	}
	if units[0].Variants["de"] != "Hallo Welt." {
		t.Errorf("unexpected de variant: %q", units[0].Variants["de"])
	}
}

func TestWalk_StopSignal(t *testing.T) {
	var count int
	err := tmx.Walk(strings.NewReader(sampleDoc), nil, func(u tmx.Unit) bool {
		count++
		return count < 2
	})
	if err != nil {
		t.Fatalf("stopping the walk must not produce an error, got: %v", err)
	}
	if count != 2 {
		t.Errorf("expected walk to stop after 2 units, got %d", count)
	}
}

func TestWalk_MissingLanguageAttribute(t *testing.T) {
	doc := `<tmx><body>
	  <tu tuid="x">
	    <tuv><seg>orphan segment</seg></tuv>
	    <tuv xml:lang="en"><seg>kept segment</seg></tuv>
	  </tu>
	</body></tmx>`

	var units []tmx.Unit
	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		units = append(units, u)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if len(units[0].Variants) != 1 {
		t.Errorf("expected only the valid variant to survive, got %v", units[0].Variants)
	}
	if units[0].Variants["en"] != "kept segment" {
		t.Errorf("unexpected en variant: %q", units[0].Variants["en"])
	}
}

func TestWalk_MissingUnitID(t *testing.T) {
	doc := `<tmx><body>
	  <tu><tuv xml:lang="en"><seg>no id</seg></tuv></tu>
	</body></tmx>`

	var got tmx.Unit
	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		got = u
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "" {
		t.Errorf("expected empty ID, got %q", got.ID)
	}
	if got.Variants["en"] != "no id" {
		t.Errorf("unexpected variant: %q", got.Variants["en"])
	}
}

func TestWalk_InlineMarkupInSegment(t *testing.T) {
	doc := `<tmx><body>
	  <tu tuid="x">
	    <tuv xml:lang="en"><seg>before <ph x="1">code</ph> after</seg></tuv>
	  </tu>
	</body></tmx>`

	var got tmx.Unit
	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		got = u
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Variants["en"] != "before code after" {
		t.Errorf("expected inline markup stripped, got %q", got.Variants["en"])
	}
}

func TestWalk_IgnoresOtherStructure(t *testing.T) {
	doc := `<tmx>
	  <header><prop type="note">not a unit</prop></header>
	  <body>
	    <note>also not a unit</note>
	    <tu tuid="only"><tuv xml:lang="en"><seg>unit</seg></tuv></tu>
	  </body>
	</tmx>`

	var count int
	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		count++
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 unit, got %d", count)
	}
}

func TestWalk_DuplicateLanguageLastWins(t *testing.T) {
	doc := `<tmx><body>
	  <tu tuid="x">
	    <tuv xml:lang="en"><seg>first</seg></tuv>
	    <tuv xml:lang="en"><seg>second</seg></tuv>
	  </tu>
	</body></tmx>`

	var got tmx.Unit
	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		got = u
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Variants["en"] != "second" {
		t.Errorf("expected last duplicate to win, got %q", got.Variants["en"])
	}
}

func TestWalk_MalformedXML(t *testing.T) {
	doc := `<tmx><body><tu tuid="x"><tuv xml:lang="en"><seg>truncated`

	err := tmx.Walk(strings.NewReader(doc), nil, func(u tmx.Unit) bool {
		return true
	})
	if err == nil {
		t.Error("expected error for truncated document")
	}
}
