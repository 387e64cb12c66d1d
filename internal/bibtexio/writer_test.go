// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteThenReparseRoundTripsFieldValues(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleBib))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reparsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("re-Parse of written output failed: %v\noutput:\n%s", err, buf.String())
	}

	entries := reparsed.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after round-trip, got %d", len(entries))
	}
	if note, ok := entries[0].Get("note"); !ok || note != "A {nested} brace value" {
		t.Errorf("note field did not round-trip: %q (ok=%v)", note, ok)
	}
	if custom, ok := entries[0].Get("custom"); !ok || custom != "unrecognized field kept verbatim" {
		t.Errorf("custom field did not round-trip: %q (ok=%v)", custom, ok)
	}
}

func TestEscapeBracesHandlesUnbalancedClosingBrace(t *testing.T) {
	got := escapeBraces("a } b")
	if got != `a \} b` {
		t.Errorf("escapeBraces(%q) = %q", "a } b", got)
	}
}

func TestEscapeBracesLeavesBalancedPairsAlone(t *testing.T) {
	got := escapeBraces("a {nested} b")
	if got != "a {nested} b" {
		t.Errorf("escapeBraces(%q) = %q, want unchanged", "a {nested} b", got)
	}
}
