// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entry implements the structured Entry view over a raw BibTeX
// field map (spec.md §3, §4.3): typed accessors backed by the field.Field
// model, entry-type and source-id bookkeeping, and the fields_missing
// query the dispatcher uses to decide whether an entry still needs work.
package entry

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/field"
)

// Type is a BibTeX entry type, e.g. "article" or "inproceedings".
type Type string

// recognizedFields is the closed set of field names spec.md §3 names.
// Anything else is preserved verbatim as an opaque passenger field.
var recognizedFields = map[string]bool{
	"address": true, "annote": true, "author": true, "booktitle": true,
	"chapter": true, "doi": true, "edition": true, "editor": true,
	"howpublished": true, "institution": true, "isbn": true, "issn": true,
	"journal": true, "month": true, "note": true, "number": true,
	"organization": true, "pages": true, "publisher": true, "school": true,
	"series": true, "title": true, "type": true, "url": true,
	"urldate": true, "volume": true, "year": true, "abstract": true,
	"keywords": true, "issue": true,
}

// Source identifies where an entry came from, for diagnostics.
type Source struct {
	File     string
	Position int // 1-based entry ordinal within File
}

// Entry is a structured view over a raw field map: a fixed ID (citation
// key), an entry Type, a Source, and a map from lower-case field name to
// its *field.Field. Field names are unique by construction (map keys) and
// always lower-case; Set enforces both.
type Entry struct {
	ID     string
	Type   Type
	Src    Source
	fields map[string]*field.Field
}

// New builds an empty Entry with the given citation key, type, and source.
func New(id string, typ Type, src Source) *Entry {
	return &Entry{ID: id, Type: typ, Src: src, fields: make(map[string]*field.Field)}
}

// Set parses raw under name's registered Kind and stores the resulting
// Field, writing back both the raw and normalized representations. name is
// lower-cased before storage.
func (e *Entry) Set(name, raw string) {
	name = strings.ToLower(name)
	e.fields[name] = field.New(field.For(name), raw)
}

// SetField stores an already-built Field directly, e.g. one produced by
// Field.Combine during merging.
func (e *Entry) SetField(name string, f *field.Field) {
	e.fields[strings.ToLower(name)] = f
}

// Get returns the Field stored under name, or nil if absent.
func (e *Entry) Get(name string) *field.Field {
	return e.fields[strings.ToLower(name)]
}

// Remove deletes name from e entirely, so it no longer appears in
// FieldNames or Get (spec.md §4.7's remove_fields post-merge step).
func (e *Entry) Remove(name string) {
	delete(e.fields, strings.ToLower(name))
}

// Raw returns the raw string stored under name, or "" if absent.
func (e *Entry) Raw(name string) string {
	if f := e.Get(name); f != nil {
		return f.Raw
	}
	return ""
}

// Present reports whether name holds a successfully parsed value.
func (e *Entry) Present(name string) bool {
	f := e.Get(name)
	return f.Present()
}

// FieldNames returns every field name currently stored, recognized or not,
// in sorted order (for deterministic serialization).
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for n := range e.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsRecognized reports whether name is in the closed recognized-field set.
func IsRecognized(name string) bool {
	return recognizedFields[strings.ToLower(name)]
}

// RecognizedFields returns every field name spec.md §3 names, sorted, for
// config.Policy's --dont-complete/--only-complete filtering.
func RecognizedFields() []string {
	names := make([]string, 0, len(recognizedFields))
	for n := range recognizedFields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MissingFields returns the subset of target that e does not hold a
// present value for — the query the dispatcher uses to decide whether an
// entry still needs work (spec.md §4.3's fields_missing).
func (e *Entry) MissingFields(target []string) []string {
	missing := make([]string, 0, len(target))
	for _, name := range target {
		if !e.Present(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Clone returns a deep-enough copy of e: a new field map with the same
// *field.Field pointers (Fields are treated as immutable once built, so
// sharing them is safe).
func (e *Entry) Clone() *Entry {
	c := New(e.ID, e.Type, e.Src)
	for name, f := range e.fields {
		c.fields[name] = f
	}
	return c
}
