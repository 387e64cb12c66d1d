// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import "strings"

// Document is a parsed .bib file: an ordered sequence of items. Item
// order is preserved verbatim between Parse and Write so that comments,
// string macros, and preambles interleaved with entries round-trip
// unchanged (spec.md §6: "preserving comment blocks, string macros,
// preambles, and unknown fields verbatim").
type Document struct {
	Items []Item
}

// Item is one top-level unit of a .bib file.
type Item interface {
	isItem()
}

// Comment is free text between entries, outside any @...{} block,
// carried through verbatim.
type Comment struct {
	Text string
}

// StringDef is an `@string{name = "value"}` macro definition. Later
// field values referencing name by bareword are expanded against the
// accumulated set of StringDefs seen so far.
type StringDef struct {
	Name  string
	Value string
}

// Preamble is an `@preamble{"..."}` block, carried through verbatim.
type Preamble struct {
	Text string
}

// Field is one `name = value` pair inside an Entry, in source order.
type Field struct {
	Name  string
	Value string
}

// Entry is a single `@type{key, field = value, ...}` record.
type Entry struct {
	Type   string
	Key    string
	Fields []Field
}

func (Comment) isItem()   {}
func (StringDef) isItem() {}
func (Preamble) isItem()  {}
func (*Entry) isItem()    {}

// Get returns the value of the named field (case-insensitive), or ""
// with ok=false if the entry has no such field.
func (e *Entry) Get(name string) (string, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Set overwrites the named field's value if present, or appends a new
// field otherwise, preserving the position of existing fields.
func (e *Entry) Set(name, value string) {
	for i, f := range e.Fields {
		if strings.EqualFold(f.Name, name) {
			e.Fields[i].Value = value
			return
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: value})
}

// Remove deletes the named field, if present.
func (e *Entry) Remove(name string) {
	out := e.Fields[:0]
	for _, f := range e.Fields {
		if !strings.EqualFold(f.Name, name) {
			out = append(out, f)
		}
	}
	e.Fields = out
}

// Entries returns every *Entry in doc, in source order.
func (d *Document) Entries() []*Entry {
	var out []*Entry
	for _, it := range d.Items {
		if e, ok := it.(*Entry); ok {
			out = append(out, e)
		}
	}
	return out
}
