// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import (
	"fmt"
	"io"
	"strings"
)

// Write serializes doc back to BibTeX source, in item order, using a
// fixed canonical layout (spec.md §5's determinism requirement: "the
// produced output is byte-identical... after canonical BibTeX
// formatting"). Field values are always written brace-delimited,
// regardless of how they were originally quoted; a value whose braces are
// balanced round-trips unchanged.
func Write(w io.Writer, doc *Document) error {
	for i, item := range doc.Items {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeItem(w, item); err != nil {
			return err
		}
	}
	return nil
}

func writeItem(w io.Writer, item Item) error {
	switch v := item.(type) {
	case Comment:
		_, err := fmt.Fprintf(w, "%s\n", v.Text)
		return err
	case StringDef:
		_, err := fmt.Fprintf(w, "@string{%s = {%s}}\n", v.Name, v.Value)
		return err
	case Preamble:
		_, err := fmt.Fprintf(w, "@preamble{%s}\n", v.Text)
		return err
	case *Entry:
		return writeEntry(w, v)
	default:
		return fmt.Errorf("bibtexio: unknown item type %T", item)
	}
}

func writeEntry(w io.Writer, e *Entry) error {
	if _, err := fmt.Fprintf(w, "@%s{%s", e.Type, e.Key); err != nil {
		return err
	}
	for _, f := range e.Fields {
		if _, err := fmt.Fprintf(w, ",\n  %s = {%s}", f.Name, escapeBraces(f.Value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n}\n")
	return err
}

// escapeBraces backslash-escapes any unbalanced '}' that would otherwise
// prematurely close the brace literal being written; '{'/'}' pairs that
// are already balanced (nested braces within the value) are left alone.
func escapeBraces(s string) string {
	depth := 0
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				b.WriteByte('\\')
			} else {
				depth--
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
