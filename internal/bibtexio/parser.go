// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads a complete .bib file from r into a Document. Comments
// outside any @...{} block are accumulated and preserved verbatim as
// Comment items; @string and @preamble blocks are kept as StringDef and
// Preamble items; @string macros are expanded inline into later field
// values that reference them by bareword.
func Parse(r io.Reader) (*Document, error) {
	p := &parser{lex: newLexer(r), macros: map[string]string{}}
	return p.parse()
}

type parser struct {
	lex    *lexer
	macros map[string]string
	pend   *token // one-token pushback
}

func (p *parser) next() (token, error) {
	if p.pend != nil {
		t := *p.pend
		p.pend = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) pushback(t token) {
	p.pend = &t
}

func (p *parser) parse() (*Document, error) {
	doc := &Document{}
	var pendingComment strings.Builder

	flushComment := func() {
		if pendingComment.Len() > 0 {
			doc.Items = append(doc.Items, Comment{Text: strings.TrimRight(pendingComment.String(), "\n")})
			pendingComment.Reset()
		}
	}

	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokEOF {
			flushComment()
			return doc, nil
		}
		if t.kind != tokAt {
			// Free text outside any block: accumulate verbatim, starting
			// with the token already read, up to the next '@'.
			pendingComment.WriteString(t.literal)
			for {
				ch, ok := p.lex.peekRune()
				if !ok || ch == '@' {
					break
				}
				p.lex.readRune()
				pendingComment.WriteRune(ch)
			}
			continue
		}
		flushComment()

		item, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}
}

// parseBlock parses the content of one @...{...} block after the leading
// '@' has already been consumed.
func (p *parser) parseBlock() (Item, error) {
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if typeTok.kind != tokIdent {
		return nil, fmt.Errorf("bibtexio: expected entry type after '@' near line %d, got %q", typeTok.line, typeTok.literal)
	}
	entryType := strings.ToLower(typeTok.literal)

	open, err := p.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokLBrace {
		return nil, fmt.Errorf("bibtexio: expected '{' after @%s near line %d", entryType, open.line)
	}

	switch entryType {
	case "comment":
		text, err := p.lex.readBraceLiteral()
		if err != nil {
			return nil, err
		}
		return Comment{Text: text}, nil
	case "preamble":
		text, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
		return Preamble{Text: text}, nil
	case "string":
		name, err := p.next()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokEquals); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
		p.macros[strings.ToLower(name.literal)] = value
		return StringDef{Name: strings.ToLower(name.literal), Value: value}, nil
	default:
		return p.parseEntry(entryType)
	}
}

func (p *parser) parseEntry(entryType string) (*Entry, error) {
	keyTok, err := p.next()
	if err != nil {
		return nil, err
	}
	e := &Entry{Type: entryType, Key: keyTok.literal}

	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokRBrace:
			return e, nil
		case tokComma:
			continue
		case tokIdent:
			name := strings.ToLower(t.literal)
			if err := p.expect(tokEquals); err != nil {
				return nil, err
			}
			value, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			e.Fields = append(e.Fields, Field{Name: name, Value: value})
		default:
			return nil, fmt.Errorf("bibtexio: unexpected token %q in entry %s near line %d", t.literal, e.Key, t.line)
		}
	}
}

// parseValue reads one field value: a '#'-joined sequence of braced
// literals, quoted literals, or bareword macro references, expanding
// known macros against p.macros.
func (p *parser) parseValue() (string, error) {
	var parts []string
	for {
		part, err := p.parseValuePart()
		if err != nil {
			return "", err
		}
		parts = append(parts, part)

		t, err := p.next()
		if err != nil {
			return "", err
		}
		if t.kind != tokHash {
			p.pushback(t)
			break
		}
	}
	return strings.Join(parts, ""), nil
}

func (p *parser) parseValuePart() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	switch t.kind {
	case tokLBrace:
		return p.lex.readBraceLiteral()
	case tokString:
		return t.literal, nil
	case tokIdent:
		if v, ok := p.macros[strings.ToLower(t.literal)]; ok {
			return v, nil
		}
		return t.literal, nil
	default:
		return "", fmt.Errorf("bibtexio: expected a field value near line %d, got %q", t.line, t.literal)
	}
}

func (p *parser) expect(kind tokenKind) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t.kind != kind {
		return fmt.Errorf("bibtexio: unexpected token %q near line %d", t.literal, t.line)
	}
	return nil
}
