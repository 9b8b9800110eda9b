package html2toml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Encoder writes tables as TOML documents.
type Encoder struct {
	// Validate decodes the encoded document with go-toml before writing it.
	Validate bool

	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes t to the underlying writer. Nothing is written when t
// cannot be represented.
func (enc *Encoder) Encode(t *Table) error {
	b, err := Marshal(t)
	if err != nil {
		return err
	}
	if enc.Validate {
		if err := Validate(b); err != nil {
			return err
		}
	}
	_, err = enc.w.Write(b)
	return err
}

// Marshal returns the TOML encoding of t. Keys keep their insertion order.
// Inside each table, strings and mixed arrays are written first as
// key/value pairs, then nested tables as [sections] and arrays of tables
// as [[sections]]. A nested table whose only entries are other sections
// gets no header of its own.
func Marshal(t *Table) ([]byte, error) {
	if t == nil {
		return nil, Errorf(ESERIALIZE, "nil table")
	}
	var e encoder
	if err := e.table(nil, t, false); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// Validate reports whether b decodes as TOML.
func Validate(b []byte) error {
	var v map[string]any
	if err := toml.Unmarshal(b, &v); err != nil {
		return Errorf(ESERIALIZE, "invalid toml output: %w", err)
	}
	return nil
}

type encoder struct {
	buf bytes.Buffer
}

// section reports whether v is written as its own [section] rather than
// inline.
func section(v Value) bool {
	switch v := v.(type) {
	case *Table:
		return true
	case Array:
		if len(v) == 0 {
			return false
		}
		for _, elem := range v {
			if _, ok := elem.(*Table); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func (e *encoder) table(path []string, t *Table, element bool) error {
	if t == nil || (t.Len() == 0 && len(path) > 0 && !element) {
		return Errorf(ESERIALIZE, "empty table %s", dotted(path))
	}

	var inline int
	for _, ent := range t.entries {
		if !section(ent.val) {
			inline++
		}
	}
	if len(path) > 0 && (inline > 0 || element) {
		if e.buf.Len() > 0 {
			e.buf.WriteByte('\n')
		}
		if element {
			fmt.Fprintf(&e.buf, "[[%s]]\n", dotted(path))
		} else {
			fmt.Fprintf(&e.buf, "[%s]\n", dotted(path))
		}
	}
	for _, ent := range t.entries {
		if section(ent.val) {
			continue
		}
		e.buf.WriteString(key(ent.key))
		e.buf.WriteString(" = ")
		if err := e.inline(append(path[:len(path):len(path)], ent.key), ent.val); err != nil {
			return err
		}
		e.buf.WriteByte('\n')
	}

	for _, ent := range t.entries {
		sub := append(path[:len(path):len(path)], ent.key)
		switch v := ent.val.(type) {
		case *Table:
			if err := e.table(sub, v, false); err != nil {
				return err
			}
		case Array:
			if !section(v) {
				continue
			}
			for _, elem := range v {
				if err := e.table(sub, elem.(*Table), true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *encoder) inline(path []string, v Value) error {
	switch v := v.(type) {
	case String:
		e.buf.WriteString(quote(string(v)))
	case Array:
		e.buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.inline(path, elem); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case *Table:
		if v == nil {
			return Errorf(ESERIALIZE, "nil table at %s", dotted(path))
		}
		if v.Len() == 0 {
			e.buf.WriteString("{}")
			return nil
		}
		e.buf.WriteString("{ ")
		for i, ent := range v.entries {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			e.buf.WriteString(key(ent.key))
			e.buf.WriteString(" = ")
			if err := e.inline(append(path[:len(path):len(path)], ent.key), ent.val); err != nil {
				return err
			}
		}
		e.buf.WriteString(" }")
	default:
		return Errorf(ESERIALIZE, "unsupported value %T at %s", v, dotted(path))
	}
	return nil
}

func dotted(path []string) string {
	keys := make([]string, len(path))
	for i, k := range path {
		keys[i] = key(k)
	}
	return strings.Join(keys, ".")
}

func bare(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

func key(s string) string {
	if bare(s) {
		return s
	}
	return quote(s)
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
