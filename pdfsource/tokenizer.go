package pdfsource

import (
	"bytes"
	"fmt"
	"strconv"
)

// operation is a content stream operator with the operands that precede it
type operation struct {
	op   string
	args []any
}

// name is a PDF name operand (/F1)
type name string

// Operand types produced by the tokenizer:
//
//	float64   numbers
//	[]byte    literal and hex strings
//	name      names
//	[]any     arrays
//	bool, nil booleans and null
//
// Dictionaries are parsed and dropped; no operator we interpret needs them.

// tokenizer splits a content stream into operations
type tokenizer struct {
	data  []byte
	pos   int
	stack []any
}

// tokenize parses data into operations. Inline image data (BI ... ID ... EI)
// is skipped.
func tokenize(data []byte) ([]operation, error) {
	t := &tokenizer{data: data}
	var ops []operation

	for {
		t.skipSpaceAndComments()
		if t.pos >= len(t.data) {
			break
		}

		c := t.data[t.pos]
		if isRegular(c) && !isNumberStart(c) {
			word := t.readRegular()
			switch word {
			case "true":
				t.stack = append(t.stack, true)
				continue
			case "false":
				t.stack = append(t.stack, false)
				continue
			case "null":
				t.stack = append(t.stack, nil)
				continue
			}

			ops = append(ops, operation{op: word, args: t.stack})
			t.stack = nil

			if word == "ID" {
				t.skipInlineImage()
			}
			continue
		}

		start := t.pos
		v, err := t.operand()
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", start, err)
		}
		t.stack = append(t.stack, v)
	}

	return ops, nil
}

// operand parses a single operand at the current position
func (t *tokenizer) operand() (any, error) {
	t.skipSpaceAndComments()
	if t.pos >= len(t.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := t.data[t.pos]
	switch {
	case isNumberStart(c):
		return t.number()
	case c == '(':
		return t.literal()
	case c == '<' && t.peek(1) == '<':
		return t.dict()
	case c == '<':
		return t.hex()
	case c == '/':
		return t.name(), nil
	case c == '[':
		return t.array()
	case isRegular(c):
		// bare keyword inside an array or dictionary
		word := t.readRegular()
		switch word {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, nil
	}

	return nil, fmt.Errorf("unexpected character %q", c)
}

func (t *tokenizer) number() (float64, error) {
	start := t.pos
	if c := t.data[t.pos]; c == '+' || c == '-' {
		t.pos++
	}
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			t.pos++
			continue
		}
		break
	}

	s := string(t.data[start:t.pos])
	// producers write "-.5", "5." and the occasional "--5"
	for len(s) > 1 && (s[0] == '-' && s[1] == '-') {
		s = s[1:]
	}
	if s == "-" || s == "+" || s == "." {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// literal parses a (string) with nested parentheses and escapes
func (t *tokenizer) literal() ([]byte, error) {
	t.pos++ // (

	var out bytes.Buffer
	depth := 1
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		t.pos++

		switch c {
		case '(':
			depth++
			out.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return out.Bytes(), nil
			}
			out.WriteByte(c)
		case '\\':
			if t.pos >= len(t.data) {
				continue
			}
			e := t.data[t.pos]
			t.pos++
			switch e {
			case 'n':
				out.WriteByte('\n')
			case 'r':
				out.WriteByte('\r')
			case 't':
				out.WriteByte('\t')
			case 'b':
				out.WriteByte('\b')
			case 'f':
				out.WriteByte('\f')
			case '\r':
				if t.pos < len(t.data) && t.data[t.pos] == '\n' {
					t.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := int(e - '0')
				for i := 0; i < 2 && t.pos < len(t.data); i++ {
					d := t.data[t.pos]
					if d < '0' || d > '7' {
						break
					}
					v = v*8 + int(d-'0')
					t.pos++
				}
				out.WriteByte(byte(v & 0xFF))
			default:
				out.WriteByte(e)
			}
		default:
			out.WriteByte(c)
		}
	}

	return nil, fmt.Errorf("unclosed string")
}

// hex parses a <hex string>. An odd final digit is padded with 0.
func (t *tokenizer) hex() ([]byte, error) {
	t.pos++ // <

	var out []byte
	var hi byte
	half := false
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		t.pos++

		if c == '>' {
			if half {
				out = append(out, hi<<4)
			}
			return out, nil
		}
		if isSpace(c) {
			continue
		}

		v, ok := hexValue(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}

	return nil, fmt.Errorf("unclosed hex string")
}

// name parses a /Name, decoding #xx escapes
func (t *tokenizer) name() name {
	t.pos++ // /

	var out bytes.Buffer
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && t.pos+2 < len(t.data) {
			h, ok1 := hexValue(t.data[t.pos+1])
			l, ok2 := hexValue(t.data[t.pos+2])
			if ok1 && ok2 {
				out.WriteByte(h<<4 | l)
				t.pos += 3
				continue
			}
		}
		out.WriteByte(c)
		t.pos++
	}
	return name(out.String())
}

func (t *tokenizer) array() ([]any, error) {
	t.pos++ // [

	arr := []any{}
	for {
		t.skipSpaceAndComments()
		if t.pos >= len(t.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if t.data[t.pos] == ']' {
			t.pos++
			return arr, nil
		}

		v, err := t.operand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// dict consumes a <<dictionary>> and returns nil
func (t *tokenizer) dict() (any, error) {
	t.pos += 2 // <<

	for {
		t.skipSpaceAndComments()
		if t.pos >= len(t.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if t.data[t.pos] == '>' && t.peek(1) == '>' {
			t.pos += 2
			return nil, nil
		}
		if _, err := t.operand(); err != nil {
			return nil, err
		}
	}
}

// skipInlineImage advances past inline image data to the EI operator
func (t *tokenizer) skipInlineImage() {
	// a single whitespace byte separates ID from the data
	if t.pos < len(t.data) && isSpace(t.data[t.pos]) {
		t.pos++
	}
	for i := t.pos; i+1 < len(t.data); i++ {
		if t.data[i] != 'E' || t.data[i+1] != 'I' {
			continue
		}
		before := i == 0 || isSpace(t.data[i-1])
		after := i+2 >= len(t.data) || isSpace(t.data[i+2])
		if before && after {
			t.pos = i + 2
			return
		}
	}
	t.pos = len(t.data)
}

func (t *tokenizer) readRegular() string {
	start := t.pos
	for t.pos < len(t.data) && isRegular(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func (t *tokenizer) skipSpaceAndComments() {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if isSpace(c) {
			t.pos++
			continue
		}
		if c == '%' {
			for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
				t.pos++
			}
			continue
		}
		return
	}
}

func (t *tokenizer) peek(n int) byte {
	if t.pos+n < len(t.data) {
		return t.data[t.pos+n]
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isRegular(c byte) bool {
	return !isSpace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
