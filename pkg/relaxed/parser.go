package relaxed

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// MaxDepth bounds list/map nesting.
const MaxDepth = 512

// SyntaxError describes why and where parsing stopped.
type SyntaxError struct {
	Offset int // byte offset into the input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("relaxed: %s at offset %d", e.Msg, e.Offset)
}

// Parse parses text as a single relaxed literal. Only whitespace and comments
// may follow the value.
func Parse(text string) (Value, error) {
	p := &parser{src: text}
	if err := p.skipSpace(); err != nil {
		return Value{}, err
	}
	if p.eof() {
		return Value{}, p.errorf("empty input")
	}
	v, err := p.parseValue(0)
	if err != nil {
		return Value{}, err
	}
	if err := p.skipSpace(); err != nil {
		return Value{}, err
	}
	if !p.eof() {
		return Value{}, p.errorf("unexpected %s after value", p.describe())
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return strconv.QuoteRune(r)
}

// skipSpace skips whitespace, line comments and block comments.
func (p *parser) skipSpace() error {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			p.pos++
		case c == '/' && strings.HasPrefix(p.src[p.pos:], "//"):
			end := strings.IndexAny(p.src[p.pos:], "\n\r")
			if end < 0 {
				p.pos = len(p.src)
			} else {
				p.pos += end
			}
		case c == '/' && strings.HasPrefix(p.src[p.pos:], "/*"):
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				return p.errorf("unterminated block comment")
			}
			p.pos += end + 4
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if r != '\uFEFF' && !unicode.IsSpace(r) {
				return nil
			}
			p.pos += size
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) parseValue(depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, p.errorf("nesting deeper than %d", MaxDepth)
	}
	c := p.peek()
	switch {
	case c == '{':
		return p.parseMap(depth)
	case c == '[':
		return p.parseList(depth)
	case c == '"' || c == '\'':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case isIdentStart(c):
		start := p.pos
		word := p.parseIdent()
		switch word {
		case "null", "undefined":
			return Null(), nil
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "Infinity":
			return Number(math.Inf(1)), nil
		case "NaN":
			return Number(math.NaN()), nil
		}
		p.pos = start
		return Value{}, p.errorf("unexpected identifier %q", word)
	}
	return Value{}, p.errorf("unexpected %s", p.describe())
}

func (p *parser) parseList(depth int) (Value, error) {
	p.pos++ // '['
	items := List{}
	for {
		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		if p.peek() == ']' {
			p.pos++
			return NewList(items...), nil
		}
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)

		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return NewList(items...), nil
		default:
			return Value{}, p.errorf("expected ',' or ']' in list, found %s", p.describe())
		}
	}
}

func (p *parser) parseMap(depth int) (Value, error) {
	p.pos++ // '{'
	var m Map
	for {
		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		if p.peek() == '}' {
			p.pos++
			return Value{kind: KindMap, m: m}, nil
		}

		key, err := p.parseKey()
		if err != nil {
			return Value{}, err
		}
		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		if p.peek() != ':' {
			return Value{}, p.errorf("expected ':' after key %q, found %s", key, p.describe())
		}
		p.pos++
		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		val, err := p.parseValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		m.set(key, val)

		if err := p.skipSpace(); err != nil {
			return Value{}, err
		}
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return Value{kind: KindMap, m: m}, nil
		default:
			return Value{}, p.errorf("expected ',' or '}' in map, found %s", p.describe())
		}
	}
}

// parseKey accepts a quoted string, a bare identifier or a numeric literal.
func (p *parser) parseKey() (string, error) {
	c := p.peek()
	switch {
	case c == '"' || c == '\'':
		return p.parseString()
	case isIdentStart(c):
		return p.parseIdent(), nil
	case c >= '0' && c <= '9':
		start := p.pos
		for !p.eof() && (isIdentPart(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		return p.src[start:p.pos], nil
	}
	return "", p.errorf("expected key, found %s", p.describe())
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) parseIdent() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c < utf8.RuneSelf {
			if !isIdentPart(c) {
				break
			}
			p.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *parser) parseString() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\n' || c == '\r':
			return "", p.errorf("line break in string")
		case c == '\\':
			p.pos++
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		default:
			// Copy the run up to the next special byte in one go.
			end := p.pos + 1
			for end < len(p.src) {
				b := p.src[end]
				if b == quote || b == '\\' || b == '\n' || b == '\r' {
					break
				}
				end++
			}
			sb.WriteString(p.src[p.pos:end])
			p.pos = end
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if p.peek() == '\n' {
			p.pos++
		}
	case 'x':
		n, err := p.hex(2)
		if err != nil {
			return err
		}
		sb.WriteRune(rune(n))
	case 'u':
		n, err := p.hex(4)
		if err != nil {
			return err
		}
		r := rune(n)
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
			save := p.pos
			p.pos += 2
			lo, err := p.hex(4)
			if err == nil {
				if combined := utf16.DecodeRune(r, rune(lo)); combined != utf8.RuneError {
					sb.WriteRune(combined)
					return nil
				}
			}
			p.pos = save
		}
		sb.WriteRune(r)
	default:
		// Any other escaped character stands for itself, including
		// multi-byte ones and the U+2028/U+2029 line continuations.
		p.pos--
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
		if r != '\u2028' && r != '\u2029' {
			sb.WriteRune(r)
		}
	}
	return nil
}

func (p *parser) hex(digits int) (uint64, error) {
	if p.pos+digits > len(p.src) {
		return 0, p.errorf("truncated hex escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+digits])
	}
	p.pos += digits
	return n, nil
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	sign := 1.0
	if c := p.peek(); c == '+' || c == '-' {
		if c == '-' {
			sign = -1
		}
		p.pos++
	}

	if isIdentStart(p.peek()) {
		word := p.parseIdent()
		switch word {
		case "Infinity":
			return Number(math.Inf(int(sign))), nil
		case "NaN":
			return Number(math.NaN()), nil
		}
		p.pos = start
		return Value{}, p.errorf("invalid number")
	}

	if strings.HasPrefix(p.src[p.pos:], "0x") || strings.HasPrefix(p.src[p.pos:], "0X") {
		p.pos += 2
		digitsStart := p.pos
		for !p.eof() && isHexDigit(p.src[p.pos]) {
			p.pos++
		}
		if p.pos == digitsStart {
			return Value{}, p.errorf("invalid hex number")
		}
		n, err := strconv.ParseUint(p.src[digitsStart:p.pos], 16, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Value{}, p.errorf("invalid hex number")
		}
		if errors.Is(err, strconv.ErrRange) {
			return Number(sign * math.Inf(1)), nil
		}
		return Number(sign * float64(n)), nil
	}

	intDigits := p.digits()
	fracDigits := 0
	if p.peek() == '.' {
		p.pos++
		fracDigits = p.digits()
	}
	if intDigits == 0 && fracDigits == 0 {
		p.pos = start
		return Value{}, p.errorf("invalid number")
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if p.digits() == 0 {
			return Value{}, p.errorf("invalid exponent")
		}
	}

	text := p.src[start:p.pos]
	text = strings.TrimLeft(text, "+-")
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	text = strings.Replace(text, ".e", ".0e", 1)
	text = strings.Replace(text, ".E", ".0E", 1)
	if strings.HasSuffix(text, ".") {
		text += "0"
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", p.src[start:p.pos])}
	}
	return Number(sign * f), nil
}

func (p *parser) digits() int {
	n := 0
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
		n++
	}
	return n
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
