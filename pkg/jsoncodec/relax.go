package jsoncodec

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// relax rewrites lenient JSON into strict JSON. It quotes bare member names,
// turns single-quoted strings into double-quoted ones and escapes raw control
// characters inside strings. Strict input passes through unchanged; anything
// it does not recognise is copied so the decoder can report it.
func relax(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 16)

	for i := 0; i < len(src); {
		ch := src[i]
		switch {
		case ch == '"' || ch == '\'':
			i = copyString(&b, src, i)
		case ch == '-' || isDigit(ch):
			start := i
			for i < len(src) && isNumberByte(src[i]) {
				i++
			}
			b.WriteString(src[start:i])
		case isIdentStart(runeAt(src, i)):
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			word := src[start:i]
			if isMemberName(src, i) {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

// copyString writes the string literal starting at src[start] as a
// double-quoted JSON string and returns the index just past it.
func copyString(b *strings.Builder, src string, start int) int {
	quote := src[start]
	b.WriteByte('"')

	i := start + 1
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == quote:
			b.WriteByte('"')
			return i + 1
		case ch == '\\' && i+1 < len(src):
			if src[i+1] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte('\\')
				b.WriteByte(src[i+1])
			}
			i += 2
			continue
		case ch == '"':
			b.WriteString(`\"`)
		case ch < 0x20:
			b.WriteString(`\u00`)
			b.WriteByte(hexDigits[ch>>4])
			b.WriteByte(hexDigits[ch&0xF])
		default:
			b.WriteByte(ch)
		}
		i++
	}
	return i
}

// isMemberName reports whether the next non-space byte at or after i is a
// colon.
func isMemberName(src string, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberByte(ch byte) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E'
}

func runeAt(src string, i int) rune {
	r, _ := utf8.DecodeRuneInString(src[i:])
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
