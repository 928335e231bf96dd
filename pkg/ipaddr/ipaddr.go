// Package ipaddr converts IPv4 addresses between dotted-decimal text and the
// integer encoding stored in company records.
package ipaddr

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

var ErrInvalidAddress = errors.New("invalid IPv4 address")

// Encode packs a dotted-decimal address into an integer, first octet in the
// most significant byte. Octet count and octet range are not checked, so
// "1.2.3.4.5" or "300.1.1.1" produce a number rather than an error; use Parse
// when that matters. Trailing dots are ignored. Blank input or a non-numeric
// octet yields false.
func Encode(dotted string) (int64, bool) {
	if strings.TrimSpace(dotted) == "" {
		return 0, false
	}

	parts := strings.Split(dotted, ".")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	var n int64
	for _, part := range parts {
		octet, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return 0, false
		}
		n = n<<8 + octet
	}
	return n, true
}

// Decode unpacks an encoded address. Zero reports false: it is treated as
// "no address" even though it is also the encoding of 0.0.0.0.
func Decode(n int64) (string, bool) {
	if n == 0 {
		return "", false
	}

	u := uint64(n)
	var b strings.Builder
	b.WriteString(strconv.FormatUint(u>>24, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint((u&0x00FFFFFF)>>16, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint((u&0x0000FFFF)>>8, 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(u&0x000000FF, 10))
	return b.String(), true
}

// DecodeNullable is Decode for a nullable column value.
func DecodeNullable(n *int64) (string, bool) {
	if n == nil {
		return "", false
	}
	return Decode(*n)
}

// Normalize returns the dotted form of value. A purely numeric value is taken
// as an encoded address and decoded; anything else is returned as is.
func Normalize(value string) (string, bool) {
	if strings.TrimSpace(value) == "" || !isDigits(value) {
		return value, true
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value, true
	}
	return Decode(n)
}

// Parse is the validating counterpart of Encode: it accepts exactly four
// decimal octets in the range 0-255.
func Parse(dotted string) (uint32, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(dotted))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, dotted)
	}
	if !addr.Is4() {
		return 0, fmt.Errorf("%w: %q is not IPv4", ErrInvalidAddress, dotted)
	}

	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
