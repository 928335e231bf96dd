package jsoncodec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var (
	ErrEmptyDocument = errors.New("empty json document")
	ErrNilValue      = errors.New("nil value")
)

// Codec encodes and decodes JSON with one date pattern. Codecs are obtained
// from a Registry.
type Codec struct {
	pattern string
	api     jsoniter.API
}

func newCodec(pattern string, loc *time.Location) *Codec {
	api := jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		CaseSensitive:          true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&timeExtension{format: newDateFormat(pattern, loc)})

	return &Codec{
		pattern: pattern,
		api:     api,
	}
}

// Pattern returns the date pattern this codec reads and writes.
func (c *Codec) Pattern() string {
	return c.pattern
}

// Marshal encodes v, leaving out every object member whose value is null.
func (c *Codec) Marshal(v any) (string, error) {
	if isNil(v) {
		return "", ErrNilValue
	}

	data, err := c.api.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %T: %w", v, err)
	}

	var b strings.Builder
	c.writeWithoutNulls(&b, gjson.ParseBytes(data))
	return b.String(), nil
}

// Unmarshal decodes text into out, which must be a non-nil pointer.
func (c *Codec) Unmarshal(text string, out any) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyDocument
	}

	if err := c.api.UnmarshalFromString(relax(text), out); err != nil {
		return fmt.Errorf("failed to decode into %T: %w", out, err)
	}
	return nil
}

// Decode is the generic form of Unmarshal.
func Decode[T any](c *Codec, text string) (T, error) {
	var out T
	if err := c.Unmarshal(text, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Codec) writeWithoutNulls(b *strings.Builder, r gjson.Result) {
	switch {
	case r.IsObject():
		b.WriteByte('{')
		first := true
		r.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.Null {
				return true
			}
			if !first {
				b.WriteByte(',')
			}
			first = false

			name, _ := c.api.MarshalToString(key.String())
			b.WriteString(name)
			b.WriteByte(':')
			c.writeWithoutNulls(b, value)
			return true
		})
		b.WriteByte('}')
	case r.IsArray():
		b.WriteByte('[')
		first := true
		r.ForEach(func(_, value gjson.Result) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			c.writeWithoutNulls(b, value)
			return true
		})
		b.WriteByte(']')
	default:
		b.WriteString(r.Raw)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
