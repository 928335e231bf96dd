package jsoncodec

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Registry maps each supported date pattern to its Codec. It is read-only
// once NewRegistry returns.
type Registry struct {
	codecs map[string]*Codec
	logger *zap.Logger
}

type options struct {
	logger *zap.Logger
	loc    *time.Location
}

type Option func(*options)

// WithLogger sets the logger that receives swallowed failures and
// unsupported-pattern warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLocation sets the time zone dates are formatted and parsed in. The
// default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

func NewRegistry(opts ...Option) *Registry {
	o := options{
		logger: zap.NewNop(),
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(&o)
	}

	codecs := make(map[string]*Codec, len(supportedPatterns))
	for _, pattern := range supportedPatterns {
		codecs[pattern] = newCodec(pattern, o.loc)
	}

	return &Registry{
		codecs: codecs,
		logger: o.logger,
	}
}

// Patterns lists the supported date patterns.
func (r *Registry) Patterns() []string {
	return append([]string(nil), supportedPatterns...)
}

// Default returns the codec for DefaultPattern.
func (r *Registry) Default() *Codec {
	return r.codecs[DefaultPattern]
}

// Lookup returns the codec for pattern. An unsupported pattern is logged
// as a warning; a blank one is not.
func (r *Registry) Lookup(pattern string) (*Codec, bool) {
	if strings.TrimSpace(pattern) == "" {
		return nil, false
	}
	return r.registered(pattern)
}

// registered returns the codec for pattern, warning for anything not
// registered, blank included.
func (r *Registry) registered(pattern string) (*Codec, bool) {
	c, ok := r.codecs[pattern]
	if !ok {
		r.logger.Warn("unsupported date pattern", zap.String("pattern", pattern))
		return nil, false
	}
	return c, true
}

// Supports reports whether pattern is registered without logging.
func (r *Registry) Supports(pattern string) bool {
	_, ok := r.codecs[pattern]
	return ok
}

// ToJSON encodes v with the default pattern. A nil v or an encoding failure
// reports false; failures are logged.
func (r *Registry) ToJSON(v any) (string, bool) {
	if isNil(v) {
		return "", false
	}
	return r.toJSON(r.Default(), v)
}

// ToJSONWithPattern encodes v with the given date pattern. It reports false
// for a nil v, a blank or unsupported pattern, or an encoding failure.
func (r *Registry) ToJSONWithPattern(v any, pattern string) (string, bool) {
	if isNil(v) {
		return "", false
	}
	c, ok := r.Lookup(pattern)
	if !ok {
		return "", false
	}
	return r.toJSON(c, v)
}

// Marshal encodes v with the default pattern and returns any failure.
func (r *Registry) Marshal(v any) (string, error) {
	return r.Default().Marshal(v)
}

func (r *Registry) toJSON(c *Codec, v any) (string, bool) {
	s, err := c.Marshal(v)
	if err != nil {
		r.logger.Error("object to json failed", zap.String("pattern", c.pattern), zap.Error(err))
		return "", false
	}
	return s, true
}

// FromJSON decodes text into a T using the default pattern. Blank text or a
// decoding failure reports false; failures are logged.
func FromJSON[T any](r *Registry, text string) (T, bool) {
	return fromJSON[T](r, r.Default(), text)
}

// FromJSONWithPattern decodes text into a T using the given date pattern. A
// blank or unsupported pattern is logged as a warning.
func FromJSONWithPattern[T any](r *Registry, text, pattern string) (T, bool) {
	var zero T
	if strings.TrimSpace(text) == "" {
		return zero, false
	}
	c, ok := r.registered(pattern)
	if !ok {
		return zero, false
	}
	return fromJSON[T](r, c, text)
}

// Unmarshal decodes text into a T using the default pattern and returns any
// failure, including ErrEmptyDocument for blank text.
func Unmarshal[T any](r *Registry, text string) (T, error) {
	return Decode[T](r.Default(), text)
}

func fromJSON[T any](r *Registry, c *Codec, text string) (T, bool) {
	var zero T
	if strings.TrimSpace(text) == "" {
		return zero, false
	}

	out, err := Decode[T](c, text)
	if err != nil {
		r.logger.Error("json to object failed", zap.String("pattern", c.pattern), zap.Error(err))
		return zero, false
	}
	return out, true
}
