package jsoncodec

import (
	"reflect"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf((*time.Time)(nil))
)

// timeExtension makes a jsoniter configuration read and write time.Time
// using a single date pattern.
type timeExtension struct {
	jsoniter.DummyExtension
	format dateFormat
}

// *time.Time is claimed as well, otherwise its json.Marshaler methods would
// take over.
func (e *timeExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Type1() {
	case timeType:
		return &timeCodec{format: e.format}
	case timePtrType:
		return &timePtrCodec{elem: &timeCodec{format: e.format}}
	}
	return nil
}

func (e *timeExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch typ.Type1() {
	case timeType:
		return &timeCodec{format: e.format}
	case timePtrType:
		return &timePtrCodec{elem: &timeCodec{format: e.format}}
	}
	return nil
}

type timeCodec struct {
	format dateFormat
}

func (c *timeCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return (*time.Time)(ptr).IsZero()
}

func (c *timeCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString(c.format.format(*(*time.Time)(ptr)))
}

// Decode accepts a string in the codec's pattern or a number of
// milliseconds since the Unix epoch.
func (c *timeCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		*(*time.Time)(ptr) = time.Time{}
	case jsoniter.NumberValue:
		*(*time.Time)(ptr) = time.UnixMilli(iter.ReadInt64()).In(c.format.loc)
	case jsoniter.StringValue:
		s := iter.ReadString()
		t, err := c.format.parse(s)
		if err != nil {
			iter.ReportError("decode time", "cannot parse "+s+" as "+c.format.pattern)
			return
		}
		*(*time.Time)(ptr) = t
	default:
		iter.ReportError("decode time", "expected string or number")
	}
}

type timePtrCodec struct {
	elem *timeCodec
}

func (c *timePtrCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**time.Time)(ptr) == nil
}

func (c *timePtrCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(**time.Time)(ptr)
	if t == nil {
		stream.WriteNil()
		return
	}
	c.elem.Encode(unsafe.Pointer(t), stream)
}

func (c *timePtrCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.ReadNil()
		*(**time.Time)(ptr) = nil
		return
	}
	t := new(time.Time)
	c.elem.Decode(unsafe.Pointer(t), iter)
	*(**time.Time)(ptr) = t
}
