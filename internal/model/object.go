package model

import (
	"bytes"
	"encoding/json"

	"github.com/pb33f/libopenapi/orderedmap"
)

// Object is an insertion-ordered JSON object. The compact notation folds
// information into key strings, so key order carries meaning and a plain Go
// map cannot hold it.
type Object struct {
	entries *orderedmap.Map[string, any]
}

func NewObject() *Object {
	return &Object{entries: orderedmap.New[string, any]()}
}

func (o *Object) Set(key string, value any) {
	o.entries.Set(key, value)
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		var zero any
		return zero, false
	}
	return o.entries.Get(key)
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.entries.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, o.entries.Len())
	for k := range o.entries.FromOldest() {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON writes the object with no whitespace, keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for k, v := range o.entries.FromOldest() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
