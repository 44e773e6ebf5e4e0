/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrInvalidDocument indicates a token document whose root is not an object.
var ErrInvalidDocument = errors.New("token document root must be an object")

// GroupFromObject converts a decoded document into a group tree. An object
// carrying both $type and $value becomes a Token; any other object is a Group.
func GroupFromObject(o *Object) *Group {
	g := NewGroup()
	g.layout = o.Keys()
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		child, isObject := v.(*Object)
		switch {
		case strings.HasPrefix(k, "$") || !isObject:
			if g.Meta == nil {
				g.Meta = NewObject()
			}
			g.Meta.Set(k, v)
		case isTokenObject(child):
			g.Set(k, tokenFromObject(child))
		default:
			g.Set(k, GroupFromObject(child))
		}
	}
	return g
}

func isTokenObject(o *Object) bool {
	_, hasType := o.Get(KeyType)
	_, hasValue := o.Get(KeyValue)
	return hasType && hasValue
}

func tokenFromObject(o *Object) *Token {
	t := &Token{keys: o.Keys()}
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		switch k {
		case KeyType:
			if s, ok := v.(string); ok {
				t.Type = Type(s)
			} else {
				t.Type = Type(fmt.Sprint(v))
			}
		case KeyValue:
			t.Value = v
		case KeyDescription:
			if s, ok := v.(string); ok {
				t.Description = s
				continue
			}
			fallthrough
		default:
			if t.Extensions == nil {
				t.Extensions = NewObject()
			}
			t.Extensions.Set(k, v)
		}
	}
	return t
}

// DecodeJSON decodes a JSON token document, preserving key order.
func DecodeJSON(data []byte) (*Group, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	o, ok := v.(*Object)
	if !ok {
		return nil, ErrInvalidDocument
	}
	return GroupFromObject(o), nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			o := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				o.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return o, nil
		case '[':
			arr := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return x, nil
	}
}

// UnmarshalJSON decodes a token document into the group, preserving key order.
func (g *Group) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*g = *decoded
	return nil
}

// MarshalJSON encodes the group in source key order. Keys added since
// decoding follow, metadata before children.
func (g *Group) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Group) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	writeKey := func(k string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encodeValue(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		return nil
	}
	written := make(map[string]bool, len(g.layout))
	write := func(k string) error {
		if written[k] {
			return nil
		}
		if v, ok := g.Meta.Get(k); ok {
			written[k] = true
			if err := writeKey(k); err != nil {
				return err
			}
			return encodeValue(buf, v)
		}
		n, ok := g.children[k]
		if !ok {
			return nil
		}
		written[k] = true
		if err := writeKey(k); err != nil {
			return err
		}
		switch n := n.(type) {
		case *Token:
			return n.encode(buf)
		case *Group:
			return n.encode(buf)
		}
		buf.WriteString("null")
		return nil
	}
	for _, keys := range [][]string{g.layout, g.Meta.Keys(), g.keys} {
		for _, k := range keys {
			if err := write(k); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalJSON encodes the token as a DTCG token object.
func (t *Token) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Token) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, k := range t.keyOrder() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		var v any
		switch k {
		case KeyType:
			v = string(t.Type)
		case KeyValue:
			v = t.Value
		case KeyDescription:
			if t.Description != "" {
				v = t.Description
				break
			}
			fallthrough
		default:
			v, _ = t.Extensions.Get(k)
		}
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalJSON encodes the object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range x.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, x.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return encodeValue(buf, ObjectFromMap(x, keys))
	case *Group:
		return x.encode(buf)
	case *Token:
		return x.encode(buf)
	}
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(scratch.Bytes(), []byte("\n")))
	return nil
}

// CanonicalJSON returns a stable encoding of a value for structural comparison.
func CanonicalJSON(v any) string {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return buf.String()
}
