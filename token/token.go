/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the design token tree: tokens, groups, paths and flattening.
package token

// Type is a DTCG token type such as "color" or "dimension".
type Type string

// Token types understood by the engine. Other strings are carried through untouched.
const (
	TypeColor       Type = "color"
	TypeDimension   Type = "dimension"
	TypeFontFamily  Type = "fontFamily"
	TypeFontWeight  Type = "fontWeight"
	TypeDuration    Type = "duration"
	TypeCubicBezier Type = "cubicBezier"
	TypeNumber      Type = "number"
	TypeStrokeStyle Type = "strokeStyle"
	TypeBorder      Type = "border"
	TypeTransition  Type = "transition"
	TypeShadow      Type = "shadow"
	TypeGradient    Type = "gradient"
	TypeTypography  Type = "typography"
	TypeFontStyle   Type = "fontStyle"
)

// KnownTypes lists the fixed type set in declaration order.
var KnownTypes = []Type{
	TypeColor, TypeDimension, TypeFontFamily, TypeFontWeight, TypeDuration,
	TypeCubicBezier, TypeNumber, TypeStrokeStyle, TypeBorder, TypeTransition,
	TypeShadow, TypeGradient, TypeTypography, TypeFontStyle,
}

// IsKnown reports whether t is one of KnownTypes.
func (t Type) IsKnown() bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Reserved keys of a token object.
const (
	KeyType        = "$type"
	KeyValue       = "$value"
	KeyDescription = "$description"
)

// Node is either a *Token or a *Group.
type Node interface {
	node()
}

// Token represents a design token leaf following the DTCG format.
// See: https://design-tokens.github.io/community-group/format/
//
// Tokens are immutable once built: use the With* methods to derive a changed copy.
type Token struct {
	// Type is the token's $type.
	Type Type

	// Value is the raw $value: a string (possibly an alias), float64, bool,
	// []any or *Object.
	Value any

	// Description is the optional $description.
	Description string

	// Extensions holds any other $-prefixed keys ($extensions, $deprecated, ...).
	Extensions *Object

	// keys is the original key order of the token object, used when encoding.
	keys []string
}

func (*Token) node() {}

// NewToken creates a token with the given type and value.
func NewToken(typ Type, value any) *Token {
	return &Token{Type: typ, Value: CloneValue(value)}
}

// WithValue returns a copy of the token with its value replaced.
func (t *Token) WithValue(value any) *Token {
	c := t.Clone()
	c.Value = CloneValue(value)
	return c
}

// WithDescription returns a copy of the token with its description replaced.
func (t *Token) WithDescription(description string) *Token {
	c := t.Clone()
	c.Description = description
	if description != "" && !containsKey(c.keys, KeyDescription) && len(c.keys) > 0 {
		c.keys = append(c.keys, KeyDescription)
	}
	return c
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := &Token{
		Type:        t.Type,
		Value:       CloneValue(t.Value),
		Description: t.Description,
		keys:        append([]string(nil), t.keys...),
	}
	if t.Extensions != nil {
		c.Extensions = t.Extensions.Clone()
	}
	return c
}

// Reference returns the one-hop alias target of the token's value, if any.
func (t *Token) Reference() (string, bool) {
	return ParseAlias(t.Value)
}

// IsAlias reports whether the token's value is an alias.
func (t *Token) IsAlias() bool {
	_, ok := t.Reference()
	return ok
}

// keyOrder returns the keys to encode, in order.
func (t *Token) keyOrder() []string {
	var order []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	for _, k := range t.keys {
		if t.hasKey(k) {
			add(k)
		}
	}
	add(KeyType)
	add(KeyValue)
	if t.Description != "" {
		add(KeyDescription)
	}
	if t.Extensions != nil {
		for _, k := range t.Extensions.Keys() {
			add(k)
		}
	}
	return order
}

func (t *Token) hasKey(k string) bool {
	switch k {
	case KeyType, KeyValue:
		return true
	case KeyDescription:
		if t.Description != "" {
			return true
		}
	}
	if t.Extensions == nil {
		return false
	}
	_, ok := t.Extensions.Get(k)
	return ok
}

func containsKey(keys []string, k string) bool {
	for _, existing := range keys {
		if existing == k {
			return true
		}
	}
	return false
}
