/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokengraph/token"
)

const sample = `{
  "color": {
    "$description": "Brand colors",
    "blue": {
      "500": { "$type": "color", "$value": "#3B82F6", "$description": "Primary blue" },
      "100": { "$type": "color", "$value": "#DBEAFE" }
    },
    "red": { "$value": "#EF4444", "$type": "color", "$extensions": { "com.example": { "locked": true } } }
  },
  "spacing": {
    "sm": { "$type": "dimension", "$value": 4 },
    "untyped": { "$value": "8px" }
  }
}`

func decode(t *testing.T, doc string) *token.Group {
	t.Helper()
	g, err := token.DecodeJSON([]byte(doc))
	require.NoError(t, err)
	return g
}

func TestFlatten_OrderAndPaths(t *testing.T) {
	g := decode(t, sample)
	entries := token.Flatten(g, "colors.json")

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
		assert.Equal(t, "colors.json", e.SourceFile)
	}
	assert.Equal(t, []string{"color.blue.500", "color.blue.100", "color.red", "spacing.sm"}, paths)
}

func TestFlatten_TokenRequiresTypeAndValue(t *testing.T) {
	g := decode(t, sample)

	_, ok := g.LookupToken("spacing.untyped")
	assert.False(t, ok, "object with $value but no $type is not a token")

	n, ok := g.Lookup("spacing.untyped")
	require.True(t, ok)
	_, isGroup := n.(*token.Group)
	assert.True(t, isGroup)
}

func TestDecodeJSON_Values(t *testing.T) {
	g := decode(t, sample)

	blue, ok := g.LookupToken("color.blue.500")
	require.True(t, ok)
	assert.Equal(t, token.TypeColor, blue.Type)
	assert.Equal(t, "#3B82F6", blue.Value)
	assert.Equal(t, "Primary blue", blue.Description)

	sm, ok := g.LookupToken("spacing.sm")
	require.True(t, ok)
	assert.Equal(t, float64(4), sm.Value)

	red, ok := g.LookupToken("color.red")
	require.True(t, ok)
	ext, ok := red.Extensions.Get("$extensions")
	require.True(t, ok)
	assert.IsType(t, &token.Object{}, ext)
}

func TestDecodeJSON_RootMustBeObject(t *testing.T) {
	_, err := token.DecodeJSON([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, token.ErrInvalidDocument)
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	g := decode(t, sample)

	first, err := json.Marshal(g)
	require.NoError(t, err)

	again := decode(t, string(first))
	second, err := json.Marshal(again)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(first), `"red":{"$value":"#EF4444","$type":"color"`)
}

func TestCanonicalJSON_NoHTMLEscaping(t *testing.T) {
	assert.Equal(t, `"a<b>&c"`, token.CanonicalJSON("a<b>&c"))
	assert.Equal(t, `{"b":1,"a":2}`, token.CanonicalJSON(token.ObjectFromMap(
		map[string]any{"a": 2.0, "b": 1.0}, []string{"b", "a"})))
	assert.Equal(t, `{"a":2,"b":1}`, token.CanonicalJSON(map[string]any{"b": 1, "a": 2}))
}

func TestGroup_InsertCreatesIntermediates(t *testing.T) {
	g := token.NewGroup()
	require.NoError(t, g.Insert("x.y.z", token.NewToken(token.TypeColor, "#000000")))

	tok, ok := g.LookupToken("x.y.z")
	require.True(t, ok)
	assert.Equal(t, "#000000", tok.Value)
	assert.Equal(t, []string{"x"}, g.Keys())
}

func TestGroup_InsertThroughTokenConflicts(t *testing.T) {
	g := token.NewGroup()
	require.NoError(t, g.Insert("x", token.NewToken(token.TypeColor, "#000000")))

	err := g.Insert("x.y", token.NewToken(token.TypeColor, "#111111"))
	assert.ErrorIs(t, err, token.ErrPathConflict)
}

func TestGroup_InsertKeepsPosition(t *testing.T) {
	g := decode(t, sample)
	require.NoError(t, g.Insert("color.blue.500", token.NewToken(token.TypeColor, "#000000")))

	var paths []string
	for _, e := range token.Flatten(g, "") {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, "color.blue.500", paths[0])
}

func TestGroup_RemovePrunesEmptiedGroups(t *testing.T) {
	g := token.NewGroup()
	require.NoError(t, g.Insert("a.b.c", token.NewToken(token.TypeNumber, 1.0)))
	require.NoError(t, g.Insert("a.d", token.NewToken(token.TypeNumber, 2.0)))

	assert.True(t, g.Remove("a.b.c"))
	_, ok := g.Lookup("a.b")
	assert.False(t, ok, "emptied group should be pruned")
	_, ok = g.Lookup("a.d")
	assert.True(t, ok)

	assert.False(t, g.Remove("a.missing"))
}

func TestGroup_RemoveKeepsDescribedGroup(t *testing.T) {
	g := decode(t, `{"a": {"$description": "keep me", "b": {"$type": "number", "$value": 1}}}`)
	assert.True(t, g.Remove("a.b"))
	_, ok := g.Lookup("a")
	assert.True(t, ok)
}

func TestGroup_RenameKeepsPosition(t *testing.T) {
	g := decode(t, sample)
	assert.True(t, g.Rename("color", "palette"))
	assert.Equal(t, []string{"palette", "spacing"}, g.Keys())

	assert.False(t, g.Rename("missing", "x"))
	assert.False(t, g.Rename("palette", "spacing"), "target key taken")
}

func TestGroup_CloneIsIndependent(t *testing.T) {
	g := decode(t, sample)
	c := g.Clone()

	require.NoError(t, c.Insert("color.green", token.NewToken(token.TypeColor, "#00FF00")))
	c.Remove("color.red")

	_, ok := g.LookupToken("color.green")
	assert.False(t, ok)
	_, ok = g.LookupToken("color.red")
	assert.True(t, ok)
}

func TestGroup_DeepCopySharesNoTokens(t *testing.T) {
	g := decode(t, sample)
	c := g.DeepCopy()

	orig, _ := g.LookupToken("color.red")
	copied, _ := c.LookupToken("color.red")
	assert.NotSame(t, orig, copied)
	assert.Equal(t, token.CanonicalJSON(orig), token.CanonicalJSON(copied))
}

func TestToken_WithValueLeavesOriginal(t *testing.T) {
	orig := token.NewToken(token.TypeColor, "#000000")
	changed := orig.WithValue("#FFFFFF")

	assert.Equal(t, "#000000", orig.Value)
	assert.Equal(t, "#FFFFFF", changed.Value)
}

func TestParseAlias(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{"simple", "{color.primary}", "color.primary", true},
		{"single segment", "{a}", "a", true},
		{"embedded", "1px solid {color.primary}", "", false},
		{"two refs", "{a} {b}", "", false},
		{"empty braces", "{}", "", false},
		{"number", 4.0, "", false},
		{"plain", "#FFF", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := token.ParseAlias(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseAlias(%v) = %q, %v; want %q, %v", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHasPathPrefix(t *testing.T) {
	assert.True(t, token.HasPathPrefix("color.red", "color"))
	assert.True(t, token.HasPathPrefix("color", "color"))
	assert.False(t, token.HasPathPrefix("colors.red", "color"))

	got, ok := token.ReplacePathPrefix("color.red.500", "color.red", "palette.red")
	assert.True(t, ok)
	assert.Equal(t, "palette.red.500", got)
}

func TestMarshalJSON_GroupKeepsMetadataPosition(t *testing.T) {
	src := `{"a":{"b":{"$type":"number","$value":1},"$description":"x"},"$extensions":{"k":1}}`
	g := decode(t, src)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))

	require.True(t, g.Rename("a", "z"))
	require.NoError(t, g.Insert("z.c", token.NewToken(token.TypeNumber, 2.0)))
	out, err = json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t,
		`{"z":{"b":{"$type":"number","$value":1},"$description":"x","c":{"$type":"number","$value":2}},"$extensions":{"k":1}}`,
		string(out))

	require.True(t, g.Delete("z"))
	require.NoError(t, g.Insert("z.b", token.NewToken(token.TypeNumber, 3.0)))
	out, err = json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, `{"$extensions":{"k":1},"z":{"b":{"$type":"number","$value":3}}}`, string(out))
	assert.False(t, g.Rename("z", "$extensions"), "metadata key taken")
}
