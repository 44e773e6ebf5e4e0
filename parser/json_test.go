/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokengraph/internal/mapfs"
	"bennypowers.dev/tokengraph/parser"
	"bennypowers.dev/tokengraph/token"
)

func TestParse_JSONWithComments(t *testing.T) {
	data := []byte(`// brand palette
{
  /* primary */
  "blue": { "500": { "$type": "color", "$value": "#3B82F6" } },
}`)
	g, err := parser.Parse(data)
	require.NoError(t, err)

	tok, ok := g.LookupToken("blue.500")
	require.True(t, ok)
	assert.Equal(t, "#3B82F6", tok.Value)
}

func TestParse_YAMLMatchesJSON(t *testing.T) {
	yamlData := []byte(`
spacing:
  sm:
    $type: dimension
    $value: 4
  md:
    $type: dimension
    $value: 8px
color:
  primary:
    $type: color
    $value: "{blue.500}"
`)
	jsonData := []byte(`{
  "spacing": {
    "sm": { "$type": "dimension", "$value": 4 },
    "md": { "$type": "dimension", "$value": "8px" }
  },
  "color": { "primary": { "$type": "color", "$value": "{blue.500}" } }
}`)

	fromYAML, err := parser.Parse(yamlData)
	require.NoError(t, err)
	fromJSON, err := parser.Parse(jsonData)
	require.NoError(t, err)

	assert.Equal(t, token.CanonicalJSON(fromJSON), token.CanonicalJSON(fromYAML))

	sm, ok := fromYAML.LookupToken("spacing.sm")
	require.True(t, ok)
	assert.Equal(t, float64(4), sm.Value)
}

func TestParse_YAMLRootMustBeObject(t *testing.T) {
	_, err := parser.Parse([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, token.ErrInvalidDocument)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := parser.Parse([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestMarshal_Format(t *testing.T) {
	g, err := parser.Parse([]byte(`{"a":{"$type":"fontFamily","$value":"Fira <Sans> & Co"},"b":{}}`))
	require.NoError(t, err)

	out, err := parser.Marshal(g)
	require.NoError(t, err)

	want := `{
  "a": {
    "$type": "fontFamily",
    "$value": "Fira <Sans> & Co"
  },
  "b": {}
}
`
	assert.Equal(t, want, string(out))
}

func TestMarshal_RoundTripIsStable(t *testing.T) {
	src := `{
  "shadow": {
    "$type": "shadow",
    "$value": {
      "offsetX": "0px",
      "offsetY": "1px",
      "blur": "2px",
      "color": "#00000033"
    },
    "$description": "elevation 1"
  }
}
`
	g, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	out, err := parser.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestParseFile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/project/tokens.json", `{"a": {"$type": "number", "$value": 1}}`, 0644)

	g, err := parser.ParseFile(mfs, "/project/tokens.json")
	require.NoError(t, err)
	_, ok := g.LookupToken("a")
	assert.True(t, ok)

	_, err = parser.ParseFile(mfs, "/project/missing.json")
	assert.ErrorContains(t, err, "missing.json")
}
