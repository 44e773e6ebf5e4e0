/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokengraph/parser"
	"bennypowers.dev/tokengraph/token"
	"bennypowers.dev/tokengraph/validator"
)

func readTestdata(t *testing.T, name string) *token.Group {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read testdata/%s: %v", name, err)
	}
	g, err := parser.Parse(data)
	require.NoError(t, err)
	return g
}

func byCode(results []validator.Result, code validator.Code) []validator.Result {
	var out []validator.Result
	for _, r := range results {
		if r.Code == code {
			out = append(out, r)
		}
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	results := validator.Validate(map[string]*token.Group{
		"tokens.json": readTestdata(t, "valid.json"),
	})
	assert.Empty(t, results)
	assert.False(t, validator.HasErrors(results))
}

func TestValidate_CircularReference(t *testing.T) {
	results := validator.Validate(map[string]*token.Group{
		"tokens.json": readTestdata(t, "circular.json"),
	})

	cycles := byCode(results, validator.CodeCircularRef)
	require.Len(t, cycles, 1)
	assert.Equal(t, "a", cycles[0].Path)
	assert.Equal(t, "tokens.json", cycles[0].File)
	assert.Equal(t, validator.SeverityError, cycles[0].Severity)
	assert.Contains(t, cycles[0].Message, "a -> b -> c -> a")
	assert.Empty(t, byCode(results, validator.CodeBrokenRef))
}

func TestValidate_InvalidValues(t *testing.T) {
	results := validator.Validate(map[string]*token.Group{
		"tokens.json": readTestdata(t, "invalid-values.json"),
	})

	invalid := byCode(results, validator.CodeInvalidValue)
	got := make(map[string]validator.Severity)
	for _, r := range invalid {
		got[r.Path] = r.Severity
	}

	assert.Equal(t, map[string]validator.Severity{
		"color.functional": validator.SeverityError,
		"size.calc":        validator.SeverityError,
		"size.flag":        validator.SeverityError,
		"weight.keyword":   validator.SeverityWarning,
		"weight.heavy":     validator.SeverityWarning,
		"weight.nan":       validator.SeverityWarning,
		"weight.infinite":  validator.SeverityWarning,
	}, got)
}

func TestValidate_UnknownType(t *testing.T) {
	g, err := parser.Parse([]byte(`{
		"size": {"$type": "size", "$value": "not-checked"},
		"alias": {"$type": "spacing", "$value": "{size}"},
		"fine": {"$type": "number", "$value": 1}
	}`))
	require.NoError(t, err)

	results := validator.Validate(map[string]*token.Group{"tokens.json": g})
	unknown := byCode(results, validator.CodeUnknownType)
	require.Len(t, unknown, 2)
	assert.Equal(t, "size", unknown[0].Path)
	assert.Equal(t, validator.SeverityWarning, unknown[0].Severity)
	assert.Contains(t, unknown[0].Message, `"size"`)
	assert.Contains(t, unknown[0].Suggestion, "fontWeight")
	assert.Equal(t, "alias", unknown[1].Path)
	assert.Empty(t, byCode(results, validator.CodeInvalidValue))
	assert.False(t, validator.HasErrors(results))
}

func TestValidate_BrokenAndMismatchedReferences(t *testing.T) {
	results := validator.Validate(map[string]*token.Group{
		"tokens.json": readTestdata(t, "broken-refs.json"),
	})

	broken := byCode(results, validator.CodeBrokenRef)
	require.Len(t, broken, 1)
	assert.Equal(t, "text.primary", broken[0].Path)
	assert.Contains(t, broken[0].Message, "{palette.missing}")

	mismatch := byCode(results, validator.CodeTypeMismatch)
	require.Len(t, mismatch, 1)
	assert.Equal(t, "text.size", mismatch[0].Path)
	assert.Equal(t, validator.SeverityWarning, mismatch[0].Severity)
}

func TestValidate_DuplicatePaths(t *testing.T) {
	color := func() *token.Group {
		g := token.NewGroup()
		require.NoError(t, g.Insert("brand.primary", token.NewToken(token.TypeColor, "#FF6B35")))
		return g
	}

	results := validator.Validate(map[string]*token.Group{
		"a.json":      color(),
		"b.json":      color(),
		"a.dark.json": color(),
	})

	dups := byCode(results, validator.CodeDuplicatePath)
	require.Len(t, dups, 1, "a theme override is not a duplicate")
	assert.Equal(t, "brand.primary", dups[0].Path)
	assert.Contains(t, dups[0].Message, "2 times")
	assert.Contains(t, dups[0].Message, "a.json, b.json")
}

func TestValidate_ChecksInactiveThemes(t *testing.T) {
	dark := token.NewGroup()
	require.NoError(t, dark.Insert("bg", token.NewToken(token.TypeColor, "{nowhere}")))

	results := validator.Validate(map[string]*token.Group{
		"colors.json":      token.NewGroup(),
		"colors.dark.json": dark,
	})

	broken := byCode(results, validator.CodeBrokenRef)
	require.Len(t, broken, 1)
	assert.Equal(t, "colors.dark.json", broken[0].File)
}

func TestValidate_CheckOrder(t *testing.T) {
	g := token.NewGroup()
	require.NoError(t, g.Insert("a", token.NewToken(token.TypeColor, "{a}")))
	require.NoError(t, g.Insert("b", token.NewToken(token.TypeColor, "{gone}")))
	require.NoError(t, g.Insert("c", token.NewToken(token.TypeColor, "red")))

	results := validator.Validate(map[string]*token.Group{"x.json": g, "y.json": g})

	var codes []validator.Code
	for _, r := range results {
		if len(codes) == 0 || codes[len(codes)-1] != r.Code {
			codes = append(codes, r.Code)
		}
	}
	assert.Equal(t, []validator.Code{
		validator.CodeDuplicatePath,
		validator.CodeBrokenRef,
		validator.CodeInvalidValue,
		validator.CodeCircularRef,
	}, codes)
}

func TestResult_Error(t *testing.T) {
	r := validator.Result{
		File:       "tokens.json",
		Path:       "color.bg",
		Message:    "invalid color value",
		Suggestion: "use a hex color",
	}
	assert.Equal(t, "tokens.json: color.bg: invalid color value (use a hex color)", r.Error())

	bare := validator.Result{Message: "oops"}
	assert.False(t, strings.Contains(bare.Error(), ":"))
}

func TestFilter(t *testing.T) {
	results := []validator.Result{
		{Severity: validator.SeverityWarning},
		{Severity: validator.SeverityError},
		{Severity: validator.SeverityWarning},
	}
	assert.Len(t, validator.Filter(results, validator.SeverityWarning), 2)
	assert.True(t, validator.HasErrors(results))
	assert.False(t, validator.HasErrors(validator.Filter(results, validator.SeverityWarning)))
}
