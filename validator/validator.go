/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks the integrity of a multi-file token set.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"bennypowers.dev/tokengraph/resolver"
	"bennypowers.dev/tokengraph/theme"
	"bennypowers.dev/tokengraph/token"
)

// Severity of a validation result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the kind of problem.
type Code string

const (
	CodeDuplicatePath Code = "DUPLICATE_PATH"
	CodeBrokenRef     Code = "BROKEN_REF"
	CodeCircularRef   Code = "CIRCULAR_REF"
	CodeInvalidValue  Code = "INVALID_VALUE"
	CodeTypeMismatch  Code = "TYPE_MISMATCH"
	CodeUnknownType   Code = "UNKNOWN_TYPE"
)

// Result represents one integrity problem.
type Result struct {
	// Path is the token path the problem is reported at.
	Path string `json:"path"`
	// File is the file containing the token.
	File string `json:"file,omitempty"`
	// Severity is error or warning.
	Severity Severity `json:"severity"`
	// Message describes what's wrong.
	Message string `json:"message"`
	// Code classifies the problem.
	Code Code `json:"code"`
	// Suggestion provides an actionable fix.
	Suggestion string `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (r Result) Error() string {
	var sb strings.Builder
	if r.File != "" {
		sb.WriteString(r.File)
		sb.WriteString(": ")
	}
	if r.Path != "" {
		sb.WriteString(r.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(r.Message)
	if r.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(r.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

var knownTypeList = func() string {
	names := make([]string, len(token.KnownTypes))
	for i, t := range token.KnownTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}()

var (
	hexColorPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	dimensionPattern = regexp.MustCompile(`^[\d.]+(px|rem|em|%|pt|vw|vh)?$`)
)

// Validate runs every check over all files of all themes. Checks are
// independent and run in a fixed order: duplicate paths, broken references,
// values, then circular references.
func Validate(files map[string]*token.Group) []Result {
	entries := flattenAll(files)

	var results []Result
	results = append(results, checkDuplicates(entries)...)
	results = append(results, checkReferences(entries)...)
	results = append(results, checkValues(entries)...)
	results = append(results, checkCycles(entries)...)
	return results
}

// flattenAll flattens every file in sorted key order.
func flattenAll(files map[string]*token.Group) []token.Entry {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var entries []token.Entry
	for _, k := range keys {
		entries = append(entries, token.Flatten(files[k], k)...)
	}
	return entries
}

// checkDuplicates reports paths defined by more than one file of the same
// theme layer. A theme variant overriding a base path is not a duplicate.
func checkDuplicates(entries []token.Entry) []Result {
	type key struct{ layer, path string }
	var order []key
	sources := make(map[key][]string)
	for _, e := range entries {
		k := key{theme.Of(e.SourceFile), e.Path}
		if _, ok := sources[k]; !ok {
			order = append(order, k)
		}
		sources[k] = append(sources[k], e.SourceFile)
	}

	var results []Result
	for _, k := range order {
		files := sources[k]
		if len(files) < 2 {
			continue
		}
		results = append(results, Result{
			Path:       k.path,
			File:       files[0],
			Severity:   SeverityError,
			Code:       CodeDuplicatePath,
			Message:    fmt.Sprintf("path is defined %d times (%s)", len(files), strings.Join(files, ", ")),
			Suggestion: "keep one definition or move the others into a theme variant",
		})
	}
	return results
}

// checkReferences reports aliases whose target is missing and, for present
// targets, aliases that point at a token of a different type.
func checkReferences(entries []token.Entry) []Result {
	byLayer := make(map[string]map[string]*token.Token)
	all := make(map[string]*token.Token)
	for _, e := range entries {
		layer := theme.Of(e.SourceFile)
		if byLayer[layer] == nil {
			byLayer[layer] = make(map[string]*token.Token)
		}
		byLayer[layer][e.Path] = e.Token
		all[e.Path] = e.Token
	}

	lookup := func(layer, path string) (*token.Token, bool) {
		if t, ok := byLayer[layer][path]; ok {
			return t, true
		}
		if t, ok := byLayer[theme.Default][path]; ok {
			return t, true
		}
		t, ok := all[path]
		return t, ok
	}

	var results []Result
	for _, e := range entries {
		ref, ok := e.Token.Reference()
		if !ok {
			continue
		}
		target, ok := lookup(theme.Of(e.SourceFile), ref)
		if !ok {
			results = append(results, Result{
				Path:       e.Path,
				File:       e.SourceFile,
				Severity:   SeverityError,
				Code:       CodeBrokenRef,
				Message:    fmt.Sprintf("reference %s points to a token that does not exist", token.FormatAlias(ref)),
				Suggestion: "check the referenced path for typos",
			})
			continue
		}
		if target.Type != "" && e.Token.Type != "" && target.Type != e.Token.Type {
			results = append(results, Result{
				Path:     e.Path,
				File:     e.SourceFile,
				Severity: SeverityWarning,
				Code:     CodeTypeMismatch,
				Message: fmt.Sprintf("%s token references %s token %s",
					e.Token.Type, target.Type, token.FormatAlias(ref)),
			})
		}
	}
	return results
}

// checkValues flags types outside the fixed set and validates literal values
// of the types with a known format.
func checkValues(entries []token.Entry) []Result {
	var results []Result
	for _, e := range entries {
		if !e.Token.Type.IsKnown() {
			results = append(results, Result{
				Path:       e.Path,
				File:       e.SourceFile,
				Severity:   SeverityWarning,
				Code:       CodeUnknownType,
				Message:    fmt.Sprintf("unknown type %s", strconv.Quote(string(e.Token.Type))),
				Suggestion: "use one of " + knownTypeList,
			})
			continue
		}
		if e.Token.IsAlias() {
			continue
		}
		if r, ok := checkValue(e); !ok {
			results = append(results, r)
		}
	}
	return results
}

func checkValue(e token.Entry) (Result, bool) {
	invalid := func(severity Severity, message, suggestion string) (Result, bool) {
		return Result{
			Path:       e.Path,
			File:       e.SourceFile,
			Severity:   severity,
			Code:       CodeInvalidValue,
			Message:    message,
			Suggestion: suggestion,
		}, false
	}

	switch e.Token.Type {
	case token.TypeColor:
		s, ok := e.Token.Value.(string)
		if !ok || !hexColorPattern.MatchString(s) {
			return invalid(SeverityError,
				fmt.Sprintf("invalid color value %s", describe(e.Token.Value)),
				"use a hex color like #RRGGBB")
		}
	case token.TypeDimension:
		switch v := e.Token.Value.(type) {
		case float64:
		case string:
			if !dimensionPattern.MatchString(v) {
				return invalid(SeverityError,
					fmt.Sprintf("invalid dimension value %s", describe(v)),
					"use a number with an optional px, rem, em, %, pt, vw or vh unit")
			}
		default:
			return invalid(SeverityError,
				fmt.Sprintf("invalid dimension value %s", describe(v)),
				"use a number with an optional unit")
		}
	case token.TypeFontWeight:
		w, ok := numeric(e.Token.Value)
		if !ok || w < 1 || w > 1000 {
			return invalid(SeverityWarning,
				fmt.Sprintf("font weight %s is not a number between 1 and 1000", describe(e.Token.Value)),
				"use a numeric weight such as 400 or 700")
		}
	}
	return Result{}, true
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func describe(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return token.CanonicalJSON(v)
}

// checkCycles reports one result per alias cycle, at the cycle's first path.
func checkCycles(entries []token.Entry) []Result {
	fileOf := make(map[string]string)
	for _, e := range entries {
		if _, ok := fileOf[e.Path]; !ok {
			fileOf[e.Path] = e.SourceFile
		}
	}

	var results []Result
	for _, cycle := range resolver.DetectCircularReferences(entries) {
		results = append(results, Result{
			Path:       cycle[0],
			File:       fileOf[cycle[0]],
			Severity:   SeverityError,
			Code:       CodeCircularRef,
			Message:    "circular reference: " + strings.Join(cycle, " -> "),
			Suggestion: "point one of the tokens in the cycle at a literal value",
		})
	}
	return results
}

// HasErrors reports whether any result has error severity.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the results with the given severity.
func Filter(results []Result, severity Severity) []Result {
	var out []Result
	for _, r := range results {
		if r.Severity == severity {
			out = append(out, r)
		}
	}
	return out
}
