/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/tokengraph/resolver"
	"bennypowers.dev/tokengraph/token"
)

func index(pairs ...any) map[string]*token.Token {
	m := make(map[string]*token.Token)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(string)] = token.NewToken(token.TypeColor, pairs[i+1])
	}
	return m
}

func TestResolve_Literal(t *testing.T) {
	assert.Equal(t, "#fff", resolver.Resolve("#fff", index(), "a"))
	assert.Equal(t, 4.0, resolver.Resolve(4.0, index(), "a"))
}

func TestResolve_Chain(t *testing.T) {
	for length := 1; length <= 10; length++ {
		t.Run(fmt.Sprintf("length %d", length), func(t *testing.T) {
			var pairs []any
			for i := 0; i < length; i++ {
				pairs = append(pairs, fmt.Sprintf("t%d", i), fmt.Sprintf("{t%d}", i+1))
			}
			pairs = append(pairs, fmt.Sprintf("t%d", length), "#123456")
			tokens := index(pairs...)

			got := resolver.Resolve(tokens["t0"].Value, tokens, "t0")
			assert.Equal(t, "#123456", got)
		})
	}
}

func TestResolve_MissingReference(t *testing.T) {
	assert.Equal(t, "{nonexistent.path}", resolver.Resolve("{nonexistent.path}", index(), "a"))
}

func TestResolve_MissingDeepInChain(t *testing.T) {
	tokens := index("b", "{gone}")
	assert.Equal(t, "{gone}", resolver.Resolve("{b}", tokens, "a"))
}

func TestResolve_CycleTerminates(t *testing.T) {
	tokens := index("a", "{b}", "b", "{a}")

	got := resolver.Resolve(tokens["a"].Value, tokens, "a")
	assert.Equal(t, "{a}", got)

	again := resolver.Resolve(tokens["a"].Value, tokens, "a")
	assert.Equal(t, got, again, "fallback must be deterministic")
}

func TestResolve_SelfReference(t *testing.T) {
	tokens := index("a", "{a}")
	assert.Equal(t, "{a}", resolver.Resolve("{a}", tokens, "a"))
}

func TestResolve_CompositeValuesAreNotDereferenced(t *testing.T) {
	value := []any{"{a}"}
	assert.Equal(t, value, resolver.Resolve(value, index("a", "#fff"), "x"))
}

func TestResolveAll(t *testing.T) {
	resolved := resolver.ResolveAll(entries(
		"blue.500", "#3B82F6",
		"background.primary", "{blue.500}",
		"broken", "{nope}",
	))

	assert.Len(t, resolved, 3)
	assert.Equal(t, "#3B82F6", resolved[1].Value)
	assert.Equal(t, "blue.500", resolved[1].Reference)
	assert.Equal(t, "{nope}", resolved[2].Value)
	assert.Equal(t, "nope", resolved[2].Reference)
	assert.Empty(t, resolved[0].Reference)
}
