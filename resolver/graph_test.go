/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver_test

import (
	"reflect"
	"testing"

	"bennypowers.dev/tokengraph/resolver"
	"bennypowers.dev/tokengraph/token"
)

func entries(pairs ...string) []token.Entry {
	var out []token.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, token.Entry{
			Path:       pairs[i],
			Token:      token.NewToken(token.TypeColor, pairs[i+1]),
			SourceFile: "tokens.json",
		})
	}
	return out
}

func TestDependencyGraph_NoCycle(t *testing.T) {
	graph := resolver.BuildDependencyGraph(entries(
		"a", "1",
		"b", "{a}",
		"c", "{b}",
	))

	if graph.HasCycle() {
		t.Error("expected no cycle")
	}
}

func TestDependencyGraph_Cycle(t *testing.T) {
	graph := resolver.BuildDependencyGraph(entries(
		"a", "{c}",
		"b", "{a}",
		"c", "{b}",
	))

	if !graph.HasCycle() {
		t.Error("expected cycle")
	}

	cycles := graph.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
	want := []string{"a", "c", "b", "a"}
	if !reflect.DeepEqual(cycles[0], want) {
		t.Errorf("cycle = %v, want %v", cycles[0], want)
	}
}

func TestDependencyGraph_DisjointCycles(t *testing.T) {
	graph := resolver.BuildDependencyGraph(entries(
		"a", "{b}",
		"b", "{a}",
		"x", "{y}",
		"y", "{x}",
		"z", "{z}",
		"ok", "#fff",
	))

	cycles := graph.FindCycles()
	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycles, got %d: %v", len(cycles), cycles)
	}
	if cycles[0][0] != "a" || cycles[1][0] != "x" || cycles[2][0] != "z" {
		t.Errorf("unexpected cycle order: %v", cycles)
	}
}

func TestDependencyGraph_CycleBehindTail(t *testing.T) {
	// tail -> a -> b -> a: the cycle excludes the tail.
	cycles := resolver.DetectCircularReferences(entries(
		"tail", "{a}",
		"a", "{b}",
		"b", "{a}",
	))
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %v", cycles)
	}
	if !reflect.DeepEqual(cycles[0], []string{"a", "b", "a"}) {
		t.Errorf("cycle = %v", cycles[0])
	}
}

func TestDependencyGraph_Dependents(t *testing.T) {
	graph := resolver.BuildDependencyGraph(entries(
		"base", "#FF6B35",
		"primary", "{base}",
		"accent", "{base}",
	))

	if got := graph.Dependents("base"); !reflect.DeepEqual(got, []string{"primary", "accent"}) {
		t.Errorf("Dependents(base) = %v", got)
	}
	if got := graph.Dependencies("primary"); !reflect.DeepEqual(got, []string{"base"}) {
		t.Errorf("Dependencies(primary) = %v", got)
	}
	if got := graph.Dependencies("base"); len(got) != 0 {
		t.Errorf("Dependencies(base) = %v, want empty", got)
	}
}

func TestDependencyGraph_MissingTargetIsNotACycle(t *testing.T) {
	graph := resolver.BuildDependencyGraph(entries("a", "{missing}"))
	if graph.HasCycle() {
		t.Error("expected no cycle for a dangling reference")
	}
}
