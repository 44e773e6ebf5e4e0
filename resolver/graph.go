/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver provides token reference resolution.
package resolver

import (
	"bennypowers.dev/tokengraph/token"
)

// DependencyGraph represents a directed graph of token dependencies.
// Edges run from an alias token to the path it references.
type DependencyGraph struct {
	order        []string
	dependencies map[string][]string
	dependents   map[string][]string
	nodes        map[string]bool
}

// BuildDependencyGraph builds a dependency graph from flattened tokens.
// The same path may appear more than once (duplicates, theme variants); its
// edges are merged.
func BuildDependencyGraph(entries []token.Entry) *DependencyGraph {
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
		nodes:        make(map[string]bool),
	}

	for _, e := range entries {
		if !graph.nodes[e.Path] {
			graph.nodes[e.Path] = true
			graph.order = append(graph.order, e.Path)
		}
	}

	for _, e := range entries {
		ref, ok := e.Token.Reference()
		if !ok || contains(graph.dependencies[e.Path], ref) {
			continue
		}
		graph.dependencies[e.Path] = append(graph.dependencies[e.Path], ref)
		graph.dependents[ref] = append(graph.dependents[ref], e.Path)
	}

	return graph
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Dependencies returns the paths that the given token references.
func (g *DependencyGraph) Dependencies(path string) []string {
	if deps, ok := g.dependencies[path]; ok {
		return deps
	}
	return []string{}
}

// Dependents returns the paths of tokens that reference the given token.
func (g *DependencyGraph) Dependents(path string) []string {
	if deps, ok := g.dependents[path]; ok {
		return deps
	}
	return []string{}
}

// HasCycle returns true if the graph contains a circular dependency.
func (g *DependencyGraph) HasCycle() bool {
	return len(g.FindCycles()) > 0
}

// FindCycles returns every cycle reachable in the graph. Each cycle starts and
// ends with the node that closed it, e.g. [a b c a]. Scanning continues after
// the first cycle so that disjoint cycles are all reported.
func (g *DependencyGraph) FindCycles() [][]string {
	var cycles [][]string
	globalVisited := make(map[string]bool)
	stackSet := make(map[string]bool)
	var stack []string

	var visit func(node string)
	visit = func(node string) {
		if stackSet[node] {
			start := len(stack) - 1
			for start >= 0 && stack[start] != node {
				start--
			}
			cycle := append(append([]string(nil), stack[start:]...), node)
			cycles = append(cycles, cycle)
			return
		}
		if globalVisited[node] {
			return
		}
		globalVisited[node] = true
		stackSet[node] = true
		stack = append(stack, node)

		for _, dep := range g.dependencies[node] {
			visit(dep)
		}

		stack = stack[:len(stack)-1]
		stackSet[node] = false
	}

	for _, node := range g.order {
		visit(node)
	}
	return cycles
}

// DetectCircularReferences returns every alias cycle among the given tokens.
func DetectCircularReferences(entries []token.Entry) [][]string {
	return BuildDependencyGraph(entries).FindCycles()
}
