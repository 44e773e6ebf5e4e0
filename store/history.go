/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package store

import (
	"time"

	"bennypowers.dev/tokengraph/token"
)

// Snapshot is the file map at one point in history. Its files are never
// mutated after the snapshot is taken.
type Snapshot struct {
	Files     map[string]*token.Group
	Timestamp time.Time
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{Files: s.files, Timestamp: s.now()}
}

// pushBounded appends snap and evicts the oldest entries beyond limit.
func pushBounded(stack []Snapshot, snap Snapshot, limit int) []Snapshot {
	stack = append(stack, snap)
	if over := len(stack) - limit; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}

// commit installs next as the current file map after a successful mutation.
func (s *Store) commit(next map[string]*token.Group) {
	s.undo = pushBounded(s.undo, s.snapshot(), s.undoLimit)
	s.redo = nil
	s.files = next
	s.refresh()
}

// Undo restores the files from before the last mutation. It reports false,
// and does nothing, when there is nothing to undo.
func (s *Store) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = pushBounded(s.redo, s.snapshot(), s.undoLimit)
	s.files = prev.Files
	s.refresh()
	return true
}

// Redo reapplies the last undone mutation. It reports false, and does
// nothing, when there is nothing to redo.
func (s *Store) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = pushBounded(s.undo, s.snapshot(), s.undoLimit)
	s.files = next.Files
	s.refresh()
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Store) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would do anything.
func (s *Store) CanRedo() bool {
	return len(s.redo) > 0
}

// History returns copies of the undo snapshots, oldest first.
func (s *Store) History() []Snapshot {
	out := make([]Snapshot, len(s.undo))
	for i, snap := range s.undo {
		files := make(map[string]*token.Group, len(snap.Files))
		for name, g := range snap.Files {
			files[name] = g.DeepCopy()
		}
		out[i] = Snapshot{Files: files, Timestamp: snap.Timestamp}
	}
	return out
}
