/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package store

import (
	"fmt"

	"bennypowers.dev/tokengraph/parser"
	"bennypowers.dev/tokengraph/token"
)

// ExportAsJSON returns a deep copy of every file, safe for the caller to
// modify or serialize.
func (s *Store) ExportAsJSON() map[string]*token.Group {
	return deepCopy(s.files)
}

// ExportFile encodes one file in the on-disk format.
func (s *Store) ExportFile(file string) ([]byte, error) {
	g, ok := s.files[file]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, file)
	}
	return parser.Marshal(g)
}
