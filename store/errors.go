/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package store

import (
	"errors"

	"bennypowers.dev/tokengraph/token"
)

var (
	// ErrNotLoaded is returned by mutations on a store that was never loaded.
	ErrNotLoaded = errors.New("store has not been loaded")

	// ErrTokenNotFound is returned when a path names no token.
	ErrTokenNotFound = errors.New("token not found")

	// ErrPathConflict is returned when a path runs through, or would replace,
	// a node of the other kind.
	ErrPathConflict = token.ErrPathConflict

	// ErrUnknownTheme is returned for a theme no file belongs to.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrUnknownFile is returned when exporting a file the store does not hold.
	ErrUnknownFile = errors.New("unknown file")

	// ErrNoChange is returned when a mutation would leave every file as it is.
	ErrNoChange = errors.New("mutation changes nothing")
)
