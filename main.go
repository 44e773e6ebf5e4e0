/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command tokengraph inspects, validates and edits multi-file DTCG design
// token sets.
package main

import (
	"os"

	"bennypowers.dev/tokengraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
