/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diff

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ColorDelta returns the CIEDE2000 distance between two CSS color strings.
// Alpha is ignored. The second result is false when either value is not a
// parseable color (aliases included).
func ColorDelta(before, after any) (float64, bool) {
	b, ok := parseColor(before)
	if !ok {
		return 0, false
	}
	a, ok := parseColor(after)
	if !ok {
		return 0, false
	}
	return b.DistanceCIEDE2000(a), true
}

func parseColor(v any) (colorful.Color, bool) {
	s, ok := v.(string)
	if !ok {
		return colorful.Color{}, false
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, true
}
