// Package render persists and presents reflector lists: a compact binary
// format, aligned text tables and stick pattern charts.
package render

import "errors"

var (
	errEmpty     = errors.New("empty reflector list")
	errBadMagic  = errors.New("not a reflector file: bad magic")
	errBadRecord = errors.New("invalid reflector record")
)
