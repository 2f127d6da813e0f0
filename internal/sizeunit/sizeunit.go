// Package sizeunit parses the CLI's human-readable size grammar, e.g.
// "1mb" -> 1048576. It is a collaborator of the engine, not part of the
// core archive format (spec §1).
package sizeunit

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// Parse converts the grammar INT ("" | "kb" | "mb" | "gb"), case
// insensitive, interpreted in powers of 1024, into a byte count.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	unit := int64(1)
	numPart := lower
	switch {
	case strings.HasSuffix(lower, "kb"):
		unit = kb
		numPart = strings.TrimSuffix(lower, "kb")
	case strings.HasSuffix(lower, "mb"):
		unit = mb
		numPart = strings.TrimSuffix(lower, "mb")
	case strings.HasSuffix(lower, "gb"):
		unit = gb
		numPart = strings.TrimSuffix(lower, "gb")
	}

	numPart = strings.TrimSpace(numPart)
	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sizeunit: invalid size %q: %w", s, err)
	}
	return n * unit, nil
}
