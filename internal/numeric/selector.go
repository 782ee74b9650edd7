package numeric

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/kay-kewl/fluid/internal/simerr"
)

var fixedSelector = regexp.MustCompile(`^(FIXED|FAST_FIXED)\((\d+),(\d+)\)$`)

// ParseSelector parses a numeric-type selector as specified in spec.md
// §6 ("FLOAT, DOUBLE, FIXED(N,K), FAST_FIXED(N,K)") and returns the zero
// value of that slot, to be used as the slot's conversion prototype
// everywhere a value of this type needs to be constructed from a real
// number (see Number.FromFloat).
func ParseSelector(selector string) (Boxed, error) {
	switch selector {
	case "FLOAT":
		return BoxFloat32(Float32(0)), nil
	case "DOUBLE":
		return BoxFloat64(Float64(0)), nil
	}

	m := fixedSelector.FindStringSubmatch(selector)
	if m == nil {
		return Boxed{}, fmt.Errorf("%w: %q", simerr.ErrInvalidType, selector)
	}

	n, err := strconv.ParseUint(m[2], 10, 8)
	if err != nil {
		return Boxed{}, fmt.Errorf("%w: %q: %v", simerr.ErrInvalidType, selector, err)
	}
	k, err := strconv.ParseUint(m[3], 10, 8)
	if err != nil {
		return Boxed{}, fmt.Errorf("%w: %q: %v", simerr.ErrInvalidType, selector, err)
	}
	if k >= n {
		return Boxed{}, fmt.Errorf("%w: %q: fraction bits must be less than total bits", simerr.ErrInvalidType, selector)
	}

	switch m[1] {
	case "FIXED":
		return BoxFixed(NewFixed(uint8(n), uint8(k))), nil
	default:
		return BoxFastFixed(NewFastFixed(uint8(n), uint8(k))), nil
	}
}
