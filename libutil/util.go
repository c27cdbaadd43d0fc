package libutil

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	Rad2Deg = float32(180 / math.Pi)
	Deg2Rad = float32(math.Pi / 180)
	Pi      = float32(math.Pi)
)

const InvalidAddress uintptr = 0xffff_ffff_ffff_ffff

type Deleter interface {
	Delete()
}

// Clamp limits value to the closed range [lo, hi].
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Lerp interpolates linearly between a (t = 0) and b (t = 1).
func Lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

// DeleteAll deletes every non-nil resource in order.
func DeleteAll(resources ...Deleter) {
	for _, r := range resources {
		if r != nil {
			r.Delete()
		}
	}
}
