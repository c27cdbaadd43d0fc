package libutil_test

import (
	"errors"
	"fmt"
	"testing"

	"learn-gl/libutil"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), libutil.Clamp(float32(-3), 1, 100))
	assert.Equal(t, float32(100), libutil.Clamp(float32(201), 1, 100))
	assert.Equal(t, float32(42.5), libutil.Clamp(float32(42.5), 1, 100))
	assert.Equal(t, 7, libutil.Clamp(7, 7, 7))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(2), libutil.Lerp(2, 4, 0))
	assert.Equal(t, float32(4), libutil.Lerp(2, 4, 1))
	assert.InDelta(t, 3, libutil.Lerp(2, 4, 0.5), 1e-6)
}

type countingDeleter struct{ n *int }

func (d countingDeleter) Delete() { *d.n++ }

func TestDeleteAll(t *testing.T) {
	n := 0
	libutil.DeleteAll(countingDeleter{&n}, nil, countingDeleter{&n})
	assert.Equal(t, 2, n)
}

func TestFormatErrorChain(t *testing.T) {
	root := errors.New("file does not exist")
	mid := fmt.Errorf("could not read shader %q: %w", "cube.vert", root)
	top := fmt.Errorf("could not load program %q: %w", "cube", mid)

	expected := "file does not exist\n" +
		"    Which caused the following issue:\n" +
		"could not read shader \"cube.vert\"\n" +
		"    Which caused the following issue:\n" +
		"could not load program \"cube\"\n"
	assert.Equal(t, expected, libutil.FormatErrorChain(top))
}

func TestFormatErrorChainSingle(t *testing.T) {
	assert.Equal(t, "boom\n", libutil.FormatErrorChain(errors.New("boom")))
	assert.Equal(t, "", libutil.FormatErrorChain(nil))
}

func TestFormatErrorChainJoined(t *testing.T) {
	err := fmt.Errorf("setup: %w", errors.Join(errors.New("first"), errors.New("second")))
	out := libutil.FormatErrorChain(err)
	assert.Contains(t, out, "first\n")
	assert.Contains(t, out, "setup")
}
