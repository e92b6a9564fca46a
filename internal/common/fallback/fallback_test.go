package fallback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOr(t *testing.T) {
	var seen error
	got := Or(func() (string, error) { return "", errors.New("generation failed") }, "default", func(err error) { seen = err })
	assert.Equal(t, "default", got)
	assert.EqualError(t, seen, "generation failed")

	got = Or(func() (string, error) { return "value", nil }, "default", func(error) { t.Fatal("onErr must not run on success") })
	assert.Equal(t, "value", got)

	assert.Equal(t, 7, Or(func() (int, error) { return 0, errors.New("x") }, 7, nil))
}

func TestOrElse(t *testing.T) {
	calls := 0
	got := OrElse(func() (int, error) { return 0, errors.New("send failed") }, func(err error) int {
		calls++
		return 42
	})
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)

	got = OrElse(func() (int, error) { return 1, nil }, func(error) int {
		calls++
		return 0
	})
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, calls)
}
