// Package fallback holds the result-or-default combinator used wherever a
// failure should degrade to a substitute value instead of propagating.
package fallback

// Or runs op and returns its value. When op fails, onErr (if non-nil) is
// called with the error and def is returned instead.
func Or[T any](op func() (T, error), def T, onErr func(error)) T {
	return OrElse(op, func(err error) T {
		if onErr != nil {
			onErr(err)
		}
		return def
	})
}

// OrElse runs op and returns its value. When op fails, the value is
// produced by alt, which receives the error.
func OrElse[T any](op func() (T, error), alt func(error) T) T {
	v, err := op()
	if err != nil {
		return alt(err)
	}
	return v
}
