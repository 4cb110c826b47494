package video

import (
	"errors"
	"fmt"
)

// ErrBayerShape indicates a buffer that cannot be packed into or unpacked
// from Bayer planes.
var ErrBayerShape = errors.New("invalid shape for bayer planes")

// violation reports a broken precondition. It never returns.
func violation(format string, args ...any) {
	panic(fmt.Sprintf("video: "+format, args...))
}
