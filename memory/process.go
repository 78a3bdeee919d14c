package memory

import "errors"

// ErrUnsupported reports that live process scanning is not available on this
// platform. Buffer and Image backends work everywhere.
var ErrUnsupported = errors.New("live process scanning is not supported on this platform")
