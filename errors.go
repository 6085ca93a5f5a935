// SPDX-License-Identifier: EPL-2.0

package audsrc

import "errors"

// ErrUnsupportedFormat is returned when no decoder is registered for the
// extension of a file.
var ErrUnsupportedFormat = errors.New("unsupported audio file format")
