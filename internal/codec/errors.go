package codec

import "errors"

// ErrFormat means the input text is not a readable backup in the selected
// format: blank input, unparseable structure, or missing mandatory columns.
var ErrFormat = errors.New("unreadable backup format")
