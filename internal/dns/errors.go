package dns

import "errors"

// ErrMalformed is the sentinel error for messages the codec cannot safely
// decode: truncated headers, label sequences that run past the buffer,
// compression pointers (unsupported on the inbound path), or queries that
// carry no question. Wrap it with fmt.Errorf("context: %w", ErrMalformed)
// to add detail; callers match with errors.Is.
//
// A malformed message is dropped by the responder without a reply.
var ErrMalformed = errors.New("malformed dns message")
