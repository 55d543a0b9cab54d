package models

import "fmt"

// DecodeErrorKind distinguishes the ways a well-formed RPC response can
// still fail to decode.
type DecodeErrorKind int

const (
	// MalformedPayload means the payload violates a structural
	// invariant, such as balance arrays not matching the account keys.
	MalformedPayload DecodeErrorKind = iota
	// UnsupportedEncoding means the transaction envelope could not be
	// deserialized from the requested encoding.
	UnsupportedEncoding
	// EmptyResult means the RPC answered but carried no record.
	EmptyResult
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedPayload:
		return "malformed payload"
	case UnsupportedEncoding:
		return "unsupported encoding"
	case EmptyResult:
		return "empty result"
	default:
		return "unknown"
	}
}

// DecodeError reports a payload that could not be normalized into a
// view model. Decoding is all-or-nothing: a DecodeError never comes
// with a partial view.
type DecodeError struct {
	Kind   DecodeErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("decode: %s", e.Kind)
	}
	return fmt.Sprintf("decode: %s: %s", e.Kind, e.Detail)
}
