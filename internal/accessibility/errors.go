package accessibility

import "errors"

var (
	// ErrZeroTotalWeight is returned when every audit weight is zero and the
	// configured policy refuses to guess a distribution.
	ErrZeroTotalWeight = errors.New("total audit weight is zero")
	// ErrInvalidWeight marks a negative, NaN or infinite audit weight.
	ErrInvalidWeight = errors.New("invalid audit weight")
	// ErrInvalidEndpoint is returned when the page's debugging endpoint has no usable port.
	ErrInvalidEndpoint = errors.New("invalid remote-debugging endpoint")
	// ErrMalformedDetail marks evidence data whose shape does not match its heading.
	ErrMalformedDetail = errors.New("malformed audit detail")
	// ErrNoEvidence means the audit carries no evidence items. It is not a failure.
	ErrNoEvidence = errors.New("audit has no evidence items")
)
