package coingecko

import "fmt"

// TransportError is a network or HTTP level failure: the request could not
// be sent, the connection dropped, or the service answered with a non-2xx
// status.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("coingecko: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a well-delivered response whose body could not be read or
// parsed into the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("coingecko: decode %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
