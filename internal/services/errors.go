package services

import "errors"

var (
	// ErrInvalidFilter means a list filter carried an unparseable date or
	// an unknown severity.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrSendInFlight means an email for the same alert is already being
	// sent and the duplicate trigger was suppressed.
	ErrSendInFlight = errors.New("send already in flight")

	// ErrTransport means the outbound mail transport failed. The send is
	// not retried.
	ErrTransport = errors.New("mail transport failed")
)
