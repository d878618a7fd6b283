package server

import "errors"

var (
	ErrInvalidSelectToken  = errors.New("invalid select token request")
	ErrTrendingUnavailable = errors.New("trending snapshot unavailable")
)
