package scenario

import "errors"

var (
	ErrUnknownForce   = errors.New("scenario: unknown force type")
	ErrUnknownContact = errors.New("scenario: unknown contact type")
	ErrUnknownBody    = errors.New("scenario: unknown body")
	ErrLinkArity      = errors.New("scenario: links join exactly two bodies")
)
