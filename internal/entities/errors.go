package entities

import "errors"

var ErrHTTPGetOnly = errors.New("you must use http GET verb")
var ErrHTTPPostOnly = errors.New("you must use http POST verb")

var ErrInvalidSEIUUID = errors.New("SEIUUID must be a RFC-4122 UUID string or a raw 16 character tag")
var ErrMissingPayload = errors.New("payload must not be empty")
var ErrUnknownFraming = errors.New("framing must be one of auto, annexb, length-prefixed")
