package hydrate

import (
	"errors"
	"fmt"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

var (
	// ErrUnsupportedReaction is returned by React for a reaction value that is
	// neither an emoji string nor a tgbot.ReactionType.
	ErrUnsupportedReaction = errors.New("unsupported reaction value")

	// ErrUnexpectedResult is returned when a call that sends a message
	// succeeds with something other than a message.
	ErrUnexpectedResult = errors.New("unexpected result")

	errNotOK = errors.New("response not ok")
)

// Error is returned for every call that did not succeed.
type Error struct {
	Method string
	Params tgbot.Params

	// Response is the decoded response, if the platform sent one.
	Response *tgbot.Response
	// Err is the transport's error.
	Err error
}

func (e *Error) Error() string {
	if e.Response != nil && e.Response.Description != "" {
		return fmt.Sprintf("%s: %d %s", e.Method, e.Response.ErrorCode, e.Response.Description)
	}
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the platform's error code, or 0 when the call failed before a
// response arrived.
func (e *Error) Code() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.ErrorCode
}
