package hydrate

import (
	"context"
	"fmt"

	"github.com/HTYISABUG/tgbot-hydrate/src/tgbot"
)

// invoker calls one fixed Bot API method.
type invoker func(ctx context.Context, params tgbot.Params) (*Result, error)

// bind returns an invoker for method.
func (c *Client) bind(method string) invoker {
	return func(ctx context.Context, params tgbot.Params) (*Result, error) {
		return c.Call(ctx, method, params)
	}
}

// with merges other under bound: other may add parameters but never replaces
// a bound one. Neither map is modified.
func with(bound, other tgbot.Params) tgbot.Params {
	out := other.Clone()
	for k, v := range bound {
		out[k] = v
	}
	return out
}

// as unwraps the outcome of an invoker into a value of type T.
func as[T any](res *Result, err error) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if err := res.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

func asBool(res *Result, err error) (bool, error) {
	return as[bool](res, err)
}

// asMessage unwraps a result that is either a message or true. The message
// is nil in the latter case.
func asMessage(res *Result, err error) (*Message, error) {
	if err != nil {
		return nil, err
	}
	return res.Message, nil
}

// asSent unwraps a result that must be a message.
func asSent(res *Result, err error) (*Message, error) {
	if err != nil {
		return nil, err
	}
	if res.Kind != ResultMessage {
		return nil, fmt.Errorf("%w: got %v", ErrUnexpectedResult, res.Kind)
	}
	return res.Message, nil
}
