package http

import (
	stdhttp "net/http"

	"eshoppers/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates the body into T, then answers status with fn's result
// fn may return a Response of its own to take over the answer
func JSONHandler[T any](status int, fn func(*stdhttp.Request, T) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return answer(status, func() (any, error) { return fn(r, in) })
	})
}

// CallHandler is JSONHandler for routes that take no body
func CallHandler(status int, fn func(*stdhttp.Request) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		return answer(status, func() (any, error) { return fn(r) })
	})
}

func answer(status int, fn func() (any, error)) Response {
	out, err := fn()
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return Response{Status: status, Body: out}
}
