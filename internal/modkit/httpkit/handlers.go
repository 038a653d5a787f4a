// Package httpkit is what modules register routes with
// it re-exports the platform http types so modules never import chi or phttp directly
package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "eshoppers/internal/platform/errors"
	phttp "eshoppers/internal/platform/net/http"
)

type (
	// Response is a return style answer
	Response = phttp.Response

	// Handler is the route handler shape
	Handler = phttp.Handler

	// Router is the mount surface
	Router = phttp.Router
)

// OK is a 200 with data
func OK(data any) Response { return phttp.OK(data) }

// Created is a 201 with data
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a bodyless 204
func NoContent() Response { return phttp.NoContent() }

// Error is an error envelope for err
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response returning func
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Call answers 200 with fn's result, fn may return a Response to take over
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.CallHandler(http.StatusOK, fn)
}

// JSON binds and validates the body into T and answers 200 with fn's result
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(http.StatusOK, fn)
}

// Get mounts a bodyless GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a bodyless POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// PostJSON mounts a JSON POST that answers 200
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// CreateJSON mounts a JSON POST that answers 201
func CreateJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(http.StatusCreated, h))
}

// PutJSON mounts a JSON PUT that answers 200
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, JSON(h))
}

// NoContentDelete mounts a DELETE that answers 204
func NoContentDelete(r Router, path string, h func(*http.Request) error) {
	r.Delete(path, Handle(func(req *http.Request) Response {
		if err := h(req); err != nil {
			return Error(err)
		}
		return NoContent()
	}))
}

// Param is a named route parameter
func Param(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// PathID reads a positive int64 route parameter
func PathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(Param(r, name))
	if raw == "" {
		return 0, perr.WithField(perr.InvalidArgf("missing %s", name), name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return id, nil
}
