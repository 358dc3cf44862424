// Package ctx gives handlers a single request context instead of the raw
// (http.ResponseWriter, *http.Request) pair:
//
//	func Show(c *ctx.Context) {
//	    id, err := c.ParamUint("id")
//	    ...
//	    c.Success(car)
//	}
//
// Handlers are registered through Wrap, which adapts them to http.HandlerFunc.
package ctx

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/drivehub/pkg/bind"
	"github.com/shashiranjanraj/drivehub/pkg/orm"
	"github.com/shashiranjanraj/drivehub/pkg/validate"
)

const maxMultipartMemory = 32 << 20

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Context carries one request/response pair through a handler.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var ctxPool = sync.Pool{New: func() any { return new(Context) }}

// Wrap adapts a HandlerFunc to http.HandlerFunc. Contexts are pooled; a
// handler must not retain c past its return.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := ctxPool.Get().(*Context)
		c.W, c.R = w, r
		h(c)
		c.W, c.R = nil, nil
		ctxPool.Put(c)
	}
}

// Context returns the request's context.Context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Param returns the named URL path parameter.
func (c *Context) Param(key string) string { return chi.URLParam(c.R, key) }

// ParamUint parses the named path parameter as an unsigned integer.
func (c *Context) ParamUint(key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	return uint(n), err
}

// Query returns a query-string value, "" when absent.
func (c *Context) Query(key string) string { return c.R.URL.Query().Get(key) }

// QueryInt parses a query-string value as an int, falling back to def.
func (c *Context) QueryInt(key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

// PostForm returns a form field, parsing the body on first use.
func (c *Context) PostForm(key string) string { return c.R.FormValue(key) }

// FormFiles returns up to max uploads for a multipart field.
func (c *Context) FormFiles(field string, max int) ([]*multipart.FileHeader, error) {
	if err := c.R.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}
	if c.R.MultipartForm == nil {
		return nil, nil
	}
	files := c.R.MultipartForm.File[field]
	if len(files) > max {
		files = files[:max]
	}
	return files, nil
}

// BindJSON decodes the JSON body into dest and validates it. When binding
// or validation fails the error response has already been written and the
// return value is false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// envelope is the response shape every endpoint returns.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Success writes a 200 envelope around data.
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// SuccessMessage writes a 200 envelope carrying a message alongside data.
func (c *Context) SuccessMessage(message string, data any) {
	c.JSON(http.StatusOK, envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Created writes a 201 envelope around data.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Paginated writes a 200 envelope wrapping items with pagination metadata.
func (c *Context) Paginated(data any, pagination orm.Pagination) {
	c.JSON(http.StatusOK, envelope{
		Status: http.StatusOK,
		Data:   map[string]any{"items": data, "pagination": pagination},
	})
}

// Error writes an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.JSON(code, envelope{Status: code, Message: message})
}

// ValidationError writes a 422 with the field error map.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized writes a 401.
func (c *Context) Unauthorized(message string) {
	c.Error(http.StatusUnauthorized, message)
}

// Forbidden writes a 403.
func (c *Context) Forbidden(message string) {
	c.Error(http.StatusForbidden, message)
}

// NotFound writes a 404.
func (c *Context) NotFound(message string) {
	c.Error(http.StatusNotFound, message)
}
