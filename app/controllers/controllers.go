// Package controllers maps HTTP requests onto the service layer. Every
// handler takes a *ctx.Context and writes the shared JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
)

// fail translates a service error into the right HTTP response. Unknown
// errors become 500s with the message preserved, matching the API's
// existing clients.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCarNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrContractTemplateNotFound),
		errors.Is(err, services.ErrOrderDataMissing):
		c.NotFound(err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())

	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrCarNotAvailable),
		errors.Is(err, services.ErrRentalDatesRequired),
		errors.Is(err, services.ErrRentalDateOrder),
		errors.Is(err, services.ErrRentalTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrContractNotApproved),
		errors.Is(err, services.ErrInvalidContractType),
		errors.Is(err, services.ErrNotPDF):
		c.Error(http.StatusBadRequest, err.Error())

	default:
		c.Error(http.StatusInternalServerError, err.Error())
	}
}
