// Package bind decodes a JSON request body into a struct and validates it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/drivehub/config"
	"github.com/shashiranjanraj/drivehub/pkg/validate"
)

const defaultBodyLimit = 4 << 20

func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest, capped at MAX_BODY_BYTES, then runs the
// struct's validation rules. A non-nil error means the body itself was
// unusable; a non-empty map means it decoded but failed validation. An
// empty body is treated as the zero struct and left to validation, which
// lets endpoints with optional bodies share this path.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, bodyLimit())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return nil, fmt.Errorf("request body too large (max %d bytes)", tooBig.Limit)
		case errors.Is(err, io.EOF):
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
