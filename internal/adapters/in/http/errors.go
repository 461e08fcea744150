package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fooddispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RetryAfterSeconds is advertised on 503 responses.
const RetryAfterSeconds = "1"

// apiError is an error already decided for the wire.
type apiError struct {
	Status int
	Detail string
	Cause  error
}

func (e *apiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Detail)
}

func (e *apiError) Unwrap() error {
	return e.Cause
}

// details overrides the generic wording of an operation's answers to
// missing values and conflicts.
type details struct {
	missing  string
	conflict func(*errs.ConflictError) string
}

// toAPIError maps an application error to its status code and detail.
func toAPIError(err error, d details) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	status, detail := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, detail = http.StatusNotFound, "Not found"
		var nf *errs.ObjectNotFoundError
		if errors.As(err, &nf) && nf.ParamName != "" {
			detail = capitalize(nf.ParamName) + " not found"
		}

	case errors.Is(err, errs.ErrConflict):
		status, detail = http.StatusConflict, "Conflict"
		var ce *errs.ConflictError
		if errors.As(err, &ce) {
			switch {
			case d.conflict != nil:
				detail = d.conflict(ce)
			case ce.Cause != nil:
				detail = ce.Cause.Error()
			default:
				detail = ce.Subject
			}
		}

	case errors.Is(err, errs.ErrValueIsRequired) && d.missing != "":
		status, detail = http.StatusBadRequest, d.missing

	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status, detail = http.StatusBadRequest, strings.ReplaceAll(err.Error(), "\n", "; ")

	case errors.Is(err, errs.ErrUnavailable):
		status, detail = http.StatusServiceUnavailable, "Service temporarily unavailable"
	}

	return &apiError{Status: status, Detail: detail, Cause: err}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NewErrorHandler renders every error as {"detail": ...}.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *apiError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
		case errors.As(err, &he):
			ae = &apiError{Status: he.Code, Detail: httpErrorDetail(he), Cause: he.Internal}
		default:
			ae = toAPIError(err, details{})
		}

		switch {
		case ae.Status >= http.StatusInternalServerError:
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", ae.Status),
				zap.Error(err))
		case ae.Status != http.StatusNotFound && ae.Status != http.StatusUnauthorized:
			logger.Debug("request rejected",
				zap.String("path", c.Path()),
				zap.Int("status", ae.Status),
				zap.String("detail", ae.Detail))
		}

		if ae.Status == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", RetryAfterSeconds)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(ae.Status)
		} else {
			werr = c.JSON(ae.Status, Error{Detail: ae.Detail})
		}
		if werr != nil {
			logger.Warn("write error response", zap.Error(werr))
		}
	}
}

func httpErrorDetail(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}
