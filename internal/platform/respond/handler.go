package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v5"

	applog "github.com/janisto/instamonitor/internal/platform/logging"
	"github.com/janisto/instamonitor/internal/platform/validate"
)

// Recoverer converts handler panics into a 500 problem. http.ErrAbortHandler
// is re-raised.
func Recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				applog.LogError(c.Request().Context(), "panic recovered", fmt.Errorf("%v", rec),
					slog.String("stack", string(debug.Stack())))

				if resp, err := echo.UnwrapResponse(c.Response()); err == nil && resp.Committed {
					return
				}
				problem := *Error500("internal server error")
				problem.Instance = c.Request().URL.Path
				writeProblem(c.Response(), c.Request(), problem)
			}()
			return next(c)
		}
	}
}

// NewHTTPErrorHandler renders every handler error as a problem document with
// Instance set to the request path.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(c *echo.Context, err error) {
		if resp, uerr := echo.UnwrapResponse(c.Response()); uerr == nil && resp.Committed {
			return
		}
		problem := toProblem(c, err)
		if problem.Instance == "" {
			problem.Instance = c.Request().URL.Path
		}
		writeProblem(c.Response(), c.Request(), problem)
	}
}

func toProblem(c *echo.Context, err error) ProblemDetails {
	var (
		pd *ProblemDetails
		ve *validate.ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &pd):
		return *pd
	case errors.As(err, &ve):
		p := Error422(ve.Message)
		for _, f := range ve.Fields {
			p.Errors = append(p.Errors, ErrorDetail{Message: f.Message, Location: f.Field, Value: f.Value})
		}
		return *p
	case errors.Is(err, echo.ErrNotFound):
		return *Error404("resource not found")
	case errors.Is(err, echo.ErrMethodNotAllowed):
		return *NewError(http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", c.Request().Method))
	case errors.As(err, &he):
		return *NewError(he.Code, he.Message)
	default:
		applog.LogError(c.Request().Context(), "unhandled error", err)
		return *Error500("internal server error")
	}
}
