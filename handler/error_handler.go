package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/netandconnect/portal/pkg/binder"
	"github.com/netandconnect/portal/pkg/logger"
	"github.com/netandconnect/portal/pkg/requestid"
	"github.com/netandconnect/portal/pkg/validator"
)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError maps err to a status and error code. An HTTPError joined
// with validation errors keeps its own code and gains the field details.
// Unknown errors are reported as 500 without leaking their text.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrInternalServer.Key,
		Message:    ErrInternalServer.Message,
	}

	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		info.StatusCode = http.StatusBadRequest
		info.Code = "validation_failed"
		info.Message = "Validation failed"
		info.Details = verrs.Map()
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Code = httpErr.Key
		info.Message = httpErr.Error()
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = http.StatusUnsupportedMediaType
		info.Code = "unsupported_media_type"
		info.Message = "Expected application/json"
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseQuery):
		info.StatusCode = http.StatusBadRequest
		info.Code = ErrBadRequest.Key
		info.Message = ErrBadRequest.Message
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// NewErrorHandler logs each failure with the request id and renders the
// JSON error envelope. Client errors are logged at warn, server errors at
// error.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Component("http"),
			slog.Int("status_code", info.StatusCode),
			slog.String("code", info.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
