package logger

import (
	apperrors "codeassist/internal/errors"
)

// ErrorWithAppError logs msg with fields derived from the supplied AppError.
func (l *StandardLogger) ErrorWithAppError(msg string, appErr *apperrors.AppError) {
	if l == nil {
		return
	}

	if appErr == nil {
		l.Error("%s", msg)
		return
	}

	fields := []Field{}

	if appErr.Code != "" {
		fields = append(fields, String("error_code", appErr.Code))
	}
	if appErr.Category != "" {
		fields = append(fields, String("error_category", string(appErr.Category)))
	}
	if appErr.Operation != "" {
		fields = append(fields, String("operation", appErr.Operation))
	}
	if appErr.Module != "" {
		fields = append(fields, String("module", appErr.Module))
	}
	if appErr.Err != nil {
		fields = append(fields, Error(appErr.Err))
	}

	for k, v := range appErr.Metadata {
		// Avoid overwriting reserved keys.
		switch k {
		case "error_code", "error_category", "operation", "module", "error":
			continue
		}
		fields = append(fields, Any(k, v))
	}

	l.With(fields...).Error("%s: %s", msg, appErr.Message)
}
