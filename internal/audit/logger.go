// Package audit provides structured audit logging for catalog mutations and
// login checks.
package audit

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	bearerTokenPattern = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9\-._~+/]+=*`)
	keyValuePattern    = regexp.MustCompile(`(?i)\b(token|secret|password|authorization)\s*[:=]\s*([^\s,;]+)`)
)

// Mutation captures one finalized write against a resource collection.
type Mutation struct {
	RequestID    string
	Resource     string
	Action       string
	RecordID     int64
	Result       string
	ErrorDetail  string
	Duration     time.Duration
	ResponseCode int
}

// LoginCheck captures one password-strength evaluation. It never carries the
// password itself.
type LoginCheck struct {
	RequestID      string
	Username       string
	PasswordLength int
	Strong         bool
}

// Logger emits structured audit entries.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates an audit logger.
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Mutation writes a single entry for one create, update, patch or delete.
func (l *Logger) Mutation(event Mutation) {
	if l == nil {
		return
	}

	result := strings.TrimSpace(event.Result)
	if result == "" {
		result = "error"
	}
	action := strings.TrimSpace(event.Action)
	if action == "" {
		action = "unknown"
	}
	duration := max(event.Duration, 0)

	entry := l.logger.Info().
		Str("event", "catalog.record.mutated").
		Str("request_id", strings.TrimSpace(event.RequestID)).
		Str("resource", strings.TrimSpace(event.Resource)).
		Str("action", action).
		Str("result", result).
		Int64("duration_ms", duration.Milliseconds())

	if event.RecordID > 0 {
		entry = entry.Int64("record_id", event.RecordID)
	}
	if event.ResponseCode > 0 {
		entry = entry.Int("response_code", event.ResponseCode)
	}
	if redactedError := RedactSensitiveText(event.ErrorDetail); redactedError != "" {
		entry = entry.Str("error_detail", redactedError)
	}

	entry.Msg("record mutated")
}

// Login writes a single entry for one password-strength check.
func (l *Logger) Login(event LoginCheck) {
	if l == nil {
		return
	}

	strength := "weak"
	if event.Strong {
		strength = "strong"
	}

	l.logger.Info().
		Str("event", "catalog.login.checked").
		Str("request_id", strings.TrimSpace(event.RequestID)).
		Str("username", strings.TrimSpace(event.Username)).
		Int("password_length", event.PasswordLength).
		Str("strength", strength).
		Msg("login checked")
}

// RedactSensitiveText removes obvious secrets from free-text error details.
func RedactSensitiveText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	redacted := bearerTokenPattern.ReplaceAllString(trimmed, "Bearer [REDACTED]")
	redacted = keyValuePattern.ReplaceAllStringFunc(redacted, func(match string) string {
		if key, _, ok := strings.Cut(match, ":"); ok {
			return fmt.Sprintf("%s: [REDACTED]", strings.TrimSpace(key))
		}
		if key, _, ok := strings.Cut(match, "="); ok {
			return fmt.Sprintf("%s=[REDACTED]", strings.TrimSpace(key))
		}
		return "[REDACTED]"
	})
	return redacted
}
