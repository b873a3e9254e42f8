package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerMutation_EmitsOneStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	auditLogger := NewLogger(zerolog.New(&buf))

	auditLogger.Mutation(Mutation{
		RequestID:    "req-1",
		Resource:     "tasks",
		Action:       "complete",
		RecordID:     3,
		Result:       "success",
		Duration:     12 * time.Millisecond,
		ResponseCode: 200,
	})

	lines := splitJSONLines(t, buf.String())
	require.Len(t, lines, 1)

	entry := lines[0]
	require.Equal(t, "audit", entry["component"])
	require.Equal(t, "catalog.record.mutated", entry["event"])
	require.Equal(t, "req-1", entry["request_id"])
	require.Equal(t, "tasks", entry["resource"])
	require.Equal(t, "complete", entry["action"])
	require.EqualValues(t, 3, entry["record_id"])
	require.Equal(t, "success", entry["result"])
	require.EqualValues(t, 12, entry["duration_ms"])
	require.EqualValues(t, 200, entry["response_code"])
	_, hasError := entry["error_detail"]
	require.False(t, hasError)
}

func TestLoggerMutation_DefaultsAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(zerolog.New(&buf)).Mutation(Mutation{
		Resource:    "users",
		Duration:    -time.Second,
		ErrorDetail: "decode failed: password=hunter2",
	})

	lines := splitJSONLines(t, buf.String())
	require.Len(t, lines, 1)
	entry := lines[0]
	require.Equal(t, "error", entry["result"])
	require.Equal(t, "unknown", entry["action"])
	require.EqualValues(t, 0, entry["duration_ms"])
	require.Equal(t, "decode failed: password=[REDACTED]", entry["error_detail"])
	_, hasID := entry["record_id"]
	require.False(t, hasID)
}

func TestLoggerLogin_NeverLogsPassword(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(zerolog.New(&buf)).Login(LoginCheck{
		RequestID:      "req-2",
		Username:       "alice",
		PasswordLength: 5,
		Strong:         false,
	})

	lines := splitJSONLines(t, buf.String())
	require.Len(t, lines, 1)
	require.Equal(t, "catalog.login.checked", lines[0]["event"])
	require.Equal(t, "alice", lines[0]["username"])
	require.Equal(t, "weak", lines[0]["strength"])
	require.EqualValues(t, 5, lines[0]["password_length"])
	_, hasPassword := lines[0]["password"]
	require.False(t, hasPassword)
}

func TestNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	require.NotPanics(t, func() {
		l.Mutation(Mutation{})
		l.Login(LoginCheck{})
	})
}

func TestRedactSensitiveText_RedactsTokenLikeSegments(t *testing.T) {
	raw := "request failed: Authorization: Bearer abc.def.ghi token=xyz123 password=hunter2"
	redacted := RedactSensitiveText(raw)

	require.NotContains(t, redacted, "abc.def.ghi")
	require.NotContains(t, redacted, "xyz123")
	require.NotContains(t, redacted, "hunter2")
	require.Contains(t, redacted, "[REDACTED]")
	require.Empty(t, RedactSensitiveText("   "))
}

func splitJSONLines(t *testing.T, raw string) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}
