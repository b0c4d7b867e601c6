package mail_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"shopsecure/internal/adapters/out/mail"
	"shopsecure/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := mail.NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	to, err := kernel.NewEmail("buyer@shop.test")
	require.NoError(t, err)

	require.NoError(t, notifier.Send(t.Context(), to, "Security OTP - Delivery", "Your code: 482913"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "notification", record["msg"])
	assert.Equal(t, "log_notifier", record["component"])
	assert.Equal(t, "buyer@shop.test", record["to"])
	assert.Equal(t, "Your code: 482913", record["body"])
}
