package cron

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	payloads []ReminderPayload
}

func (n *recordingNotifier) Notify(ctx context.Context, payload ReminderPayload) error {
	n.payloads = append(n.payloads, payload)
	return nil
}

func TestHandleReminderTask(t *testing.T) {
	notifier := &recordingNotifier{}
	handler := handleReminderTask(notifier)

	body, err := json.Marshal(ReminderPayload{
		BookingID:    "bk-001",
		Date:         "2026-09-07",
		Time:         "10:30",
		CustomerName: "Thandi Nkosi",
	})
	require.NoError(t, err)

	err = handler(context.Background(), asynq.NewTask(TypeReminderSend, body))
	require.NoError(t, err)
	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, "bk-001", notifier.payloads[0].BookingID)
}

func TestHandleReminderTaskBadPayload(t *testing.T) {
	notifier := &recordingNotifier{}
	handler := handleReminderTask(notifier)

	err := handler(context.Background(), asynq.NewTask(TypeReminderSend, []byte("{{{")))
	assert.Error(t, err)
	assert.Empty(t, notifier.payloads)
}
