package cron

import (
	"context"
	"encoding/json"
	"testing"

	"turnobot/models"
	"turnobot/services/turnos"
	"turnobot/services/whatsapp"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func expireTask(t *testing.T, referenceID, phone string) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(ExpirePayload{ReferenceID: referenceID, Phone: phone})
	require.NoError(t, err)
	return asynq.NewTask(TypeTurnoExpire, payload)
}

func TestHandleExpireTaskReleasesUnpaidTurno(t *testing.T) {
	repo := turnos.NewMemoryRepository()
	recorder := whatsapp.NewRecorder()
	handler := handleExpireTask(repo, recorder, zap.NewNop())

	require.NoError(t, handler(context.Background(), expireTask(t, "ref-001", "5491122334455")))

	msgs := recorder.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "5491122334455", msgs[0].To)
	assert.Contains(t, msgs[0].Body, "venció")
}

func TestHandleExpireTaskSkipsPaidTurno(t *testing.T) {
	repo := turnos.NewMemoryRepository()
	repo.Add(models.Turno{ID: "ref-001", Telefono: "5491122334455"})
	recorder := whatsapp.NewRecorder()
	handler := handleExpireTask(repo, recorder, zap.NewNop())

	require.NoError(t, handler(context.Background(), expireTask(t, "ref-001", "5491122334455")))
	assert.Empty(t, recorder.Messages(), "a paid turno must not trigger a release notice")
}

func TestHandleExpireTaskRejectsBadPayload(t *testing.T) {
	handler := handleExpireTask(turnos.NewMemoryRepository(), whatsapp.NewRecorder(), zap.NewNop())
	err := handler(context.Background(), asynq.NewTask(TypeTurnoExpire, []byte("not json")))
	assert.Error(t, err)
}
