package turnos

import (
	"testing"

	"turnobot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ana := models.Turno{ID: "A1", Servicio: "Corte de cabello", Fecha: "15/09/2026", Hora: "14:00", Telefono: "111"}
	beto := models.Turno{ID: "B1", Servicio: "Barba", Fecha: "16/09/2026", Hora: "10:00", Telefono: "222"}
	repo.Add(ana)
	repo.Add(beto)

	got, err := repo.GetByID("A1")
	require.NoError(t, err)
	assert.Equal(t, ana, *got)

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	list := repo.ListByPhone("111")
	require.Len(t, list, 1)
	assert.Equal(t, "A1", list[0].ID)
	assert.Empty(t, repo.ListByPhone("333"))
}

func TestMemoryRepositoryCancel(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Add(models.Turno{ID: "A1", Telefono: "111"})

	// Cancelling someone else's turno must not work.
	assert.ErrorIs(t, repo.Cancel("222", "A1"), ErrNotFound)
	_, err := repo.GetByID("A1")
	require.NoError(t, err, "foreign cancel must not remove the turno")

	require.NoError(t, repo.Cancel("111", "A1"))
	_, err = repo.GetByID("A1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Cancel("111", "A1"), ErrNotFound)
}
