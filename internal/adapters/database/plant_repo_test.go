package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

func uintPtr(v uint) *uint { return &v }

func newPlant(name, plantType string, owner *uint, public bool) *ports.PlantData {
	return &ports.PlantData{
		Name:          name,
		Type:          plantType,
		GrowingPeriod: 90,
		TempMin:       20,
		TempMax:       30,
		HumidityMin:   60,
		HumidityMax:   80,
		OwnerID:       owner,
		IsPublic:      public,
	}
}

func TestPlantRepository_Save_Create(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	plant := newPlant("Kedelai", "Kacang-kacangan", nil, true)
	err := repo.Save(ctx, plant)
	assert.NoError(t, err)
	assert.NotZero(t, plant.ID)
	assert.False(t, plant.CreatedAt.IsZero())
}

func TestPlantRepository_Save_KeepsPrivateFlag(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	plant := newPlant("Rahasia", "Umbi", uintPtr(1), false)
	require.NoError(t, repo.Save(ctx, plant))

	found, err := repo.FindByID(ctx, plant.ID)
	require.NoError(t, err)
	assert.False(t, found.IsPublic)
	require.NotNil(t, found.OwnerID)
	assert.Equal(t, uint(1), *found.OwnerID)
}

func TestPlantRepository_FindByID_NotFound(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), 999)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = repo.FindByID(context.Background(), 0)
	assert.True(t, errors.IsValidationError(err))
}

func TestPlantRepository_FindVisible(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newPlant("Padi", "Biji-bijian", nil, true)))
	require.NoError(t, repo.Save(ctx, newPlant("Cabai", "Sayuran", nil, true)))
	require.NoError(t, repo.Save(ctx, newPlant("Talas Ungu", "Umbi", uintPtr(1), false)))
	require.NoError(t, repo.Save(ctx, newPlant("Ubi Jalar", "Umbi", uintPtr(2), false)))

	names := func(plants []*ports.PlantData) []string {
		out := make([]string, len(plants))
		for i, p := range plants {
			out[i] = p.Name
		}
		return out
	}

	anonymous, err := repo.FindVisible(ctx, ports.PlantFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cabai", "Padi"}, names(anonymous))

	owner, err := repo.FindVisible(ctx, ports.PlantFilter{ViewerID: uintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cabai", "Padi", "Talas Ungu"}, names(owner))

	byType, err := repo.FindVisible(ctx, ports.PlantFilter{ViewerID: uintPtr(2), Search: "UMBI"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ubi Jalar"}, names(byType))

	byName, err := repo.FindVisible(ctx, ports.PlantFilter{Search: "pad"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Padi"}, names(byName))

	wildcard, err := repo.FindVisible(ctx, ports.PlantFilter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard)
}

func TestPlantRepository_FindPublicByName(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newPlant("Wortel", "Umbi", nil, true)))
	require.NoError(t, repo.Save(ctx, newPlant("Bayam", "Sayuran", uintPtr(3), true)))

	found, err := repo.FindPublicByName(ctx, "Wortel")
	require.NoError(t, err)
	assert.Equal(t, "Umbi", found.Type)

	_, err = repo.FindPublicByName(ctx, "Bayam")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPlantRepository_UpdateAndDelete(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	plant := newPlant("Tomat", "Sayuran", uintPtr(1), true)
	require.NoError(t, repo.Save(ctx, plant))

	plant.TempMax = 29
	plant.Notes = "butuh penyangga"
	require.NoError(t, repo.Update(ctx, plant))

	found, err := repo.FindByID(ctx, plant.ID)
	require.NoError(t, err)
	assert.Equal(t, 29.0, found.TempMax)
	assert.Equal(t, "butuh penyangga", found.Notes)

	require.NoError(t, repo.Delete(ctx, plant))
	_, err = repo.FindByID(ctx, plant.ID)
	assert.True(t, errors.IsNotFoundError(err))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPlantRepository_ValidationErrors(t *testing.T) {
	repo := NewPlantRepositoryAdapter(setupTestDB(t))
	ctx := context.Background()

	assert.True(t, errors.IsValidationError(repo.Save(ctx, nil)))
	assert.True(t, errors.IsValidationError(repo.Update(ctx, &ports.PlantData{})))
	assert.True(t, errors.IsValidationError(repo.Delete(ctx, &ports.PlantData{})))

	_, err := repo.FindPublicByName(ctx, " ")
	assert.True(t, errors.IsValidationError(err))
}
