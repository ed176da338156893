package database

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

// PlantModel represents the database model for plant profiles
type PlantModel struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"index;not null"`
	Type           string  `gorm:"not null"`
	GrowingPeriod  int     `gorm:"not null"`
	TempMin        float64 `gorm:"not null"`
	TempMax        float64 `gorm:"not null"`
	HumidityMin    float64 `gorm:"not null"`
	HumidityMax    float64 `gorm:"not null"`
	RainResistance string
	IdealSeason    string
	Notes          string `gorm:"type:text"`
	OwnerID        *uint  `gorm:"index"`
	IsPublic       bool   `gorm:"index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (PlantModel) TableName() string {
	return "plants"
}

// PlantRepositoryAdapter implements the PlantRepository port using GORM
type PlantRepositoryAdapter struct {
	db *gorm.DB
}

// NewPlantRepositoryAdapter creates a new plant repository adapter
func NewPlantRepositoryAdapter(db *gorm.DB) ports.PlantRepository {
	return &PlantRepositoryAdapter{db: db}
}

// Save persists a new plant or overwrites an existing one
func (r *PlantRepositoryAdapter) Save(ctx context.Context, plant *ports.PlantData) error {
	if plant == nil {
		return errors.NewValidationError("plant cannot be nil")
	}

	model := r.dataToModel(plant)
	var result *gorm.DB

	if plant.ID == 0 {
		result = r.db.WithContext(ctx).Create(model)
		plant.ID = model.ID
		plant.CreatedAt = model.CreatedAt
		plant.UpdatedAt = model.UpdatedAt
	} else {
		result = r.db.WithContext(ctx).Save(model)
	}

	if result.Error != nil {
		return errors.NewDatabaseError("failed to save plant", result.Error)
	}

	return nil
}

// FindByID retrieves a plant by its ID
func (r *PlantRepositoryAdapter) FindByID(ctx context.Context, id uint) (*ports.PlantData, error) {
	if id == 0 {
		return nil, errors.NewValidationError("plant ID cannot be zero")
	}

	var model PlantModel
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("plant not found")
		}
		return nil, errors.NewDatabaseError("failed to find plant by ID", result.Error)
	}

	return r.modelToData(&model), nil
}

// FindPublicByName retrieves an ownerless public plant by exact name
func (r *PlantRepositoryAdapter) FindPublicByName(ctx context.Context, name string) (*ports.PlantData, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("plant name cannot be empty")
	}

	var model PlantModel
	result := r.db.WithContext(ctx).
		Where("name = ? AND owner_id IS NULL AND is_public = ?", name, true).
		First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("plant not found")
		}
		return nil, errors.NewDatabaseError("failed to find plant by name", result.Error)
	}

	return r.modelToData(&model), nil
}

// FindVisible returns public plants plus those owned by the viewer, ordered by name
func (r *PlantRepositoryAdapter) FindVisible(ctx context.Context, filter ports.PlantFilter) ([]*ports.PlantData, error) {
	query := r.db.WithContext(ctx).Model(&PlantModel{})

	if filter.ViewerID != nil {
		query = query.Where("(is_public = ? OR owner_id = ?)", true, *filter.ViewerID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(type) LIKE ? ESCAPE '\\')", like, like)
	}

	var models []PlantModel
	if result := query.Order("name ASC").Order("id ASC").Find(&models); result.Error != nil {
		return nil, errors.NewDatabaseError("failed to list plants", result.Error)
	}

	plants := make([]*ports.PlantData, len(models))
	for i := range models {
		plants[i] = r.modelToData(&models[i])
	}

	return plants, nil
}

// Update modifies an existing plant
func (r *PlantRepositoryAdapter) Update(ctx context.Context, plant *ports.PlantData) error {
	if plant == nil {
		return errors.NewValidationError("plant cannot be nil")
	}
	if plant.ID == 0 {
		return errors.NewValidationError("plant ID cannot be zero for update")
	}

	model := r.dataToModel(plant)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to update plant", result.Error)
	}

	return nil
}

// Delete removes a plant from the database
func (r *PlantRepositoryAdapter) Delete(ctx context.Context, plant *ports.PlantData) error {
	if plant == nil {
		return errors.NewValidationError("plant cannot be nil")
	}
	if plant.ID == 0 {
		return errors.NewValidationError("plant ID cannot be zero for delete")
	}

	result := r.db.WithContext(ctx).Delete(&PlantModel{}, plant.ID)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete plant", result.Error)
	}

	return nil
}

// Count returns the number of stored plants
func (r *PlantRepositoryAdapter) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&PlantModel{}).Count(&count)
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to count plants", result.Error)
	}

	return count, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// dataToModel converts port data to database model
func (r *PlantRepositoryAdapter) dataToModel(data *ports.PlantData) *PlantModel {
	return &PlantModel{
		ID:             data.ID,
		Name:           data.Name,
		Type:           data.Type,
		GrowingPeriod:  data.GrowingPeriod,
		TempMin:        data.TempMin,
		TempMax:        data.TempMax,
		HumidityMin:    data.HumidityMin,
		HumidityMax:    data.HumidityMax,
		RainResistance: data.RainResistance,
		IdealSeason:    data.IdealSeason,
		Notes:          data.Notes,
		OwnerID:        data.OwnerID,
		IsPublic:       data.IsPublic,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// modelToData converts database model to port data
func (r *PlantRepositoryAdapter) modelToData(model *PlantModel) *ports.PlantData {
	return &ports.PlantData{
		ID:             model.ID,
		Name:           model.Name,
		Type:           model.Type,
		GrowingPeriod:  model.GrowingPeriod,
		TempMin:        model.TempMin,
		TempMax:        model.TempMax,
		HumidityMin:    model.HumidityMin,
		HumidityMax:    model.HumidityMax,
		RainResistance: model.RainResistance,
		IdealSeason:    model.IdealSeason,
		Notes:          model.Notes,
		OwnerID:        model.OwnerID,
		IsPublic:       model.IsPublic,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
