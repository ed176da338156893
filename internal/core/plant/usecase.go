package plant

import (
	"context"
	"fmt"

	"cropcast.app/internal/ports"
	"cropcast.app/pkg/errors"
)

type UseCase struct {
	plantRepo ports.PlantRepository
	logger    ports.Logger
}

type UseCaseDependencies struct {
	PlantRepo ports.PlantRepository
	Logger    ports.Logger
}

type ListParams struct {
	ViewerID *uint
	Search   string
}

type GetParams struct {
	ID       uint
	ViewerID *uint
}

type CreateParams struct {
	OwnerID uint
	Input   Input
}

type UpdateParams struct {
	ID      uint
	OwnerID uint
	Input   Input
}

type DeleteParams struct {
	ID      uint
	OwnerID uint
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.PlantRepo == nil {
		return nil, errors.NewValidationError("plant repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &UseCase{
		plantRepo: deps.PlantRepo,
		logger:    deps.Logger,
	}, nil
}

// ListVisible returns public plants plus the viewer's own private ones
func (uc *UseCase) ListVisible(ctx context.Context, params ListParams) ([]*Plant, error) {
	data, err := uc.plantRepo.FindVisible(ctx, ports.PlantFilter{
		ViewerID: params.ViewerID,
		Search:   params.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list visible plants: %w", err)
	}

	plants := make([]*Plant, 0, len(data))
	for _, d := range data {
		plants = append(plants, FromData(d))
	}

	uc.logger.Debug("Listed plants",
		ports.F("count", len(plants)),
		ports.F("search", params.Search))
	return plants, nil
}

func (uc *UseCase) Get(ctx context.Context, params GetParams) (*Plant, error) {
	p, err := uc.load(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	if !p.IsVisibleTo(params.ViewerID) {
		return nil, errors.NewForbiddenError("plant is private")
	}
	return p, nil
}

func (uc *UseCase) Create(ctx context.Context, params CreateParams) (*Plant, error) {
	if params.OwnerID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	ownerID := params.OwnerID
	p := NewPlant(&ownerID, params.Input)
	if err := p.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid plant: " + err.Error())
	}

	data := p.ToData()
	if err := uc.plantRepo.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("save plant: %w", err)
	}
	p.ID = data.ID

	uc.logger.Info("Plant created",
		ports.F("plantID", p.ID),
		ports.F("ownerID", ownerID),
		ports.F("name", p.Name))
	return p, nil
}

func (uc *UseCase) Update(ctx context.Context, params UpdateParams) (*Plant, error) {
	p, err := uc.loadOwned(ctx, params.ID, params.OwnerID)
	if err != nil {
		return nil, err
	}

	p.Apply(params.Input)
	if err := p.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid plant: " + err.Error())
	}

	if err := uc.plantRepo.Update(ctx, p.ToData()); err != nil {
		return nil, fmt.Errorf("update plant %d: %w", p.ID, err)
	}

	uc.logger.Info("Plant updated", ports.F("plantID", p.ID), ports.F("ownerID", params.OwnerID))
	return p, nil
}

func (uc *UseCase) Delete(ctx context.Context, params DeleteParams) error {
	p, err := uc.loadOwned(ctx, params.ID, params.OwnerID)
	if err != nil {
		return err
	}

	if err := uc.plantRepo.Delete(ctx, p.ToData()); err != nil {
		return fmt.Errorf("delete plant %d: %w", p.ID, err)
	}

	uc.logger.Info("Plant deleted", ports.F("plantID", p.ID), ports.F("ownerID", params.OwnerID))
	return nil
}

func (uc *UseCase) load(ctx context.Context, id uint) (*Plant, error) {
	if id == 0 {
		return nil, errors.NewValidationError("plant ID is required")
	}

	data, err := uc.plantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("find plant %d: %w", id, err)
	}
	return FromData(data), nil
}

func (uc *UseCase) loadOwned(ctx context.Context, id, ownerID uint) (*Plant, error) {
	if ownerID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.IsOwnedBy(ownerID) {
		uc.logger.Warn("Rejected plant mutation by non-owner",
			ports.F("plantID", id),
			ports.F("userID", ownerID))
		return nil, errors.NewForbiddenError("only the owner can modify this plant")
	}
	return p, nil
}

// ToData converts the plant into its persistence representation
func (p *Plant) ToData() *ports.PlantData {
	return &ports.PlantData{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		GrowingPeriod:  p.GrowingPeriod,
		TempMin:        p.TempMin,
		TempMax:        p.TempMax,
		HumidityMin:    p.HumidityMin,
		HumidityMax:    p.HumidityMax,
		RainResistance: p.RainResistance,
		IdealSeason:    p.IdealSeason,
		Notes:          p.Notes,
		OwnerID:        p.OwnerID,
		IsPublic:       p.IsPublic,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// FromData converts persisted plant data into a domain plant
func FromData(d *ports.PlantData) *Plant {
	return &Plant{
		ID:             d.ID,
		Name:           d.Name,
		Type:           d.Type,
		GrowingPeriod:  d.GrowingPeriod,
		TempMin:        d.TempMin,
		TempMax:        d.TempMax,
		HumidityMin:    d.HumidityMin,
		HumidityMax:    d.HumidityMax,
		RainResistance: d.RainResistance,
		IdealSeason:    d.IdealSeason,
		Notes:          d.Notes,
		OwnerID:        d.OwnerID,
		IsPublic:       d.IsPublic,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
