package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/model"
)

// OutdoorStore is the persistence the registry needs. *repository.OutdoorRepo
// satisfies it.
type OutdoorStore interface {
	List(ctx context.Context, f model.OutdoorFilter) ([]model.Outdoor, error)
	GetByID(ctx context.Context, id uint64) (*model.Outdoor, error)
	Create(ctx context.Context, o *model.Outdoor) error
	Update(ctx context.Context, o *model.Outdoor) error
	Delete(ctx context.Context, id uint64) error
}

// OutdoorInput carries every writable field of an outdoor. Update is a full
// replace, so the same shape serves both create and update.
type OutdoorInput struct {
	Name         string
	Location     string
	Dimensions   string
	MonthlyPrice decimal.Decimal
	PhotoURL     *string
	Description  *string
	Active       bool
}

func (in OutdoorInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Dimensions) == "" {
		return apperrors.NewValidationError("name, location and dimensions are required")
	}
	if in.MonthlyPrice.IsNegative() {
		return apperrors.NewValidationError("monthly_price must not be negative")
	}
	return nil
}

func (in OutdoorInput) apply(o *model.Outdoor) {
	o.Name = strings.TrimSpace(in.Name)
	o.Location = strings.TrimSpace(in.Location)
	o.Dimensions = strings.TrimSpace(in.Dimensions)
	o.MonthlyPrice = in.MonthlyPrice
	o.PhotoURL = in.PhotoURL
	o.Description = in.Description
	o.Active = in.Active
}

// OutdoorService is the outdoor registry.
type OutdoorService struct {
	store OutdoorStore
}

func NewOutdoorService(store OutdoorStore) *OutdoorService {
	return &OutdoorService{store: store}
}

// List returns outdoors ordered by name, optionally only active or inactive ones.
func (s *OutdoorService) List(ctx context.Context, f model.OutdoorFilter) ([]model.Outdoor, error) {
	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, translate(err, "could not list outdoors")
	}
	return items, nil
}

func (s *OutdoorService) Get(ctx context.Context, id uint64) (*model.Outdoor, error) {
	o, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "could not load outdoor")
	}
	return o, nil
}

func (s *OutdoorService) Create(ctx context.Context, in OutdoorInput) (*model.Outdoor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var o model.Outdoor
	in.apply(&o)
	if err := s.store.Create(ctx, &o); err != nil {
		return nil, translate(err, "could not create outdoor")
	}
	return &o, nil
}

// Update replaces every writable field of outdoor id.
func (s *OutdoorService) Update(ctx context.Context, id uint64, in OutdoorInput) (*model.Outdoor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	o := model.Outdoor{ID: id}
	in.apply(&o)
	if err := s.store.Update(ctx, &o); err != nil {
		return nil, translate(err, "could not update outdoor")
	}
	return &o, nil
}

// Delete removes the outdoor; its reservations go with it (FK cascade).
func (s *OutdoorService) Delete(ctx context.Context, id uint64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translate(err, "could not delete outdoor")
	}
	return nil
}
