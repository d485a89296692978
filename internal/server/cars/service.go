package cars

import (
	"context"
	"fmt"
	"time"

	"carvault/internal/common"
)

// CreateParams holds the caller-supplied fields of a new car.
type CreateParams struct {
	Brand       string
	Model       string
	Year        int
	Price       float64
	ImageURL    string
	Description string
}

// Service validates car fields and delegates the guarded read-modify-write
// work to the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func maxYear() int {
	return time.Now().Year() + 1
}

func validateCreate(p CreateParams) error {
	if p.Brand == "" || p.Model == "" || p.Year == 0 || p.Price == 0 {
		return fmt.Errorf("%w: brand, model, year, and price are required", common.ErrorValidation)
	}

	if p.Year < 1900 || p.Year > maxYear() {
		return fmt.Errorf("%w: invalid year", common.ErrorValidation)
	}

	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", common.ErrorValidation)
	}

	return nil
}

func validateUpdate(p UpdateParams) error {
	if p.Brand != nil && *p.Brand == "" {
		return fmt.Errorf("%w: brand must not be empty", common.ErrorValidation)
	}

	if p.Model != nil && *p.Model == "" {
		return fmt.Errorf("%w: model must not be empty", common.ErrorValidation)
	}

	if p.Year != nil && (*p.Year < 1900 || *p.Year > maxYear()) {
		return fmt.Errorf("%w: invalid year", common.ErrorValidation)
	}

	if p.Price != nil && *p.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", common.ErrorValidation)
	}

	return nil
}

// Create validates the fields and stores a new car owned by ownerID. The
// owner is forced from the verified identity, never taken from the payload.
func (s *Service) Create(ctx context.Context, ownerID string, params CreateParams) (*Car, error) {
	if err := validateCreate(params); err != nil {
		return nil, err
	}

	imageURL := params.ImageURL
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	return s.repo.Create(ctx, &Car{
		Brand:       params.Brand,
		Model:       params.Model,
		Year:        params.Year,
		Price:       params.Price,
		ImageURL:    imageURL,
		Description: params.Description,
		CreatedBy:   ownerID,
	})
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Car, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, id, requesterID string) (*Car, error) {
	return s.repo.Get(ctx, id, requesterID)
}

func (s *Service) Update(ctx context.Context, id, requesterID string, params UpdateParams) (*Car, error) {
	if err := validateUpdate(params); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, requesterID, params)
}

func (s *Service) MarkSold(ctx context.Context, id, requesterID string) (*Car, error) {
	return s.repo.MarkSold(ctx, id, requesterID)
}

func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	return s.repo.Delete(ctx, id, requesterID)
}
