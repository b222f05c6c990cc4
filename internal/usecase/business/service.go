package business

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/bizdex/internal/domain"
	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
	"github.com/kailas-cloud/bizdex/internal/seed"
)

// MaxBatchSize is the maximum number of items per import request.
const MaxBatchSize = 100

// Service handles business CRUD, bulk import and seeding.
type Service struct {
	repo         Repository
	maxBatchSize int
	seedEnabled  bool
	now          func() time.Time
	newID        func() string
}

// New creates a business service. Seeding is disabled until WithSeedEnabled.
func New(repo Repository) *Service {
	return &Service{
		repo:         repo,
		maxBatchSize: MaxBatchSize,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
}

// WithMaxBatchSize configures the maximum import size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithSeedEnabled allows Seed to load the reference data set.
func (s *Service) WithSeedEnabled(enabled bool) *Service {
	s.seedEnabled = enabled
	return s
}

// Get retrieves a business by id.
func (s *Service) Get(ctx context.Context, id string) (dombiz.Business, error) {
	if err := dombiz.ValidateID(id); err != nil {
		return dombiz.Business{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return dombiz.Business{}, fmt.Errorf("get business: %w", err)
	}
	return b, nil
}

// Create validates and stores a new business. An empty id is replaced with a UUID.
func (s *Service) Create(ctx context.Context, b dombiz.Business) (dombiz.Business, error) {
	b, err := s.prepare(b)
	if err != nil {
		return dombiz.Business{}, err
	}

	exists, err := s.repo.Exists(ctx, b.ID)
	if err != nil {
		return dombiz.Business{}, fmt.Errorf("check business: %w", err)
	}
	if exists {
		return dombiz.Business{}, fmt.Errorf("business %q: %w", b.ID, domain.ErrAlreadyExists)
	}

	if err := s.repo.Save(ctx, b); err != nil {
		return dombiz.Business{}, fmt.Errorf("save business: %w", err)
	}
	return b, nil
}

// Update applies a partial update to an existing business.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (dombiz.Business, error) {
	if err := p.Validate(); err != nil {
		return dombiz.Business{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return dombiz.Business{}, err
	}

	updated := p.Apply(current, s.now())
	if err := s.repo.Save(ctx, updated); err != nil {
		return dombiz.Business{}, fmt.Errorf("save business: %w", err)
	}
	return updated, nil
}

// Import stores businesses in bulk with per-item results.
// Invalid items fail individually; a storage failure fails every valid item.
func (s *Service) Import(ctx context.Context, items []dombiz.Business) []dombatch.Result {
	if len(items) > s.maxBatchSize {
		ids := make([]string, len(items))
		for i := range items {
			ids[i] = items[i].ID
		}
		return dombatch.FailAll(ids, fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidRequest))
	}

	results := make([]dombatch.Result, len(items))
	valid := make([]dombiz.Business, 0, len(items))
	validIdx := make([]int, 0, len(items))
	seen := make(map[string]bool, len(items))

	for i := range items {
		b, err := s.prepare(items[i])
		if err != nil {
			results[i] = dombatch.NewError(items[i].ID, err)
			continue
		}
		if seen[b.ID] {
			results[i] = dombatch.NewError(b.ID, fmt.Errorf("duplicate id %q: %w", b.ID, domain.ErrInvalidRequest))
			continue
		}
		seen[b.ID] = true
		valid = append(valid, b)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.repo.SaveMany(ctx, valid); err != nil {
		for n, i := range validIdx {
			results[i] = dombatch.NewError(valid[n].ID, fmt.Errorf("batch save: %w", err))
		}
		return results
	}

	for n, i := range validIdx {
		results[i] = dombatch.NewOK(valid[n].ID)
	}
	return results
}

// Seed imports the reference data set. Disabled outside development.
func (s *Service) Seed(ctx context.Context) ([]dombatch.Result, error) {
	if !s.seedEnabled {
		return nil, fmt.Errorf("seeding disabled: %w", domain.ErrForbidden)
	}
	return s.Import(ctx, seed.Businesses()), nil
}

// prepare assigns an id and timestamps, then normalizes b.
func (s *Service) prepare(b dombiz.Business) (dombiz.Business, error) {
	if b.ID == "" {
		b.ID = s.newID()
	}
	if err := dombiz.ValidateID(b.ID); err != nil {
		return dombiz.Business{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if b.Name == "" {
		return dombiz.Business{}, fmt.Errorf("name is required: %w", domain.ErrInvalidRequest)
	}
	now := s.now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return dombiz.Normalize(b.WithoutDerived()), nil
}
