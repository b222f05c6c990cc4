package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/bizdex/internal/domain"
	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
)

// --- Mocks ---

type mockRepo struct {
	records   map[string]dombiz.Business
	getErr    error
	existsErr error
	saveErr   error
	saveMany  [][]dombiz.Business
}

func newMockRepo(bs ...dombiz.Business) *mockRepo {
	m := &mockRepo{records: make(map[string]dombiz.Business)}
	for _, b := range bs {
		m.records[b.ID] = b
	}
	return m
}

func (m *mockRepo) Get(_ context.Context, id string) (dombiz.Business, error) {
	if m.getErr != nil {
		return dombiz.Business{}, m.getErr
	}
	b, ok := m.records[id]
	if !ok {
		return dombiz.Business{}, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) Exists(_ context.Context, id string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.records[id]
	return ok, nil
}

func (m *mockRepo) Save(_ context.Context, b dombiz.Business) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[b.ID] = b
	return nil
}

func (m *mockRepo) SaveMany(_ context.Context, bs []dombiz.Business) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveMany = append(m.saveMany, bs)
	for _, b := range bs {
		m.records[b.ID] = b
	}
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	svc := New(repo)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "generated-id" }
	return svc
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestGet(t *testing.T) {
	svc := newTestService(newMockRepo(dombiz.Business{ID: "a", Name: "A"}))

	b, err := svc.Get(context.Background(), "a")
	if err != nil || b.Name != "A" {
		t.Fatalf("Get = %+v, %v", b, err)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "bad id!"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	score := 0.9
	b, err := svc.Create(context.Background(), dombiz.Business{Name: "New Co", Rating: 7, Score: &score})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "generated-id" {
		t.Errorf("ID = %q", b.ID)
	}
	if !b.CreatedAt.Equal(fixedNow) || !b.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps = %v / %v", b.CreatedAt, b.UpdatedAt)
	}
	if b.Rating != dombiz.MaxRating {
		t.Errorf("rating not clamped: %v", b.Rating)
	}
	if b.Score != nil {
		t.Error("derived score must be dropped before saving")
	}
	if _, ok := repo.records["generated-id"]; !ok {
		t.Error("record not saved")
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repo    *mockRepo
		input   dombiz.Business
		wantErr error
	}{
		{"missing name", newMockRepo(), dombiz.Business{ID: "x"}, domain.ErrInvalidRequest},
		{"reserved id", newMockRepo(), dombiz.Business{ID: "search", Name: "S"}, domain.ErrInvalidRequest},
		{"duplicate", newMockRepo(dombiz.Business{ID: "x"}), dombiz.Business{ID: "x", Name: "X"}, domain.ErrAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.repo)
			if _, err := svc.Create(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdate_AppliesPatch(t *testing.T) {
	created := fixedNow.Add(-48 * time.Hour)
	repo := newMockRepo(dombiz.Business{ID: "a", Name: "Old", City: "Durban", CreatedAt: created})
	svc := newTestService(repo)

	b, err := svc.Update(context.Background(), "a", patch.Patch{Name: strPtr("New")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name != "New" || b.City != "Durban" {
		t.Errorf("unexpected record %+v", b)
	}
	if !b.UpdatedAt.Equal(fixedNow) || !b.CreatedAt.Equal(created) {
		t.Errorf("timestamps = %v / %v", b.CreatedAt, b.UpdatedAt)
	}
	if repo.records["a"].Name != "New" {
		t.Error("update not saved")
	}
}

func TestUpdate_Errors(t *testing.T) {
	svc := newTestService(newMockRepo())

	if _, err := svc.Update(context.Background(), "a", patch.Patch{}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("empty patch: expected ErrInvalidRequest, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "a", patch.Patch{Name: strPtr("X")}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing record: expected ErrNotFound, got %v", err)
	}
}

func TestImport_PerItemResults(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	results := svc.Import(context.Background(), []dombiz.Business{
		{ID: "a", Name: "A"},
		{ID: "b"},
		{ID: "a", Name: "A again"},
		{ID: "c", Name: "C"},
	})

	want := []dombatch.ItemStatus{dombatch.StatusOK, dombatch.StatusError, dombatch.StatusError, dombatch.StatusOK}
	for i, r := range results {
		if r.Status() != want[i] {
			t.Errorf("item %d: status %q, want %q (%v)", i, r.Status(), want[i], r.Err())
		}
	}
	if len(repo.saveMany) != 1 || len(repo.saveMany[0]) != 2 {
		t.Fatalf("expected one SaveMany with 2 items, got %v", repo.saveMany)
	}
}

func TestImport_TooLarge(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo).WithMaxBatchSize(2)

	results := svc.Import(context.Background(), []dombiz.Business{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
	})
	for _, r := range results {
		if !errors.Is(r.Err(), domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", r.Err())
		}
	}
	if len(repo.saveMany) != 0 {
		t.Error("nothing should be saved")
	}
}

func TestImport_StorageFailure(t *testing.T) {
	repo := newMockRepo()
	repo.saveErr = errors.New("connection refused")
	svc := newTestService(repo)

	results := svc.Import(context.Background(), []dombiz.Business{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})
	s := dombatch.Summarize(results)
	if s.Failed != 2 || s.Succeeded != 0 {
		t.Errorf("summary = %+v", s)
	}
	if results[1].ID() != "b" {
		t.Errorf("result id = %q", results[1].ID())
	}
}

func TestSeed(t *testing.T) {
	repo := newMockRepo()

	if _, err := newTestService(repo).Seed(context.Background()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	results, err := newTestService(repo).WithSeedEnabled(true).Seed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := dombatch.Summarize(results); s.Succeeded != 8 {
		t.Errorf("summary = %+v", s)
	}
	b, ok := repo.records["sandton-legal-group"]
	if !ok {
		t.Fatal("seed record missing")
	}
	if !b.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v", b.CreatedAt)
	}
}
