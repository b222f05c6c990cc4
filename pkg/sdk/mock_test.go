package bizdex

import (
	"context"

	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	"github.com/kailas-cloud/bizdex/internal/domain/ranking"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
)

// --- businessUseCase mock ---

type mockBusinessUC struct {
	getFn    func(ctx context.Context, id string) (dombiz.Business, error)
	createFn func(ctx context.Context, b dombiz.Business) (dombiz.Business, error)
	updateFn func(ctx context.Context, id string, p patch.Patch) (dombiz.Business, error)
	importFn func(ctx context.Context, items []dombiz.Business) []dombatch.Result
	seedFn   func(ctx context.Context) ([]dombatch.Result, error)
}

func (m *mockBusinessUC) Get(ctx context.Context, id string) (dombiz.Business, error) {
	return m.getFn(ctx, id)
}

func (m *mockBusinessUC) Create(ctx context.Context, b dombiz.Business) (dombiz.Business, error) {
	return m.createFn(ctx, b)
}

func (m *mockBusinessUC) Update(ctx context.Context, id string, p patch.Patch) (dombiz.Business, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockBusinessUC) Import(ctx context.Context, items []dombiz.Business) []dombatch.Result {
	return m.importFn(ctx, items)
}

func (m *mockBusinessUC) Seed(ctx context.Context) ([]dombatch.Result, error) {
	return m.seedFn(ctx)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn   func(ctx context.Context, req *request.Request) ([]dombiz.Business, error)
	featuredFn func(ctx context.Context, coords *geo.Coordinates) ([]dombiz.Business, error)
	similarFn  func(ctx context.Context, id, categoryID string, coords *geo.Coordinates, limit int) ([]dombiz.Business, error)
	ranker     *ranking.Ranker
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]dombiz.Business, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Featured(ctx context.Context, coords *geo.Coordinates) ([]dombiz.Business, error) {
	return m.featuredFn(ctx, coords)
}

func (m *mockSearchUC) Similar(
	ctx context.Context, id, categoryID string, coords *geo.Coordinates, limit int,
) ([]dombiz.Business, error) {
	return m.similarFn(ctx, id, categoryID, coords, limit)
}

func (m *mockSearchUC) Ranker() *ranking.Ranker {
	if m.ranker == nil {
		return ranking.Default()
	}
	return m.ranker
}

// --- helpers ---

func testService(biz businessUseCase, search searchUseCase) *BusinessService {
	return &BusinessService{biz: biz, search: search}
}
