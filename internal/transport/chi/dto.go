package chi

import (
	"time"

	dombatch "github.com/kailas-cloud/bizdex/internal/domain/batch"
	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/business/patch"
	"github.com/kailas-cloud/bizdex/internal/domain/geo"
	healthuc "github.com/kailas-cloud/bizdex/internal/usecase/health"
)

// BusinessResponse is a business as returned by the API.
type BusinessResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	CategoryID        string     `json:"categoryId"`
	Description       string     `json:"description"`
	City              string     `json:"city"`
	Address           string     `json:"address"`
	Lat               float64    `json:"lat"`
	Lng               float64    `json:"lng"`
	IsVerified        bool       `json:"isVerified"`
	IsFeatured        bool       `json:"isFeatured"`
	IsPremium         bool       `json:"isPremium"`
	IsRemote          bool       `json:"isRemote"`
	Rating            float64    `json:"rating"`
	ReviewCount       int        `json:"reviewCount"`
	YearsOfExperience int        `json:"yearsOfExperience"`
	Images            []string   `json:"images"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email"`
	Website           string     `json:"website"`
	OwnerID           string     `json:"ownerId,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
	DistanceKm        *float64   `json:"distanceKm,omitempty"`
	DistanceLabel     string     `json:"distanceLabel,omitempty"`
	Score             *float64   `json:"score,omitempty"`
}

// BusinessListResponse wraps a ranked result list.
type BusinessListResponse struct {
	Items []BusinessResponse `json:"items"`
	Total int                `json:"total"`
}

// BusinessRequest is the body of POST /businesses and one batch item.
type BusinessRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	CategoryID        string   `json:"categoryId"`
	Description       string   `json:"description"`
	City              string   `json:"city"`
	Address           string   `json:"address"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	IsVerified        bool     `json:"isVerified"`
	IsFeatured        bool     `json:"isFeatured"`
	IsPremium         bool     `json:"isPremium"`
	IsRemote          bool     `json:"isRemote"`
	Rating            float64  `json:"rating"`
	ReviewCount       int      `json:"reviewCount"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	Images            []string `json:"images"`
	Phone             string   `json:"phone"`
	Email             string   `json:"email"`
	Website           string   `json:"website"`
	OwnerID           string   `json:"ownerId"`
}

// PatchRequest is the body of PATCH /businesses/{id}. Absent fields are unchanged.
type PatchRequest struct {
	Name              *string   `json:"name"`
	Category          *string   `json:"category"`
	CategoryID        *string   `json:"categoryId"`
	Description       *string   `json:"description"`
	City              *string   `json:"city"`
	Address           *string   `json:"address"`
	Lat               *float64  `json:"lat"`
	Lng               *float64  `json:"lng"`
	IsVerified        *bool     `json:"isVerified"`
	IsFeatured        *bool     `json:"isFeatured"`
	IsPremium         *bool     `json:"isPremium"`
	IsRemote          *bool     `json:"isRemote"`
	Rating            *float64  `json:"rating"`
	ReviewCount       *int      `json:"reviewCount"`
	YearsOfExperience *int      `json:"yearsOfExperience"`
	Images            *[]string `json:"images"`
	Phone             *string   `json:"phone"`
	Email             *string   `json:"email"`
	Website           *string   `json:"website"`
}

// BatchRequest is the body of POST /businesses/batch.
type BatchRequest struct {
	Items []BusinessRequest `json:"items"`
}

// BatchResultItem is the outcome of one imported business.
type BatchResultItem struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse summarizes an import.
type BatchResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func businessToResponse(b *dombiz.Business) BusinessResponse {
	resp := BusinessResponse{
		ID:                b.ID,
		Name:              b.Name,
		Category:          b.Category,
		CategoryID:        b.CategoryID,
		Description:       b.Description,
		City:              b.City,
		Address:           b.Address,
		Lat:               b.Lat,
		Lng:               b.Lng,
		IsVerified:        b.IsVerified,
		IsFeatured:        b.IsFeatured,
		IsPremium:         b.IsPremium,
		IsRemote:          b.IsRemote,
		Rating:            b.Rating,
		ReviewCount:       b.ReviewCount,
		YearsOfExperience: b.YearsOfExperience,
		Images:            b.Images,
		Phone:             b.Phone,
		Email:             b.Email,
		Website:           b.Website,
		OwnerID:           b.OwnerID,
		DistanceKm:        b.DistanceKm,
		Score:             b.Score,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if !b.CreatedAt.IsZero() {
		t := b.CreatedAt
		resp.CreatedAt = &t
	}
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		resp.UpdatedAt = &t
	}
	if b.DistanceKm != nil {
		resp.DistanceLabel = geo.FormatDistance(*b.DistanceKm)
	}
	return resp
}

func listToResponse(bs []dombiz.Business) BusinessListResponse {
	items := make([]BusinessResponse, len(bs))
	for i := range bs {
		items[i] = businessToResponse(&bs[i])
	}
	return BusinessListResponse{Items: items, Total: len(items)}
}

func businessFromRequest(req *BusinessRequest) dombiz.Business {
	return dombiz.Business{
		ID:                req.ID,
		Name:              req.Name,
		Category:          req.Category,
		CategoryID:        req.CategoryID,
		Description:       req.Description,
		City:              req.City,
		Address:           req.Address,
		Lat:               req.Lat,
		Lng:               req.Lng,
		IsVerified:        req.IsVerified,
		IsFeatured:        req.IsFeatured,
		IsPremium:         req.IsPremium,
		IsRemote:          req.IsRemote,
		Rating:            req.Rating,
		ReviewCount:       req.ReviewCount,
		YearsOfExperience: req.YearsOfExperience,
		Images:            req.Images,
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		OwnerID:           req.OwnerID,
	}
}

func patchFromRequest(req *PatchRequest) patch.Patch {
	return patch.Patch{
		Name:        req.Name,
		Category:    req.Category,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		IsVerified:  req.IsVerified,
		IsFeatured:  req.IsFeatured,
		IsPremium:   req.IsPremium,
		IsRemote:    req.IsRemote,
		Rating:      req.Rating,
		ReviewCount: req.ReviewCount,
		Years:       req.YearsOfExperience,
		Images:      req.Images,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
	}
}

func batchToResponse(results []dombatch.Result) BatchResponse {
	items := make([]BatchResultItem, len(results))
	for i, res := range results {
		items[i] = BatchResultItem{ID: res.ID(), Status: string(res.Status())}
		if res.Err() != nil {
			items[i].Error = &ErrorResponse{
				Code:    errorCode(res.Err()),
				Message: safeDomainMessage(res.Err()),
			}
		}
	}
	sum := dombatch.Summarize(results)
	return BatchResponse{Items: items, Succeeded: sum.Succeeded, Failed: sum.Failed}
}

func healthToResponse(r healthuc.Report) HealthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return HealthResponse{Status: string(r.Status), Checks: checks}
}
