package business

import (
	"context"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
)

// Repository defines the storage contract for business management.
type Repository interface {
	Get(ctx context.Context, id string) (dombiz.Business, error)
	Exists(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, b dombiz.Business) error
	SaveMany(ctx context.Context, bs []dombiz.Business) error
}
