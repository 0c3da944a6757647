// internal/domain/sale/repository.go
package sale

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Sale) error
	FindByID(ctx context.Context, id int64) (*Sale, error)
	Update(ctx context.Context, s *Sale) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q *Query) ([]Sale, error)

	// Statistics helpers; a nil range covers every sale
	Totals(ctx context.Context, from, to *time.Time) (*Totals, error)
	CountByStatus(ctx context.Context, from, to *time.Time) ([]GroupCount, error)
	CountByPaymentMethod(ctx context.Context, from, to *time.Time) ([]GroupCount, error)
}
