// internal/repository/gormrepo/sale_repo.go
package gormrepo

import (
	"context"
	"time"

	"carsales-service/internal/domain/sale"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SaleRepository) FindByID(ctx context.Context, id int64) (*sale.Sale, error) {
	var s sale.Sale
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(s).Select(
		"TotalAmount", "DiscountAmount", "TaxAmount", "CommissionRate",
		"CommissionAmount", "FinalAmount", "PaymentMethod", "Status",
		"SaleDate", "Notes",
	).Updates(s))
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id int64, status sale.Status) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&sale.Sale{}).Where("id = ?", id).Update("status", status))
}

func (r *SaleRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&sale.Sale{}, id))
}

// List applies exactly the criterion named by q.
func (r *SaleRepository) List(ctx context.Context, q *sale.Query) ([]sale.Sale, error) {
	tx := r.db.WithContext(ctx).Model(&sale.Sale{})

	switch q.Criterion {
	case sale.ByDateRange:
		tx = tx.Where("sale_date >= ? AND sale_date <= ?", q.Start, q.End)
	case sale.ByClient:
		tx = tx.Where("client_id = ?", q.ClientID)
	case sale.ByEmployee:
		tx = tx.Where("employee_id = ?", q.EmployeeID)
	case sale.ByStatus:
		tx = tx.Where("status = ?", q.Status)
	case sale.ByPaymentMethod:
		tx = tx.Where("payment_method = ?", q.PaymentMethod)
	}

	switch q.OrderByValue {
	case "asc":
		tx = tx.Order("total_amount ASC").Order("id ASC")
	case "desc":
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "total_amount"}, Desc: true}).Order("id DESC")
	default:
		tx = tx.Order("id DESC")
	}

	skip, limit := page(q.Skip, q.Limit)
	var list []sale.Sale
	err := tx.Offset(skip).Limit(limit).Find(&list).Error
	return list, translate(err)
}

func (r *SaleRepository) scoped(ctx context.Context, from, to *time.Time) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&sale.Sale{})
	if from != nil {
		tx = tx.Where("sale_date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("sale_date <= ?", *to)
	}
	return tx
}

func (r *SaleRepository) Totals(ctx context.Context, from, to *time.Time) (*sale.Totals, error) {
	var totals sale.Totals
	err := r.scoped(ctx, from, to).Select(
		"COUNT(*) AS count, " +
			"COALESCE(SUM(final_amount), 0) AS revenue, " +
			"COALESCE(SUM(commission_amount), 0) AS commission",
	).Scan(&totals).Error
	if err != nil {
		return nil, translate(err)
	}
	totals.Revenue = totals.Revenue.Round(2)
	totals.Commission = totals.Commission.Round(2)
	return &totals, nil
}

func (r *SaleRepository) CountByStatus(ctx context.Context, from, to *time.Time) ([]sale.GroupCount, error) {
	return r.countBy(ctx, "status", from, to)
}

func (r *SaleRepository) CountByPaymentMethod(ctx context.Context, from, to *time.Time) ([]sale.GroupCount, error) {
	return r.countBy(ctx, "payment_method", from, to)
}

func (r *SaleRepository) countBy(ctx context.Context, column string, from, to *time.Time) ([]sale.GroupCount, error) {
	var rows []sale.GroupCount
	err := r.scoped(ctx, from, to).
		Select(column + " AS group_key, COUNT(*) AS group_count").
		Group(column).
		Scan(&rows).Error
	return rows, translate(err)
}
