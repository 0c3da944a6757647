// internal/service/sale/sale.go
package sale

import (
	"context"
	"fmt"
	"time"

	"carsales-service/internal/domain/event"
	"carsales-service/internal/domain/sale"
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// VehicleStatusUpdater sets the status of one vehicle variant and reports
// false when the id belongs to another variant.
type VehicleStatusUpdater interface {
	UpdateVehicleStatus(ctx context.Context, id int64, status vehicle.Status) (bool, error)
}

type SaleService struct {
	repo      sale.Repository
	vehicles  []VehicleStatusUpdater
	publisher event.Publisher
	logger    *zap.Logger
}

// NewSaleService takes the vehicle updaters in the order the confirm
// cascade tries them.
func NewSaleService(repo sale.Repository, publisher event.Publisher, logger *zap.Logger, vehicles ...VehicleStatusUpdater) *SaleService {
	return &SaleService{
		repo:      repo,
		vehicles:  vehicles,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *SaleService) Create(ctx context.Context, req *sale.CreateSaleRequest) (*sale.Sale, error) {
	date, err := sale.ParseDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	sl := &sale.Sale{
		ClientID:       req.ClientID,
		EmployeeID:     req.EmployeeID,
		VehicleID:      req.VehicleID,
		TotalAmount:    req.TotalAmount,
		DiscountAmount: orZero(req.DiscountAmount),
		TaxAmount:      orZero(req.TaxAmount),
		CommissionRate: orZero(req.CommissionRate),
		PaymentMethod:  req.PaymentMethod,
		Status:         sale.StatusPending,
		SaleDate:       date,
		Notes:          req.Notes,
	}
	if err := sl.Validate(); err != nil {
		return nil, err
	}
	sl.Recalculate()

	if err := s.repo.Create(ctx, sl); err != nil {
		s.logger.Error("failed to create sale", zap.Error(err))
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	s.logger.Info("sale created",
		zap.Int64("sale_id", sl.ID),
		zap.Int64("client_id", sl.ClientID),
		zap.Int64("vehicle_id", sl.VehicleID),
		zap.String("final_amount", sl.FinalAmount.StringFixed(2)),
	)
	s.publish(ctx, event.New(event.SaleCreated, event.SaleStatus{
		SaleID: sl.ID, VehicleID: sl.VehicleID, Status: string(sl.Status),
	}))
	return sl, nil
}

func (s *SaleService) Get(ctx context.Context, id int64) (*sale.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

// Update merges req onto the stored sale. A status of Confirmed runs the
// same vehicle cascade as UpdateStatus.
func (s *SaleService) Update(ctx context.Context, id int64, req *sale.UpdateSaleRequest) (*sale.StatusChange, error) {
	sl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := sl.Status

	if req.TotalAmount != nil {
		sl.TotalAmount = *req.TotalAmount
	}
	if req.DiscountAmount != nil {
		sl.DiscountAmount = *req.DiscountAmount
	}
	if req.TaxAmount != nil {
		sl.TaxAmount = *req.TaxAmount
	}
	if req.CommissionRate != nil {
		sl.CommissionRate = *req.CommissionRate
	}
	if req.PaymentMethod != nil {
		sl.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		sl.Status = *req.Status
	}
	if req.SaleDate != nil {
		date, err := sale.ParseDate(*req.SaleDate)
		if err != nil {
			return nil, err
		}
		sl.SaleDate = date
	}
	if req.Notes != nil {
		sl.Notes = *req.Notes
	}

	if err := sl.Validate(); err != nil {
		return nil, err
	}
	sl.Recalculate()

	if err := s.repo.Update(ctx, sl); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	change := &sale.StatusChange{Sale: sl}
	if req.Status != nil {
		change.Warning = s.afterStatusChange(ctx, sl, previous)
	}
	return change, nil
}

// UpdateStatus sets any valid status. Confirming also marks the vehicle as
// Sold; a failure there is reported as a warning and does not fail the call.
func (s *SaleService) UpdateStatus(ctx context.Context, id int64, status sale.Status) (*sale.StatusChange, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not a sale status", status)
	}

	sl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := sl.Status

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update sale status: %w", err)
	}
	sl.Status = status
	sl.UpdatedAt = time.Now()

	return &sale.StatusChange{Sale: sl, Warning: s.afterStatusChange(ctx, sl, previous)}, nil
}

func (s *SaleService) afterStatusChange(ctx context.Context, sl *sale.Sale, previous sale.Status) string {
	s.logger.Info("sale status changed",
		zap.Int64("sale_id", sl.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(sl.Status)),
	)
	s.publish(ctx, event.New(event.SaleStatusChanged, event.SaleStatus{
		SaleID: sl.ID, VehicleID: sl.VehicleID, Status: string(sl.Status),
	}))

	if sl.Status != sale.StatusConfirmed {
		return ""
	}
	return s.markVehicleSold(ctx, sl)
}

// markVehicleSold tries every variant in order and returns a warning when
// none of them accepted the vehicle.
func (s *SaleService) markVehicleSold(ctx context.Context, sl *sale.Sale) string {
	var reason string
	for _, v := range s.vehicles {
		ok, err := v.UpdateVehicleStatus(ctx, sl.VehicleID, vehicle.StatusSold)
		if err != nil {
			reason = err.Error()
			break
		}
		if ok {
			s.logger.Info("vehicle marked as sold", zap.Int64("sale_id", sl.ID), zap.Int64("vehicle_id", sl.VehicleID))
			return ""
		}
	}
	if reason == "" {
		reason = fmt.Sprintf("vehicle %d not found", sl.VehicleID)
	}

	s.logger.Warn("sale confirmed but vehicle status was not updated",
		zap.Int64("sale_id", sl.ID),
		zap.Int64("vehicle_id", sl.VehicleID),
		zap.String("reason", reason),
	)
	s.publish(ctx, event.New(event.VehicleCascadeFailed, event.CascadeFailure{
		SaleID: sl.ID, VehicleID: sl.VehicleID, Reason: reason,
	}))
	return "sale confirmed but the vehicle could not be marked as sold: " + reason
}

func (s *SaleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sale deleted", zap.Int64("sale_id", id))
	return nil
}

func (s *SaleService) List(ctx context.Context, filters *sale.ListFilters) (*sale.ListResponse, error) {
	q, err := ResolveQuery(filters)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if list == nil {
		list = []sale.Sale{}
	}
	return &sale.ListResponse{
		Sales:     list,
		Count:     len(list),
		Criterion: q.Criterion,
		Skip:      q.Skip,
		Limit:     q.Limit,
	}, nil
}

// ResolveQuery picks the single criterion a listing applies, in priority
// order date range, client, employee, status, payment method.
func ResolveQuery(f *sale.ListFilters) (*sale.Query, error) {
	q := &sale.Query{Criterion: sale.ByNothing, OrderByValue: f.OrderByValue, Skip: f.Skip, Limit: f.Limit}
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 1000 {
		q.Limit = 1000
	}
	if q.OrderByValue != "" && q.OrderByValue != "asc" && q.OrderByValue != "desc" {
		return nil, xerrors.Invalid("order_by_value must be asc or desc")
	}

	switch {
	case f.StartDate != "" && f.EndDate != "":
		start, err := sale.ParseDate(f.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := sale.ParseDate(f.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, xerrors.Invalid("end_date is before start_date")
		}
		q.Criterion, q.Start, q.End = sale.ByDateRange, start, end
	case f.ClientID != nil:
		q.Criterion, q.ClientID = sale.ByClient, *f.ClientID
	case f.EmployeeID != nil:
		q.Criterion, q.EmployeeID = sale.ByEmployee, *f.EmployeeID
	case f.Status != nil:
		if !f.Status.Valid() {
			return nil, xerrors.Invalid("status %q is not a sale status", *f.Status)
		}
		q.Criterion, q.Status = sale.ByStatus, *f.Status
	case f.PaymentMethod != nil:
		if !f.PaymentMethod.Valid() {
			return nil, xerrors.Invalid("payment method %q is not accepted", *f.PaymentMethod)
		}
		q.Criterion, q.PaymentMethod = sale.ByPaymentMethod, *f.PaymentMethod
	}
	return q, nil
}

// Statistics covers every sale unless both start_date and end_date are
// given; a single bound is ignored.
func (s *SaleService) Statistics(ctx context.Context, f *sale.StatisticsFilters) (*sale.Statistics, error) {
	var from, to *time.Time
	var period *sale.Period
	if f.StartDate != "" && f.EndDate != "" {
		start, err := sale.ParseDate(f.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := sale.ParseDate(f.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, xerrors.Invalid("end_date is before start_date")
		}
		from, to = &start, &end
		period = &sale.Period{StartDate: f.StartDate, EndDate: f.EndDate}
	}

	totals, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sale totals: %w", err)
	}
	byStatus, err := s.repo.CountByStatus(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales by status: %w", err)
	}
	byMethod, err := s.repo.CountByPaymentMethod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales by payment method: %w", err)
	}

	return &sale.Statistics{
		TotalSales:           totals.Count,
		TotalRevenue:         totals.Revenue,
		TotalCommission:      totals.Commission,
		SalesByStatus:        toMap(byStatus),
		SalesByPaymentMethod: toMap(byMethod),
		Period:               period,
	}, nil
}

func (s *SaleService) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", string(e.Name)), zap.Error(err))
	}
}

func toMap(rows []sale.GroupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Count
	}
	return m
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
