package sale

import (
	"context"
	"errors"
	"strings"
	"testing"

	"carsales-service/internal/db"
	"carsales-service/internal/db/dbtest"
	"carsales-service/internal/domain/event"
	"carsales-service/internal/domain/sale"
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/events/eventstest"
	"carsales-service/internal/repository/gormrepo"
	vehiclesvc "carsales-service/internal/service/vehicle"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fixture struct {
	svc      *SaleService
	cars     *vehiclesvc.CarService
	motos    *vehiclesvc.MotorcycleService
	recorder *eventstest.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := dbtest.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	log := zap.NewNop()
	cars := vehiclesvc.NewCarService(gormrepo.NewCarRepository(gdb), nil, log)
	motos := vehiclesvc.NewMotorcycleService(gormrepo.NewMotorcycleRepository(gdb), nil, log)
	rec := &eventstest.Recorder{}
	return &fixture{
		svc:      NewSaleService(gormrepo.NewSaleRepository(gdb), rec, log, cars, motos),
		cars:     cars,
		motos:    motos,
		recorder: rec,
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createReq(vehicleID int64) *sale.CreateSaleRequest {
	return &sale.CreateSaleRequest{
		ClientID:       1,
		EmployeeID:     1,
		VehicleID:      vehicleID,
		TotalAmount:    decimal.RequireFromString("50000"),
		PaymentMethod:  sale.PaymentPIX,
		SaleDate:       "2024-06-01",
		DiscountAmount: dec("2000"),
		TaxAmount:      dec("500"),
		CommissionRate: dec("3"),
	}
}

func (f *fixture) motorcycle(t *testing.T) int64 {
	t.Helper()
	m, err := f.motos.Create(context.Background(), &vehicle.CreateMotorcycleRequest{
		BaseVehicleRequest: vehicle.BaseVehicleRequest{
			Model: "XRE", Year: "2022", FuelType: "Gasoline", Color: "Black", City: "Natal",
			Price: decimal.NewFromInt(25000),
		},
		Starter: "Electric", FuelSystem: "Injection", EngineDisplacement: 300, Cooling: "Air",
		Style: "Trail", EngineType: "Single", Gears: 6, FrontRearBrake: "Disc",
	})
	if err != nil {
		t.Fatalf("create motorcycle: %v", err)
	}
	return m.ID
}

func TestCreateComputesDerivedAmounts(t *testing.T) {
	f := newFixture(t)
	sl, err := f.svc.Create(context.Background(), createReq(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sl.Status != sale.StatusPending {
		t.Fatalf("expected Pending, got %s", sl.Status)
	}
	if !sl.CommissionAmount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("commission = %s, want 1500", sl.CommissionAmount)
	}
	if !sl.FinalAmount.Equal(decimal.NewFromInt(48500)) {
		t.Fatalf("final = %s, want 48500", sl.FinalAmount)
	}
	if len(f.recorder.Named(event.SaleCreated)) != 1 {
		t.Fatal("sale.created not published")
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]func(r *sale.CreateSaleRequest){
		"discount above total": func(r *sale.CreateSaleRequest) { r.DiscountAmount = dec("60000") },
		"unknown payment":      func(r *sale.CreateSaleRequest) { r.PaymentMethod = "Barter" },
		"rate above 100":       func(r *sale.CreateSaleRequest) { r.CommissionRate = dec("101") },
		"negative tax":         func(r *sale.CreateSaleRequest) { r.TaxAmount = dec("-1") },
		"bad date":             func(r *sale.CreateSaleRequest) { r.SaleDate = "01/06/2024" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := createReq(1)
			mutate(req)
			if _, err := f.svc.Create(context.Background(), req); !errors.Is(err, xerrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestConfirmFallsBackToMotorcycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	motoID := f.motorcycle(t)

	sl, err := f.svc.Create(ctx, createReq(motoID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	change, err := f.svc.UpdateStatus(ctx, sl.ID, sale.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if change.Warning != "" {
		t.Fatalf("unexpected warning %q", change.Warning)
	}
	m, _ := f.motos.Get(ctx, motoID)
	if m.Status != vehicle.StatusSold {
		t.Fatalf("motorcycle status = %s, want Sold", m.Status)
	}
}

func TestConfirmWithMissingVehicleWarns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sl, err := f.svc.Create(ctx, createReq(4242))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	change, err := f.svc.UpdateStatus(ctx, sl.ID, sale.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm should not fail: %v", err)
	}
	if change.Sale.Status != sale.StatusConfirmed {
		t.Fatalf("sale status = %s", change.Sale.Status)
	}
	if !strings.Contains(change.Warning, "4242") {
		t.Fatalf("warning should name the vehicle, got %q", change.Warning)
	}
	if len(f.recorder.Named(event.VehicleCascadeFailed)) != 1 {
		t.Fatal("cascade failure not published")
	}

	stored, _ := f.svc.Get(ctx, sl.ID)
	if stored.Status != sale.StatusConfirmed {
		t.Fatalf("stored status = %s", stored.Status)
	}
}

func TestUpdateMergesAndRevalidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sl, _ := f.svc.Create(ctx, createReq(1))

	_, err := f.svc.Update(ctx, sl.ID, &sale.UpdateSaleRequest{TotalAmount: dec("1000")})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("lowering total below the stored discount should fail, got %v", err)
	}

	change, err := f.svc.Update(ctx, sl.ID, &sale.UpdateSaleRequest{CommissionRate: dec("10")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !change.Sale.CommissionAmount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("commission not recomputed: %s", change.Sale.CommissionAmount)
	}

	confirmed := sale.StatusConfirmed
	change, err = f.svc.Update(ctx, sl.ID, &sale.UpdateSaleRequest{Status: &confirmed})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if change.Warning == "" {
		t.Fatal("confirming through update should run the cascade")
	}
}

func TestResolveQueryPriority(t *testing.T) {
	client, employee := int64(3), int64(4)
	status := sale.StatusPaid
	method := sale.PaymentCash

	cases := []struct {
		name string
		f    sale.ListFilters
		want sale.Criterion
	}{
		{"all present", sale.ListFilters{StartDate: "2024-01-01", EndDate: "2024-12-31", ClientID: &client, EmployeeID: &employee, Status: &status, PaymentMethod: &method}, sale.ByDateRange},
		{"half a range is ignored", sale.ListFilters{StartDate: "2024-01-01", ClientID: &client}, sale.ByClient},
		{"employee over status", sale.ListFilters{EmployeeID: &employee, Status: &status}, sale.ByEmployee},
		{"status over payment", sale.ListFilters{Status: &status, PaymentMethod: &method}, sale.ByStatus},
		{"payment alone", sale.ListFilters{PaymentMethod: &method}, sale.ByPaymentMethod},
		{"nothing", sale.ListFilters{}, sale.ByNothing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ResolveQuery(&tc.f)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if q.Criterion != tc.want {
				t.Fatalf("criterion = %s, want %s", q.Criterion, tc.want)
			}
			if q.Limit != 100 {
				t.Fatalf("default limit = %d", q.Limit)
			}
		})
	}
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, _ := f.svc.Create(ctx, createReq(1))
	f.svc.Create(ctx, createReq(2))
	if _, err := f.svc.UpdateStatus(ctx, a.ID, sale.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats, err := f.svc.Statistics(ctx, &sale.StatisticsFilters{})
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalSales != 2 || !stats.TotalRevenue.Equal(decimal.NewFromInt(97000)) {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if stats.SalesByStatus["Pending"] != 1 || stats.SalesByStatus["Cancelled"] != 1 {
		t.Fatalf("unexpected status counts %v", stats.SalesByStatus)
	}
	if stats.SalesByPaymentMethod["PIX"] != 2 || stats.Period != nil {
		t.Fatalf("unexpected payment counts %v period %v", stats.SalesByPaymentMethod, stats.Period)
	}
}

func TestStatisticsNeedsBothBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Create(ctx, createReq(1))

	onlyStart, err := f.svc.Statistics(ctx, &sale.StatisticsFilters{StartDate: "2025-01-01"})
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if onlyStart.TotalSales != 1 || onlyStart.Period != nil {
		t.Fatalf("a single bound should be ignored: %+v", onlyStart)
	}

	window, err := f.svc.Statistics(ctx, &sale.StatisticsFilters{StartDate: "2025-01-01", EndDate: "2025-12-31"})
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if window.TotalSales != 0 || window.Period == nil || window.Period.EndDate != "2025-12-31" {
		t.Fatalf("window not applied: %+v", window)
	}

	_, err = f.svc.Statistics(ctx, &sale.StatisticsFilters{StartDate: "2025-02-01", EndDate: "2025-01-01"})
	if !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}
