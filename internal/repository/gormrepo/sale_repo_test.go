package gormrepo

import (
	"testing"

	"carsales-service/internal/domain/sale"

	"github.com/shopspring/decimal"
)

func seedSale(t *testing.T, repo *SaleRepository, clientID, employeeID int64, total string, status sale.Status, method sale.PaymentMethod, date string) *sale.Sale {
	t.Helper()
	d, err := sale.ParseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	s := &sale.Sale{
		ClientID:       clientID,
		EmployeeID:     employeeID,
		VehicleID:      1,
		TotalAmount:    decimal.RequireFromString(total),
		CommissionRate: decimal.NewFromInt(5),
		PaymentMethod:  method,
		Status:         status,
		SaleDate:       d,
	}
	s.Recalculate()
	if err := repo.Create(testCtx(t), s); err != nil {
		t.Fatalf("create sale: %v", err)
	}
	return s
}

func TestSaleRepositoryListAppliesOneCriterion(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewSaleRepository(gdb)
	ctx := testCtx(t)

	seedSale(t, repo, 1, 10, "1000", sale.StatusPending, sale.PaymentCash, "2024-01-10")
	seedSale(t, repo, 1, 20, "3000", sale.StatusConfirmed, sale.PaymentPIX, "2024-02-10")
	seedSale(t, repo, 2, 20, "2000", sale.StatusPending, sale.PaymentPIX, "2024-03-10")

	start, _ := sale.ParseDate("2024-01-01")
	end, _ := sale.ParseDate("2024-02-28")

	cases := []struct {
		name string
		q    sale.Query
		want int
	}{
		{"date range", sale.Query{Criterion: sale.ByDateRange, Start: start, End: end}, 2},
		{"client", sale.Query{Criterion: sale.ByClient, ClientID: 1}, 2},
		{"employee", sale.Query{Criterion: sale.ByEmployee, EmployeeID: 20}, 2},
		{"status", sale.Query{Criterion: sale.ByStatus, Status: sale.StatusConfirmed}, 1},
		{"payment method", sale.Query{Criterion: sale.ByPaymentMethod, PaymentMethod: sale.PaymentCash}, 1},
		{"none", sale.Query{Criterion: sale.ByNothing}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, &tc.q)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("want %d sales, got %d", tc.want, len(got))
			}
		})
	}
}

func TestSaleRepositoryListOrdering(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewSaleRepository(gdb)
	ctx := testCtx(t)

	a := seedSale(t, repo, 1, 1, "500", sale.StatusPending, sale.PaymentCash, "2024-01-01")
	b := seedSale(t, repo, 1, 1, "1500", sale.StatusPending, sale.PaymentCash, "2024-01-01")
	c := seedSale(t, repo, 1, 1, "1000", sale.StatusPending, sale.PaymentCash, "2024-01-01")

	byID, _ := repo.List(ctx, &sale.Query{Criterion: sale.ByNothing})
	if byID[0].ID != c.ID || byID[2].ID != a.ID {
		t.Fatalf("default order should be id desc, got %d,%d,%d", byID[0].ID, byID[1].ID, byID[2].ID)
	}

	desc, _ := repo.List(ctx, &sale.Query{Criterion: sale.ByNothing, OrderByValue: "desc"})
	if desc[0].ID != b.ID || desc[2].ID != a.ID {
		t.Fatalf("value desc order wrong: %d,%d,%d", desc[0].ID, desc[1].ID, desc[2].ID)
	}

	asc, _ := repo.List(ctx, &sale.Query{Criterion: sale.ByNothing, OrderByValue: "asc", Limit: 2})
	if len(asc) != 2 || asc[0].ID != a.ID || asc[1].ID != c.ID {
		t.Fatalf("value asc order wrong: %+v", asc)
	}
}

func TestSaleRepositoryStatistics(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewSaleRepository(gdb)
	ctx := testCtx(t)

	seedSale(t, repo, 1, 1, "1000", sale.StatusPending, sale.PaymentCash, "2024-01-10")
	seedSale(t, repo, 1, 1, "2000", sale.StatusConfirmed, sale.PaymentPIX, "2024-01-20")
	seedSale(t, repo, 1, 1, "4000", sale.StatusConfirmed, sale.PaymentPIX, "2024-05-01")

	totals, err := repo.Totals(ctx, nil, nil)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Count != 3 || !totals.Revenue.Equal(decimal.NewFromInt(7000)) || !totals.Commission.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("unexpected totals %+v", totals)
	}

	from, _ := sale.ParseDate("2024-01-01")
	to, _ := sale.ParseDate("2024-01-31")
	january, err := repo.Totals(ctx, &from, &to)
	if err != nil {
		t.Fatalf("ranged totals: %v", err)
	}
	if january.Count != 2 {
		t.Fatalf("expected 2 sales in January, got %d", january.Count)
	}

	byStatus, err := repo.CountByStatus(ctx, nil, nil)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	counts := map[string]int64{}
	for _, g := range byStatus {
		counts[g.Key] = g.Count
	}
	if counts["Pending"] != 1 || counts["Confirmed"] != 2 {
		t.Fatalf("unexpected status counts %v", counts)
	}

	byMethod, _ := repo.CountByPaymentMethod(ctx, &from, &to)
	if len(byMethod) != 2 {
		t.Fatalf("expected 2 payment groups in January, got %v", byMethod)
	}
}

func TestSaleRepositoryEmptyTotals(t *testing.T) {
	repo := NewSaleRepository(openTestDB(t))
	totals, err := repo.Totals(testCtx(t), nil, nil)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Count != 0 || !totals.Revenue.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
