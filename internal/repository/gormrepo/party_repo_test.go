package gormrepo

import (
	"errors"
	"testing"

	"carsales-service/internal/domain/party"
	xerrors "carsales-service/internal/pkg/errors"
)

func TestClientRepositoryCreateWithAddress(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewClientRepository(gdb)
	ctx := testCtx(t)

	c := &party.Client{Name: "Ana Souza", Email: "ana@example.com", NationalID: "12345678901"}
	addr := &party.Address{Street: "Rua A", City: "Recife"}
	if err := repo.Create(ctx, c, addr); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.AddressID == nil || *c.AddressID != addr.ID {
		t.Fatalf("address not linked: %+v", c)
	}

	got, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if got.Address == nil || got.Address.City != "Recife" {
		t.Fatalf("address not preloaded: %+v", got)
	}
}

func TestClientRepositoryDuplicateIsConflict(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewClientRepository(gdb)
	ctx := testCtx(t)

	if err := repo.Create(ctx, &party.Client{Name: "A", Email: "dup@example.com", NationalID: "1"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &party.Client{Name: "B", Email: "dup@example.com", NationalID: "2"}, nil)
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != xerrors.ErrConflict.Error() {
		t.Fatalf("driver detail leaked into the message: %q", err)
	}
	if xerrors.Cause(err) == nil {
		t.Fatal("driver error should stay reachable for logging")
	}
}

func TestClientRepositorySearchByName(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewClientRepository(gdb)
	ctx := testCtx(t)

	for i, name := range []string{"Maria Silva", "João Santos", "Mariana Lima"} {
		c := &party.Client{Name: name, Email: string(rune('a'+i)) + "@example.com", NationalID: string(rune('0' + i))}
		if err := repo.Create(ctx, c, nil); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	got, err := repo.List(ctx, &party.ClientListFilters{Name: "mari"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
}

func TestAddressDeleteDetachesParties(t *testing.T) {
	gdb := openTestDB(t)
	addresses := NewAddressRepository(gdb)
	clients := NewClientRepository(gdb)
	ctx := testCtx(t)

	c := &party.Client{Name: "Caio", Email: "caio@example.com", NationalID: "999"}
	if err := clients.Create(ctx, c, &party.Address{City: "Natal"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := addresses.Delete(ctx, *c.AddressID); err != nil {
		t.Fatalf("delete address: %v", err)
	}

	got, err := clients.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.AddressID != nil {
		t.Fatalf("client still points at deleted address %d", *got.AddressID)
	}
	if err := addresses.Delete(ctx, 12345); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeListFilterPriority(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewEmployeeRepository(gdb)
	ctx := testCtx(t)

	seed := []party.Employee{
		{Name: "Paulo Reis", Email: "p@example.com", NationalID: "111", Status: party.EmployeeActive},
		{Name: "Paula Dias", Email: "pd@example.com", NationalID: "222", Status: party.EmployeeInactive},
		{Name: "Rita Alves", Email: "r@example.com", NationalID: "333", Status: party.EmployeeInactive},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i], nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	inactive := party.EmployeeInactive
	cases := []struct {
		name    string
		filters party.EmployeeListFilters
		want    int
	}{
		{"national id wins over name", party.EmployeeListFilters{NationalID: "333", Name: "Paul"}, 1},
		{"name alone", party.EmployeeListFilters{Name: "paul"}, 2},
		{"name narrowed by status", party.EmployeeListFilters{Name: "paul", Status: &inactive}, 1},
		{"status alone", party.EmployeeListFilters{Status: &inactive}, 2},
		{"no filter", party.EmployeeListFilters{}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, &tc.filters)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("want %d employees, got %d", tc.want, len(got))
			}
		})
	}

	if err := repo.UpdateStatus(ctx, seed[0].ID, party.EmployeeInactive); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.UpdateStatus(ctx, 9999, party.EmployeeInactive); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
