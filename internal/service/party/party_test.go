package party

import (
	"context"
	"errors"
	"testing"

	"carsales-service/internal/db"
	"carsales-service/internal/db/dbtest"
	"carsales-service/internal/domain/party"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/repository/gormrepo"

	"go.uber.org/zap"
)

type services struct {
	addresses *AddressService
	clients   *ClientService
	employees *EmployeeService
}

func newServices(t *testing.T) services {
	t.Helper()
	gdb, err := dbtest.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	log := zap.NewNop()
	addresses := NewAddressService(gormrepo.NewAddressRepository(gdb), log)
	return services{
		addresses: addresses,
		clients:   NewClientService(gormrepo.NewClientRepository(gdb), addresses, log),
		employees: NewEmployeeService(gormrepo.NewEmployeeRepository(gdb), addresses, log),
	}
}

func clientReq(email, nid string) *party.CreateClientRequest {
	return &party.CreateClientRequest{PersonRequest: party.PersonRequest{
		Name: "Bruno", Email: email, NationalID: nid,
	}}
}

func TestClientUniqueness(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	if _, err := s.clients.Create(ctx, clientReq("Bruno@Example.com", "100")); err != nil {
		t.Fatalf("create: %v", err)
	}
	cases := map[string]*party.CreateClientRequest{
		"same email, other case": clientReq("bruno@example.com", "200"),
		"same national id":       clientReq("other@example.com", "100"),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := s.clients.Create(ctx, req); !errors.Is(err, xerrors.ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}
		})
	}
}

func TestClientUpdateRechecksAgainstOthers(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	a, _ := s.clients.Create(ctx, clientReq("a@example.com", "1"))
	b, _ := s.clients.Create(ctx, clientReq("b@example.com", "2"))

	taken := "a@example.com"
	_, err := s.clients.Update(ctx, b.ID, &party.UpdateClientRequest{UpdatePersonRequest: party.UpdatePersonRequest{Email: &taken}})
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// keeping your own email is not a conflict
	phone := "+55 81 9999-0000"
	got, err := s.clients.Update(ctx, a.ID, &party.UpdateClientRequest{UpdatePersonRequest: party.UpdatePersonRequest{Email: &taken, Phone: &phone}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Phone != phone {
		t.Fatalf("phone not updated: %+v", got)
	}
}

func TestClientWithInlineAddressAndMissingAddressID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	req := clientReq("c@example.com", "3")
	req.Address = &party.AddressRequest{City: "Olinda", Country: "BR"}
	c, err := s.clients.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.AddressID == nil {
		t.Fatal("inline address not created")
	}

	missing := int64(999)
	req = clientReq("d@example.com", "4")
	req.AddressID = &missing
	if _, err := s.clients.Create(ctx, req); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown address, got %v", err)
	}
}

func TestClientSearchRequiresName(t *testing.T) {
	s := newServices(t)
	if _, err := s.clients.Search(context.Background(), &party.ClientListFilters{}); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEmployeeStatus(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	e, err := s.employees.Create(ctx, &party.CreateEmployeeRequest{PersonRequest: party.PersonRequest{
		Name: "Vera", Email: "vera@example.com", NationalID: "77",
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Status != party.EmployeeActive {
		t.Fatalf("default status should be Active, got %s", e.Status)
	}

	if _, err := s.employees.UpdateStatus(ctx, e.ID, "Retired"); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	got, err := s.employees.UpdateStatus(ctx, e.ID, party.EmployeeInactive)
	if err != nil || got.Status != party.EmployeeInactive {
		t.Fatalf("update status: %+v %v", got, err)
	}
	if ok, _ := s.employees.Exists(ctx, e.ID); !ok {
		t.Fatal("employee should exist")
	}
}

func TestAddressBelongsToOneParty(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	addr, err := s.addresses.Create(ctx, &party.AddressRequest{Street: "Rua da Aurora", City: "Recife"})
	if err != nil {
		t.Fatalf("create address: %v", err)
	}

	first := clientReq("first@example.com", "10")
	first.AddressID = &addr.ID
	owner, err := s.clients.Create(ctx, first)
	if err != nil {
		t.Fatalf("create first client: %v", err)
	}

	second := clientReq("second@example.com", "11")
	second.AddressID = &addr.ID
	if _, err := s.clients.Create(ctx, second); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("second client: expected ErrConflict, got %v", err)
	}

	_, err = s.employees.Create(ctx, &party.CreateEmployeeRequest{PersonRequest: party.PersonRequest{
		Name: "Rita", Email: "rita@example.com", NationalID: "12", AddressID: &addr.ID,
	}})
	if !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("employee: expected ErrConflict, got %v", err)
	}

	other, err := s.clients.Create(ctx, clientReq("other@example.com", "13"))
	if err != nil {
		t.Fatalf("create other client: %v", err)
	}
	move := party.UpdateClientRequest{UpdatePersonRequest: party.UpdatePersonRequest{AddressID: &addr.ID}}
	if _, err := s.clients.Update(ctx, other.ID, &move); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("update onto taken address: expected ErrConflict, got %v", err)
	}

	// pointing a party at the address it already owns is fine
	if _, err := s.clients.Update(ctx, owner.ID, &move); err != nil {
		t.Fatalf("re-link own address: %v", err)
	}
}

func TestUpdateEditsOwnAddressInPlace(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	req := clientReq("home@example.com", "20")
	req.Address = &party.AddressRequest{Street: "Rua Nova", City: "Olinda"}
	c, err := s.clients.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	city := "Recife"
	got, err := s.clients.Update(ctx, c.ID, &party.UpdateClientRequest{UpdatePersonRequest: party.UpdatePersonRequest{
		Address: &party.UpdateAddressRequest{City: &city},
	}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.AddressID == nil || *got.AddressID != *c.AddressID {
		t.Fatalf("address should be edited in place, got %+v", got.AddressID)
	}
	if got.Address == nil || got.Address.City != "Recife" || got.Address.Street != "Rua Nova" {
		t.Fatalf("address not merged: %+v", got.Address)
	}

	// a party without an address gets a fresh one
	bare, err := s.clients.Create(ctx, clientReq("bare@example.com", "21"))
	if err != nil {
		t.Fatalf("create bare: %v", err)
	}
	got, err = s.clients.Update(ctx, bare.ID, &party.UpdateClientRequest{UpdatePersonRequest: party.UpdatePersonRequest{
		Address: &party.UpdateAddressRequest{City: &city},
	}})
	if err != nil {
		t.Fatalf("update bare: %v", err)
	}
	if got.AddressID == nil || *got.AddressID == *c.AddressID {
		t.Fatalf("expected a new address, got %+v", got.AddressID)
	}
}
