package message

import (
	"context"
	"errors"
	"testing"

	"carsales-service/internal/db"
	"carsales-service/internal/db/dbtest"
	"carsales-service/internal/domain/event"
	"carsales-service/internal/domain/message"
	"carsales-service/internal/domain/party"
	"carsales-service/internal/domain/vehicle"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/events/eventstest"
	"carsales-service/internal/repository/gormrepo"
	partysvc "carsales-service/internal/service/party"
	vehiclesvc "carsales-service/internal/service/vehicle"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fixture struct {
	svc       *MessageService
	recorder  *eventstest.Recorder
	staffID   int64
	vehicleID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := dbtest.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	log := zap.NewNop()
	addresses := partysvc.NewAddressService(gormrepo.NewAddressRepository(gdb), log)
	employees := partysvc.NewEmployeeService(gormrepo.NewEmployeeRepository(gdb), addresses, log)
	e, err := employees.Create(context.Background(), &party.CreateEmployeeRequest{PersonRequest: party.PersonRequest{
		Name: "Staff", Email: "staff@example.com", NationalID: "1",
	}})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	cars := vehiclesvc.NewCarService(gormrepo.NewCarRepository(gdb), nil, log)
	motos := vehiclesvc.NewMotorcycleService(gormrepo.NewMotorcycleRepository(gdb), nil, log)
	car, err := cars.Create(context.Background(), &vehicle.CreateCarRequest{
		BaseVehicleRequest: vehicle.BaseVehicleRequest{Model: "Argo", Year: "2022", Price: decimal.NewFromInt(60000)},
		Bodywork:           "Hatch",
		Transmission:       "Manual",
	})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}

	rec := &eventstest.Recorder{}
	return &fixture{
		svc:       NewMessageService(gormrepo.NewMessageRepository(gdb), employees, vehiclesvc.NewCatalog(cars, motos), rec, log),
		recorder:  rec,
		staffID:   e.ID,
		vehicleID: car.ID,
	}
}

func (f *fixture) message(t *testing.T) *message.Message {
	t.Helper()
	m, err := f.svc.Create(context.Background(), &message.CreateMessageRequest{
		Name: "Davi", Email: "davi@example.com", Message: "Do you accept trade-ins?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return m
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)
	m := f.message(t)
	if m.Status != message.StatusPending || m.ResponsibleID != nil || m.ServiceStartTime != nil {
		t.Fatalf("unexpected new message %+v", m)
	}
	if len(f.recorder.Named(event.MessageReceived)) != 1 {
		t.Fatal("message.received not published")
	}
}

func TestStartServiceOnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.message(t)

	started, err := f.svc.StartService(ctx, m.ID, f.staffID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != message.StatusContactInitiated || started.ServiceStartTime == nil {
		t.Fatalf("unexpected started message %+v", started)
	}

	if _, err := f.svc.StartService(ctx, m.ID, f.staffID); !errors.Is(err, xerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if xerrors.HTTPStatus(xerrors.ErrInvalidState) != 409 {
		t.Fatal("invalid state should surface as 409")
	}
}

func TestStartServiceUnknownEmployee(t *testing.T) {
	f := newFixture(t)
	m := f.message(t)
	if _, err := f.svc.StartService(context.Background(), m.ID, 999); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusIsUnconditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.message(t)

	for _, st := range []message.Status{message.StatusFinished, message.StatusPending, message.StatusCancelled, message.StatusContactInitiated} {
		got, err := f.svc.UpdateStatus(ctx, m.ID, st)
		if err != nil {
			t.Fatalf("to %s: %v", st, err)
		}
		if got.Status != st {
			t.Fatalf("status = %s, want %s", got.Status, st)
		}
	}
	if _, err := f.svc.UpdateStatus(ctx, m.ID, "Archived"); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.message(t)
	}

	res, err := f.svc.List(context.Background(), &message.ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.Limit != 10 || res.Total != 12 || res.TotalPages != 2 || len(res.Messages) != 10 {
		t.Fatalf("unexpected page %+v", res)
	}

	res, _ = f.svc.ListByStatus(context.Background(), message.StatusFinished, 1, 10)
	if res.Total != 0 || res.TotalPages != 0 {
		t.Fatalf("expected empty finished list, got %+v", res)
	}
}

func TestMessageVehicleMustExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing := f.vehicleID + 100
	_, err := f.svc.Create(ctx, &message.CreateMessageRequest{
		Name: "Lia", Email: "lia@example.com", Message: "Still available?", VehicleID: &missing,
	})
	if !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown vehicle, got %v", err)
	}

	m, err := f.svc.Create(ctx, &message.CreateMessageRequest{
		Name: "Lia", Email: "lia@example.com", Message: "Still available?", VehicleID: &f.vehicleID,
	})
	if err != nil {
		t.Fatalf("create with vehicle: %v", err)
	}

	if _, err := f.svc.Update(ctx, m.ID, &message.UpdateMessageRequest{VehicleID: &missing}); !errors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
}
