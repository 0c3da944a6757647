// internal/service/party/employee.go
package party

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carsales-service/internal/domain/party"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type EmployeeService struct {
	repo      party.EmployeeRepository
	addresses *AddressService
	logger    *zap.Logger
}

func NewEmployeeService(repo party.EmployeeRepository, addresses *AddressService, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, addresses: addresses, logger: logger}
}

func (s *EmployeeService) Create(ctx context.Context, req *party.CreateEmployeeRequest) (*party.Employee, error) {
	status := req.Status
	if status == "" {
		status = party.EmployeeActive
	}
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not an employee status", status)
	}

	email := normalizeEmail(req.Email)
	if err := s.checkUnique(ctx, 0, email, req.NationalID); err != nil {
		return nil, err
	}
	addr, err := s.addresses.resolve(ctx, req.AddressID, req.Address, owner{})
	if err != nil {
		return nil, err
	}

	e := &party.Employee{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		Status:     status,
		AddressID:  req.AddressID,
	}
	if err := s.repo.Create(ctx, e, addr); err != nil {
		s.logger.Error("failed to create employee", zap.Error(err))
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("employee created", zap.Int64("employee_id", e.ID))
	return e, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*party.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, filters *party.EmployeeListFilters) ([]party.Employee, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, xerrors.Invalid("status %q is not an employee status", *filters.Status)
	}
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return list, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req *party.UpdateEmployeeRequest) (*party.Employee, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, xerrors.Invalid("status %q is not an employee status", *req.Status)
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email, nationalID := e.Email, e.NationalID
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
	}
	if req.NationalID != nil {
		nationalID = *req.NationalID
	}
	if err := s.checkUnique(ctx, id, email, nationalID); err != nil {
		return nil, err
	}
	if req.AddressID != nil && req.Address != nil && !req.Address.IsEmpty() {
		return nil, xerrors.Invalid("address_id and address cannot be combined")
	}
	if req.AddressID != nil {
		if _, err := s.addresses.resolve(ctx, req.AddressID, nil, owner{employeeID: id}); err != nil {
			return nil, err
		}
		e.AddressID = req.AddressID
		e.Address = nil
	}
	addr := s.addresses.own(e.Address, req.Address)

	applyPerson(&req.UpdatePersonRequest, &e.Name, &e.Phone)
	e.Email, e.NationalID = email, nationalID
	if req.Status != nil {
		e.Status = *req.Status
	}

	if err := s.repo.Update(ctx, e, addr); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) UpdateStatus(ctx context.Context, id int64, status party.EmployeeStatus) (*party.Employee, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not an employee status", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info("employee status changed", zap.Int64("employee_id", id), zap.String("status", string(status)))
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", zap.Int64("employee_id", id))
	return nil
}

// Exists lets other services check a responsible employee
func (s *EmployeeService) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, xerrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *EmployeeService) checkUnique(ctx context.Context, selfID int64, email, nationalID string) error {
	if other, err := s.repo.FindByEmail(ctx, email); err == nil && other.ID != selfID {
		return fmt.Errorf("%w: email %s is already registered", xerrors.ErrConflict, email)
	} else if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}
	if other, err := s.repo.FindByNationalID(ctx, nationalID); err == nil && other.ID != selfID {
		return fmt.Errorf("%w: national id %s is already registered", xerrors.ErrConflict, nationalID)
	} else if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return err
	}
	return nil
}
