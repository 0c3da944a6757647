// internal/service/party/client.go
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

type ClientService struct {
	repo      party.ClientRepository
	addresses *AddressService
	logger    *zap.Logger
}

func NewClientService(repo party.ClientRepository, addresses *AddressService, logger *zap.Logger) *ClientService {
	return &ClientService{repo: repo, addresses: addresses, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, req *party.CreateClientRequest) (*party.Client, error) {
	email := normalizeEmail(req.Email)
	if err := s.checkUnique(ctx, 0, email, req.NationalID); err != nil {
		return nil, err
	}

	addr, err := s.addresses.resolve(ctx, req.AddressID, req.Address, owner{})
	if err != nil {
		return nil, err
	}

	c := &party.Client{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Phone:      req.Phone,
		NationalID: req.NationalID,
		AddressID:  req.AddressID,
	}
	if err := s.repo.Create(ctx, c, addr); err != nil {
		s.logger.Error("failed to create client", zap.Error(err))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created", zap.Int64("client_id", c.ID))
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*party.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context, filters *party.ClientListFilters) ([]party.Client, error) {
	list, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return list, nil
}

// Search requires a name, unlike List
func (s *ClientService) Search(ctx context.Context, filters *party.ClientListFilters) ([]party.Client, error) {
	if strings.TrimSpace(filters.Name) == "" {
		return nil, xerrors.Invalid("name is required")
	}
	return s.List(ctx, filters)
}

func (s *ClientService) Update(ctx context.Context, id int64, req *party.UpdateClientRequest) (*party.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email, nationalID := c.Email, c.NationalID
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
		if _, err := s.addresses.resolve(ctx, req.AddressID, nil, owner{clientID: id}); err != nil {
			return nil, err
		}
		c.AddressID = req.AddressID
		c.Address = nil
	}
	addr := s.addresses.own(c.Address, req.Address)

	applyPerson(&req.UpdatePersonRequest, &c.Name, &c.Phone)
	c.Email, c.NationalID = email, nationalID

	if err := s.repo.Update(ctx, c, addr); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

// checkUnique rejects email or national id already used by another client
func (s *ClientService) checkUnique(ctx context.Context, selfID int64, email, nationalID string) error {
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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func applyPerson(req *party.UpdatePersonRequest, name, phone *string) {
	if req.Name != nil {
		*name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		*phone = *req.Phone
	}
}
