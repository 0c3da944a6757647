// internal/service/party/address.go
package party

import (
	"context"
	"fmt"

	"carsales-service/internal/domain/party"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type AddressService struct {
	repo   party.AddressRepository
	logger *zap.Logger
}

func NewAddressService(repo party.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{repo: repo, logger: logger}
}

func (s *AddressService) Create(ctx context.Context, req *party.AddressRequest) (*party.Address, error) {
	a := req.ToAddress()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return a, nil
}

func (s *AddressService) Get(ctx context.Context, id int64) (*party.Address, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AddressService) List(ctx context.Context, p *party.Pagination) ([]party.Address, error) {
	list, err := s.repo.List(ctx, p.Skip, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return list, nil
}

func (s *AddressService) Update(ctx context.Context, id int64, req *party.UpdateAddressRequest) (*party.Address, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(a)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return a, nil
}

// Delete detaches the address from any client or employee using it
func (s *AddressService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("address deleted", zap.Int64("address_id", id))
	return nil
}

// owner names the party an address is being attached to, so its own link
// does not count as a conflict.
type owner struct {
	clientID   int64
	employeeID int64
}

// resolve returns the address to create inline. An explicit address_id must
// exist and must not belong to another client or employee.
func (s *AddressService) resolve(ctx context.Context, addressID *int64, inline *party.AddressRequest, self owner) (*party.Address, error) {
	if addressID != nil && inline != nil && !inline.IsEmpty() {
		return nil, xerrors.Invalid("address_id and address cannot be combined")
	}
	if addressID != nil {
		return nil, s.checkFree(ctx, *addressID, self)
	}
	if inline != nil && !inline.IsEmpty() {
		return inline.ToAddress(), nil
	}
	return nil, nil
}

func (s *AddressService) checkFree(ctx context.Context, id int64, self owner) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("address %d: %w", id, err)
	}
	n, err := s.repo.CountReferences(ctx, id, self.clientID, self.employeeID)
	if err != nil {
		return fmt.Errorf("failed to check address %d: %w", id, err)
	}
	if n > 0 {
		return fmt.Errorf("%w: address %d already belongs to another client or employee", xerrors.ErrConflict, id)
	}
	return nil
}

// own merges an inline edit onto the party's current address, or builds a
// new one when the party has none.
func (s *AddressService) own(current *party.Address, edit *party.UpdateAddressRequest) *party.Address {
	if edit == nil || edit.IsEmpty() {
		return nil
	}
	a := &party.Address{}
	if current != nil {
		copied := *current
		a = &copied
	}
	edit.ApplyTo(a)
	return a
}
