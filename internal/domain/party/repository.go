// internal/domain/party/repository.go
package party

import "context"

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	FindByID(ctx context.Context, id int64) (*Address, error)
	List(ctx context.Context, skip, limit int) ([]Address, error)
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id int64) error
	// CountReferences counts clients and employees pointing at the address,
	// leaving out the given client and employee (0 skips nothing).
	CountReferences(ctx context.Context, id, exceptClientID, exceptEmployeeID int64) (int64, error)
}

type ClientRepository interface {
	// Create inserts the client, creating addr first in the same unit of work when non-nil
	Create(ctx context.Context, c *Client, addr *Address) error
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Client, error)
	List(ctx context.Context, filters *ClientListFilters) ([]Client, error)
	// Update saves c; a non-nil addr is updated when it has an id and created
	// and linked otherwise, in the same unit of work.
	Update(ctx context.Context, c *Client, addr *Address) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee, addr *Address) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Employee, error)
	List(ctx context.Context, filters *EmployeeListFilters) ([]Employee, error)
	Update(ctx context.Context, e *Employee, addr *Address) error
	UpdateStatus(ctx context.Context, id int64, status EmployeeStatus) error
	Delete(ctx context.Context, id int64) error
}
