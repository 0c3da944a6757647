// internal/repository/gormrepo/party_repo.go
package gormrepo

import (
	"context"
	"strings"

	"carsales-service/internal/domain/party"

	"gorm.io/gorm"
)

func nameLike(name string) string {
	return "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
}

// ========== Addresses ==========

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, a *party.Address) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*party.Address, error) {
	var a party.Address
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AddressRepository) List(ctx context.Context, skip, limit int) ([]party.Address, error) {
	skip, limit = page(skip, limit)
	var list []party.Address
	err := r.db.WithContext(ctx).Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, translate(err)
}

func (r *AddressRepository) Update(ctx context.Context, a *party.Address) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(a).
		Select("Street", "City", "State", "ZipCode", "Country").Updates(a))
}

// Delete detaches the address from every client and employee before removing it.
func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Model(&party.Client{}).Where("address_id = ?", id).Update("address_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&party.Employee{}).Where("address_id = ?", id).Update("address_id", nil).Error; err != nil {
			return err
		}
		return affectedOrNotFound(tx.Delete(&party.Address{}, id))
	}))
}

func (r *AddressRepository) CountReferences(ctx context.Context, id, exceptClientID, exceptEmployeeID int64) (int64, error) {
	var clients, employees int64
	err := r.db.WithContext(ctx).Model(&party.Client{}).
		Where("address_id = ? AND id <> ?", id, exceptClientID).Count(&clients).Error
	if err != nil {
		return 0, translate(err)
	}
	err = r.db.WithContext(ctx).Model(&party.Employee{}).
		Where("address_id = ? AND id <> ?", id, exceptEmployeeID).Count(&employees).Error
	if err != nil {
		return 0, translate(err)
	}
	return clients + employees, nil
}

// saveOwnAddress updates addr in place when it already exists, otherwise
// creates it and points *addressID at it.
func saveOwnAddress(tx *gorm.DB, addr *party.Address, addressID **int64) error {
	if addr == nil {
		return nil
	}
	if addr.ID != 0 {
		return affectedOrNotFound(tx.Model(addr).
			Select("Street", "City", "State", "ZipCode", "Country").Updates(addr))
	}
	if err := tx.Create(addr).Error; err != nil {
		return err
	}
	*addressID = &addr.ID
	return nil
}

// ========== Clients ==========

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *party.Client, addr *party.Address) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if addr != nil {
			if err := tx.Create(addr).Error; err != nil {
				return err
			}
			c.AddressID = &addr.ID
		}
		if err := tx.Omit("Address").Create(c).Error; err != nil {
			return err
		}
		c.Address = addr
		return nil
	}))
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*party.Client, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*party.Client, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *ClientRepository) FindByNationalID(ctx context.Context, nationalID string) (*party.Client, error) {
	return r.findOne(ctx, "national_id = ?", nationalID)
}

func (r *ClientRepository) findOne(ctx context.Context, query string, arg interface{}) (*party.Client, error) {
	var c party.Client
	if err := r.db.WithContext(ctx).Preload("Address").Where(query, arg).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, filters *party.ClientListFilters) ([]party.Client, error) {
	q := r.db.WithContext(ctx).Preload("Address")
	skip, limit := page(0, 0)
	if filters != nil {
		if filters.Name != "" {
			q = q.Where("LOWER(name) LIKE ?", nameLike(filters.Name))
		}
		skip, limit = page(filters.Skip, filters.Limit)
	}

	var list []party.Client
	err := q.Order("name ASC").Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, translate(err)
}

func (r *ClientRepository) Update(ctx context.Context, c *party.Client, addr *party.Address) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := saveOwnAddress(tx, addr, &c.AddressID); err != nil {
			return err
		}
		return affectedOrNotFound(tx.Model(c).Omit("Address").
			Select("Name", "Email", "Phone", "NationalID", "AddressID").Updates(c))
	}))
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&party.Client{}, id))
}

// ========== Employees ==========

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *party.Employee, addr *party.Address) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if addr != nil {
			if err := tx.Create(addr).Error; err != nil {
				return err
			}
			e.AddressID = &addr.ID
		}
		if e.Status == "" {
			e.Status = party.EmployeeActive
		}
		if err := tx.Omit("Address").Create(e).Error; err != nil {
			return err
		}
		e.Address = addr
		return nil
	}))
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*party.Employee, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*party.Employee, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *EmployeeRepository) FindByNationalID(ctx context.Context, nationalID string) (*party.Employee, error) {
	return r.findOne(ctx, "national_id = ?", nationalID)
}

func (r *EmployeeRepository) findOne(ctx context.Context, query string, arg interface{}) (*party.Employee, error) {
	var e party.Employee
	if err := r.db.WithContext(ctx).Preload("Address").Where(query, arg).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// List applies a single criterion: national id, then name (narrowed by
// status when given), then status alone.
func (r *EmployeeRepository) List(ctx context.Context, filters *party.EmployeeListFilters) ([]party.Employee, error) {
	q := r.db.WithContext(ctx).Preload("Address")
	skip, limit := page(0, 0)
	if filters != nil {
		switch {
		case filters.NationalID != "":
			q = q.Where("national_id = ?", filters.NationalID)
		case filters.Name != "":
			q = q.Where("LOWER(name) LIKE ?", nameLike(filters.Name))
			if filters.Status != nil {
				q = q.Where("status = ?", *filters.Status)
			}
		case filters.Status != nil:
			q = q.Where("status = ?", *filters.Status)
		}
		skip, limit = page(filters.Skip, filters.Limit)
	}

	var list []party.Employee
	err := q.Order("name ASC").Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, translate(err)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *party.Employee, addr *party.Address) error {
	return translate(withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := saveOwnAddress(tx, addr, &e.AddressID); err != nil {
			return err
		}
		return affectedOrNotFound(tx.Model(e).Omit("Address").
			Select("Name", "Email", "Phone", "NationalID", "AddressID", "Status").Updates(e))
	}))
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, id int64, status party.EmployeeStatus) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&party.Employee{}).Where("id = ?", id).Update("status", status))
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&party.Employee{}, id))
}
