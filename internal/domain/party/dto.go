package party

type AddressRequest struct {
	Street  string `json:"street" binding:"max=100"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	ZipCode string `json:"zip_code" binding:"max=20"`
	Country string `json:"country" binding:"max=100"`
}

// IsEmpty reports whether no address field was supplied
func (r *AddressRequest) IsEmpty() bool {
	return r.Street == "" && r.City == "" && r.State == "" && r.ZipCode == "" && r.Country == ""
}

func (r *AddressRequest) ToAddress() *Address {
	return &Address{
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
		Country: r.Country,
	}
}

type UpdateAddressRequest struct {
	Street  *string `json:"street" binding:"omitempty,max=100"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	State   *string `json:"state" binding:"omitempty,max=100"`
	ZipCode *string `json:"zip_code" binding:"omitempty,max=20"`
	Country *string `json:"country" binding:"omitempty,max=100"`
}

// IsEmpty reports whether no address field was supplied
func (r *UpdateAddressRequest) IsEmpty() bool {
	return r.Street == nil && r.City == nil && r.State == nil && r.ZipCode == nil && r.Country == nil
}

// ApplyTo merges the supplied fields onto a
func (r *UpdateAddressRequest) ApplyTo(a *Address) {
	if r.Street != nil {
		a.Street = *r.Street
	}
	if r.City != nil {
		a.City = *r.City
	}
	if r.State != nil {
		a.State = *r.State
	}
	if r.ZipCode != nil {
		a.ZipCode = *r.ZipCode
	}
	if r.Country != nil {
		a.Country = *r.Country
	}
}

// PersonRequest carries the fields clients and employees share on create
type PersonRequest struct {
	Name       string          `json:"name" binding:"required,max=100"`
	Email      string          `json:"email" binding:"required,email,max=100"`
	Phone      string          `json:"phone" binding:"max=50"`
	NationalID string          `json:"national_id" binding:"required,max=14"`
	AddressID  *int64          `json:"address_id"`
	Address    *AddressRequest `json:"address"`
}

type CreateClientRequest struct {
	PersonRequest
}

type CreateEmployeeRequest struct {
	PersonRequest
	Status EmployeeStatus `json:"status"`
}

type UpdatePersonRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Email      *string `json:"email" binding:"omitempty,email,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	NationalID *string `json:"national_id" binding:"omitempty,max=14"`
	AddressID  *int64  `json:"address_id"`
	// Address edits the party's own address in place, or creates one when
	// the party has none.
	Address *UpdateAddressRequest `json:"address"`
}

type UpdateClientRequest struct {
	UpdatePersonRequest
}

type UpdateEmployeeRequest struct {
	UpdatePersonRequest
	Status *EmployeeStatus `json:"status"`
}

type UpdateEmployeeStatusRequest struct {
	Status EmployeeStatus `json:"status" binding:"required"`
}

type ClientListFilters struct {
	Name  string `form:"name"`
	Skip  int    `form:"skip" binding:"omitempty,min=0"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// EmployeeListFilters apply one criterion at a time:
// national_id, then name (optionally with status), then status.
type EmployeeListFilters struct {
	NationalID string          `form:"national_id"`
	Name       string          `form:"name"`
	Status     *EmployeeStatus `form:"status"`
	Skip       int             `form:"skip" binding:"omitempty,min=0"`
	Limit      int             `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type Pagination struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}
