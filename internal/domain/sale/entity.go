// internal/domain/sale/entity.go
package sale

import (
	"fmt"
	"time"

	xerrors "carsales-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

type Status string
type PaymentMethod string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusPaid      Status = "Paid"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"

	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentFinancing  PaymentMethod = "Financing"
	PaymentConsortium PaymentMethod = "Consortium"
	PaymentPIX        PaymentMethod = "PIX"
)

var (
	Statuses       = []Status{StatusPending, StatusConfirmed, StatusPaid, StatusDelivered, StatusCancelled}
	PaymentMethods = []PaymentMethod{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentFinancing, PaymentConsortium, PaymentPIX}

	hundred = decimal.NewFromInt(100)
)

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (p PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if p == v {
			return true
		}
	}
	return false
}

// Sale records a vehicle sold to a client by an employee. CommissionAmount
// and FinalAmount are derived; call Recalculate after changing any input.
type Sale struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID         int64           `gorm:"not null;index" json:"client_id"`
	EmployeeID       int64           `gorm:"not null;index" json:"employee_id"`
	VehicleID        int64           `gorm:"not null;index" json:"vehicle_id"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission_amount"`
	FinalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_amount"`
	PaymentMethod    PaymentMethod   `gorm:"size:30;not null;index" json:"payment_method"`
	Status           Status          `gorm:"size:20;not null;index" json:"status"`
	SaleDate         time.Time       `gorm:"type:date;not null;index" json:"sale_date"`
	Notes            string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Sale) TableName() string { return "sales" }

// Recalculate derives commission and final amount from the inputs
func (s *Sale) Recalculate() {
	s.CommissionAmount = s.TotalAmount.Mul(s.CommissionRate).Div(hundred).Round(2)
	s.FinalAmount = s.TotalAmount.Sub(s.DiscountAmount).Add(s.TaxAmount).Round(2)
}

// Validate checks enums, amount signs and the discount ceiling
func (s *Sale) Validate() error {
	if !s.PaymentMethod.Valid() {
		return xerrors.Invalid("payment method %q is not accepted", s.PaymentMethod)
	}
	if !s.Status.Valid() {
		return xerrors.Invalid("status %q is not a sale status", s.Status)
	}
	if !s.TotalAmount.IsPositive() {
		return xerrors.Invalid("total amount must be greater than zero")
	}
	if s.DiscountAmount.IsNegative() || s.TaxAmount.IsNegative() {
		return xerrors.Invalid("discount and tax amounts cannot be negative")
	}
	if s.CommissionRate.IsNegative() || s.CommissionRate.GreaterThan(hundred) {
		return xerrors.Invalid("commission rate must be between 0 and 100")
	}
	if s.DiscountAmount.GreaterThan(s.TotalAmount) {
		return xerrors.Invalid("discount amount %s exceeds total amount %s", s.DiscountAmount.StringFixed(2), s.TotalAmount.StringFixed(2))
	}
	return nil
}

// ParseDate reads the yyyy-mm-dd form used by the API
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", xerrors.ErrInvalidInput, v)
	}
	return t, nil
}
