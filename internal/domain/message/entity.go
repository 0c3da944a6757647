// internal/domain/message/entity.go
package message

import "time"

type Status string

const (
	StatusPending          Status = "Pending"
	StatusContactInitiated Status = "Contact Initiated"
	StatusFinished         Status = "Finished"
	StatusCancelled        Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusContactInitiated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// Message is a customer inquiry, optionally about a vehicle and handled by an employee
type Message struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Email            string     `gorm:"size:100;not null" json:"email"`
	Phone            string     `gorm:"size:50" json:"phone,omitempty"`
	Message          string     `gorm:"type:text;not null" json:"message"`
	VehicleID        *int64     `gorm:"index" json:"vehicle_id,omitempty"`
	ResponsibleID    *int64     `gorm:"index" json:"responsible_id,omitempty"`
	Status           Status     `gorm:"size:20;not null;index" json:"status"`
	ServiceStartTime *time.Time `json:"service_start_time,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

// StartService assigns the responsible employee and moves the inquiry to
// Contact Initiated. It fails when someone is already responsible.
func (m *Message) StartService(responsibleID int64, now time.Time) bool {
	if m.ResponsibleID != nil {
		return false
	}
	m.ResponsibleID = &responsibleID
	m.ServiceStartTime = &now
	m.Status = StatusContactInitiated
	return true
}
