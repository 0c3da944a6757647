// internal/repository/gormrepo/message_repo.go
package gormrepo

import (
	"context"

	"carsales-service/internal/domain/message"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (*message.Message, error) {
	var m message.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// List filters are additive here, unlike sales. Newest first.
func (r *MessageRepository) List(ctx context.Context, filters *message.ListFilters) ([]message.Message, int64, error) {
	q := r.db.WithContext(ctx).Model(&message.Message{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.ResponsibleID != nil {
		q = q.Where("responsible_id = ?", *filters.ResponsibleID)
	}
	if filters.VehicleID != nil {
		q = q.Where("vehicle_id = ?", *filters.VehicleID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var list []message.Message
	offset := (filters.Page - 1) * filters.Limit
	err := q.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(filters.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return list, total, nil
}

func (r *MessageRepository) Update(ctx context.Context, m *message.Message) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(m).Select(
		"Name", "Email", "Phone", "Message", "VehicleID",
		"ResponsibleID", "Status", "ServiceStartTime",
	).Updates(m))
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Delete(&message.Message{}, id))
}

// StartService is a compare-and-set on responsible_id so two staff members
// cannot both take the same inquiry.
func (r *MessageRepository) StartService(ctx context.Context, m *message.Message) (bool, error) {
	res := r.db.WithContext(ctx).Model(&message.Message{}).
		Where("id = ? AND responsible_id IS NULL", m.ID).
		Updates(map[string]interface{}{
			"responsible_id":     m.ResponsibleID,
			"service_start_time": m.ServiceStartTime,
			"status":             m.Status,
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}
