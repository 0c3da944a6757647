// internal/service/message/message.go
package message

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carsales-service/internal/domain/event"
	"carsales-service/internal/domain/message"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// EmployeeChecker confirms a responsible employee exists
type EmployeeChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// VehicleChecker confirms an inquiry refers to a car or motorcycle on file
type VehicleChecker interface {
	ExistsAny(ctx context.Context, id int64) (bool, error)
}

type MessageService struct {
	repo      message.Repository
	employees EmployeeChecker
	vehicles  VehicleChecker
	publisher event.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewMessageService(repo message.Repository, employees EmployeeChecker, vehicles VehicleChecker, publisher event.Publisher, logger *zap.Logger) *MessageService {
	return &MessageService{
		repo:      repo,
		employees: employees,
		vehicles:  vehicles,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create records an inquiry from the public contact form
func (s *MessageService) Create(ctx context.Context, req *message.CreateMessageRequest) (*message.Message, error) {
	if req.VehicleID != nil {
		if err := s.checkVehicle(ctx, *req.VehicleID); err != nil {
			return nil, err
		}
	}

	m := &message.Message{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Message:   req.Message,
		VehicleID: req.VehicleID,
		Status:    message.StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create message", zap.Error(err))
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Info("message received", zap.Int64("message_id", m.ID))
	s.publish(ctx, event.New(event.MessageReceived, m))
	return m, nil
}

func (s *MessageService) Get(ctx context.Context, id int64) (*message.Message, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MessageService) List(ctx context.Context, filters *message.ListFilters) (*message.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageSize
	}
	if filters.Limit > maxPageSize {
		filters.Limit = maxPageSize
	}
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, xerrors.Invalid("status %q is not a message status", *filters.Status)
	}

	list, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if list == nil {
		list = []message.Message{}
	}

	totalPages := int(total) / filters.Limit
	if int(total)%filters.Limit > 0 {
		totalPages++
	}

	return &message.ListResponse{
		Messages:   list,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

// ListByStatus backs the status shortcut routes
func (s *MessageService) ListByStatus(ctx context.Context, status message.Status, page, limit int) (*message.ListResponse, error) {
	return s.List(ctx, &message.ListFilters{Status: &status, Page: page, Limit: limit})
}

func (s *MessageService) Update(ctx context.Context, id int64, req *message.UpdateMessageRequest) (*message.Message, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, xerrors.Invalid("status %q is not a message status", *req.Status)
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		m.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.Message != nil {
		m.Message = *req.Message
	}
	if req.VehicleID != nil {
		if err := s.checkVehicle(ctx, *req.VehicleID); err != nil {
			return nil, err
		}
		m.VehicleID = req.VehicleID
	}
	if req.ResponsibleID != nil {
		if err := s.checkEmployee(ctx, *req.ResponsibleID); err != nil {
			return nil, err
		}
		m.ResponsibleID = req.ResponsibleID
	}
	if req.Status != nil {
		m.Status = *req.Status
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return m, nil
}

// StartService assigns responsibleID and moves the inquiry to Contact
// Initiated. An inquiry that already has a responsible employee is left
// untouched and ErrInvalidState is returned.
func (s *MessageService) StartService(ctx context.Context, id, responsibleID int64) (*message.Message, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployee(ctx, responsibleID); err != nil {
		return nil, err
	}

	if !m.StartService(responsibleID, s.now().UTC()) {
		return nil, fmt.Errorf("%w: message %d is already being handled", xerrors.ErrInvalidState, id)
	}
	ok, err := s.repo.StartService(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: message %d is already being handled", xerrors.ErrInvalidState, id)
	}

	s.logger.Info("message service started", zap.Int64("message_id", id), zap.Int64("responsible_id", responsibleID))
	s.publish(ctx, event.New(event.MessageServiceStarted, m))
	return m, nil
}

// UpdateStatus moves between any two valid statuses
func (s *MessageService) UpdateStatus(ctx context.Context, id int64, status message.Status) (*message.Message, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("status %q is not a message status", status)
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = status
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	return m, nil
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("message deleted", zap.Int64("message_id", id))
	return nil
}

func (s *MessageService) checkEmployee(ctx context.Context, id int64) error {
	if s.employees == nil {
		return nil
	}
	ok, err := s.employees.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check employee: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: employee %d", xerrors.ErrNotFound, id)
	}
	return nil
}

func (s *MessageService) checkVehicle(ctx context.Context, id int64) error {
	if s.vehicles == nil {
		return nil
	}
	ok, err := s.vehicles.ExistsAny(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check vehicle: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: vehicle %d", xerrors.ErrNotFound, id)
	}
	return nil
}

func (s *MessageService) publish(ctx context.Context, e event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", string(e.Name)), zap.Error(err))
	}
}
