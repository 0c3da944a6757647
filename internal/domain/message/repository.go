// internal/domain/message/repository.go
package message

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id int64) (*Message, error)
	List(ctx context.Context, filters *ListFilters) ([]Message, int64, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id int64) error
	// StartService assigns the responsible employee only while nobody is
	// assigned. It returns false when the guard did not hold.
	StartService(ctx context.Context, m *Message) (bool, error)
}
