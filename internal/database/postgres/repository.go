package repository

import (
	"context"

	"github.com/dklimov443/carminder/internal/entity"
)

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	GetByID(ctx context.Context, id int64) (*entity.Car, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateReminderSettings(ctx context.Context, userID int64, days int, enabled bool) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*entity.User, error)
}

type RecordRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, rec *entity.ServiceRecord) error
	GetByID(ctx context.Context, id int64) (*entity.ServiceRecord, error)
	Update(ctx context.Context, rec *entity.ServiceRecord, resetNotified bool) error
	Delete(ctx context.Context, id int64) error

	// Query operations
	GetByCarID(ctx context.Context, carID int64) ([]*entity.ServiceRecord, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.ServiceRecord, error)

	// Reminder sweep operations
	ListUnsent(ctx context.Context) ([]*entity.ServiceRecord, error)
	MarkNotified(ctx context.Context, id int64) error
}
