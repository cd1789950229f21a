package service

import (
	"context"

	"github.com/dklimov443/carminder/internal/entity"
)

// UserService defines the interface for user operations
type UserService interface {
	RegisterUser(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateUser(ctx context.Context, id int64, req *UpdateUserRequest) (*entity.User, error)
	UpdateReminderSettings(ctx context.Context, id int64, req *ReminderSettingsRequest) error
	DeleteUser(ctx context.Context, id int64) error
	GetAllUsers(ctx context.Context) ([]*entity.User, error)
}

// CarService defines the interface for car operations
type CarService interface {
	AddCar(ctx context.Context, req *AddCarRequest) (*entity.Car, error)
	GetCar(ctx context.Context, id int64) (*entity.Car, error)
	GetUserCars(ctx context.Context, userID int64) ([]*entity.Car, error)
	UpdateCar(ctx context.Context, id int64, req *UpdateCarRequest) (*entity.Car, error)
	DeleteCar(ctx context.Context, id int64) error
}

// RecordService defines the interface for service record operations
type RecordService interface {
	AddRecord(ctx context.Context, req *AddRecordRequest) (*entity.ServiceRecord, error)
	GetRecord(ctx context.Context, id int64) (*entity.ServiceRecord, error)
	GetCarRecords(ctx context.Context, carID int64) ([]*entity.ServiceRecord, error)
	GetUserRecords(ctx context.Context, userID int64) ([]*entity.ServiceRecord, error)
	UpdateRecord(ctx context.Context, id int64, req *UpdateRecordRequest) (*entity.ServiceRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}

type RegisterUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=1,max=255"`
}

type UpdateUserRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name" binding:"omitempty,min=1,max=255"`
}

type ReminderSettingsRequest struct {
	ReminderDays    int   `json:"reminder_days" binding:"required"`
	ReminderEnabled *bool `json:"reminder_enabled" binding:"required"`
}

type AddCarRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Brand  string `json:"brand" binding:"required,min=1,max=100"`
	Model  string `json:"model" binding:"required,min=1,max=100"`
	Year   int    `json:"year" binding:"required,min=1900,max=2100"`
	Plate  string `json:"plate" binding:"max=20"`
}

type UpdateCarRequest struct {
	Brand string `json:"brand" binding:"omitempty,min=1,max=100"`
	Model string `json:"model" binding:"omitempty,min=1,max=100"`
	Year  int    `json:"year" binding:"omitempty,min=1900,max=2100"`
	Plate string `json:"plate" binding:"max=20"`
}

type AddRecordRequest struct {
	CarID         int64              `json:"car_id" binding:"required"`
	Type          entity.ServiceType `json:"type" binding:"required"`
	ExpiryDate    entity.Date        `json:"expiry_date"`
	Cost          float64            `json:"cost" binding:"min=0"`
	Liters        float64            `json:"liters" binding:"min=0"`
	PricePerLiter float64            `json:"price_per_liter" binding:"min=0"`
}

type UpdateRecordRequest struct {
	Type          entity.ServiceType `json:"type" binding:"required"`
	ExpiryDate    entity.Date        `json:"expiry_date"`
	Cost          float64            `json:"cost" binding:"min=0"`
	Liters        float64            `json:"liters" binding:"min=0"`
	PricePerLiter float64            `json:"price_per_liter" binding:"min=0"`
}
