package service

import (
	"context"
	"fmt"

	repository "github.com/dklimov443/carminder/internal/database/postgres"
	"github.com/dklimov443/carminder/internal/entity"

	"github.com/sirupsen/logrus"
)

type carService struct {
	carRepo  repository.CarRepository
	userRepo repository.UserRepository
}

func NewCarService(carRepo repository.CarRepository, userRepo repository.UserRepository) CarService {
	return &carService{
		carRepo:  carRepo,
		userRepo: userRepo,
	}
}

func (s *carService) AddCar(ctx context.Context, req *AddCarRequest) (*entity.Car, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("owner lookup failed: %w", err)
	}

	car := &entity.Car{
		UserID: req.UserID,
		Brand:  req.Brand,
		Model:  req.Model,
		Year:   req.Year,
		Plate:  req.Plate,
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to add car: %w", err)
	}

	logrus.Infof("Car added: ID=%d, User=%d, %s", car.ID, car.UserID, car.DisplayName())
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id int64) (*entity.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) GetUserCars(ctx context.Context, userID int64) ([]*entity.Car, error) {
	return s.carRepo.GetByUserID(ctx, userID)
}

func (s *carService) UpdateCar(ctx context.Context, id int64, req *UpdateCarRequest) (*entity.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Brand != "" {
		car.Brand = req.Brand
	}
	if req.Model != "" {
		car.Model = req.Model
	}
	if req.Year != 0 {
		car.Year = req.Year
	}
	if req.Plate != "" {
		car.Plate = req.Plate
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	return car, nil
}

func (s *carService) DeleteCar(ctx context.Context, id int64) error {
	return s.carRepo.Delete(ctx, id)
}
