package service

import (
	"context"
	"fmt"

	repository "github.com/dklimov443/carminder/internal/database/postgres"
	"github.com/dklimov443/carminder/internal/entity"

	"github.com/sirupsen/logrus"
)

type recordService struct {
	recordRepo repository.RecordRepository
	carRepo    repository.CarRepository
}

func NewRecordService(recordRepo repository.RecordRepository, carRepo repository.CarRepository) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		carRepo:    carRepo,
	}
}

func (s *recordService) AddRecord(ctx context.Context, req *AddRecordRequest) (*entity.ServiceRecord, error) {
	if !req.Type.IsValid() {
		return nil, entity.ErrInvalidServiceType
	}
	if req.Type.IsReminderType() && req.ExpiryDate.IsZero() {
		return nil, entity.ErrExpiryDateRequired
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, fmt.Errorf("car lookup failed: %w", err)
	}

	rec := &entity.ServiceRecord{
		CarID:         car.ID,
		UserID:        car.UserID,
		Type:          req.Type,
		ExpiryDate:    req.ExpiryDate,
		Cost:          req.Cost,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
	}

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to add service record: %w", err)
	}

	logrus.Infof("Service record added: ID=%d, Car=%d, Type=%s", rec.ID, rec.CarID, rec.Type)
	return rec, nil
}

func (s *recordService) GetRecord(ctx context.Context, id int64) (*entity.ServiceRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

func (s *recordService) GetCarRecords(ctx context.Context, carID int64) ([]*entity.ServiceRecord, error) {
	return s.recordRepo.GetByCarID(ctx, carID)
}

func (s *recordService) GetUserRecords(ctx context.Context, userID int64) ([]*entity.ServiceRecord, error) {
	return s.recordRepo.GetByUserID(ctx, userID)
}

// UpdateRecord edits a record. A changed expiry date re-arms the record:
// the earlier "already reminded" state no longer applies to the new
// deadline, so the notified flag is cleared and the next sweep evaluates
// it as a fresh candidate.
func (s *recordService) UpdateRecord(ctx context.Context, id int64, req *UpdateRecordRequest) (*entity.ServiceRecord, error) {
	if !req.Type.IsValid() {
		return nil, entity.ErrInvalidServiceType
	}
	if req.Type.IsReminderType() && req.ExpiryDate.IsZero() {
		return nil, entity.ErrExpiryDateRequired
	}

	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rearm := !req.ExpiryDate.Equal(rec.ExpiryDate.Time)

	rec.Type = req.Type
	rec.ExpiryDate = req.ExpiryDate
	rec.Cost = req.Cost
	rec.Liters = req.Liters
	rec.PricePerLiter = req.PricePerLiter

	if err := s.recordRepo.Update(ctx, rec, rearm); err != nil {
		return nil, fmt.Errorf("failed to update service record: %w", err)
	}

	if rearm {
		logrus.Infof("Service record %d re-armed after expiry date change", rec.ID)
	}
	return rec, nil
}

func (s *recordService) DeleteRecord(ctx context.Context, id int64) error {
	return s.recordRepo.Delete(ctx, id)
}
