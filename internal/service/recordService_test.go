package service

import (
	"context"
	"testing"
	"time"

	"github.com/dklimov443/carminder/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	records       map[int64]*entity.ServiceRecord
	lastResetFlag bool
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec *entity.ServiceRecord) error {
	rec.ID = int64(len(f.records) + 1)
	rec.Notified = false
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id int64) (*entity.ServiceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, entity.ErrRecordNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec *entity.ServiceRecord, resetNotified bool) error {
	stored, ok := f.records[rec.ID]
	if !ok {
		return entity.ErrRecordNotFound
	}
	f.lastResetFlag = resetNotified
	*stored = *rec
	if resetNotified {
		stored.Notified = false
		rec.Notified = false
	}
	return nil
}

func (f *fakeRecordRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return entity.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRecordRepo) GetByCarID(ctx context.Context, carID int64) ([]*entity.ServiceRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) GetByUserID(ctx context.Context, userID int64) ([]*entity.ServiceRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) ListUnsent(ctx context.Context) ([]*entity.ServiceRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) MarkNotified(ctx context.Context, id int64) error {
	rec, ok := f.records[id]
	if !ok {
		return entity.ErrRecordNotFound
	}
	rec.Notified = true
	return nil
}

type fakeCarRepo struct {
	cars map[int64]*entity.Car
}

func (f *fakeCarRepo) Create(ctx context.Context, car *entity.Car) error { return nil }

func (f *fakeCarRepo) GetByID(ctx context.Context, id int64) (*entity.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, entity.ErrCarNotFound
	}
	return car, nil
}

func (f *fakeCarRepo) GetByUserID(ctx context.Context, userID int64) ([]*entity.Car, error) {
	return nil, nil
}

func (f *fakeCarRepo) Update(ctx context.Context, car *entity.Car) error { return nil }
func (f *fakeCarRepo) Delete(ctx context.Context, id int64) error        { return nil }

func newTestRecordService() (RecordService, *fakeRecordRepo) {
	recordRepo := &fakeRecordRepo{records: make(map[int64]*entity.ServiceRecord)}
	carRepo := &fakeCarRepo{cars: map[int64]*entity.Car{
		1: {ID: 1, UserID: 7, Brand: "VW", Model: "Golf", Year: 2018},
	}}
	return NewRecordService(recordRepo, carRepo), recordRepo
}

func TestAddRecordOwnerDerivedFromCar(t *testing.T) {
	svc, repo := newTestRecordService()

	rec, err := svc.AddRecord(context.Background(), &AddRecordRequest{
		CarID:      1,
		Type:       entity.ServiceTypeInsurance,
		ExpiryDate: entity.NewDate(2024, time.December, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), rec.UserID)
	assert.False(t, rec.Notified)
	assert.Len(t, repo.records, 1)
}

func TestAddRecordValidation(t *testing.T) {
	svc, _ := newTestRecordService()

	tests := []struct {
		name    string
		req     *AddRecordRequest
		wantErr error
	}{
		{
			name:    "unknown type",
			req:     &AddRecordRequest{CarID: 1, Type: "warranty"},
			wantErr: entity.ErrInvalidServiceType,
		},
		{
			name:    "reminder type without expiry",
			req:     &AddRecordRequest{CarID: 1, Type: entity.ServiceTypeTax},
			wantErr: entity.ErrExpiryDateRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddRecord(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// One-off types need no expiry date.
	_, err := svc.AddRecord(context.Background(), &AddRecordRequest{
		CarID: 1,
		Type:  entity.ServiceTypeRefuel,
	})
	assert.NoError(t, err)
}

func TestUpdateRecordRearmsOnExpiryChange(t *testing.T) {
	svc, repo := newTestRecordService()

	rec, err := svc.AddRecord(context.Background(), &AddRecordRequest{
		CarID:      1,
		Type:       entity.ServiceTypeVignette,
		ExpiryDate: entity.NewDate(2024, time.June, 1),
	})
	require.NoError(t, err)

	// Simulate a sweep having already notified this record.
	require.NoError(t, repo.MarkNotified(context.Background(), rec.ID))
	require.True(t, repo.records[rec.ID].Notified)

	// Pushing the deadline out re-arms it as a fresh candidate.
	updated, err := svc.UpdateRecord(context.Background(), rec.ID, &UpdateRecordRequest{
		Type:       entity.ServiceTypeVignette,
		ExpiryDate: entity.NewDate(2025, time.June, 1),
	})
	require.NoError(t, err)

	assert.True(t, repo.lastResetFlag)
	assert.False(t, updated.Notified)
	assert.False(t, repo.records[rec.ID].Notified)
}

func TestUpdateRecordKeepsSentFlagWhenDateUnchanged(t *testing.T) {
	svc, repo := newTestRecordService()

	rec, err := svc.AddRecord(context.Background(), &AddRecordRequest{
		CarID:      1,
		Type:       entity.ServiceTypeCasco,
		ExpiryDate: entity.NewDate(2024, time.June, 1),
		Cost:       350,
	})
	require.NoError(t, err)
	require.NoError(t, repo.MarkNotified(context.Background(), rec.ID))

	// Editing only the cost must not re-arm the reminder.
	_, err = svc.UpdateRecord(context.Background(), rec.ID, &UpdateRecordRequest{
		Type:       entity.ServiceTypeCasco,
		ExpiryDate: entity.NewDate(2024, time.June, 1),
		Cost:       420,
	})
	require.NoError(t, err)

	assert.False(t, repo.lastResetFlag)
	assert.True(t, repo.records[rec.ID].Notified)
}
