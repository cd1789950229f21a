package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dklimov443/carminder/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	records   map[int64]*entity.ServiceRecord
	order     []int64
	listErr   error
	markErr   map[int64]error
	markCalls []int64
}

func newFakeStore(records ...*entity.ServiceRecord) *fakeStore {
	s := &fakeStore{
		records: make(map[int64]*entity.ServiceRecord),
		markErr: make(map[int64]error),
	}
	for _, rec := range records {
		s.records[rec.ID] = rec
		s.order = append(s.order, rec.ID)
	}
	return s
}

func (s *fakeStore) ListUnsent(ctx context.Context) ([]*entity.ServiceRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*entity.ServiceRecord
	for _, id := range s.order {
		if rec := s.records[id]; !rec.Notified {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkNotified(ctx context.Context, id int64) error {
	s.markCalls = append(s.markCalls, id)
	if err := s.markErr[id]; err != nil {
		return err
	}
	rec, ok := s.records[id]
	if !ok {
		return entity.ErrRecordNotFound
	}
	rec.Notified = true
	return nil
}

type fakeCars struct {
	cars map[int64]*entity.Car
}

func (f *fakeCars) GetByID(ctx context.Context, id int64) (*entity.Car, error) {
	if car, ok := f.cars[id]; ok {
		return car, nil
	}
	return nil, entity.ErrCarNotFound
}

type fakeUsers struct {
	users map[int64]*entity.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, entity.ErrUserNotFound
}

type fakeNotifier struct {
	sent    []int64
	emails  []string
	failFor map[int64]error
}

func (f *fakeNotifier) Send(ctx context.Context, toEmail string, car *entity.Car, rec *entity.ServiceRecord) error {
	if err := f.failFor[rec.ID]; err != nil {
		return err
	}
	f.sent = append(f.sent, rec.ID)
	f.emails = append(f.emails, toEmail)
	return nil
}

func dueRecord(id, carID, userID int64) *entity.ServiceRecord {
	return &entity.ServiceRecord{
		ID:         id,
		CarID:      carID,
		UserID:     userID,
		Type:       entity.ServiceTypeInsurance,
		ExpiryDate: entity.NewDate(2024, time.May, 15),
	}
}

func fixedNow() time.Time {
	return time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
}

func newTestSweeper(store *fakeStore, cars *fakeCars, users *fakeUsers, notifier *fakeNotifier) *Sweeper {
	s := NewSweeper(store, cars, users, notifier, 0)
	s.now = fixedNow
	return s
}

func defaultCars() *fakeCars {
	return &fakeCars{cars: map[int64]*entity.Car{
		1: {ID: 1, UserID: 1, Brand: "Opel", Model: "Astra", Year: 2016},
	}}
}

func defaultUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*entity.User{
		1: {ID: 1, Email: "Owner@Example.COM", ReminderDays: 30, ReminderEnabled: true},
	}}
}

func TestSweepSendsAtMostOnce(t *testing.T) {
	store := newFakeStore(dueRecord(1, 1, 1), dueRecord(2, 1, 1))
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	stats, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, []int64{1, 2}, notifier.sent)

	// Second sweep over the unchanged set: everything is already
	// marked, nothing goes out again.
	stats, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)
	assert.Equal(t, 0, stats.Sent)
	assert.Len(t, notifier.sent, 2)
}

func TestSweepNormalizesEmail(t *testing.T) {
	store := newFakeStore(dueRecord(1, 1, 1))
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	_, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	require.Len(t, notifier.emails, 1)
	assert.Equal(t, "owner@example.com", notifier.emails[0])
}

func TestSweepPartialFailureIsolation(t *testing.T) {
	store := newFakeStore(dueRecord(1, 1, 1), dueRecord(2, 1, 1), dueRecord(3, 1, 1))
	notifier := &fakeNotifier{failFor: map[int64]error{2: errors.New("smtp refused")}}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	stats, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 1, stats.Failed)

	// First and third are marked, the failed one stays unsent for the
	// next tick.
	assert.True(t, store.records[1].Notified)
	assert.False(t, store.records[2].Notified)
	assert.True(t, store.records[3].Notified)

	// Retry succeeds on the next sweep.
	notifier.failFor = nil
	stats, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 1, stats.Sent)
	assert.True(t, store.records[2].Notified)
}

func TestSweepOrphanTolerance(t *testing.T) {
	orphanCar := dueRecord(1, 99, 1)
	orphanUser := dueRecord(2, 1, 99)
	healthy := dueRecord(3, 1, 1)

	store := newFakeStore(orphanCar, orphanUser, healthy)
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	stats, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, []int64{3}, notifier.sent)

	// Orphans stay unsent, they get another look next tick.
	assert.False(t, store.records[1].Notified)
	assert.False(t, store.records[2].Notified)
}

func TestSweepSkipsIneligibleRecords(t *testing.T) {
	refuel := dueRecord(1, 1, 1)
	refuel.Type = entity.ServiceTypeRefuel
	farFuture := dueRecord(2, 1, 1)
	farFuture.ExpiryDate = entity.NewDate(2030, time.January, 1)

	store := newFakeStore(refuel, farFuture)
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	stats, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 0, stats.Sent)
	assert.Empty(t, notifier.sent)
	assert.Empty(t, store.markCalls)
}

func TestSweepBulkReadFailure(t *testing.T) {
	store := newFakeStore(dueRecord(1, 1, 1))
	store.listErr = errors.New("connection reset")
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	_, err := sweeper.Sweep(context.Background())
	assert.Error(t, err)
	assert.Empty(t, notifier.sent)
}

func TestSweepMarkFailureCountsAsFailed(t *testing.T) {
	store := newFakeStore(dueRecord(1, 1, 1))
	store.markErr[1] = errors.New("write timeout")
	notifier := &fakeNotifier{}
	sweeper := newTestSweeper(store, defaultCars(), defaultUsers(), notifier)

	stats, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 1, stats.Failed)
	assert.False(t, store.records[1].Notified)
}
