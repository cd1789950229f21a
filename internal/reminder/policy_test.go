package reminder

import (
	"testing"
	"time"

	"github.com/dklimov443/carminder/internal/entity"

	"github.com/stretchr/testify/assert"
)

func testUser(days int, enabled bool) *entity.User {
	return &entity.User{
		ID:              1,
		Email:           "Driver@Example.com",
		Name:            "Driver",
		ReminderDays:    days,
		ReminderEnabled: enabled,
	}
}

func testRecord(typ entity.ServiceType, expiry entity.Date, notified bool) *entity.ServiceRecord {
	return &entity.ServiceRecord{
		ID:         1,
		CarID:      1,
		UserID:     1,
		Type:       typ,
		ExpiryDate: expiry,
		Notified:   notified,
	}
}

func TestIsDueNonReminderTypes(t *testing.T) {
	now := time.Date(2024, time.May, 10, 15, 30, 0, 0, time.UTC)
	expired := entity.NewDate(2024, time.January, 1)

	tests := []struct {
		name string
		typ  entity.ServiceType
	}{
		{name: "repair", typ: entity.ServiceTypeRepair},
		{name: "maintenance", typ: entity.ServiceTypeMaintenance},
		{name: "tires", typ: entity.ServiceTypeTires},
		{name: "refuel", typ: entity.ServiceTypeRefuel},
		{name: "other", typ: entity.ServiceTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord(tt.typ, expired, false)
			// Long overdue and unsent, but the type is a one-off event.
			assert.False(t, IsDue(rec, testUser(30, true), now))
		})
	}
}

func TestIsDueDisabledUser(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	longOverdue := entity.NewDate(2023, time.February, 1)

	rec := testRecord(entity.ServiceTypeTax, longOverdue, false)
	assert.False(t, IsDue(rec, testUser(30, false), now))
}

func TestIsDueAlreadyNotified(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := entity.NewDate(2024, time.May, 11)

	rec := testRecord(entity.ServiceTypeInsurance, tomorrow, true)
	assert.False(t, IsDue(rec, testUser(30, true), now))
}

func TestIsDueOverdueCatchUp(t *testing.T) {
	// Past-due records stay eligible, there is no lateness cutoff.
	now := time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)
	tenDaysAgo := entity.NewDate(2024, time.April, 30)

	rec := testRecord(entity.ServiceTypeTax, tenDaysAgo, false)
	assert.True(t, IsDue(rec, testUser(30, true), now))
}

func TestIsDueWindowBoundary(t *testing.T) {
	now := time.Date(2024, time.May, 10, 23, 50, 0, 0, time.UTC)

	tests := []struct {
		name   string
		days   int
		expiry entity.Date
		want   bool
	}{
		{
			name:   "exactly at window edge is eligible",
			days:   30,
			expiry: entity.NewDate(2024, time.June, 9),
			want:   true,
		},
		{
			name:   "one day past window edge is not eligible",
			days:   30,
			expiry: entity.NewDate(2024, time.June, 10),
			want:   false,
		},
		{
			name:   "minimal window, expiry tomorrow",
			days:   1,
			expiry: entity.NewDate(2024, time.May, 11),
			want:   true,
		},
		{
			name:   "minimal window, expiry in two days",
			days:   1,
			expiry: entity.NewDate(2024, time.May, 12),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord(entity.ServiceTypeInspection, tt.expiry, false)
			assert.Equal(t, tt.want, IsDue(rec, testUser(tt.days, true), now))
		})
	}
}

func TestIsDueAllReminderTypesEligible(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	soon := entity.NewDate(2024, time.May, 20)

	for _, typ := range []entity.ServiceType{
		entity.ServiceTypeInsurance,
		entity.ServiceTypeVignette,
		entity.ServiceTypeInspection,
		entity.ServiceTypeCasco,
		entity.ServiceTypeTax,
		entity.ServiceTypeExtinguisher,
	} {
		rec := testRecord(typ, soon, false)
		assert.True(t, IsDue(rec, testUser(30, true), now), "type %s should be due", typ)
	}
}
