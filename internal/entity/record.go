package entity

import (
	"time"
)

type ServiceType string

const (
	// Expiry-driven types, eligible for reminder notifications.
	ServiceTypeInsurance    ServiceType = "insurance"
	ServiceTypeVignette     ServiceType = "vignette"
	ServiceTypeInspection   ServiceType = "inspection"
	ServiceTypeCasco        ServiceType = "casco"
	ServiceTypeTax          ServiceType = "tax"
	ServiceTypeExtinguisher ServiceType = "extinguisher"

	// One-off event types, never notified.
	ServiceTypeRepair      ServiceType = "repair"
	ServiceTypeMaintenance ServiceType = "maintenance"
	ServiceTypeTires       ServiceType = "tires"
	ServiceTypeRefuel      ServiceType = "refuel"
	ServiceTypeOther       ServiceType = "other"
)

// reminderTypes is the closed set of expiry-driven service types.
var reminderTypes = map[ServiceType]struct{}{
	ServiceTypeInsurance:    {},
	ServiceTypeVignette:     {},
	ServiceTypeInspection:   {},
	ServiceTypeCasco:        {},
	ServiceTypeTax:          {},
	ServiceTypeExtinguisher: {},
}

var serviceTypeLabels = map[ServiceType]string{
	ServiceTypeInsurance:    "Civil liability insurance",
	ServiceTypeVignette:     "Vignette",
	ServiceTypeInspection:   "Technical inspection",
	ServiceTypeCasco:        "Casco insurance",
	ServiceTypeTax:          "Vehicle tax",
	ServiceTypeExtinguisher: "Fire extinguisher check",
	ServiceTypeRepair:       "Repair",
	ServiceTypeMaintenance:  "Maintenance",
	ServiceTypeTires:        "Tire service",
	ServiceTypeRefuel:       "Refueling",
	ServiceTypeOther:        "Other",
}

// IsReminderType reports whether records of this type are expiry-driven
// and therefore candidates for reminder notifications.
func (t ServiceType) IsReminderType() bool {
	_, ok := reminderTypes[t]
	return ok
}

func (t ServiceType) IsValid() bool {
	_, ok := serviceTypeLabels[t]
	return ok
}

// Label returns the human-readable name used in notification bodies.
func (t ServiceType) Label() string {
	if label, ok := serviceTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

type ServiceRecord struct {
	ID            int64       `json:"id" db:"id"`
	CarID         int64       `json:"car_id" db:"car_id"`
	UserID        int64       `json:"user_id" db:"user_id"`
	Type          ServiceType `json:"type" db:"type"`
	ExpiryDate    Date        `json:"expiry_date" db:"expiry_date"`
	Cost          float64     `json:"cost" db:"cost"`
	Liters        float64     `json:"liters,omitempty" db:"liters"`
	PricePerLiter float64     `json:"price_per_liter,omitempty" db:"price_per_liter"`
	Notified      bool        `json:"notified" db:"notified"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
