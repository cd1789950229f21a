package entity

import (
	"strings"
	"time"
)

const (
	DefaultReminderDays = 30
	MinReminderDays     = 1
	MaxReminderDays     = 365
)

type User struct {
	ID              int64     `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	Name            string    `json:"name" db:"name"`
	ReminderDays    int       `json:"reminder_days" db:"reminder_days"`
	ReminderEnabled bool      `json:"reminder_enabled" db:"reminder_enabled"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// NotifyEmail returns the address reminders are delivered to.
// Emails are case-insensitive in this domain, so the stored value
// is normalized to lowercase before use as a send target.
func (u *User) NotifyEmail() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}
