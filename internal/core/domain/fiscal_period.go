package domain

import "time"

// FiscalPeriodStatus gates whether entries may be dated inside the period.
type FiscalPeriodStatus string

const (
	PeriodOpen   FiscalPeriodStatus = "OPEN"
	PeriodLocked FiscalPeriodStatus = "LOCKED"
	PeriodClosed FiscalPeriodStatus = "CLOSED"
)

// FiscalPeriod is a dated window [StartDate, EndDate] of an entity's calendar.
type FiscalPeriod struct {
	FiscalPeriodID string             `json:"fiscalPeriodID"`
	EntityID       string             `json:"entityID"`
	CalendarID     string             `json:"calendarID"`
	Name           string             `json:"name"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"` // inclusive
	Status         FiscalPeriodStatus `json:"status"`
}

// Contains reports whether date falls inside the period, both ends inclusive.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// IsPostable reports whether entries may be created or voided in the period.
func (p FiscalPeriod) IsPostable() bool {
	return p.Status == PeriodOpen
}
