package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Input bounds enforced by the estimator.
const (
	MinSleepGoalHours  = 4.0
	MaxSleepGoalHours  = 12.0
	SleepGoalStepHours = 0.25
	MinCaffeineCups    = 0
	MaxCaffeineCups    = 20
)

// Screen defaults applied to every new calculation.
const (
	DefaultWakeHour       = 7
	DefaultWakeMinute     = 0
	DefaultSleepGoalHours = 8.0
	DefaultCaffeineCups   = 1
)

// Alert copy shown after a calculation.
const (
	SuccessAlertTitle = "Your ideal bedtime is..."
	FailureAlertTitle = "Error"
	FailureAlertText  = "Sorry, there was a problem calculating your bedtime."
)

const secondsPerDay = 24 * 60 * 60

// ClockTime is a time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24-hour). A single-digit hour is accepted.
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return ClockTime{}, fmt.Errorf("%w: clock time %q must be HH:MM", ErrInvalidInput, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: clock time %q has a non-numeric hour", ErrInvalidInput, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: clock time %q has non-numeric minutes", ErrInvalidInput, s)
	}
	c := ClockTime{Hour: h, Minute: m}
	if err := c.Validate(); err != nil {
		return ClockTime{}, err
	}
	return c, nil
}

// Validate checks hour and minute ranges.
func (c ClockTime) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidInput, c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidInput, c.Minute)
	}
	return nil
}

// SecondsSinceMidnight returns hour*3600 + minute*60.
func (c ClockTime) SecondsSinceMidnight() int {
	return c.Hour*3600 + c.Minute*60
}

// String returns the 24-hour "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// BedtimeInput holds the three values picked on the screen.
type BedtimeInput struct {
	WakeTime       ClockTime
	SleepGoalHours float64
	CaffeineCups   int
}

// DefaultBedtimeInput returns the values a fresh screen starts with.
func DefaultBedtimeInput() BedtimeInput {
	return BedtimeInput{
		WakeTime:       ClockTime{Hour: DefaultWakeHour, Minute: DefaultWakeMinute},
		SleepGoalHours: DefaultSleepGoalHours,
		CaffeineCups:   DefaultCaffeineCups,
	}
}

// Validate rejects out-of-range input. Values are never clamped.
func (in BedtimeInput) Validate() error {
	if err := in.WakeTime.Validate(); err != nil {
		return err
	}
	if !ValidSleepGoal(in.SleepGoalHours) {
		return fmt.Errorf("%w: sleep goal %v must be between %v and %v hours in %v steps",
			ErrInvalidInput, in.SleepGoalHours, MinSleepGoalHours, MaxSleepGoalHours, SleepGoalStepHours)
	}
	if in.CaffeineCups < MinCaffeineCups || in.CaffeineCups > MaxCaffeineCups {
		return fmt.Errorf("%w: caffeine cups %d out of range %d-%d",
			ErrInvalidInput, in.CaffeineCups, MinCaffeineCups, MaxCaffeineCups)
	}
	return nil
}

// ValidSleepGoal reports whether hours lies in [4, 12] on a quarter-hour step.
func ValidSleepGoal(hours float64) bool {
	if math.IsNaN(hours) || hours < MinSleepGoalHours || hours > MaxSleepGoalHours {
		return false
	}
	return IsQuarterStep(hours)
}

// IsQuarterStep reports whether v is a whole multiple of 0.25.
func IsQuarterStep(v float64) bool {
	q := v / SleepGoalStepHours
	return q == math.Trunc(q)
}

// SleepGoalLabel renders the stepper label, e.g. "8 hours" or "8.25 hours".
func SleepGoalLabel(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// CaffeineLabel renders the stepper label, e.g. "1 cup(s)".
func CaffeineLabel(cups int) string {
	return strconv.Itoa(cups) + " cup(s)"
}

// BedtimeRecommendation is the derived bedtime. It is recomputed on every request.
type BedtimeRecommendation struct {
	Bedtime ClockTime
	// Seconds past Bedtime's minute; not shown to users.
	Seconds int
	// DayOffset is relative to the wake day: 0 same day, -1 the day before.
	DayOffset     int
	SleepDuration time.Duration
	ModelVersion  string
}

// NewBedtimeRecommendation subtracts sleep from wake, wrapping across midnight.
func NewBedtimeRecommendation(wake ClockTime, sleep time.Duration) BedtimeRecommendation {
	sleepSeconds := int(sleep.Round(time.Second) / time.Second)
	diff := wake.SecondsSinceMidnight() - sleepSeconds

	dayOffset := diff / secondsPerDay
	if diff%secondsPerDay < 0 {
		dayOffset--
	}
	rem := diff - dayOffset*secondsPerDay

	return BedtimeRecommendation{
		Bedtime:       ClockTime{Hour: rem / 3600, Minute: (rem % 3600) / 60},
		Seconds:       rem % 60,
		DayOffset:     dayOffset,
		SleepDuration: sleep,
	}
}

// On returns the bedtime instant for a wake-up on the given date.
func (r BedtimeRecommendation) On(wakeDate time.Time) time.Time {
	y, m, d := wakeDate.Date()
	return time.Date(y, m, d+r.DayOffset, r.Bedtime.Hour, r.Bedtime.Minute, r.Seconds, 0, wakeDate.Location())
}

// Alert is the title and message shown after a calculation.
type Alert struct {
	Title   string `json:"title" example:"Your ideal bedtime is..."`
	Message string `json:"message" example:"11:00 PM"`
}

// SuccessAlert wraps a formatted bedtime.
func SuccessAlert(display string) Alert {
	return Alert{Title: SuccessAlertTitle, Message: display}
}

// FailureAlert is the fixed, non-diagnostic failure alert.
func FailureAlert() Alert {
	return Alert{Title: FailureAlertTitle, Message: FailureAlertText}
}

// BedtimeResult is what a calculation hands back to the screen.
type BedtimeResult struct {
	Alert Alert
	// Recommendation is nil when the calculation failed.
	Recommendation *BedtimeRecommendation
	Display        string
}

// Succeeded reports whether a recommendation is available.
func (r BedtimeResult) Succeeded() bool {
	return r.Recommendation != nil
}
