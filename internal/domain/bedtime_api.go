package domain

// BedtimeRequest is the request body for calculating a bedtime.
// @Description Inputs from the bedtime screen. Omitted fields take the screen defaults.
type BedtimeRequest struct {
	// Wake-up time of day, 24-hour HH:MM
	WakeTime *string `json:"wake_time,omitempty" validate:"omitempty,clock" example:"07:00"`
	// Desired sleep in hours, 4-12 in 0.25 steps
	SleepGoalHours *float64 `json:"sleep_goal_hours,omitempty" validate:"omitempty,min=4,max=12,quarter_step" example:"8" minimum:"4" maximum:"12"`
	// Daily caffeinated servings, 0-20
	CaffeineCups *int `json:"caffeine_cups,omitempty" validate:"omitempty,min=0,max=20" example:"1" minimum:"0" maximum:"20"`
	// BCP 47 locale used to format the bedtime (defaults to the server locale)
	Locale *string `json:"locale,omitempty" validate:"omitempty,locale" example:"en-US"`
}

// ToInput applies screen defaults to omitted fields. The request must already be validated.
func (r *BedtimeRequest) ToInput() (BedtimeInput, error) {
	in := DefaultBedtimeInput()
	if r.WakeTime != nil {
		wake, err := ParseClockTime(*r.WakeTime)
		if err != nil {
			return BedtimeInput{}, err
		}
		in.WakeTime = wake
	}
	if r.SleepGoalHours != nil {
		in.SleepGoalHours = *r.SleepGoalHours
	}
	if r.CaffeineCups != nil {
		in.CaffeineCups = *r.CaffeineCups
	}
	return in, nil
}

// BedtimeResponse is the response body for a successful calculation.
// @Description Recommended bedtime with the alert shown to the user.
type BedtimeResponse struct {
	// Bedtime in 24-hour HH:MM
	Bedtime string `json:"bedtime" example:"23:00"`
	// Bedtime formatted for the requested locale
	Display string `json:"display" example:"11:00 PM"`
	// Day relative to the wake-up day (-1 = the evening before)
	DayOffset int `json:"day_offset" example:"-1"`
	// Predicted sleep duration in hours
	PredictedSleepHours float64 `json:"predicted_sleep_hours" example:"8"`
	// Version of the model that produced the prediction
	ModelVersion string `json:"model_version,omitempty" example:"sleep-calculator@1"`
	// Alert title and message
	Alert Alert `json:"alert"`
	// Trace ID for feedback (only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// NewBedtimeResponse builds the response for a successful result.
func NewBedtimeResponse(res BedtimeResult) BedtimeResponse {
	rec := res.Recommendation
	return BedtimeResponse{
		Bedtime:             rec.Bedtime.String(),
		Display:             res.Display,
		DayOffset:           rec.DayOffset,
		PredictedSleepHours: rec.SleepDuration.Hours(),
		ModelVersion:        rec.ModelVersion,
		Alert:               res.Alert,
	}
}

// Range describes the bounds of a stepper control.
type Range struct {
	Min  float64 `json:"min" example:"4"`
	Max  float64 `json:"max" example:"12"`
	Step float64 `json:"step" example:"0.25"`
}

// BedtimeDefaultsResponse describes a freshly opened screen.
// @Description Default inputs and control ranges.
type BedtimeDefaultsResponse struct {
	WakeTime       string  `json:"wake_time" example:"07:00"`
	SleepGoalHours float64 `json:"sleep_goal_hours" example:"8"`
	SleepGoalLabel string  `json:"sleep_goal_label" example:"8 hours"`
	CaffeineCups   int     `json:"caffeine_cups" example:"1"`
	CaffeineLabel  string  `json:"caffeine_label" example:"1 cup(s)"`
	SleepGoalRange Range   `json:"sleep_goal_range"`
	CaffeineRange  Range   `json:"caffeine_range"`
}

// NewBedtimeDefaultsResponse describes DefaultBedtimeInput.
func NewBedtimeDefaultsResponse() BedtimeDefaultsResponse {
	in := DefaultBedtimeInput()
	return BedtimeDefaultsResponse{
		WakeTime:       in.WakeTime.String(),
		SleepGoalHours: in.SleepGoalHours,
		SleepGoalLabel: SleepGoalLabel(in.SleepGoalHours),
		CaffeineCups:   in.CaffeineCups,
		CaffeineLabel:  CaffeineLabel(in.CaffeineCups),
		SleepGoalRange: Range{Min: MinSleepGoalHours, Max: MaxSleepGoalHours, Step: SleepGoalStepHours},
		CaffeineRange:  Range{Min: MinCaffeineCups, Max: MaxCaffeineCups, Step: 1},
	}
}
