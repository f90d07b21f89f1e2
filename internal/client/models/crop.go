package models

// Recommendation is one crop suggested for the user's land.
type Recommendation struct {
	Crop                   string  `json:"crop"`
	EstimatedTotalYieldKg  float64 `json:"estimated_total_yield_kg"`
	ExpectedYieldPerAcreKg float64 `json:"expected_yield_per_acre_kg"`
	RiskPercent            float64 `json:"risk_percent"`
}

// CropSuggestion is the response of POST /crop_suggestion.
type CropSuggestion struct {
	Recommendations []Recommendation `json:"recommendations"`
	Reason          string           `json:"reason,omitempty"`
	Region          string           `json:"region,omitempty"`
	Season          string           `json:"season,omitempty"`
}

// CalendarTask is a single activity scheduled within a week.
type CalendarTask struct {
	Title       string `json:"task_title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

// CalendarWeek groups the tasks of one week of the crop cycle.
type CalendarWeek struct {
	Week  int            `json:"week"`
	Tasks []CalendarTask `json:"tasks"`
}

// CropCalendar is the response of POST /crop_calendar.
type CropCalendar struct {
	Calendar       []CalendarWeek `json:"calendar"`
	DurationWeeks  int            `json:"duration_weeks"`
	WeatherSummary string         `json:"weather_summary,omitempty"`
}
