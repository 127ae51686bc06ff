package repository

import "time"

// Trip represents a trips row. JSON-valued columns are stored as text.
type Trip struct {
	ID                      string
	UID                     string
	Destination             string
	StartDate               string
	EndDate                 string
	Airline                 string
	TravelClass             string
	Purpose                 string
	Status                  string
	AirlineLimit            float64
	TotalWeight             float64
	SuitcaseSizeL           *int
	SuitcaseDims            *string
	AcceptedRecommendations string
	PackingPlan             *string
	PackingSteps            string
	Optimization            *string
	AISuggestionsRaw        *string
	CreatedAt               string
	UpdatedAt               time.Time
}

// TripItem represents a trip_items row.
type TripItem struct {
	ID       string
	TripID   string
	Position int
	Name     string
	Quantity int
	Category string
	WeightG  *float64
}
