package domain

import "time"

// IPAddress is the caller's public address as reported by the IP service.
// It is never validated beyond what the remote service returns.
type IPAddress string

// Coordinates represents a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// PassRecord is a single predicted overhead pass of the ISS.
type PassRecord struct {
	RiseTime int64 `json:"risetime" bson:"risetime"` // unix epoch seconds
	Duration int64 `json:"duration" bson:"duration"` // seconds
}

// RisesAt returns the rise time as a UTC time.
func (p PassRecord) RisesAt() time.Time {
	return time.Unix(p.RiseTime, 0).UTC()
}

// Visible returns the pass duration as a time.Duration.
func (p PassRecord) Visible() time.Duration {
	return time.Duration(p.Duration) * time.Second
}

// PassList holds passes in the order the predictor returned them.
type PassList []PassRecord
