package models

import "time"

// GeoPoint is a latitude/longitude pair captured by the reporting client.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Reporter identifies the citizen behind a non-anonymous incident.
type Reporter struct {
	UID   string `bson:"uid" json:"uid"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// IncidentRecord is the canonical shape of one citizen report. Raw storage
// documents only become IncidentRecords through NormalizeIncident, which
// enforces the anonymity contract: an anonymous record carries no reporter
// identity and no contact number anywhere downstream.
type IncidentRecord struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Description   string     `bson:"description" json:"description"`
	Category      Category   `bson:"category" json:"category"`
	IsAnonymous   bool       `bson:"anonymous" json:"anonymous"`
	Location      *GeoPoint  `bson:"location,omitempty" json:"location,omitempty"`
	ContactNumber string     `bson:"contact_number,omitempty" json:"contact_number,omitempty"`
	CreatedAt     *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	Reporter      *Reporter  `bson:"reporter,omitempty" json:"reporter,omitempty"`
}

// NewIncident is the submission payload accepted by the HTTP layer.
type NewIncident struct {
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	IsAnonymous   bool      `json:"anonymous"`
	Location      *GeoPoint `json:"location,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Reporter      *Reporter `json:"reporter,omitempty"`
}
