package domain

import "time"

// Venue is one normalized catalog entry.
type Venue struct {
	Name      string `json:"name"`
	Genre     string `json:"genre"`
	Link      string `json:"link,omitempty"`
	Location  string `json:"location,omitempty"`
	Station   string `json:"station,omitempty"`
	Station2  string `json:"station2,omitempty"`
	Image     string `json:"image,omitempty"`
	Latitude  string `json:"latitude,omitempty"`  // opaque, never parsed
	Longitude string `json:"longitude,omitempty"` // opaque, never parsed
	Priority  int    `json:"priority"`
}

// IngestRun is the audit record of one ingestion cycle.
type IngestRun struct {
	ID         string
	Source     string
	Status     string // ok|failed
	Venues     int
	Rejected   int
	Error      *string
	StartedAt  time.Time
	FinishedAt time.Time
}

const (
	RunOK     = "ok"
	RunFailed = "failed"
)
