package model

import "time"

// Grain is the time resolution used to bucket facts for charting.
type Grain string

const (
	// GrainDay buckets by calendar day ("2006-01-02").
	GrainDay Grain = "day"
	// GrainWeek buckets by ISO week ("2006-W02").
	GrainWeek Grain = "week"
	// GrainMonth buckets by calendar month ("2006-01").
	GrainMonth Grain = "month"
)

// FactLine is one normalized, signed journal line surviving domain and
// account filtering.
type FactLine struct {
	Date        time.Time
	Bucket      string
	AccountID   int64
	AccountCode string
	AccountName string
	Amount      float64
}

// FactUnit is one journal entry that contributed at least one surviving line.
// At most one unit exists per entry regardless of how many lines survive.
type FactUnit struct {
	Date         time.Time
	Bucket       string
	ID           int64
	SourceModule string
	Locked       bool
}

// FactSet is the normalized view all analytics consume. Buckets enumerate
// the full requested range so downstream series are zero-filled, not sparse.
type FactSet struct {
	Grain   Grain
	Buckets []string
	Lines   []FactLine
	Units   []FactUnit
}
