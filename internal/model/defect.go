package model

// DefectType labels why a unit was flagged defective. A unit carries at most
// one label, chosen by rule priority.
type DefectType string

const (
	// DefectUnpostedSLA flags entries left unposted beyond the SLA age.
	DefectUnpostedSLA DefectType = "unposted_sla"
	// DefectReversal flags entries created by a reversal.
	DefectReversal DefectType = "reversal"
	// DefectReopenedMonth flags entries dated in a reopened accounting month.
	DefectReopenedMonth DefectType = "reopened_month"
)

// DefectRules configures the defect classifier.
type DefectRules struct {
	ReopenedMonths        map[string]bool // "YYYY-MM" tokens
	SLADays               int
	IncludeReversals      bool
	IncludeReopenedMonths bool
}

// DefectTally summarizes a classification pass. Defects counts distinct
// defective units; ByType breaks the same units down per label.
type DefectTally struct {
	ByType   map[DefectType]int
	ByBucket map[string]int
	Units    int
	Defects  int
}
