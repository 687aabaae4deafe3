// Package quality computes defect classifications and statistical
// process-control series over normalized ledger facts.
package quality

import (
	"time"

	"github.com/parishworks/vestry/internal/model"
)

// Classifier labels fact units as defective against a rule set. A zero
// Now function defaults to wall-clock time; tests inject a fixed one.
type Classifier struct {
	Now   func() time.Time
	Rules model.DefectRules
}

// NewClassifier creates a classifier with the given rules.
func NewClassifier(rules model.DefectRules) *Classifier {
	return &Classifier{Rules: rules, Now: time.Now}
}

// Classify returns the defect label for a unit, if any. Rules are checked in
// priority order and the first match wins, so a unit never carries more than
// one label.
func (c *Classifier) Classify(unit model.FactUnit) (model.DefectType, bool) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	if !unit.Locked && c.Rules.SLADays > 0 {
		age := int(now.Sub(unit.Date).Hours() / 24)
		if age > c.Rules.SLADays {
			return model.DefectUnpostedSLA, true
		}
	}

	if c.Rules.IncludeReversals && model.IsReversalSource(unit.SourceModule) {
		return model.DefectReversal, true
	}

	if c.Rules.IncludeReopenedMonths && len(c.Rules.ReopenedMonths) > 0 {
		if c.Rules.ReopenedMonths[unit.Date.Format("2006-01")] {
			return model.DefectReopenedMonth, true
		}
	}

	return "", false
}

// Tally classifies every unit and aggregates counts. Each defective unit is
// counted exactly once toward Defects and once in ByType/ByBucket, no matter
// how many rules it would match.
func (c *Classifier) Tally(units []model.FactUnit) model.DefectTally {
	tally := model.DefectTally{
		ByType:   make(map[model.DefectType]int),
		ByBucket: make(map[string]int),
	}

	seen := make(map[int64]bool, len(units))
	for _, unit := range units {
		if seen[unit.ID] {
			continue
		}
		seen[unit.ID] = true
		tally.Units++

		defectType, defective := c.Classify(unit)
		if !defective {
			continue
		}
		tally.Defects++
		tally.ByType[defectType]++
		tally.ByBucket[unit.Bucket]++
	}

	return tally
}
