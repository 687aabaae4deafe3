package facts

import (
	"time"

	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/service"
)

// BuildOptions configures a facts build.
type BuildOptions struct {
	From       time.Time
	To         time.Time
	AccountIDs map[int64]bool // nil or empty means no account filter
	Domain     model.Domain
	Grain      model.Grain
}

// Build normalizes raw journal entries and accounts into a FactSet. Lines
// outside the account selection are skipped; zero-amount lines are skipped
// unless the domain is "all". An entry yields a unit the first time any of
// its lines survives, carrying the entry's locked status and source module.
func Build(entries []model.JournalEntry, accounts []model.Account, opts BuildOptions) model.FactSet {
	if opts.Domain == "" {
		opts.Domain = model.DomainAll
	}
	if opts.Grain == "" {
		opts.Grain = model.GrainMonth
	}

	accountsByID := make(map[int64]model.Account, len(accounts))
	for _, acct := range accounts {
		accountsByID[acct.ID] = acct
	}

	set := model.FactSet{
		Grain:   opts.Grain,
		Buckets: BucketUniverse(opts.From, opts.To, opts.Grain),
		Lines:   []model.FactLine{},
		Units:   []model.FactUnit{},
	}

	filterActive := len(opts.AccountIDs) > 0
	window := service.DateRange{Start: opts.From, End: opts.To}

	for _, entry := range entries {
		if !window.Contains(entry.Date) {
			continue
		}
		bucket := BucketOf(entry.Date, opts.Grain)
		unitAdded := false

		for _, line := range entry.Lines {
			if filterActive && !opts.AccountIDs[line.AccountID] {
				continue
			}
			acct, ok := accountsByID[line.AccountID]
			if !ok {
				acct = model.Account{
					ID:   line.AccountID,
					Code: line.AccountCode,
					Name: line.AccountName,
					Type: model.AccountTypeOther,
				}
			}
			amount := model.SignedAmount(acct.Type, line.Debit, line.Credit, opts.Domain)
			if amount == 0 && opts.Domain != model.DomainAll {
				continue
			}
			if amount == 0 && opts.Domain == model.DomainAll && acct.Type != model.AccountTypeRevenue && acct.Type != model.AccountTypeExpense {
				// Non-P&L accounts contribute nothing under "all".
				continue
			}

			set.Lines = append(set.Lines, model.FactLine{
				Date:        entry.Date,
				Bucket:      bucket,
				AccountID:   acct.ID,
				AccountCode: acct.Code,
				AccountName: acct.Name,
				Amount:      amount,
			})

			if !unitAdded {
				unitAdded = true
				set.Units = append(set.Units, model.FactUnit{
					Date:         entry.Date,
					Bucket:       bucket,
					ID:           entry.ID,
					SourceModule: entry.SourceModule,
					Locked:       entry.Locked(),
				})
			}
		}
	}

	return set
}
