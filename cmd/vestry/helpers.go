package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/config"
	"github.com/parishworks/vestry/internal/ledger"
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/quality"
	"github.com/parishworks/vestry/internal/service"
	"github.com/parishworks/vestry/internal/storage"
)

// initStorage opens the snapshot cache with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/vestry/vestry.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initClient builds the ledger API client from config and the credential
// store. The stored API key wins over config and environment.
func initClient() (*ledger.Client, error) {
	baseURL := viper.GetString("ledger.base_url")
	if baseURL == "" {
		return nil, common.NewUserError("Ledger API URL not configured. Set ledger.base_url in the config file or VESTRY_LEDGER_BASE_URL.", common.ErrMissingConfig)
	}

	apiKey := ""
	creds := config.NewFileCredentialStore(viper.GetString("ledger.credentials_path"))
	if key, err := creds.APIKey(); err == nil {
		apiKey = key
	} else if !errors.Is(err, common.ErrNoCredentials) {
		return nil, err
	}
	if apiKey == "" {
		apiKey = viper.GetString("ledger.api_key")
	}

	return ledger.NewClient(ledger.Config{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		PageSize: viper.GetInt("ledger.page_size"),
		Timeout:  viper.GetDuration("ledger.timeout"),
	})
}

// loadDataset returns the journal dataset for the range, either from the
// API (caching a fresh snapshot) or from the snapshot cache when --offline.
func loadDataset(ctx context.Context, from, to time.Time) (*ledger.Dataset, error) {
	if viper.GetBool("ledger.offline") {
		return loadOfflineDataset(ctx, from, to)
	}

	client, err := initClient()
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Fetching journal entries..."),
	)
	client.OnProgress(func(fetched int) {
		_ = bar.Set(fetched)
	})

	reloader := ledger.NewReloader(client)
	dataset, ok, err := reloader.Reload(ctx, from, to)
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	if !ok {
		// Single-shot reload; a stale result here means a programming error.
		return nil, fmt.Errorf("reload superseded unexpectedly")
	}

	saveSnapshot(ctx, dataset)
	return dataset, nil
}

func loadOfflineDataset(ctx context.Context, from, to time.Time) (*ledger.Dataset, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.LoadSnapshot(ctx)
	if errors.Is(err, common.ErrNoSnapshot) {
		return nil, common.NewUserError("No cached snapshot found. Run 'vestry pull' first or drop --offline.", err)
	}
	if err != nil {
		return nil, err
	}

	requested := service.DateRange{Start: from, End: to}
	if !snapshot.Range.Covers(requested) {
		return nil, common.NewUserError(fmt.Sprintf("Cached snapshot covers %s to %s; requested range is outside it. Run 'vestry pull' for the new range.",
			snapshot.Range.Start.Format("2006-01-02"), snapshot.Range.End.Format("2006-01-02")), common.ErrSnapshotCoverage)
	}

	slog.Debug("using cached snapshot", "pulled_at", snapshot.PulledAt)
	return &ledger.Dataset{
		From:     from,
		To:       to,
		Accounts: snapshot.Accounts,
		Entries:  snapshot.Entries,
		Locks:    snapshot.Locks,
	}, nil
}

// saveSnapshot caches a freshly fetched dataset. Failures are logged, not
// fatal; the analysis still has the in-memory data.
func saveSnapshot(ctx context.Context, dataset *ledger.Dataset) {
	store, err := initStorage(ctx)
	if err != nil {
		slog.Warn("failed to open snapshot cache", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	err = store.SaveSnapshot(ctx, &service.Snapshot{
		PulledAt: time.Now().UTC(),
		Range:    service.DateRange{Start: dataset.From, End: dataset.To},
		Accounts: dataset.Accounts,
		Entries:  dataset.Entries,
		Locks:    dataset.Locks,
	})
	if err != nil {
		slog.Warn("failed to cache snapshot", "error", err)
	}
}

// addRangeFlags registers the --from/--to pair shared by analysis commands.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "range start (2006-01-02 or 2006-01)")
	cmd.Flags().String("to", "", "range end (2006-01-02 or 2006-01)")
}

// parseRange resolves --from/--to, defaulting to the trailing 12 months.
// A bare month token means the first of that month for --from and the last
// day of it for --to.
func parseRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if fromStr != "" {
		from, err = parseDate(fromStr, false)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError(fmt.Sprintf("Invalid --from value %q.", fromStr), err)
		}
	}
	if toStr != "" {
		to, err = parseDate(toStr, true)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError(fmt.Sprintf("Invalid --to value %q.", toStr), err)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, common.NewUserError("--to is before --from.", common.ErrInvalidConfig)
	}
	return from, to, nil
}

func parseDate(s string, endOfMonth bool) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfMonth {
		return t.AddDate(0, 1, -1), nil
	}
	return t, nil
}

func parseDomain(s string) (model.Domain, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return model.DomainAll, nil
	case "expense", "expenses":
		return model.DomainExpense, nil
	case "revenue", "income":
		return model.DomainRevenue, nil
	}
	return "", common.NewUserError(fmt.Sprintf("Unknown domain %q. Use expense, revenue, or all.", s), common.ErrInvalidConfig)
}

func parseGrain(s string) (model.Grain, error) {
	switch strings.ToLower(s) {
	case "", "month":
		return model.GrainMonth, nil
	case "week":
		return model.GrainWeek, nil
	case "day":
		return model.GrainDay, nil
	}
	return "", common.NewUserError(fmt.Sprintf("Unknown grain %q. Use day, week, or month.", s), common.ErrInvalidConfig)
}

// categoryRules loads the matrix category rules from config.
func categoryRules() ([]model.CategoryRule, error) {
	var rules []model.CategoryRule
	if err := viper.UnmarshalKey("matrix.categories", &rules); err != nil {
		return nil, fmt.Errorf("failed to parse matrix.categories: %w", err)
	}
	if len(rules) == 0 {
		return nil, common.NewUserError("No category rules configured. Add matrix.categories to the config file.", common.ErrNoRules)
	}
	return rules, nil
}

// defectClassifier builds the classifier from config plus the reopened
// months derived from the pulled period locks.
func defectClassifier(cmd *cobra.Command, locks []model.PeriodLock) *quality.Classifier {
	slaDays, _ := cmd.Flags().GetInt("sla-days")
	includeReversals, _ := cmd.Flags().GetBool("reversals")
	includeReopened, _ := cmd.Flags().GetBool("reopened")

	return quality.NewClassifier(model.DefectRules{
		ReopenedMonths:        ledger.ReopenedMonths(locks),
		SLADays:               slaDays,
		IncludeReversals:      includeReversals,
		IncludeReopenedMonths: includeReopened,
	})
}

// addDefectFlags registers the defect-rule flags shared by quality commands.
func addDefectFlags(cmd *cobra.Command) {
	cmd.Flags().Int("sla-days", 7, "flag entries left unposted longer than this many days")
	cmd.Flags().Bool("reversals", true, "flag reversal entries as defects")
	cmd.Flags().Bool("reopened", true, "flag entries dated in reopened months as defects")
}
