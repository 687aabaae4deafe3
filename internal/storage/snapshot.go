package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/parishworks/vestry/internal/common"
	"github.com/parishworks/vestry/internal/model"
	"github.com/parishworks/vestry/internal/service"
)

// SaveSnapshot replaces any previous snapshot with the given one. The whole
// dataset is written in a single transaction so a failed pull never leaves a
// partial cache behind.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot *service.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"period_locks", "entry_lines", "entries", "accounts", "snapshots"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (pulled_at, range_start, range_end)
		VALUES (?, ?, ?)
	`, snapshot.PulledAt.UTC(), snapshot.Range.Start.UTC(), snapshot.Range.End.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get snapshot id: %w", err)
	}

	if err := saveAccountsTx(ctx, tx, snapshotID, snapshot.Accounts); err != nil {
		return err
	}
	if err := saveEntriesTx(ctx, tx, snapshotID, snapshot.Entries); err != nil {
		return err
	}
	if err := saveLocksTx(ctx, tx, snapshotID, snapshot.Locks); err != nil {
		return err
	}

	return tx.Commit()
}

func saveAccountsTx(ctx context.Context, tx *sql.Tx, snapshotID int64, accounts []model.Account) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (snapshot_id, account_id, code, name, type, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare account statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, account := range accounts {
		if _, err := stmt.ExecContext(ctx, snapshotID, account.ID, account.Code,
			account.Name, string(account.Type), account.IsActive); err != nil {
			return fmt.Errorf("failed to insert account %d: %w", account.ID, err)
		}
	}
	return nil
}

func saveEntriesTx(ctx context.Context, tx *sql.Tx, snapshotID int64, entries []model.JournalEntry) error {
	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (
			snapshot_id, entry_id, entry_no, entry_date, memo, reference_no,
			source_module, currency_code, is_locked, posted_at, locked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry statement: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	lineStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entry_lines (
			snapshot_id, entry_id, line_no, line_id, account_id,
			account_code, account_name, debit, credit, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare line statement: %w", err)
	}
	defer func() { _ = lineStmt.Close() }()

	for _, entry := range entries {
		if _, err := entryStmt.ExecContext(ctx, snapshotID, entry.ID, entry.EntryNo,
			entry.Date.UTC(), entry.Memo, entry.ReferenceNo, entry.SourceModule,
			entry.CurrencyCode, entry.IsLocked, nullableTime(entry.PostedAt),
			nullableTime(entry.LockedAt)); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", entry.ID, err)
		}

		for _, line := range entry.Lines {
			if _, err := lineStmt.ExecContext(ctx, snapshotID, entry.ID, line.LineNo,
				line.ID, line.AccountID, line.AccountCode, line.AccountName,
				line.Debit, line.Credit, line.Description); err != nil {
				return fmt.Errorf("failed to insert line %d of entry %d: %w", line.LineNo, entry.ID, err)
			}
		}
	}
	return nil
}

func saveLocksTx(ctx context.Context, tx *sql.Tx, snapshotID int64, locks []model.PeriodLock) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO period_locks (snapshot_id, seq, period_month, is_locked, reopened, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare lock statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, lock := range locks {
		if _, err := stmt.ExecContext(ctx, snapshotID, i, lock.PeriodMonth.UTC(),
			lock.IsLocked, lock.Reopened, lock.Note); err != nil {
			return fmt.Errorf("failed to insert lock %s: %w", lock.Month(), err)
		}
	}
	return nil
}

// LoadSnapshot reads back the cached snapshot. Returns common.ErrNoSnapshot
// when nothing has been saved yet.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*service.Snapshot, error) {
	snapshot := &service.Snapshot{}

	var snapshotID int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pulled_at, range_start, range_end
		FROM snapshots ORDER BY id DESC LIMIT 1
	`).Scan(&snapshotID, &snapshot.PulledAt, &snapshot.Range.Start, &snapshot.Range.End)
	if err == sql.ErrNoRows {
		return nil, common.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot header: %w", err)
	}

	if snapshot.Accounts, err = s.loadAccounts(ctx, snapshotID); err != nil {
		return nil, err
	}
	if snapshot.Entries, err = s.loadEntries(ctx, snapshotID); err != nil {
		return nil, err
	}
	if snapshot.Locks, err = s.loadLocks(ctx, snapshotID); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *SQLiteStore) loadAccounts(ctx context.Context, snapshotID int64) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, code, name, type, is_active
		FROM accounts WHERE snapshot_id = ? ORDER BY account_id
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		var accountType string
		if err := rows.Scan(&account.ID, &account.Code, &account.Name, &accountType, &account.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Type = model.AccountType(accountType)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *SQLiteStore) loadEntries(ctx context.Context, snapshotID int64) ([]model.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, entry_no, entry_date, memo, reference_no,
		       source_module, currency_code, is_locked, posted_at, locked_at
		FROM entries WHERE snapshot_id = ? ORDER BY entry_date, entry_id
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.JournalEntry
	index := make(map[int64]int)
	for rows.Next() {
		var entry model.JournalEntry
		var postedAt, lockedAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.EntryNo, &entry.Date, &entry.Memo,
			&entry.ReferenceNo, &entry.SourceModule, &entry.CurrencyCode,
			&entry.IsLocked, &postedAt, &lockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if postedAt.Valid {
			t := postedAt.Time
			entry.PostedAt = &t
		}
		if lockedAt.Valid {
			t := lockedAt.Time
			entry.LockedAt = &t
		}
		index[entry.ID] = len(entries)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, line_no, line_id, account_id, account_code,
		       account_name, debit, credit, description
		FROM entry_lines WHERE snapshot_id = ? ORDER BY entry_id, line_no
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry lines: %w", err)
	}
	defer func() { _ = lineRows.Close() }()

	for lineRows.Next() {
		var entryID int64
		var line model.JournalLine
		if err := lineRows.Scan(&entryID, &line.LineNo, &line.ID, &line.AccountID,
			&line.AccountCode, &line.AccountName, &line.Debit, &line.Credit,
			&line.Description); err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		if i, ok := index[entryID]; ok {
			entries[i].Lines = append(entries[i].Lines, line)
		}
	}
	return entries, lineRows.Err()
}

func (s *SQLiteStore) loadLocks(ctx context.Context, snapshotID int64) ([]model.PeriodLock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period_month, is_locked, reopened, note
		FROM period_locks WHERE snapshot_id = ? ORDER BY seq
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query period locks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var locks []model.PeriodLock
	for rows.Next() {
		var lock model.PeriodLock
		if err := rows.Scan(&lock.PeriodMonth, &lock.IsLocked, &lock.Reopened, &lock.Note); err != nil {
			return nil, fmt.Errorf("failed to scan period lock: %w", err)
		}
		lock.PeriodMonth = lock.PeriodMonth.UTC()
		locks = append(locks, lock)
	}
	return locks, rows.Err()
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
