package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Transaction operations

// ReplaceDataset deletes every transaction in dataset and inserts txns in
// order, all in one database transaction. progress, if non-nil, is called
// after each inserted row with the running count.
func (s *Store) ReplaceDataset(dataset string, txns []Transaction, progress func(n int)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM transactions WHERE dataset = ?`, dataset); err != nil {
		tx.Rollback() //nolint:errcheck
		return wrapQueryErr("failed to clear dataset "+dataset, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO transactions (dataset, basket_key, item) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		if _, err := stmt.Exec(dataset, t.Key, t.Item); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("failed to insert row %d (%s, %s): %w", i+1, t.Key, t.Item, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset %s: %w", dataset, err)
	}
	return nil
}

// ListTransactions returns the rows of dataset in insertion order.
// An empty dataset yields ErrDatasetNotFound.
func (s *Store) ListTransactions(dataset string) ([]Transaction, error) {
	query := `
		SELECT basket_key, item
		FROM transactions
		WHERE dataset = ?
		ORDER BY id
	`

	rows, err := s.db.Query(query, dataset)
	if err != nil {
		return nil, wrapQueryErr("failed to list transactions", err)
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.Key, &t.Item); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}

	return txns, nil
}

// DeleteDataset removes a dataset's transactions and import history in one
// database transaction.
func (s *Store) DeleteDataset(dataset string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM transactions WHERE dataset = ?`, dataset)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return wrapQueryErr("failed to delete dataset "+dataset, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, dataset)
	}

	if _, err := tx.Exec(`DELETE FROM imports WHERE dataset = ?`, dataset); err != nil {
		tx.Rollback() //nolint:errcheck
		return wrapQueryErr("failed to delete import history for "+dataset, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of %s: %w", dataset, err)
	}
	return nil
}

// Import operations

// RecordImport stores an import record and returns its ID.
func (s *Store) RecordImport(imp *Import) (int64, error) {
	query := `
		INSERT INTO imports (dataset, source_path, imported_at, row_count, basket_count)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		imp.Dataset,
		imp.SourcePath,
		imp.ImportedAt.UTC().Format(time.RFC3339),
		imp.RowCount,
		imp.BasketCount,
	)
	if err != nil {
		return 0, wrapQueryErr("failed to record import", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import ID: %w", err)
	}
	return id, nil
}

// LatestImport returns the most recent import into dataset.
func (s *Store) LatestImport(dataset string) (*Import, error) {
	query := `
		SELECT id, dataset, source_path, imported_at, row_count, basket_count
		FROM imports
		WHERE dataset = ?
		ORDER BY imported_at DESC, id DESC
		LIMIT 1
	`

	var imp Import
	var importedAt string
	err := s.db.QueryRow(query, dataset).Scan(
		&imp.ID,
		&imp.Dataset,
		&imp.SourcePath,
		&importedAt,
		&imp.RowCount,
		&imp.BasketCount,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no imports for %s", ErrDatasetNotFound, dataset)
	}
	if err != nil {
		return nil, wrapQueryErr("failed to get latest import", err)
	}

	imp.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse imported_at for %s: %w", dataset, err)
	}

	return &imp, nil
}

// ListDatasets summarizes every dataset with at least one transaction.
func (s *Store) ListDatasets() ([]*DatasetInfo, error) {
	query := `
		SELECT dataset, COUNT(*), COUNT(DISTINCT basket_key)
		FROM transactions
		GROUP BY dataset
		ORDER BY dataset
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapQueryErr("failed to list datasets", err)
	}

	var infos []*DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.Name, &info.Rows, &info.Baskets); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		infos = append(infos, &info)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating datasets: %w", err)
	}
	// Release the single connection before issuing follow-up queries.
	rows.Close()

	for _, info := range infos {
		imp, err := s.LatestImport(info.Name)
		if err == nil {
			info.LastImport = imp
		}
	}

	return infos, nil
}
