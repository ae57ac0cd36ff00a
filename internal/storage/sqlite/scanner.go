package sqlite

import (
	"task-tracker/internal/storage"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single task record from a database row
func ScanRecord(scanner Scanner) (storage.Record, error) {
	var record storage.Record
	err := scanner.Scan(
		&record.TaskID,
		&record.Name,
		&record.Priority,
		&record.DueDate,
		&record.Status,
	)
	return record, err
}

// ScanRecords scans multiple task records from database rows
func ScanRecords(rows Rows) ([]storage.Record, error) {
	var records []storage.Record
	for rows.Next() {
		record, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
