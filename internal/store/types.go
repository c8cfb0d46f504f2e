package store

import "time"

// Transaction is one raw record: an item bought under a basket key
// (a receipt number or customer number).
type Transaction struct {
	Key  string
	Item string
}

// Import records one load of a source file into a dataset.
type Import struct {
	ID          int64
	Dataset     string
	SourcePath  string
	ImportedAt  time.Time
	RowCount    int
	BasketCount int
}

// DatasetInfo summarizes a dataset currently held in the store.
type DatasetInfo struct {
	Name       string
	Rows       int
	Baskets    int
	LastImport *Import
}
