package store

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT NOT NULL,
    basket_key TEXT NOT NULL,
    item TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS imports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    dataset TEXT NOT NULL,
    source_path TEXT,
    imported_at TIMESTAMP NOT NULL,
    row_count INTEGER NOT NULL,
    basket_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_dataset ON transactions(dataset, id);
CREATE INDEX IF NOT EXISTS idx_imports_dataset ON imports(dataset, imported_at);
`
