package sqlite

const schema = `
-- Carts table: one row per authenticated identity
CREATE TABLE IF NOT EXISTS carts (
    identity_id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    updated_at DATETIME NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_carts_updated_at ON carts(updated_at);
`
