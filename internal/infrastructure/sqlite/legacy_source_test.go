package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// LegacySource
// ─────────────────────────────────────────────

func seedSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "old_processed.sqlite3")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	schema := `
		CREATE TABLE users (user_id INTEGER PRIMARY KEY, display_name TEXT);
		CREATE TABLE products (
			product_id INTEGER PRIMARY KEY, od TEXT, weight TEXT, end_type TEXT,
			grade TEXT, coating TEXT, customer_id INTEGER
		);
		CREATE TABLE store (
			inventory_id INTEGER PRIMARY KEY, customer_id INTEGER, product_id INTEGER,
			c_date TEXT, rr TEXT, po TEXT, carrier TEXT, received_transferred TEXT,
			joints_in TEXT, joints_out TEXT, footage TEXT, manufacturer TEXT, rack TEXT, afe TEXT
		);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO users VALUES (7, 'Acme Drilling');
		INSERT INTO products VALUES (3, 'Casing 5 1/2\"', '17#', 'Casing', 'J-55, LTC, R2', 'Rack 12', 7);
		INSERT INTO store VALUES
			(1, 7, 3, '2019-03-02', 'RR-9', '', 'Maverick', 'Received', '40', '', '1248.3', '', '', ''),
			(2, 7, 3, '2019-04-10', '', 'PO-1', '', 'Transferred', '', '12', '370.5', 'Seah', '', '')`)
	require.NoError(t, err)
	return path
}

func TestLegacySource_AplanaFilasDelSnapshot(t *testing.T) {
	source, err := Open(seedSnapshot(t))
	require.NoError(t, err)
	defer source.Close()

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Casing", first.Kind)
	assert.Equal(t, "Acme Drilling", first.Customer)
	assert.Equal(t, "Rack 12", first.Rack)
	assert.Equal(t, "2019-03-02", first.Date)
	assert.Equal(t, "40", first.JointsIn)
	assert.Equal(t, "1248.3", first.Footage)
	assert.Equal(t, "J-55, LTC, R2", first.Grade)
	assert.Equal(t, `Casing 5 1/2\"`, first.OutsideDiameter)

	second := rows[1]
	assert.Equal(t, "12", second.JointsOut)
	assert.Equal(t, "Seah", second.Manufacturer)
}

func TestLegacySource_RackDeStoreComoRespaldo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.sqlite3")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE users (user_id INTEGER PRIMARY KEY, display_name TEXT);
		CREATE TABLE products (
			product_id INTEGER PRIMARY KEY, od TEXT, weight TEXT, end_type TEXT,
			grade TEXT, coating TEXT, customer_id INTEGER
		);
		CREATE TABLE store (
			inventory_id INTEGER PRIMARY KEY, customer_id INTEGER, product_id INTEGER,
			c_date TEXT, rr TEXT, po TEXT, carrier TEXT, received_transferred TEXT,
			joints_in TEXT, joints_out TEXT, footage TEXT, manufacturer TEXT, rack TEXT, afe TEXT
		);
		INSERT INTO users VALUES (1, 'Basin Energy');
		INSERT INTO products VALUES (1, '2 7/8\"', '6.5#', 'Tubing', 'L-80', '', 1);
		INSERT INTO store VALUES (1, 1, 1, '2020-01-01', '', '', '', '', '10', '', '310', '', 'Yard', '');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	source, err := Open(path)
	require.NoError(t, err)
	defer source.Close()

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Yard", rows[0].Rack)
}
