package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	apperrors "github.com/arvindbhardwaj2003/kundliDesign/internal/errors"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
)

// SQLiteStore implements ChartStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Generated kundlis; charts are stored as JSON keyed by house number
	CREATE TABLE IF NOT EXISTS kundli_charts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		birth_datetime DATETIME NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		utc_offset TEXT NOT NULL,
		lagna_chart TEXT NOT NULL,
		navamsa_chart TEXT NOT NULL,
		moon_chart TEXT NOT NULL,
		transit_chart TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_kundli_charts_created_at ON kundli_charts(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveKundli inserts or replaces a record.
func (s *SQLiteStore) SaveKundli(ctx context.Context, r *models.KundliRecord) error {
	charts, err := encodeCharts(r.Lagna, r.Navamsa, r.Moon, r.Transit)
	if err != nil {
		return apperrors.NewStoreError("save", r.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kundli_charts (id, name, birth_datetime, latitude, longitude, utc_offset, lagna_chart, navamsa_chart, moon_chart, transit_chart, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.BirthDateTime.UTC(), r.Latitude, r.Longitude, r.UTCOffset,
		charts[0], charts[1], charts[2], charts[3], r.CreatedAt.UnixNano())
	if err != nil {
		return apperrors.NewStoreError("save", r.ID, fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	return nil
}

const selectKundli = "SELECT id, name, birth_datetime, latitude, longitude, utc_offset, lagna_chart, navamsa_chart, moon_chart, transit_chart, created_at FROM kundli_charts"

// GetKundli retrieves a record by ID.
func (s *SQLiteStore) GetKundli(ctx context.Context, id string) (*models.KundliRecord, error) {
	row := s.db.QueryRowContext(ctx, selectKundli+" WHERE id = ?", id)

	r, err := scanKundli(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewStoreError("get", id, apperrors.ErrChartNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get", id, err)
	}
	return r, nil
}

// ListKundlis returns records matching filter, newest first.
func (s *SQLiteStore) ListKundlis(ctx context.Context, filter KundliFilter) ([]models.KundliRecord, error) {
	query := selectKundli + " WHERE 1=1"
	args := []interface{}{}

	if filter.Name != "" {
		query += " AND lower(name) LIKE ?"
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list", "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	defer rows.Close()

	records := []models.KundliRecord{}
	for rows.Next() {
		r, err := scanKundli(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("list", "", err)
		}
		records = append(records, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list", "", fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	return records, nil
}

// DeleteKundli removes a record. Deleting an unknown ID is ErrChartNotFound.
func (s *SQLiteStore) DeleteKundli(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM kundli_charts WHERE id = ?", id)
	if err != nil {
		return apperrors.NewStoreError("delete", id, fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete", id, fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	if n == 0 {
		return apperrors.NewStoreError("delete", id, apperrors.ErrChartNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanKundli(row scanner) (*models.KundliRecord, error) {
	var r models.KundliRecord
	var lagnaJSON, navamsaJSON, moonJSON, transitJSON string
	var createdAt int64

	if err := row.Scan(&r.ID, &r.Name, &r.BirthDateTime, &r.Latitude, &r.Longitude, &r.UTCOffset,
		&lagnaJSON, &navamsaJSON, &moonJSON, &transitJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err)
	}

	for _, c := range []struct {
		name string
		data string
		dst  *chart.Chart
	}{
		{"lagna", lagnaJSON, &r.Lagna},
		{"navamsa", navamsaJSON, &r.Navamsa},
		{"moon", moonJSON, &r.Moon},
		{"transit", transitJSON, &r.Transit},
	} {
		if err := json.Unmarshal([]byte(c.data), c.dst); err != nil {
			return nil, fmt.Errorf("decoding %s chart of %s: %w", c.name, r.ID, err)
		}
	}

	r.CreatedAt = time.Unix(0, createdAt).UTC()
	return &r, nil
}

func encodeCharts(charts ...chart.Chart) ([]string, error) {
	out := make([]string, len(charts))
	for i, c := range charts {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding chart: %w", err)
		}
		out[i] = string(data)
	}
	return out, nil
}
