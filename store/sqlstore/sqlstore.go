// Package sqlstore implements store.Store on a SQL database.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/internal/log"
	"github.com/Lzww0608/oid/store"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// The uuid column holds the canonical hex form, whose ASCII order is byte
// order, so ORDER BY prefix, uuid matches OID.Compare. created_at is stored
// as Unix milliseconds to stay portable between drivers.
const schema = `
CREATE TABLE IF NOT EXISTS oid_records (
	id         VARCHAR(31)  NOT NULL PRIMARY KEY,
	prefix     VARCHAR(4)   NOT NULL,
	uuid       CHAR(36)     NOT NULL,
	label      VARCHAR(255) NOT NULL DEFAULT '',
	created_at BIGINT       NOT NULL,
	UNIQUE (prefix, uuid)
)`

// Store is a store.Store backed by the oid_records table.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

var _ store.Store = (*Store)(nil)

// New wraps an open database and creates the oid_records table if needed.
// The Store takes ownership of db and closes it in Close.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{
		db:     db,
		logger: log.L().With().Str(log.FieldDriver, "sql").Logger(),
	}, nil
}

// OpenMySQL connects to MySQL and returns a Store on it.
func OpenMySQL(ctx context.Context, cfg *mysql.Config) (*Store, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql config: %w", err)
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to mysql at %s: %w", cfg.Addr, err)
	}

	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.logger = s.logger.With().Str(log.FieldAddr, cfg.Addr).Logger()
	return s, nil
}

func (s *Store) Put(ctx context.Context, r store.Record) error {
	if r.ID.IsZero() {
		return store.ErrZeroID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM oid_records WHERE id = ?", r.ID.String()).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", store.ErrExists, r.ID)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO oid_records (id, prefix, uuid, label, created_at) VALUES (?, ?, ?, ?, ?)",
		r.ID.String(), r.ID.Prefix(), r.ID.UUID().String(), r.Label, r.CreatedAt.UnixMilli())
	if err != nil {
		// A concurrent insert can still win between the check and the insert.
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: %s", store.ErrExists, r.ID)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug().Str(log.FieldOID, r.ID.String()).Msg("record stored")
	return nil
}

func (s *Store) Get(ctx context.Context, id oid.OID) (store.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, label, created_at FROM oid_records WHERE id = ?", id.String())
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return r, err
}

func (s *Store) List(ctx context.Context, prefix string) ([]store.Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if prefix == "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT id, label, created_at FROM oid_records ORDER BY prefix, uuid")
	} else {
		p, perr := oid.ParsePrefix(prefix)
		if perr != nil {
			return nil, perr
		}
		rows, err = s.db.QueryContext(ctx,
			"SELECT id, label, created_at FROM oid_records WHERE prefix = ? ORDER BY uuid", p.String())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []store.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id oid.OID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM oid_records WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	s.logger.Debug().Str(log.FieldOID, id.String()).Msg("record deleted")
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (store.Record, error) {
	var (
		r  store.Record
		ms int64
	)
	if err := row.Scan(&r.ID, &r.Label, &ms); err != nil {
		return store.Record{}, err
	}
	r.CreatedAt = time.UnixMilli(ms).UTC()
	return r, nil
}
