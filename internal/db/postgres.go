package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/errors"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lib/pq"
)

// * PostgresDB journals every outgoing GitHub request. It satisfies
// * models.Journal so it can be installed as a request sink.
type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	return newPostgresDB(db)
}

// * newPostgresDB configures the pool and verifies the connection, closing db
// * when it cannot be reached
func newPostgresDB(db *sql.DB) (*PostgresDB, error) {
	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to request journal database")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate(sourceURL string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			fmt.Sprintf("Could not create migration instance from %s", sourceURL),
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresDB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to begin transaction",
			"Could not start database transaction",
			err,
			errors.LevelError,
		)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.New(
				"DB_TRANSACTION_ERROR",
				"Transaction failed and rollback encountered error",
				"Transaction error with additional rollback failure",
				fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr),
				errors.LevelError,
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to commit transaction",
			"Error while committing transaction",
			err,
			errors.LevelError,
		)
	}

	return nil
}

// * Record stores the request and its redacted headers in one transaction.
// * Header rows are written in name order so replays are deterministic.
func (p *PostgresDB) Record(ctx context.Context, entry models.RequestLog) error {
	header := entry.RedactedHeader()
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	slices.Sort(names)

	return p.WithTransaction(ctx, func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO requests (method, url, sent_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, entry.Method, entry.URL, entry.SentAt).Scan(&id)
		if err != nil {
			return errors.New(
				"DB_REQUEST_ERROR",
				"Failed to journal request",
				fmt.Sprintf("Could not insert request %s %s", entry.Method, entry.URL),
				err,
				errors.LevelError,
			)
		}

		for _, name := range names {
			for _, value := range header[name] {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO request_headers (request_id, name, value)
					VALUES ($1, $2, $3)
				`, id, name, value)
				if err != nil {
					return errors.New(
						"DB_REQUEST_ERROR",
						"Failed to journal request header",
						fmt.Sprintf("Could not insert header '%s' for request %d", name, id),
						err,
						errors.LevelError,
					)
				}
			}
		}

		return nil
	})
}

// * RecentRequests returns the latest journaled requests, newest first
func (p *PostgresDB) RecentRequests(ctx context.Context, limit int) ([]models.RequestLog, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, method, url, sent_at
		FROM requests
		ORDER BY sent_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.New(
			"DB_REQUEST_ERROR",
			"Failed to query requests",
			"Could not fetch journaled requests",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	var logs []models.RequestLog
	index := make(map[int]int)
	var ids []int64
	for rows.Next() {
		entry := models.RequestLog{Header: http.Header{}}
		if err := rows.Scan(&entry.ID, &entry.Method, &entry.URL, &entry.SentAt); err != nil {
			return nil, errors.New(
				"DB_REQUEST_ERROR",
				"Failed to scan request",
				"Error while scanning request row",
				err,
				errors.LevelError,
			)
		}
		index[entry.ID] = len(logs)
		ids = append(ids, int64(entry.ID))
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_REQUEST_ERROR",
			"Failed to process requests",
			"Error while processing request rows",
			err,
			errors.LevelError,
		)
	}

	if len(logs) == 0 {
		return logs, nil
	}

	headerRows, err := p.db.QueryContext(ctx, `
		SELECT request_id, name, value
		FROM request_headers
		WHERE request_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return nil, errors.New(
			"DB_REQUEST_ERROR",
			"Failed to query request headers",
			"Could not fetch journaled request headers",
			err,
			errors.LevelError,
		)
	}
	defer headerRows.Close()

	for headerRows.Next() {
		var requestID int
		var name, value string
		if err := headerRows.Scan(&requestID, &name, &value); err != nil {
			return nil, errors.New(
				"DB_REQUEST_ERROR",
				"Failed to scan request header",
				"Error while scanning request header row",
				err,
				errors.LevelError,
			)
		}
		if i, ok := index[requestID]; ok {
			logs[i].Header.Add(name, value)
		}
	}

	if err := headerRows.Err(); err != nil {
		return nil, errors.New(
			"DB_REQUEST_ERROR",
			"Failed to process request headers",
			"Error while processing request header rows",
			err,
			errors.LevelError,
		)
	}

	return logs, nil
}
