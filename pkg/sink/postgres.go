// pkg/sink/postgres.go
package sink

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/retailops/etl/pkg/config"
	"github.com/retailops/etl/pkg/model"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 500

// PostgresSink persists repaired tables into PostgreSQL. Loads are
// idempotent: the primary-key conflict clause skips rows already present.
type PostgresSink struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.PostgresConfig
}

// NewPostgresSink opens a connection pool against the configured
// database and verifies it responds.
func NewPostgresSink(ctx context.Context, cfg *config.PostgresConfig, logger *zap.Logger) (*PostgresSink, error) {
	logger = logger.Named("postgres-sink")

	logger.Info("connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("pgx", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	applyConnectionSettings(db, cfg)

	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
		if err != nil {
			logger.Warn("failed to set statement timeout", zap.Error(err))
		}
	}

	if err := pingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &PostgresSink{db: db, logger: logger, cfg: cfg}, nil
}

// DB returns the underlying connection pool.
func (s *PostgresSink) DB() *sqlx.DB {
	return s.db
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	s.logger.Info("closing PostgreSQL connection")
	return s.db.Close()
}

// EnsureTable creates the destination table when it does not exist.
func (s *PostgresSink) EnsureTable(ctx context.Context, schema TableSchema) error {
	if _, err := s.db.ExecContext(ctx, schema.CreateSQL()); err != nil {
		return &PersistenceError{Table: schema.Name, Op: "create table", Err: err}
	}
	s.logger.Debug("destination table ready", zap.String("table", schema.Name))
	return nil
}

// Load persists a repaired table. The table must carry every destination
// column; rows whose key already exists are skipped, not rewritten. The
// whole load runs in one transaction so a failure leaves the destination
// untouched.
func (s *PostgresSink) Load(ctx context.Context, t *model.Table, schema TableSchema) (int64, error) {
	if err := schema.Validate(t); err != nil {
		return 0, err
	}
	if t.Len() == 0 {
		s.logger.Info("nothing to load", zap.String("table", schema.Name))
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, &PersistenceError{Table: schema.Name, Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	var inserted int64
	for start := 0; start < t.Len(); start += insertBatchSize {
		end := start + insertBatchSize
		if end > t.Len() {
			end = t.Len()
		}

		batch := t.Records[start:end]
		args := make([]interface{}, 0, len(batch)*len(schema.Columns))
		for i := range batch {
			for _, col := range schema.Columns {
				v, err := col.BindValue(batch[i].Get(col.Name))
				if err != nil {
					return inserted, &PersistenceError{Table: schema.Name, Op: "bind row", Err: err}
				}
				args = append(args, v)
			}
		}

		res, err := tx.ExecContext(ctx, schema.InsertSQL(len(batch)), args...)
		if err != nil {
			return inserted, &PersistenceError{Table: schema.Name, Op: "insert batch", Err: err}
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, &PersistenceError{Table: schema.Name, Op: "commit", Err: err}
	}

	s.logger.Info("table persisted",
		zap.String("table", schema.Name),
		zap.Int("records", t.Len()),
		zap.Int64("inserted", inserted),
		zap.Int64("skipped_existing", int64(t.Len())-inserted))
	return inserted, nil
}

func applyConnectionSettings(db *sqlx.DB, cfg *config.PostgresConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

func pingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- db.PingContext(pingCtx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-pingCtx.Done():
		return fmt.Errorf("ping timed out after %v: %w", timeout, pingCtx.Err())
	}
}
