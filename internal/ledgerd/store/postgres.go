package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"moneymgr/internal/config"
	"moneymgr/internal/entity"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const schema = `CREATE TABLE IF NOT EXISTS transactions (
	id          BIGSERIAL PRIMARY KEY,
	description TEXT NOT NULL,
	amount      NUMERIC(14, 2) NOT NULL CHECK (amount >= 0),
	type        TEXT NOT NULL CHECK (type IN ('INCOME', 'EXPENSE')),
	date        DATE NOT NULL
)`

var columns = []string{"id", "description", "amount::text", "type", "date"}

func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return pool, nil
}

type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres creates the transactions table when it does not exist yet.
func NewPostgres(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*PostgresStore, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &PostgresStore{
		db:     db,
		logger: logger,
	}, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]entity.Transaction, error) {
	return s.query(ctx, selectQuery())
}

func (s *PostgresStore) ListByDate(ctx context.Context, date entity.Date) ([]entity.Transaction, error) {
	return s.query(ctx, selectQuery().Where(squirrel.Eq{"date": date.Time()}))
}

func (s *PostgresStore) Get(ctx context.Context, id string) (entity.Transaction, error) {
	seq, ok := parseID(id)
	if !ok {
		return entity.Transaction{}, fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}

	sql, args, err := selectQuery().Where(squirrel.Eq{"id": int64(seq)}).ToSql()
	if err != nil {
		return entity.Transaction{}, err
	}

	t, err := scan(s.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Transaction{}, fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}
	return t, err
}

func (s *PostgresStore) Create(ctx context.Context, f entity.Fields) (entity.Transaction, error) {
	sql, args, err := insertQuery(f).ToSql()
	if err != nil {
		return entity.Transaction{}, err
	}

	var id int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return entity.Transaction{}, err
	}

	return entity.Transaction{ID: strconv.FormatInt(id, 10), Fields: f}, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, f entity.Fields) error {
	seq, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}

	sql, args, err := updateQuery(int64(seq), f).ToSql()
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", entity.NotFoundErr, id)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	seq, ok := parseID(id)
	if !ok {
		return nil
	}

	sql, args, err := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": int64(seq)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, sql, args...)
	return err
}

func (s *PostgresStore) query(ctx context.Context, q squirrel.SelectBuilder) ([]entity.Transaction, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []entity.Transaction{}
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func selectQuery() squirrel.SelectBuilder {
	return squirrel.Select(columns...).
		From("transactions").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func insertQuery(f entity.Fields) squirrel.InsertBuilder {
	return squirrel.Insert("transactions").
		Columns("description", "amount", "type", "date").
		Values(f.Description, f.Amount.StringFixed(2), string(f.Type), f.Date.Time()).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

func updateQuery(id int64, f entity.Fields) squirrel.UpdateBuilder {
	return squirrel.Update("transactions").
		Set("description", f.Description).
		Set("amount", f.Amount.StringFixed(2)).
		Set("type", string(f.Type)).
		Set("date", f.Date.Time()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

func scan(row pgx.Row) (entity.Transaction, error) {
	var (
		id          int64
		description string
		amount      string
		typ         string
		date        time.Time
	)
	if err := row.Scan(&id, &description, &amount, &typ, &date); err != nil {
		return entity.Transaction{}, err
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return entity.Transaction{}, err
	}

	return entity.Transaction{ID: strconv.FormatInt(id, 10), Fields: entity.Fields{
		Description: description,
		Amount:      value,
		Type:        entity.Type(typ),
		Date:        entity.NewDate(date.Date()),
	}}, nil
}
