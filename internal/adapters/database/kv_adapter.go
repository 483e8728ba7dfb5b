package database

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/providers"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/ayurvedaclinic/backend/pkg/errors"
)

const kvTable = "clinic_kv"

const createKVTableSQL = `CREATE TABLE IF NOT EXISTS clinic_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// KVAdapter implements the KeyValueStore interface on a single PostgreSQL table
type KVAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewKVAdapter creates a new key-value adapter
func NewKVAdapter(client *postgres.Client) *KVAdapter {
	return &KVAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var _ providers.KeyValueStore = (*KVAdapter)(nil)

// EnsureSchema creates the backing table when it does not exist
func (a *KVAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, createKVTableSQL); err != nil {
		return apperrors.NewInternalError("failed to create clinic_kv table", err)
	}
	return nil
}

// Load retrieves the value stored under key
func (a *KVAdapter) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := a.db.From(kvTable).
		Prepared(true).
		Select("value").
		Where(goqu.C("key").Eq(key)).
		ToSQL()
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to build select query", err)
	}

	var value string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewInternalError("failed to load "+key, err)
	}

	return []byte(value), true, nil
}

// Save upserts a single key
func (a *KVAdapter) Save(ctx context.Context, key string, value []byte) error {
	query, args, err := a.upsertSQL(key, value)
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to save "+key, err)
	}
	return nil
}

// SaveBatch upserts every entry in one transaction
func (a *KVAdapter) SaveBatch(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	for _, key := range keys {
		query, args, err := a.upsertSQL(key, entries[key])
		if err != nil {
			_ = tx.Rollback()
			return apperrors.NewInternalError("failed to build upsert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return apperrors.NewInternalError("failed to save "+key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit batch", err)
	}
	return nil
}

func (a *KVAdapter) upsertSQL(key string, value []byte) (string, []interface{}, error) {
	return a.db.Insert(kvTable).
		Prepared(true).
		Rows(goqu.Record{
			"key":        key,
			"value":      string(value),
			"updated_at": goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"value":      goqu.L("EXCLUDED.value"),
			"updated_at": goqu.L("NOW()"),
		})).
		ToSQL()
}
