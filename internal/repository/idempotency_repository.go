package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/cadence/pkg/cleanup"
)

// IdempotencyRepository is the generic check-and-set guard. The unique
// (entity_id, key) insert is the atomic primitive: a naive read-then-write
// here would be a correctness bug under concurrent requests.
type IdempotencyRepository struct {
	conn PgConnection
}

func NewIdempotencyRepo(cfg DBConfig) *IdempotencyRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for idempotencyRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for idempotencyRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &IdempotencyRepository{
		conn: pool,
	}
}

func NewIdempotencyRepoWithConn(conn PgConnection) *IdempotencyRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for idempotencyRepo: " + err.Error())
	}
	return &IdempotencyRepository{
		conn: conn,
	}
}

func (ir *IdempotencyRepository) Apply(ctx context.Context, entityID uuid.UUID, key string) (bool, error) {
	ct, err := ir.conn.Exec(ctx, `INSERT INTO idempotency_keys (entity_id, key) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, entityID, key)
	if err != nil {
		return false, errors.New("applying idempotency key error: " + err.Error())
	}
	return ct.RowsAffected() == 1, nil
}
