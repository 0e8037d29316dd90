package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/entity"
)

// JobsRepository backs the delayed-execution queue with a table, so pending
// fires survive process restarts. An in-process timer alone would silently
// drop them.
type JobsRepository struct {
	conn PgConnection
}

func NewJobsRepo(cfg DBConfig) *JobsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for jobsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for jobsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &JobsRepository{
		conn: pool,
	}
}

func NewJobsRepoWithConn(conn PgConnection) *JobsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for jobsRepo: " + err.Error())
	}
	return &JobsRepository{
		conn: conn,
	}
}

func (jr *JobsRepository) Enqueue(ctx context.Context, kind, key string, runAt time.Time, payload []byte) (int64, error) {
	var id int64
	row := jr.conn.QueryRow(ctx, `INSERT INTO jobs (kind, key, run_at, payload, status) VALUES ($1, $2, $3, $4, 'pending') RETURNING id;`,
		kind, key, runAt, payload)
	if err := row.Scan(&id); err != nil {
		return 0, errors.New("enqueueing job error: " + err.Error())
	}
	return id, nil
}

func (jr *JobsRepository) CancelByKey(ctx context.Context, key string) error {
	_, err := jr.conn.Exec(ctx, `UPDATE jobs SET status = 'canceled' WHERE key = $1 AND status = 'pending';`, key)
	if err != nil {
		return errors.New("canceling jobs error: " + err.Error())
	}
	return nil
}

// ClaimDue moves due pending jobs to running. SKIP LOCKED keeps concurrent
// workers off each other's rows.
func (jr *JobsRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]entity.Job, error) {
	rows, err := jr.conn.Query(ctx, `UPDATE jobs SET status = 'running', claimed_at = $1 WHERE id IN (
		SELECT id FROM jobs WHERE status = 'pending' AND run_at <= $1 ORDER BY run_at LIMIT $2 FOR UPDATE SKIP LOCKED
	) RETURNING id, kind, key, run_at, payload, status;`, now, limit)
	if err != nil {
		return nil, errors.New("claiming due jobs error: " + err.Error())
	}
	defer rows.Close()
	jobs := make([]entity.Job, 0)
	for rows.Next() {
		j := entity.Job{}
		err = rows.Scan(&j.ID, &j.Kind, &j.Key, &j.RunAt, &j.Payload, &j.Status)
		if err != nil {
			return nil, errors.New("job row parsing error: " + err.Error())
		}
		jobs = append(jobs, j)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected job rows error: " + rows.Err().Error())
	}
	return jobs, nil
}

func (jr *JobsRepository) MarkDone(ctx context.Context, id int64) error {
	ct, err := jr.conn.Exec(ctx, `UPDATE jobs SET status = 'done' WHERE id = $1 AND status = 'running';`, id)
	if err != nil {
		return errors.New("marking job done error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrJobNotFound
	}
	return nil
}

// ReleaseStale requeues running jobs whose worker died before finishing.
// Handlers are idempotent, so re-delivery is safe.
func (jr *JobsRepository) ReleaseStale(ctx context.Context, claimedBefore time.Time) (int, error) {
	ct, err := jr.conn.Exec(ctx, `UPDATE jobs SET status = 'pending', claimed_at = NULL WHERE status = 'running' AND claimed_at < $1;`, claimedBefore)
	if err != nil {
		return 0, errors.New("releasing stale jobs error: " + err.Error())
	}
	return int(ct.RowsAffected()), nil
}
