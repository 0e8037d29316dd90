package repository

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/entity"
)

type EventsRepository struct {
	conn PgConnection
}

func NewEventsRepo(cfg DBConfig) *EventsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for eventsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EventsRepository{
		conn: pool,
	}
}

func NewEventsRepoWithConn(conn PgConnection) *EventsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for eventsRepo: " + err.Error())
	}
	return &EventsRepository{
		conn: conn,
	}
}

func (er *EventsRepository) Append(ctx context.Context, event *entity.Event) error {
	if event == nil {
		return errors.New("event is nil")
	}
	_, err := er.conn.Exec(ctx, `INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`,
		event.UserID, event.EntityID, event.Type, event.Payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return errorvalues.ErrOwnerNotFound
		}
		return errors.New("appending event error: " + err.Error())
	}
	return nil
}

// AppendOnce claims the (entity, key) idempotency slot and appends the event
// in the same transaction. A lost race or redelivery commits nothing and
// reports false, so the claim never outlives a failed append.
func (er *EventsRepository) AppendOnce(ctx context.Context, event *entity.Event, key string) (bool, error) {
	if event == nil {
		return false, errors.New("event is nil")
	}
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return false, errors.New("beginning event tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `INSERT INTO idempotency_keys (entity_id, key) VALUES ($1, $2) ON CONFLICT DO NOTHING;`,
		event.EntityID, key)
	if err != nil {
		return false, errors.New("claiming idempotency key error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		if err = tx.Commit(ctx); err != nil {
			return false, errors.New("committing event tx error: " + err.Error())
		}
		return false, nil
	}
	_, err = tx.Exec(ctx, `INSERT INTO events (user_id, entity_id, type, payload) VALUES ($1, $2, $3, $4);`,
		event.UserID, event.EntityID, event.Type, event.Payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, errorvalues.ErrOwnerNotFound
		}
		return false, errors.New("appending event error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return false, errors.New("committing event tx error: " + err.Error())
	}
	return true, nil
}

func (er *EventsRepository) Query(ctx context.Context, filter EventsFilter) ([]entity.Event, error) {
	sql := `SELECT id, user_id, entity_id, type, payload, created_at FROM events WHERE 1=1`
	args := make([]any, 0, 5)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		sql += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		sql += ` AND entity_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		sql += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sql += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sql += ` AND created_at <= $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += ` LIMIT $` + strconv.Itoa(len(args))
	}
	sql += `;`
	rows, err := er.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.New("querying events error: " + err.Error())
	}
	defer rows.Close()
	events := make([]entity.Event, 0)
	for rows.Next() {
		e := entity.Event{}
		err = rows.Scan(&e.ID, &e.UserID, &e.EntityID, &e.Type, &e.Payload, &e.CreatedAt)
		if err != nil {
			return nil, errors.New("event row parsing error: " + err.Error())
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected event rows error: " + rows.Err().Error())
	}
	return events, nil
}

// ExistsInRange is boundary-inclusive on both ends: a dismiss landing at the
// exact close of a grace window still counts.
func (er *EventsRepository) ExistsInRange(ctx context.Context, entityID uuid.UUID, typ entity.EventType, from, to time.Time) (bool, error) {
	var exists bool
	row := er.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE entity_id = $1 AND type = $2 AND created_at >= $3 AND created_at <= $4);`,
		entityID, typ, from, to)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting events range error: " + err.Error())
	}
	return exists, nil
}
