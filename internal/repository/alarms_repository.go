package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/pkg/cleanup"
	"github.com/limbo/cadence/pkg/entity"
)

type AlarmsRepository struct {
	conn PgConnection
}

func NewAlarmsRepo(cfg DBConfig) *AlarmsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for alarmsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for alarmsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AlarmsRepository{
		conn: pool,
	}
}

func NewAlarmsRepoWithConn(conn PgConnection) *AlarmsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for alarmsRepo: " + err.Error())
	}
	return &AlarmsRepository{
		conn: conn,
	}
}

func (alr *AlarmsRepository) Create(ctx context.Context, alarm *entity.Alarm) (uuid.UUID, error) {
	recurrence, err := sonic.Marshal(alarm.Recurrence)
	if err != nil {
		return uuid.UUID{}, errors.New("marshalling recurrence error: " + err.Error())
	}
	meta, err := sonic.Marshal(alarm.Meta)
	if err != nil {
		return uuid.UUID{}, errors.New("marshalling meta error: " + err.Error())
	}
	var id uuid.UUID
	row := alr.conn.QueryRow(ctx, `INSERT INTO alarms (user_id, label, recurrence, time_of_day, tone, enabled, status, next_fire_at, meta)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id;`,
		alarm.UserID, alarm.Label, recurrence, alarm.TimeOfDay, alarm.Tone, alarm.Enabled, alarm.Status, alarm.NextFireAt, meta)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return uuid.UUID{}, errorvalues.ErrOwnerNotFound
		}
		return uuid.UUID{}, errors.New("creating alarm db error: " + err.Error())
	}
	return id, nil
}

func (alr *AlarmsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Alarm, error) {
	var alarm entity.Alarm
	var recurrence, meta []byte
	alarm.ID = id
	row := alr.conn.QueryRow(ctx, `SELECT user_id, label, recurrence, time_of_day, tone, enabled, status, next_fire_at, meta, created_at FROM alarms WHERE id = $1;`, id)
	if err := row.Scan(&alarm.UserID, &alarm.Label, &recurrence, &alarm.TimeOfDay, &alarm.Tone, &alarm.Enabled, &alarm.Status, &alarm.NextFireAt, &meta, &alarm.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrAlarmNotFound
		}
		return nil, errors.New("getting alarm by id error: " + err.Error())
	}
	if err := sonic.Unmarshal(recurrence, &alarm.Recurrence); err != nil {
		return nil, errors.New("unmarshalling recurrence error: " + err.Error())
	}
	if err := sonic.Unmarshal(meta, &alarm.Meta); err != nil {
		return nil, errors.New("unmarshalling meta error: " + err.Error())
	}
	return &alarm, nil
}

func (alr *AlarmsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Alarm, error) {
	rows, err := alr.conn.Query(ctx, `SELECT id, user_id, label, recurrence, time_of_day, tone, enabled, status, next_fire_at, meta, created_at
		FROM alarms WHERE user_id = $1 ORDER BY created_at;`, uid)
	if err != nil {
		return nil, errors.New("getting alarms by uid error: " + err.Error())
	}
	defer rows.Close()
	alarms := make([]*entity.Alarm, 0)
	for rows.Next() {
		a := entity.Alarm{}
		var recurrence, meta []byte
		err = rows.Scan(&a.ID, &a.UserID, &a.Label, &recurrence, &a.TimeOfDay, &a.Tone, &a.Enabled, &a.Status, &a.NextFireAt, &meta, &a.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling alarm error: " + err.Error())
		}
		if err = sonic.Unmarshal(recurrence, &a.Recurrence); err != nil {
			return nil, errors.New("unmarshalling recurrence error: " + err.Error())
		}
		if err = sonic.Unmarshal(meta, &a.Meta); err != nil {
			return nil, errors.New("unmarshalling meta error: " + err.Error())
		}
		alarms = append(alarms, &a)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return alarms, nil
}

func (alr *AlarmsRepository) Update(ctx context.Context, alarm *entity.Alarm) error {
	recurrence, err := sonic.Marshal(alarm.Recurrence)
	if err != nil {
		return errors.New("marshalling recurrence error: " + err.Error())
	}
	meta, err := sonic.Marshal(alarm.Meta)
	if err != nil {
		return errors.New("marshalling meta error: " + err.Error())
	}
	ct, err := alr.conn.Exec(ctx, `UPDATE alarms SET label = $1, recurrence = $2, time_of_day = $3, tone = $4, meta = $5 WHERE id = $6;`,
		alarm.Label, recurrence, alarm.TimeOfDay, alarm.Tone, meta, alarm.ID)
	if err != nil {
		return errors.New("error updating alarm: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAlarmNotFound
	}
	return nil
}

func (alr *AlarmsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := alr.conn.Exec(ctx, `DELETE FROM alarms WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting alarm: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAlarmNotFound
	}
	return nil
}

func (alr *AlarmsRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	ct, err := alr.conn.Exec(ctx, `UPDATE alarms SET enabled = $2 WHERE id = $1;`, id, enabled)
	if err != nil {
		return errors.New("error toggling alarm: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAlarmNotFound
	}
	return nil
}

func (alr *AlarmsRepository) SetState(ctx context.Context, id uuid.UUID, status entity.AlarmStatus, nextFireAt *time.Time) error {
	ct, err := alr.conn.Exec(ctx, `UPDATE alarms SET status = $2, next_fire_at = $3 WHERE id = $1;`, id, status, nextFireAt)
	if err != nil {
		return errors.New("error setting alarm state: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrAlarmNotFound
	}
	return nil
}
