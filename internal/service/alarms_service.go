package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cadence/internal/error_values"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
	"github.com/limbo/cadence/pkg/metrics"
	"github.com/limbo/cadence/pkg/recurrence"
)

const (
	JobKindAlarmFire  = "alarm_fire"
	JobKindEscalation = "escalation"

	// How long a fired alarm may stay undismissed before escalating
	DefaultGraceWindow = 10 * time.Minute
)

type firePayload struct {
	AlarmID uuid.UUID `json:"alarm_id"`
	FireAt  time.Time `json:"fire_at"`
}

type escalationPayload struct {
	AlarmID uuid.UUID     `json:"alarm_id"`
	UserID  uuid.UUID     `json:"uid"`
	FiredAt time.Time     `json:"fired_at"`
	Grace   time.Duration `json:"grace"`
}

type AlarmsService struct {
	repo       repository.AlarmsRepositoryI
	usersRepo  repository.UsersRepositoryI
	eventsRepo repository.EventsRepositoryI
	jobs       repository.JobsRepositoryI
	notifier   NotifierI
	grace      time.Duration
}

func NewAlarmsService(alarmsRepo repository.AlarmsRepositoryI, usersRepo repository.UsersRepositoryI, eventsRepo repository.EventsRepositoryI,
	jobsRepo repository.JobsRepositoryI, notifier NotifierI, grace time.Duration) *AlarmsService {
	if alarmsRepo == nil || usersRepo == nil || eventsRepo == nil || jobsRepo == nil || notifier == nil {
		log.Fatal("on alarms service provided nil dependencies")
	}
	if grace <= 0 {
		grace = DefaultGraceWindow
	}
	return &AlarmsService{
		repo:       alarmsRepo,
		usersRepo:  usersRepo,
		eventsRepo: eventsRepo,
		jobs:       jobsRepo,
		notifier:   notifier,
		grace:      grace,
	}
}

func (als *AlarmsService) CreateAlarm(ctx context.Context, uid uuid.UUID, req *CreateAlarmRequest, now time.Time) (*entity.Alarm, error) {
	err := validate.Struct(*req)
	if err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	if !RecurrenceSpecValid(req.Recurrence) {
		return nil, errors.New("validation error: impossible recurrence spec")
	}
	alarm := entity.Alarm{
		UserID:     uid,
		Label:      req.Label,
		Recurrence: req.Recurrence,
		TimeOfDay:  req.TimeOfDay,
		Tone:       req.Tone,
		Enabled:    true,
		Status:     entity.AlarmScheduled,
		NextFireAt: req.FireAt,
		Meta:       req.Meta,
	}
	id, err := als.repo.Create(ctx, &alarm)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("alarms repository error: " + err.Error())
	}
	alarm.ID = id
	if _, err = als.Schedule(ctx, &alarm, now); err != nil {
		return nil, err
	}
	created, err := als.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("alarms repository error: " + err.Error())
	}
	return created, nil
}

func (als *AlarmsService) GetUserAlarms(ctx context.Context, uid uuid.UUID) ([]*entity.Alarm, error) {
	alarms, err := als.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("alarms repository error: " + err.Error())
	}
	return alarms, nil
}

func (als *AlarmsService) DeleteAlarm(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := als.owned(ctx, id, userID); err != nil {
		return err
	}
	// Pending fires and escalations die with the alarm
	if err := als.cancelJobs(ctx, id); err != nil {
		return err
	}
	err := als.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAlarmNotFound) {
			return err
		}
		return errors.New("alarms repository error: " + err.Error())
	}
	return nil
}

func (als *AlarmsService) SetEnabled(ctx context.Context, id, userID uuid.UUID, enabled bool, now time.Time) error {
	alarm, err := als.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if err = als.repo.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, errorvalues.ErrAlarmNotFound) {
			return err
		}
		return errors.New("alarms repository error: " + err.Error())
	}
	if !enabled {
		if err = als.cancelJobs(ctx, id); err != nil {
			return err
		}
		if err = als.repo.SetState(ctx, id, entity.AlarmDisabled, nil); err != nil {
			return errors.New("alarms repository error: " + err.Error())
		}
		return nil
	}
	alarm.Enabled = true
	_, err = als.Schedule(ctx, alarm, now)
	return err
}

// Schedule computes the next fire instant and hands it to the delayed queue.
// A one-shot alarm whose target already passed is a silent no-op: the API
// layer is expected to have rejected it at creation.
func (als *AlarmsService) Schedule(ctx context.Context, alarm *entity.Alarm, now time.Time) (*time.Time, error) {
	if !alarm.Enabled {
		return nil, nil
	}
	var next *time.Time
	if alarm.Recurrence.Kind == entity.RecurrenceOnce {
		if alarm.NextFireAt == nil || alarm.NextFireAt.Before(now) {
			return nil, nil
		}
		next = alarm.NextFireAt
	} else {
		user, err := als.usersRepo.FindByID(ctx, alarm.UserID)
		if err != nil {
			return nil, errors.New("users repository error: " + err.Error())
		}
		loc, err := time.LoadLocation(user.Timezone)
		if err != nil {
			loc = time.UTC
		}
		next = recurrence.NextFire(alarm.Recurrence, alarm.TimeOfDay, now, alarm.CreatedAt, loc)
		if next == nil {
			return nil, nil
		}
	}
	if err := als.repo.SetState(ctx, alarm.ID, entity.AlarmScheduled, next); err != nil {
		if errors.Is(err, errorvalues.ErrAlarmNotFound) {
			return nil, err
		}
		return nil, errors.New("alarms repository error: " + err.Error())
	}
	payload, err := sonic.Marshal(firePayload{AlarmID: alarm.ID, FireAt: *next})
	if err != nil {
		return nil, errors.New("marshalling fire payload error: " + err.Error())
	}
	_, err = als.jobs.Enqueue(ctx, JobKindAlarmFire, JobKindAlarmFire+":"+alarm.ID.String(), *next, payload)
	if err != nil {
		return nil, errors.New("jobs repository error: " + err.Error())
	}
	return next, nil
}

// HandleFire runs when the delayed queue delivers a fire job. Delivery is
// at-least-once: the fire event and its idempotency key land in one
// transaction, and every step after it is safe to redo, so a redelivery
// after a mid-flight failure finishes the chain instead of dropping it.
func (als *AlarmsService) HandleFire(ctx context.Context, payload []byte, now time.Time) error {
	var p firePayload
	if err := sonic.Unmarshal(payload, &p); err != nil {
		return errors.New("unmarshalling fire payload error: " + err.Error())
	}
	alarm, err := als.repo.GetByID(ctx, p.AlarmID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAlarmNotFound) {
			// Alarm deleted between enqueue and delivery, nothing to do
			return nil
		}
		return errors.New("alarms repository error: " + err.Error())
	}
	if !alarm.Enabled {
		return nil
	}
	// Stale delivery: the chain already retired this instant
	if alarm.NextFireAt == nil || !alarm.NextFireAt.Equal(p.FireAt) {
		return nil
	}
	eventPayload, err := sonic.Marshal(map[string]any{"label": alarm.Label, "fired_at": p.FireAt})
	if err != nil {
		return errors.New("marshalling fire event error: " + err.Error())
	}
	applied, err := als.eventsRepo.AppendOnce(ctx, &entity.Event{
		UserID:   alarm.UserID,
		EntityID: alarm.ID,
		Type:     entity.EventAlarmFire,
		Payload:  eventPayload,
	}, "fire:"+p.FireAt.UTC().Format(time.RFC3339))
	if err != nil {
		return errors.New("events repository error: " + err.Error())
	}
	if applied {
		metrics.AlarmsFired.Inc()
		if err = als.notifier.Send(ctx, alarm.UserID, "Alarm: "+alarm.Label, UrgencyNormal); err != nil {
			metrics.NotificationsFailed.Inc()
		}
	}
	if err = als.armEscalation(ctx, alarm, p.FireAt); err != nil {
		return err
	}
	if alarm.Recurrence.Kind == entity.RecurrenceOnce {
		if err = als.repo.SetState(ctx, alarm.ID, entity.AlarmCompleted, nil); err != nil {
			return errors.New("alarms repository error: " + err.Error())
		}
		return nil
	}
	// Recurring and still enabled: line up the next occurrence. Schedule
	// moves NextFireAt forward, which retires this instant for good.
	next, err := als.Schedule(ctx, alarm, now.Add(time.Minute))
	if err != nil {
		return err
	}
	if next == nil {
		if err = als.repo.SetState(ctx, alarm.ID, entity.AlarmFired, nil); err != nil {
			return errors.New("alarms repository error: " + err.Error())
		}
	}
	return nil
}

func (als *AlarmsService) armEscalation(ctx context.Context, alarm *entity.Alarm, firedAt time.Time) error {
	payload, err := sonic.Marshal(escalationPayload{
		AlarmID: alarm.ID,
		UserID:  alarm.UserID,
		FiredAt: firedAt,
		Grace:   als.grace,
	})
	if err != nil {
		return errors.New("marshalling escalation payload error: " + err.Error())
	}
	_, err = als.jobs.Enqueue(ctx, JobKindEscalation, JobKindEscalation+":"+alarm.ID.String(), firedAt.Add(als.grace), payload)
	if err != nil {
		return errors.New("jobs repository error: " + err.Error())
	}
	return nil
}

// HandleEscalation is a single deferred evaluation, not a poll: one look at
// the ledger once the grace window has elapsed. A dismiss landing at the
// exact end of the window still counts.
func (als *AlarmsService) HandleEscalation(ctx context.Context, payload []byte, now time.Time) error {
	var p escalationPayload
	if err := sonic.Unmarshal(payload, &p); err != nil {
		return errors.New("unmarshalling escalation payload error: " + err.Error())
	}
	dismissed, err := als.eventsRepo.ExistsInRange(ctx, p.AlarmID, entity.EventAlarmDismiss, p.FiredAt, p.FiredAt.Add(p.Grace))
	if err != nil {
		return errors.New("events repository error: " + err.Error())
	}
	if dismissed {
		return nil
	}
	eventPayload, err := sonic.Marshal(map[string]any{"fired_at": p.FiredAt})
	if err != nil {
		return errors.New("marshalling escalation event error: " + err.Error())
	}
	// Key and event land in one transaction: a failed append rolls the
	// claim back, so the redelivery still raises the escalation.
	applied, err := als.eventsRepo.AppendOnce(ctx, &entity.Event{
		UserID:   p.UserID,
		EntityID: p.AlarmID,
		Type:     entity.EventEscalation,
		Payload:  eventPayload,
	}, "escalation:"+p.FiredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return errors.New("events repository error: " + err.Error())
	}
	if !applied {
		return nil
	}
	metrics.EscalationsRaised.Inc()
	if err = als.notifier.Send(ctx, p.UserID, "Alarm not dismissed, escalating", UrgencyUrgent); err != nil {
		metrics.NotificationsFailed.Inc()
	}
	if err = als.repo.SetState(ctx, p.AlarmID, entity.AlarmEscalated, nil); err != nil && !errors.Is(err, errorvalues.ErrAlarmNotFound) {
		return errors.New("alarms repository error: " + err.Error())
	}
	return nil
}

func (als *AlarmsService) Dismiss(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	alarm, err := als.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	eventPayload, err := sonic.Marshal(map[string]any{"at": at})
	if err != nil {
		return errors.New("marshalling dismiss payload error: " + err.Error())
	}
	err = als.eventsRepo.Append(ctx, &entity.Event{
		UserID:   userID,
		EntityID: alarm.ID,
		Type:     entity.EventAlarmDismiss,
		Payload:  eventPayload,
	})
	if err != nil {
		return errors.New("events repository error: " + err.Error())
	}
	// The ledger entry above already makes the deferred escalation check a
	// no-op; canceling the job just saves the worker a wakeup
	if err = als.jobs.CancelByKey(ctx, JobKindEscalation+":"+alarm.ID.String()); err != nil {
		return errors.New("jobs repository error: " + err.Error())
	}
	if alarm.Status == entity.AlarmFired {
		if err = als.repo.SetState(ctx, alarm.ID, entity.AlarmDismissed, alarm.NextFireAt); err != nil {
			return errors.New("alarms repository error: " + err.Error())
		}
	}
	return nil
}

func (als *AlarmsService) cancelJobs(ctx context.Context, alarmID uuid.UUID) error {
	if err := als.jobs.CancelByKey(ctx, JobKindAlarmFire+":"+alarmID.String()); err != nil {
		return errors.New("jobs repository error: " + err.Error())
	}
	if err := als.jobs.CancelByKey(ctx, JobKindEscalation+":"+alarmID.String()); err != nil {
		return errors.New("jobs repository error: " + err.Error())
	}
	return nil
}

func (als *AlarmsService) owned(ctx context.Context, id, userID uuid.UUID) (*entity.Alarm, error) {
	alarm, err := als.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAlarmNotFound) {
			return nil, err
		}
		return nil, errors.New("alarms repository error: " + err.Error())
	}
	if alarm.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return alarm, nil
}
