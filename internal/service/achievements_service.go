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
)

// The streak catalog. Thresholds match on exact equality: a streak passes
// each value exactly once on the way up, so "==" is enough and a reset
// streak can earn the tier again on the next run.
var catalog = []entity.Achievement{
	{ID: "one_week", Title: "One Week", Threshold: 7, Tier: "bronze", Reward: 100},
	{ID: "two_weeks", Title: "Two Weeks", Threshold: 14, Tier: "bronze", Reward: 150},
	{ID: "one_month", Title: "One Month", Threshold: 30, Tier: "silver", Reward: 300},
	{ID: "two_months", Title: "Two Months", Threshold: 60, Tier: "silver", Reward: 450},
	{ID: "quarter", Title: "Quarter", Threshold: 90, Tier: "gold", Reward: 700},
	{ID: "half_year", Title: "Half a Year", Threshold: 180, Tier: "gold", Reward: 1000},
	{ID: "one_year", Title: "One Year", Threshold: 365, Tier: "platinum", Reward: 2000},
}

const levelStep = 1000

type AchievementsService struct {
	repo       repository.AchievementsRepositoryI
	eventsRepo repository.EventsRepositoryI
	notifier   NotifierI
}

func NewAchievementsService(achievementsRepo repository.AchievementsRepositoryI, eventsRepo repository.EventsRepositoryI, notifier NotifierI) *AchievementsService {
	if achievementsRepo == nil || eventsRepo == nil || notifier == nil {
		log.Fatal("on achievements service provided nil dependencies")
	}
	return &AchievementsService{
		repo:       achievementsRepo,
		eventsRepo: eventsRepo,
		notifier:   notifier,
	}
}

func (as *AchievementsService) Catalog() []entity.Achievement {
	result := make([]entity.Achievement, len(catalog))
	copy(result, catalog)
	return result
}

// CheckThresholds unlocks every catalog entry whose threshold equals
// newStreak. The unique unlock insert carries the exactly-once guarantee:
// repeated calls with the same value create nothing new and return empty.
func (as *AchievementsService) CheckThresholds(ctx context.Context, userID, habitID uuid.UUID, newStreak int, now time.Time) ([]entity.Achievement, error) {
	unlocked := make([]entity.Achievement, 0)
	for _, ach := range catalog {
		if ach.Threshold != newStreak {
			continue
		}
		unlockID, created, err := as.repo.InsertUnlock(ctx, userID, habitID, ach.ID, now)
		if err != nil {
			return nil, errors.New("achievements repository error: " + err.Error())
		}
		if !created {
			continue
		}
		metrics.AchievementsUnlocked.Inc()
		payload, err := sonic.Marshal(map[string]any{"achievement": ach.ID, "streak": newStreak})
		if err != nil {
			return nil, errors.New("marshalling unlock payload error: " + err.Error())
		}
		err = as.eventsRepo.Append(ctx, &entity.Event{
			UserID:   userID,
			EntityID: habitID,
			Type:     entity.EventAchievementUnlock,
			Payload:  payload,
		})
		if err != nil {
			return nil, errors.New("events repository error: " + err.Error())
		}
		if err = as.repo.AddCelebration(ctx, userID, unlockID); err != nil {
			return nil, errors.New("achievements repository error: " + err.Error())
		}
		// Fire-and-forget: a dropped notification never unwinds the unlock
		if err = as.notifier.Send(ctx, userID, "Achievement unlocked: "+ach.Title, UrgencyNormal); err != nil {
			metrics.NotificationsFailed.Inc()
		}
		unlocked = append(unlocked, ach)
	}
	return unlocked, nil
}

// Progress derives XP, level and rank from unlocks on every read. Nothing
// here is stored.
func (as *AchievementsService) Progress(ctx context.Context, userID uuid.UUID) (*entity.Progress, error) {
	unlocks, err := as.repo.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	xp := 0
	for _, u := range unlocks {
		ach, ok := byID(u.AchievementID)
		if !ok {
			// Catalog entries are never removed, a miss means corrupt data
			return nil, errorvalues.ErrAchievementUnknown
		}
		xp += ach.Reward
	}
	level := xp/levelStep + 1
	return &entity.Progress{
		XP:    xp,
		Level: level,
		Rank:  rankOf(level),
	}, nil
}

func (as *AchievementsService) PendingCelebrations(ctx context.Context, userID uuid.UUID) ([]entity.CelebrationEntry, error) {
	entries, err := as.repo.ListCelebrations(ctx, userID)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	return entries, nil
}

func (as *AchievementsService) AckCelebration(ctx context.Context, userID uuid.UUID, id int64) error {
	err := as.repo.AckCelebration(ctx, userID, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCelebrationNotFound) {
			return err
		}
		return errors.New("achievements repository error: " + err.Error())
	}
	return nil
}

func byID(id string) (entity.Achievement, bool) {
	for _, ach := range catalog {
		if ach.ID == id {
			return ach, true
		}
	}
	return entity.Achievement{}, false
}

func rankOf(level int) string {
	switch {
	case level < 5:
		return "novice"
	case level < 10:
		return "adept"
	case level < 20:
		return "veteran"
	default:
		return "master"
	}
}
