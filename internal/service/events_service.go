package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/limbo/cadence/internal/repository"
	"github.com/limbo/cadence/pkg/entity"
)

const defaultEventsLimit = 100

type EventsService struct {
	repo repository.EventsRepositoryI
}

func NewEventsService(eventsRepo repository.EventsRepositoryI) *EventsService {
	if eventsRepo == nil {
		log.Fatal("on events service provided nil repo")
	}
	return &EventsService{
		repo: eventsRepo,
	}
}

func (es *EventsService) GetUserEvents(ctx context.Context, uid uuid.UUID, q EventsQuery) ([]entity.Event, error) {
	filter := repository.EventsFilter{
		UserID: &uid,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultEventsLimit
	}
	if q.Type != "" {
		typ := entity.EventType(q.Type)
		filter.Type = &typ
	}
	events, err := es.repo.Query(ctx, filter)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return events, nil
}
