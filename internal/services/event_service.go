package services

import (
	"context"
	"errors"
	"strings"

	"github.com/joshua-takyi/grooviti/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	eventRepo models.EventRepo
}

func NewEventService(eventRepo models.EventRepo) *EventService {
	return &EventService{eventRepo: eventRepo}
}

func (es *EventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return es.eventRepo.ListEvents(ctx)
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEventNotFound
	}
	event, err := es.eventRepo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (es *EventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := models.Validate.Struct(event); err != nil {
		return nil, err
	}
	return es.eventRepo.CreateEvent(ctx, event)
}

// Seed creates every event in events, stopping at the first failure.
func (es *EventService) Seed(ctx context.Context, events []models.Event) error {
	for i := range events {
		if _, err := es.CreateEvent(ctx, &events[i]); err != nil {
			return err
		}
	}
	return nil
}
