package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
	"github.com/MatheusOtenio/Pink-Note/internal/repository"
)

type IEventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error)
	Show(ctx context.Context, id entity.EventId) (*dto.ShowEventResponse, error)
	Update(ctx context.Context, req *dto.UpdateEventRequest) (*dto.UpdateEventResponse, error)
	Delete(ctx context.Context, idParam entity.EventId) error
	ListOnDate(ctx context.Context, date entity.DateKey) ([]*dto.ShowEventResponse, error)
	ListBetween(ctx context.Context, start, end entity.DateKey) ([]*dto.ShowEventResponse, error)
	DatesWithEvents(ctx context.Context, start, end entity.DateKey) ([]entity.DateKey, error)
}

type eventService struct {
	eventRepository  repository.IEventRepository
	publisherService IPublisherService
	log              zerolog.Logger
}

func NewEventService(
	eventRepository repository.IEventRepository,
	publisherService IPublisherService,
	log zerolog.Logger,
) IEventService {
	return &eventService{
		eventRepository:  eventRepository,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error) {
	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("event title must not be blank: %w", apperrors.ErrValidation)
	}

	event := entity.Event{
		Id:          entity.NewEventId(),
		Date:        req.Date,
		Title:       title,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	err = s.eventRepository.Create(ctx, &event)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, s.log, s.publisherService, dto.ChangeEntityEvent, dto.ChangeActionCreated, event.Id.String())

	return &dto.CreateEventResponse{
		Id: event.Id,
	}, nil
}

func (s *eventService) Show(ctx context.Context, idParam entity.EventId) (*dto.ShowEventResponse, error) {
	event, err := s.eventRepository.GetById(ctx, idParam)
	if err != nil {
		return nil, err
	}

	return showEventResponse(event), nil
}

func (s *eventService) Update(ctx context.Context, req *dto.UpdateEventRequest) (*dto.UpdateEventResponse, error) {
	err := apperrors.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("event title must not be blank: %w", apperrors.ErrValidation)
	}

	event, err := s.eventRepository.GetById(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	event.Date = req.Date
	event.Title = title
	event.Description = req.Description
	event.UpdatedAt = &now

	err = s.eventRepository.Update(ctx, event)
	if err != nil {
		return nil, err
	}

	publishChange(ctx, s.log, s.publisherService, dto.ChangeEntityEvent, dto.ChangeActionUpdated, event.Id.String())

	return &dto.UpdateEventResponse{
		Id: event.Id,
	}, nil
}

// Delete removes the event. The per-date view is derived from the events
// table itself, so the removal and the date index stay consistent in one
// storage write.
func (s *eventService) Delete(ctx context.Context, idParam entity.EventId) error {
	event, err := s.eventRepository.GetById(ctx, idParam)
	if err != nil {
		return err
	}

	err = s.eventRepository.DeleteById(ctx, event.Id)
	if err != nil {
		return err
	}

	publishChange(ctx, s.log, s.publisherService, dto.ChangeEntityEvent, dto.ChangeActionDeleted, event.Id.String())

	return nil
}

func (s *eventService) ListOnDate(ctx context.Context, date entity.DateKey) ([]*dto.ShowEventResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date must be set: %w", apperrors.ErrValidation)
	}

	events, err := s.eventRepository.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	return showEventResponses(events), nil
}

func (s *eventService) ListBetween(ctx context.Context, start, end entity.DateKey) ([]*dto.ShowEventResponse, error) {
	dates, err := entity.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepository.GetBetween(ctx, dates)
	if err != nil {
		return nil, err
	}

	return showEventResponses(events), nil
}

func (s *eventService) DatesWithEvents(ctx context.Context, start, end entity.DateKey) ([]entity.DateKey, error) {
	dates, err := entity.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	return s.eventRepository.GetDatesBetween(ctx, dates)
}

func showEventResponse(event *entity.Event) *dto.ShowEventResponse {
	return &dto.ShowEventResponse{
		Id:          event.Id,
		Date:        event.Date,
		Title:       event.Title,
		Description: event.Description,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func showEventResponses(events []*entity.Event) []*dto.ShowEventResponse {
	result := make([]*dto.ShowEventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, showEventResponse(event))
	}
	return result
}
