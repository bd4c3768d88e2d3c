package service

import (
	"context"
	"errors"
	"strings"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.HeaterEvent, error) {
	from, to := f.From, f.To
	if !from.IsZero() {
		from = from.UTC()
	}
	if !to.IsZero() {
		to = to.UTC()
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}
	return s.eventRepo.List(ctx, from, to, strings.ToUpper(strings.TrimSpace(f.Type)))
}
