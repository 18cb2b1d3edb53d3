package dto

import (
	"time"

	"github.com/MatheusOtenio/Pink-Note/internal/entity"
)

type CreateEventRequest struct {
	Date        entity.DateKey `json:"date" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
}

type CreateEventResponse struct {
	Id entity.EventId `json:"id"`
}

type UpdateEventRequest struct {
	Id          entity.EventId `json:"id" validate:"required"`
	Date        entity.DateKey `json:"date" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
}

type UpdateEventResponse struct {
	Id entity.EventId `json:"id"`
}

type ShowEventResponse struct {
	Id          entity.EventId `json:"id"`
	Date        entity.DateKey `json:"date"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at"`
}
