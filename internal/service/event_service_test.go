package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
)

func TestEventServiceCreateAndListOnDate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	day := entity.NewDateKey(2024, time.March, 10)
	first, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: day, Title: "Exam"})
	require.NoError(t, err)
	second, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: day, Title: "Dinner", Description: "after the exam"})
	require.NoError(t, err)
	_, err = env.events.Create(ctx, &dto.CreateEventRequest{Date: day.AddDays(1), Title: "Recovery"})
	require.NoError(t, err)

	events, err := env.events.ListOnDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, first.Id, events[0].Id, "events on a day keep their creation order")
	assert.Equal(t, second.Id, events[1].Id)
	assert.Equal(t, "after the exam", events[1].Description)

	empty, err := env.events.ListOnDate(ctx, day.AddDays(30))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEventServiceCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.events.Create(ctx, &dto.CreateEventRequest{Title: "No date"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.events.Create(ctx, &dto.CreateEventRequest{Date: entity.NewDateKey(2024, time.March, 10), Title: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.events.ListOnDate(ctx, entity.DateKey{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEventServiceUpdateMovesBetweenDays(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	oldDay := entity.NewDateKey(2024, time.March, 10)
	newDay := entity.NewDateKey(2024, time.April, 2)
	created, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: oldDay, Title: "Exam"})
	require.NoError(t, err)

	_, err = env.events.Update(ctx, &dto.UpdateEventRequest{
		Id:          created.Id,
		Date:        newDay,
		Title:       "Exam (moved)",
		Description: "rescheduled",
	})
	require.NoError(t, err)

	shown, err := env.events.Show(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, newDay, shown.Date)
	assert.Equal(t, "Exam (moved)", shown.Title)
	assert.Equal(t, "rescheduled", shown.Description)
	require.NotNil(t, shown.UpdatedAt)

	onOldDay, err := env.events.ListOnDate(ctx, oldDay)
	require.NoError(t, err)
	assert.Empty(t, onOldDay, "the old day no longer shows the event")

	onNewDay, err := env.events.ListOnDate(ctx, newDay)
	require.NoError(t, err)
	require.Len(t, onNewDay, 1)

	_, err = env.events.Update(ctx, &dto.UpdateEventRequest{Id: created.Id, Date: newDay, Title: " "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = env.events.Update(ctx, &dto.UpdateEventRequest{Id: entity.NewEventId(), Date: newDay, Title: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventServiceDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	day := entity.NewDateKey(2024, time.March, 10)
	created, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: day, Title: "Exam"})
	require.NoError(t, err)

	require.NoError(t, env.events.Delete(ctx, created.Id))

	_, err = env.events.Show(ctx, created.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	events, err := env.events.ListOnDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, events)

	dates, err := env.events.DatesWithEvents(ctx, entity.NewDateKey(2024, time.March, 1), entity.NewDateKey(2024, time.March, 31))
	require.NoError(t, err)
	assert.Empty(t, dates, "a deleted event disappears from the per-date view")

	err = env.events.Delete(ctx, created.Id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEventServiceListBetween(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for _, event := range []struct {
		date  entity.DateKey
		title string
	}{
		{entity.NewDateKey(2024, time.March, 20), "Late"},
		{entity.NewDateKey(2024, time.March, 5), "Early"},
		{entity.NewDateKey(2024, time.February, 28), "Before"},
		{entity.NewDateKey(2024, time.April, 1), "After"},
	} {
		_, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: event.date, Title: event.title})
		require.NoError(t, err)
	}

	events, err := env.events.ListBetween(ctx, entity.NewDateKey(2024, time.March, 1), entity.NewDateKey(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Early", events[0].Title)
	assert.Equal(t, "Late", events[1].Title)

	_, err = env.events.ListBetween(ctx, entity.NewDateKey(2024, time.March, 31), entity.NewDateKey(2024, time.March, 1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEventServiceDatesWithEvents(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	exam := entity.NewDateKey(2024, time.March, 10)
	party := entity.NewDateKey(2024, time.March, 22)
	for _, event := range []struct {
		date  entity.DateKey
		title string
	}{
		{exam, "Exam"},
		{exam, "Dinner"},
		{party, "Party"},
		{entity.NewDateKey(2024, time.April, 1), "Next month"},
	} {
		_, err := env.events.Create(ctx, &dto.CreateEventRequest{Date: event.date, Title: event.title})
		require.NoError(t, err)
	}

	march := entity.MonthRange(2024, time.March)
	dates, err := env.events.DatesWithEvents(ctx, march.Start, march.End)
	require.NoError(t, err)
	assert.Equal(t, []entity.DateKey{exam, party}, dates, "each day appears once however many events it has")

	_, err = env.events.DatesWithEvents(ctx, march.End, march.Start)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
