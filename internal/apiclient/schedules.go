package apiclient

import (
	"context"
	"net/http"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

const schedulesPath = "/horarios"

func (c *Client) ListSchedules(ctx context.Context) ([]*model.Schedule, error) {
	return c.listSchedules(ctx, schedulesPath)
}

func (c *Client) ListAvailableSchedules(ctx context.Context) ([]*model.Schedule, error) {
	return c.listSchedules(ctx, schedulesPath+"/disponibles")
}

// ListSchedulesByWeekday takes the backend's day name, e.g. "MONDAY".
func (c *Client) ListSchedulesByWeekday(ctx context.Context, day string) ([]*model.Schedule, error) {
	return c.listSchedules(ctx, schedulesPath+"/dia/"+day)
}

func (c *Client) listSchedules(ctx context.Context, path string) ([]*model.Schedule, error) {
	var out []*model.Schedule
	if err := c.getJSON(ctx, "schedules", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSchedule(ctx context.Context, s *model.Schedule) (*model.Schedule, error) {
	var out model.Schedule
	if err := c.doJSON(ctx, "schedules", http.MethodPost, schedulesPath, nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, id int64, s *model.Schedule) (*model.Schedule, error) {
	var out model.Schedule
	if err := c.doJSON(ctx, "schedules", http.MethodPut, idPath(schedulesPath, id), nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "schedules", http.MethodDelete, idPath(schedulesPath, id), nil, nil, nil)
}
