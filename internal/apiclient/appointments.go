package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

const appointmentsPath = "/citas"

func (c *Client) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	var out []*model.Appointment
	if err := c.getJSON(ctx, "appointments", appointmentsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAppointmentsInRange returns appointments starting within [start, end].
func (c *Client) ListAppointmentsInRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	q := url.Values{}
	q.Set("inicio", start.Format(model.DateTimeLayout))
	q.Set("fin", end.Format(model.DateTimeLayout))

	var out []*model.Appointment
	if err := c.getJSON(ctx, "appointments", appointmentsPath+"/rango", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUpcomingAppointments(ctx context.Context) ([]*model.Appointment, error) {
	var out []*model.Appointment
	if err := c.getJSON(ctx, "appointments", appointmentsPath+"/proximas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	var out model.Appointment
	if err := c.getJSON(ctx, "appointments", idPath(appointmentsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	var out model.Appointment
	if err := c.doJSON(ctx, "appointments", http.MethodPost, appointmentsPath, nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id int64, a *model.Appointment) (*model.Appointment, error) {
	var out model.Appointment
	if err := c.doJSON(ctx, "appointments", http.MethodPut, idPath(appointmentsPath, id), nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "appointments", http.MethodDelete, idPath(appointmentsPath, id), nil, nil, nil)
}
