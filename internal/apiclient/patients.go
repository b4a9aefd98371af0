package apiclient

import (
	"context"
	"net/http"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

const patientsPath = "/pacientes"

func (c *Client) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	if err := c.getJSON(ctx, "patients", patientsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	var out model.Patient
	if err := c.getJSON(ctx, "patients", idPath(patientsPath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, p *model.Patient) (*model.Patient, error) {
	var out model.Patient
	if err := c.doJSON(ctx, "patients", http.MethodPost, patientsPath, nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, p *model.Patient) (*model.Patient, error) {
	var out model.Patient
	if err := c.doJSON(ctx, "patients", http.MethodPut, idPath(patientsPath, id), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.doJSON(ctx, "patients", http.MethodDelete, idPath(patientsPath, id), nil, nil, nil)
}
