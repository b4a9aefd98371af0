package site

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/email"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

// MaterialSource is the slice of the REST client the public site reads.
type MaterialSource interface {
	ListPublicMaterials(ctx context.Context) ([]*model.Material, error)
	GetMaterial(ctx context.Context, id int64) (*model.Material, error)
	DownloadURL(id int64) string
}

type Service struct {
	materials MaterialSource
	mailer    email.Service
	validator *validator.Validator
	inbox     string
}

// NewService builds the public site service. Contact messages go to inbox.
func NewService(materials MaterialSource, mailer email.Service, v *validator.Validator, inbox string) *Service {
	return &Service{
		materials: materials,
		mailer:    mailer,
		validator: v,
		inbox:     inbox,
	}
}

func (s *Service) Therapies() []model.Therapy {
	out := make([]model.Therapy, len(therapies))
	copy(out, therapies)
	return out
}

func (s *Service) Therapy(id string) (*model.Therapy, error) {
	for _, t := range therapies {
		if t.ID == id {
			cp := t
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("therapy", nil)
}

// PublicMaterials lists public materials, optionally narrowed to one
// category. An empty category or TODOS means all.
func (s *Service) PublicMaterials(ctx context.Context, category string) ([]*model.Material, error) {
	cat := model.MaterialCategory(strings.ToUpper(strings.TrimSpace(category)))
	if cat != "" && cat != model.MaterialCategoryAll && !cat.Valid() {
		return nil, apperrors.Validation("invalid input", map[string]string{"category": "Categoría inválida"})
	}

	all, err := s.materials.ListPublicMaterials(ctx)
	if err != nil {
		return nil, apiclient.AsAppError(err, "materials")
	}

	out := make([]*model.Material, 0, len(all))
	for _, m := range all {
		if m == nil || !m.Public {
			continue
		}
		if cat != "" && cat != model.MaterialCategoryAll && m.Category != cat {
			continue
		}
		m.DownloadURL = s.materials.DownloadURL(m.ID)
		out = append(out, m)
	}
	return out, nil
}

// DownloadURL resolves the backend link for a public material. Private
// materials are reported as missing.
func (s *Service) DownloadURL(ctx context.Context, id int64) (string, error) {
	m, err := s.materials.GetMaterial(ctx, id)
	if err != nil {
		return "", apiclient.AsAppError(err, "material")
	}
	if !m.Public {
		return "", apperrors.NotFound("material", nil)
	}
	return s.materials.DownloadURL(id), nil
}

// Contact validates the form and mails it to the clinic inbox.
func (s *Service) Contact(ctx context.Context, msg model.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if err := s.validator.Validate(msg, validator.ContactRules).Err(); err != nil {
		return err
	}

	err := s.mailer.Send(ctx, email.Message{
		To:      s.inbox,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("Nuevo mensaje de contacto de %s", msg.Name),
		Body:    fmt.Sprintf("Nombre: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to deliver contact message")
		return apperrors.Upstream(err)
	}
	return nil
}
