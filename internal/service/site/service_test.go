package site

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/therapy-portal/internal/apiclient"
	"github.com/jwalitptl/therapy-portal/internal/email"
	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/jwalitptl/therapy-portal/pkg/validator"
)

type fakeMaterials struct {
	items []*model.Material
	err   error
}

func (f *fakeMaterials) ListPublicMaterials(context.Context) ([]*model.Material, error) {
	return f.items, f.err
}

func (f *fakeMaterials) GetMaterial(_ context.Context, id int64) (*model.Material, error) {
	for _, m := range f.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, &apiclient.APIError{StatusCode: 404}
}

func (f *fakeMaterials) DownloadURL(id int64) string {
	return fmt.Sprintf("http://backend/materiales/descargar/%d", id)
}

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func newMaterials() *fakeMaterials {
	return &fakeMaterials{items: []*model.Material{
		{ID: 1, Title: "Fonemas", Category: model.MaterialCategoryExercises, Public: true},
		{ID: 2, Title: "Guía padres", Category: model.MaterialCategoryGuides, Public: true},
		{ID: 3, Title: "Interno", Category: model.MaterialCategoryGuides, Public: false},
	}}
}

func TestTherapies(t *testing.T) {
	svc := NewService(newMaterials(), &fakeMailer{}, validator.New(), "clinic@example.com")

	list := svc.Therapies()
	require.NotEmpty(t, list)
	list[0].Title = "mutated"

	th, err := svc.Therapy("logopedia")
	require.NoError(t, err)
	assert.Equal(t, "Logopedia Infantil", th.Title)

	_, err = svc.Therapy("magia")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestPublicMaterials_Filter(t *testing.T) {
	svc := NewService(newMaterials(), &fakeMailer{}, validator.New(), "clinic@example.com")
	ctx := context.Background()

	all, err := svc.PublicMaterials(ctx, "TODOS")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "http://backend/materiales/descargar/1", all[0].DownloadURL)

	guides, err := svc.PublicMaterials(ctx, "guias")
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, int64(2), guides[0].ID)

	_, err = svc.PublicMaterials(ctx, "VIDEOS")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestPublicMaterials_UpstreamFailure(t *testing.T) {
	svc := NewService(&fakeMaterials{err: errors.New("down")}, &fakeMailer{}, validator.New(), "")

	_, err := svc.PublicMaterials(context.Background(), "")
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestDownloadURL_HidesPrivate(t *testing.T) {
	svc := NewService(newMaterials(), &fakeMailer{}, validator.New(), "")
	ctx := context.Background()

	url, err := svc.DownloadURL(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "http://backend/materiales/descargar/1", url)

	_, err = svc.DownloadURL(ctx, 3)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = svc.DownloadURL(ctx, 99)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestContact(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(newMaterials(), mailer, validator.New(), "clinic@example.com")
	ctx := context.Background()

	err := svc.Contact(ctx, model.ContactMessage{Name: "Ana", Email: "ana@", Message: "Hola"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Empty(t, mailer.sent)

	require.NoError(t, svc.Contact(ctx, model.ContactMessage{Name: " Ana ", Email: "ana@example.com", Message: "Quisiera información"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "clinic@example.com", mailer.sent[0].To)
	assert.Equal(t, "ana@example.com", mailer.sent[0].ReplyTo)
	assert.Contains(t, mailer.sent[0].Subject, "Ana")

	mailer.err = errors.New("smtp down")
	err = svc.Contact(ctx, model.ContactMessage{Name: "Ana", Email: "ana@example.com", Message: "otra vez"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}
