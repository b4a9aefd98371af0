package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
	apperrors "github.com/jwalitptl/therapy-portal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() model.PatientDetails {
	return model.PatientDetails{
		FirstName:         "Ana",
		LastNames:         "Pérez López",
		GuardianName:      "María López",
		GuardianPhone:     "55512345",
		ConfirmationEmail: "maria@example.com",
	}
}

func TestValidate_PatientDetailsValid(t *testing.T) {
	v := New()
	errs := v.Validate(validDetails(), PatientDetailsRules)

	assert.Empty(t, errs)
	assert.NoError(t, errs.Err())
}

func TestValidate_PatientDetailsEachRequiredField(t *testing.T) {
	v := New()

	cases := map[string]func(*model.PatientDetails){
		"nombrePaciente":    func(d *model.PatientDetails) { d.FirstName = "" },
		"apellidosPaciente": func(d *model.PatientDetails) { d.LastNames = "" },
		"nombreTutor":       func(d *model.PatientDetails) { d.GuardianName = "" },
		"telefonoTutor":     func(d *model.PatientDetails) { d.GuardianPhone = "" },
		"emailConfirmacion": func(d *model.PatientDetails) { d.ConfirmationEmail = "" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			d := validDetails()
			mutate(&d)

			errs := v.Validate(d, PatientDetailsRules)
			require.Len(t, errs, 1)
			assert.Equal(t, "Campo requerido", errs[field])
		})
	}
}

func TestValidate_PhoneMustHaveEightDigits(t *testing.T) {
	v := New()
	for _, phone := range []string{"5551234", "555123456", "5551234a"} {
		d := validDetails()
		d.GuardianPhone = phone

		errs := v.Validate(d, PatientDetailsRules)
		assert.Equal(t, "El teléfono debe tener 8 dígitos numéricos", errs["telefonoTutor"], phone)
	}
}

func TestValidate_Email(t *testing.T) {
	v := New()
	for _, email := range []string{"maria", "maria@example", "maria @x.com", "@example.com"} {
		d := validDetails()
		d.ConfirmationEmail = email

		errs := v.Validate(d, PatientDetailsRules)
		assert.Equal(t, "Por favor ingresa un correo electrónico válido", errs["emailConfirmacion"], email)
	}
}

func TestValidate_BirthDateMustBeInThePast(t *testing.T) {
	v := New()
	v.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local) }

	d := validDetails()
	d.BirthDate = "2025-03-10"
	assert.Contains(t, v.Validate(d, PatientDetailsRules), "fechaNacimiento")

	d.BirthDate = "2019-06-01"
	assert.Empty(t, v.Validate(d, PatientDetailsRules))

	d.BirthDate = "01/06/2019"
	assert.Contains(t, v.Validate(d, PatientDetailsRules), "fechaNacimiento")
}

func TestValidate_VisitDetails(t *testing.T) {
	v := New()

	errs := v.Validate(model.VisitDetails{}, VisitDetailsRules)
	assert.Equal(t, "Por favor describe el motivo de la consulta", errs["motivo"])

	errs = v.Validate(model.VisitDetails{Reason: strings.Repeat("x", 501)}, VisitDetailsRules)
	assert.Equal(t, "Máximo 500 caracteres", errs["motivo"])

	assert.Empty(t, v.Validate(model.VisitDetails{Reason: "Evaluación de lenguaje"}, VisitDetailsRules))
}

func TestValidate_PatientOptionalEmail(t *testing.T) {
	v := New()

	p := model.Patient{FirstName: "Luis", LastNames: "Gómez"}
	assert.Empty(t, v.Validate(p, PatientRules))

	p.Email = "not-an-email"
	assert.Contains(t, v.Validate(p, PatientRules), "email")
}

func TestValidate_MaterialUpload(t *testing.T) {
	v := New()

	errs := v.Validate(model.MaterialUpload{Category: "VIDEOS"}, MaterialUploadRules)
	assert.Equal(t, "El título es requerido", errs["titulo"])
	assert.Equal(t, "Categoría inválida", errs["categoria"])
	assert.Equal(t, "Selecciona un archivo", errs["file"])
}

func TestFieldErrors_Err(t *testing.T) {
	err := FieldErrors{"motivo": "Campo requerido"}.Err()

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "Campo requerido", appErr.Fields["motivo"])
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "55512345", NormalizePhone("555-123-45"))
	assert.Equal(t, "55512345", NormalizePhone("(555) 123 456 78"))
	assert.Equal(t, "", NormalizePhone("abc"))
}
