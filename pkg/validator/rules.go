package validator

// Messages maps a validation tag to the message shown for it.
type Messages map[string]string

// Ruleset maps a field's wire name to its messages.
type Ruleset map[string]Messages

const (
	msgRequired = "Campo requerido"
	msgInvalid  = "Valor inválido"
	msgEmail    = "Por favor ingresa un correo electrónico válido"
	msgTooLong  = "El texto es demasiado largo"
)

// Message resolves the text for field and tag, falling back to generic ones.
func (r Ruleset) Message(field, tag string) string {
	if msgs, ok := r[field]; ok {
		if msg, ok := msgs[tag]; ok {
			return msg
		}
	}
	switch tag {
	case "required":
		return msgRequired
	case "simple_email":
		return msgEmail
	case "max":
		return msgTooLong
	}
	return msgInvalid
}

// PatientDetailsRules covers the first step of the booking flow.
var PatientDetailsRules = Ruleset{
	"nombrePaciente":    {"required": msgRequired},
	"apellidosPaciente": {"required": msgRequired},
	"fechaNacimiento":   {"past_date": "La fecha de nacimiento debe ser anterior a hoy"},
	"nombreTutor":       {"required": msgRequired},
	"telefonoTutor": {
		"required": msgRequired,
		"phone8":   "El teléfono debe tener 8 dígitos numéricos",
	},
	"emailConfirmacion": {
		"required":     msgRequired,
		"simple_email": msgEmail,
	},
}

// PatientRules covers the admin patient form.
var PatientRules = Ruleset{
	"nombre":          {"required": msgRequired},
	"apellidos":       {"required": msgRequired},
	"email":           {"simple_email": msgEmail},
	"fechaNacimiento": {"past_date": "La fecha de nacimiento debe ser anterior a hoy"},
}

// VisitDetailsRules covers the last step of the booking flow.
var VisitDetailsRules = Ruleset{
	"motivo":        {"required": "Por favor describe el motivo de la consulta", "max": "Máximo 500 caracteres"},
	"observaciones": {"max": "Máximo 1000 caracteres"},
}

// SlotSelectionRules covers the slot step.
var SlotSelectionRules = Ruleset{
	"date": {"required": "Por favor selecciona una fecha"},
	"time": {"required": "Por favor selecciona un horario"},
}

var MaterialUploadRules = Ruleset{
	"titulo":    {"required": "El título es requerido"},
	"categoria": {"required": msgRequired, "material_category": "Categoría inválida"},
	"file":      {"required": "Selecciona un archivo"},
}

var ScheduleRules = Ruleset{
	"diaSemana":  {"weekday": "Día de la semana inválido"},
	"horaInicio": {"clock": "Formato de hora inválido (HH:MM)"},
	"horaFin":    {"clock": "Formato de hora inválido (HH:MM)"},
}

var ContactRules = Ruleset{
	"nombre":  {"required": msgRequired},
	"email":   {"required": msgRequired, "simple_email": msgEmail},
	"mensaje": {"required": msgRequired, "max": "Máximo 2000 caracteres"},
}
