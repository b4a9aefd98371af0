package model

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDIENTE"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMADA"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETADA"
	AppointmentStatusCancelled AppointmentStatus = "CANCELADA"
	AppointmentStatusNoShow    AppointmentStatus = "NO_ASISTIO"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

func (s AppointmentStatus) Valid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DefaultAppointmentMinutes is the length of every booked session.
const DefaultAppointmentMinutes = 60

// Appointment mirrors the backend's cita resource.
type Appointment struct {
	ID                int64             `json:"id,omitempty"`
	Patient           *Patient          `json:"paciente,omitempty"`
	Therapist         *Therapist        `json:"terapeuta,omitempty"`
	StartsAt          LocalDateTime     `json:"fechaHora"`
	DurationMinutes   int               `json:"duracionMinutos"`
	Status            AppointmentStatus `json:"estado"`
	Reason            string            `json:"motivo,omitempty"`
	Notes             string            `json:"observaciones,omitempty"`
	ConfirmationEmail string            `json:"emailConfirmacion,omitempty"`
	ConfirmationSent  bool              `json:"confirmacionEnviada"`
	CreatedAt         *LocalDateTime    `json:"createdAt,omitempty"`
	UpdatedAt         *LocalDateTime    `json:"updatedAt,omitempty"`
}

// Therapist is the subset of the backend's terapeuta the portal reads.
type Therapist struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre,omitempty"`
	LastNames string `json:"apellidos,omitempty"`
}

// VisitDetails is the last step of the public booking flow.
type VisitDetails struct {
	Reason string `json:"motivo" validate:"required,max=500"`
	Notes  string `json:"observaciones,omitempty" validate:"max=1000"`
}

// StatusChange is the admin request body for a status transition.
type StatusChange struct {
	Status AppointmentStatus `json:"estado"`
}
