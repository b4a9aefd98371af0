package model

// Patient mirrors the backend's paciente resource.
type Patient struct {
	ID            int64  `json:"id,omitempty"`
	FirstName     string `json:"nombre" validate:"required,max=100"`
	LastNames     string `json:"apellidos" validate:"required,max=150"`
	BirthDate     string `json:"fechaNacimiento,omitempty" validate:"omitempty,past_date"`
	Email         string `json:"email,omitempty" validate:"omitempty,simple_email"`
	Phone         string `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Diagnosis     string `json:"diagnostico,omitempty"`
	GuardianName  string `json:"nombreTutor,omitempty"`
	GuardianPhone string `json:"telefonoTutor,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// PatientDetails is the first step of the public booking flow.
type PatientDetails struct {
	FirstName         string `json:"nombrePaciente" validate:"required"`
	LastNames         string `json:"apellidosPaciente" validate:"required"`
	BirthDate         string `json:"fechaNacimiento,omitempty" validate:"omitempty,past_date"`
	GuardianName      string `json:"nombreTutor" validate:"required"`
	GuardianPhone     string `json:"telefonoTutor" validate:"required,phone8"`
	ConfirmationEmail string `json:"emailConfirmacion" validate:"required,simple_email"`
}

// ToPatient builds the record the backend stores for a booking.
func (d PatientDetails) ToPatient() *Patient {
	return &Patient{
		FirstName:     d.FirstName,
		LastNames:     d.LastNames,
		BirthDate:     d.BirthDate,
		GuardianName:  d.GuardianName,
		GuardianPhone: d.GuardianPhone,
		Email:         d.ConfirmationEmail,
	}
}
