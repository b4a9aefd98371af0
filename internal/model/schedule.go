package model

import "strings"

// Weekday names as the backend spells them.
var Weekdays = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// NormalizeWeekday upper-cases name and reports whether it is a known day.
func NormalizeWeekday(name string) (string, bool) {
	day := strings.ToUpper(strings.TrimSpace(name))
	for _, known := range Weekdays {
		if day == known {
			return day, true
		}
	}
	return "", false
}

// Schedule mirrors the backend's horario resource.
type Schedule struct {
	ID             int64      `json:"id,omitempty"`
	Therapist      *Therapist `json:"terapeuta,omitempty"`
	Weekday        string     `json:"diaSemana" validate:"required,weekday"`
	StartTime      string     `json:"horaInicio" validate:"required,clock"`
	EndTime        string     `json:"horaFin" validate:"required,clock"`
	Available      bool       `json:"disponible"`
	SessionMinutes int        `json:"duracionSesion,omitempty" validate:"omitempty,min=15,max=240"`
}
