package model

import "time"

// BookingStep is the position of a draft in the public booking flow.
type BookingStep int

const (
	BookingStepPatient BookingStep = iota + 1
	BookingStepSlot
	BookingStepDetails
	BookingStepSubmitted
)

func (s BookingStep) String() string {
	switch s {
	case BookingStepPatient:
		return "patient"
	case BookingStepSlot:
		return "slot"
	case BookingStepDetails:
		return "details"
	case BookingStepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// BookingDraft holds everything entered so far. PatientID is set as soon as
// the backend accepts the patient, so a retried submit reuses it.
type BookingDraft struct {
	ID            string         `json:"id"`
	Step          BookingStep    `json:"step"`
	Patient       PatientDetails `json:"patient"`
	Date          string         `json:"date,omitempty"`
	Time          string         `json:"time,omitempty"`
	Visit         VisitDetails   `json:"visit"`
	PatientID     int64          `json:"patient_id,omitempty"`
	AppointmentID int64          `json:"appointment_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// SlotSelection is the body of the second booking step.
type SlotSelection struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type LedgerOutcome string

const (
	LedgerOutcomeCompleted       LedgerOutcome = "completed"
	LedgerOutcomeOrphanedPatient LedgerOutcome = "orphaned_patient"
)

// LedgerEntry records the result of one booking submission.
type LedgerEntry struct {
	ID            string        `db:"id" json:"id"`
	DraftID       string        `db:"draft_id" json:"draft_id"`
	PatientID     int64         `db:"patient_id" json:"patient_id"`
	AppointmentID *int64        `db:"appointment_id" json:"appointment_id,omitempty"`
	Outcome       LedgerOutcome `db:"outcome" json:"outcome"`
	Error         *string       `db:"error" json:"error,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// LedgerFilter narrows ledger listings. Zero values mean no constraint.
type LedgerFilter struct {
	Outcome LedgerOutcome
	DraftID string
	Since   time.Time
	Limit   int
}
