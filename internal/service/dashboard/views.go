package dashboard

import (
	"sort"
	"time"

	"github.com/jwalitptl/therapy-portal/internal/model"
)

// DefaultCap bounds every derived list.
const DefaultCap = 5

// Stats summarises the loaded collections.
type Stats struct {
	TotalAppointments    int                             `json:"total_appointments"`
	AppointmentsByStatus map[model.AppointmentStatus]int `json:"appointments_by_status"`
	UpcomingCount        int                             `json:"upcoming_count"`
	TotalPatients        int                             `json:"total_patients"`
	TotalMaterials       int                             `json:"total_materials"`
	PublicMaterials      int                             `json:"public_materials"`
	PrivateMaterials     int                             `json:"private_materials"`
}

// Upcoming returns appointments starting after now, soonest first.
func Upcoming(apps []*model.Appointment, now time.Time, limit int) []*model.Appointment {
	out := make([]*model.Appointment, 0, len(apps))
	for _, a := range apps {
		if a != nil && a.StartsAt.After(now) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt.Time)
	})
	return capped(out, limit)
}

// RecentPatients returns the newest patients by ID.
func RecentPatients(patients []*model.Patient, limit int) []*model.Patient {
	out := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		if p != nil {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return capped(out, limit)
}

// RecentMaterials returns the newest materials by ID.
func RecentMaterials(materials []*model.Material, limit int) []*model.Material {
	out := make([]*model.Material, 0, len(materials))
	for _, m := range materials {
		if m != nil {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return capped(out, limit)
}

func ComputeStats(apps []*model.Appointment, patients []*model.Patient, materials []*model.Material, now time.Time) Stats {
	st := Stats{
		TotalAppointments:    len(apps),
		AppointmentsByStatus: make(map[model.AppointmentStatus]int, len(model.AppointmentStatuses)),
		TotalPatients:        len(patients),
		TotalMaterials:       len(materials),
	}
	for _, s := range model.AppointmentStatuses {
		st.AppointmentsByStatus[s] = 0
	}
	for _, a := range apps {
		if a == nil {
			continue
		}
		st.AppointmentsByStatus[a.Status]++
		if a.StartsAt.After(now) {
			st.UpcomingCount++
		}
	}
	for _, m := range materials {
		if m == nil {
			continue
		}
		if m.Public {
			st.PublicMaterials++
		} else {
			st.PrivateMaterials++
		}
	}
	return st
}

func capped[T any](s []T, limit int) []T {
	if limit <= 0 {
		limit = DefaultCap
	}
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
