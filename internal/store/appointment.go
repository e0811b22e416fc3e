package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

const apptCols = `a.id, a.user_id, a.service_id,
	to_char(a.appointment_date, 'YYYY-MM-DD'),
	to_char(a.appointment_time, 'HH24:MI'),
	a.status, a.notes, a.cancellation_reason, a.created_at, a.updated_at`

func apptDest(a *model.Appointment) []any {
	return []any{
		&a.ID, &a.UserID, &a.ServiceID,
		&a.AppointmentDate, &a.AppointmentTime,
		&a.Status, &a.Notes, &a.CancellationReason,
		&a.CreatedAt, &a.UpdatedAt,
	}
}

// SlotTaken reports whether any non-cancelled appointment occupies the exact
// (date, time) slot, globally. excludeID skips one row so an update does not
// collide with itself.
func (s *Store) SlotTaken(ctx context.Context, date, tm, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments a
		WHERE a.appointment_date = $1
		  AND a.appointment_time = $2
		  AND a.status <> 'cancelled'`

	args := []any{date, tm}

	if excludeID != "" {
		q += ` AND a.id <> $3`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

// CreateAppointment inserts the row. A concurrent booking of the same slot
// surfaces as a unique violation from the partial index; callers map that to
// the same conflict response as the pre-check.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, service_id, appointment_date, appointment_time, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'pending')`,
		a.ID, a.UserID, a.ServiceID, a.AppointmentDate, a.AppointmentTime, a.Notes,
	)
	return err
}

// GetDetail loads one appointment with service and client fields joined.
func (s *Store) GetDetail(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	dest := append(apptDest(a),
		&a.ServiceName, &a.Description, &a.DurationMinutes,
		&a.ClientName, &a.ClientEmail, &a.ClientPhone)
	err := s.pool.QueryRow(ctx,
		`SELECT `+apptCols+`, s.service_name, s.description, s.duration_minutes,
		        u.full_name, u.email, u.phone
		 FROM appointments a
		 JOIN services s ON a.service_id = s.id
		 JOIN users u ON a.user_id = u.id
		 WHERE a.id = $1`, id,
	).Scan(dest...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) ListByUser(ctx context.Context, userID, status string) ([]model.Appointment, error) {
	q := NewQuery(`SELECT `+apptCols+`, s.service_name, s.description, s.duration_minutes
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE a.user_id = $1`, userID).
		Eq("a.status", status).
		Suffix(`ORDER BY a.appointment_date DESC, a.appointment_time DESC`)

	rows, err := s.pool.Query(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		dest := append(apptDest(&a), &a.ServiceName, &a.Description, &a.DurationMinutes)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetOwned returns the appointment only when userID owns it.
func (s *Store) GetOwned(ctx context.Context, id, userID string) (*model.Appointment, error) {
	a := &model.Appointment{}
	dest := append(apptDest(a), &a.ServiceName, &a.Description, &a.DurationMinutes)
	err := s.pool.QueryRow(ctx,
		`SELECT `+apptCols+`, s.service_name, s.description, s.duration_minutes
		 FROM appointments a
		 JOIN services s ON a.service_id = s.id
		 WHERE a.id = $1 AND a.user_id = $2`, id, userID,
	).Scan(dest...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateOwned applies a partial owner edit; nil fields keep current values.
// Moving onto an occupied slot trips the partial unique index.
func (s *Store) UpdateOwned(ctx context.Context, id, userID string, date, tm, notes *string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments a
		 SET appointment_date = COALESCE($1::date, appointment_date),
		     appointment_time = COALESCE($2::time, appointment_time),
		     notes = COALESCE($3, notes),
		     updated_at = NOW()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+apptCols,
		date, tm, notes, id, userID,
	).Scan(apptDest(a)...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CancelOwned soft-cancels; the row stays for history and the slot frees up.
func (s *Store) CancelOwned(ctx context.Context, id, userID, reason string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments a
		 SET status = 'cancelled', cancellation_reason = $1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3
		 RETURNING `+apptCols,
		reason, id, userID,
	).Scan(apptDest(a)...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AppointmentFilter is the open filter set for the admin list endpoints.
type AppointmentFilter struct {
	Status    string
	Date      string
	ServiceID string
	Search    string
}

// AdminList returns all appointments matching the filters, newest first.
func (s *Store) AdminList(ctx context.Context, f AppointmentFilter) ([]model.Appointment, error) {
	q := NewQuery(`SELECT ` + apptCols + `, s.service_name, s.duration_minutes,
			u.full_name, u.email, u.phone
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		JOIN users u ON a.user_id = u.id
		WHERE 1=1`).
		Eq("a.status", f.Status).
		Eq("a.appointment_date", f.Date).
		Eq("a.service_id", f.ServiceID).
		Search(f.Search, "u.full_name", "u.email").
		Suffix(`ORDER BY a.appointment_date DESC, a.appointment_time DESC`)

	return s.queryAdminAppts(ctx, q)
}

// AdminUpcoming is the schedule view: status/date filters only, oldest first.
func (s *Store) AdminUpcoming(ctx context.Context, status, date string) ([]model.Appointment, error) {
	q := NewQuery(`SELECT ` + apptCols + `, s.service_name, s.duration_minutes,
			u.full_name, u.email, u.phone
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		JOIN users u ON a.user_id = u.id
		WHERE 1=1`).
		Eq("a.status", status).
		Eq("a.appointment_date", date).
		Suffix(`ORDER BY a.appointment_date ASC, a.appointment_time ASC`)

	return s.queryAdminAppts(ctx, q)
}

func (s *Store) queryAdminAppts(ctx context.Context, q *Query) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		dest := append(apptDest(&a), &a.ServiceName, &a.DurationMinutes,
			&a.ClientName, &a.ClientEmail, &a.ClientPhone)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus is the admin transition: any status to any status.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HistoryForUser lists every appointment a user ever had, for the admin
// client detail view.
func (s *Store) HistoryForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+apptCols+`, s.service_name
		 FROM appointments a
		 JOIN services s ON a.service_id = s.id
		 WHERE a.user_id = $1
		 ORDER BY a.appointment_date DESC, a.appointment_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		dest := append(apptDest(&a), &a.ServiceName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
