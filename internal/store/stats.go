package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

// Stats assembles the admin dashboard aggregates.
func (s *Store) Stats(ctx context.Context) (*model.Stats, error) {
	st := &model.Stats{
		PopularServices:    []model.ServiceBookings{},
		RecentAppointments: []model.Appointment{},
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'client'`,
	).Scan(&st.TotalClients); err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'pending'),
		        COUNT(*) FILTER (WHERE status = 'confirmed'),
		        COUNT(*) FILTER (WHERE status = 'completed'),
		        COUNT(*) FILTER (WHERE status = 'cancelled')
		 FROM appointments`,
	).Scan(&st.TotalAppointments, &st.PendingAppointments, &st.ConfirmedAppointments,
		&st.CompletedAppointments, &st.CancelledAppointments); err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE appointment_date = CURRENT_DATE AND status <> 'cancelled'`,
	).Scan(&st.TodayAppointments); err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments
		 WHERE appointment_date BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '7 days'
		   AND status NOT IN ('cancelled', 'completed')`,
	).Scan(&st.UpcomingAppointments); err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT s.service_name, COUNT(a.id)
		 FROM services s
		 LEFT JOIN appointments a ON s.id = a.service_id
		 GROUP BY s.id, s.service_name
		 ORDER BY COUNT(a.id) DESC
		 LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p model.ServiceBookings
		if err := rows.Scan(&p.ServiceName, &p.BookingCount); err != nil {
			return nil, err
		}
		st.PopularServices = append(st.PopularServices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := s.recentAppointments(ctx)
	if err != nil {
		return nil, err
	}
	st.RecentAppointments = recent

	return st, nil
}

func (s *Store) recentAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+apptCols+`, s.service_name, u.full_name, u.email, u.phone
		 FROM appointments a
		 JOIN services s ON a.service_id = s.id
		 JOIN users u ON a.user_id = u.id
		 ORDER BY a.created_at DESC
		 LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		dest := append(apptDest(&a), &a.ServiceName, &a.ClientName, &a.ClientEmail, &a.ClientPhone)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
