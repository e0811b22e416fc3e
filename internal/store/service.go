package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

func (s *Store) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, service_name, description, duration_minutes, is_active
		 FROM services WHERE is_active = true
		 ORDER BY service_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		var sv model.Service
		if err := rows.Scan(&sv.ID, &sv.ServiceName, &sv.Description, &sv.DurationMinutes, &sv.IsActive); err != nil {
			return nil, err
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

func (s *Store) GetService(ctx context.Context, id string) (*model.Service, error) {
	sv := &model.Service{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, service_name, description, duration_minutes, is_active
		 FROM services WHERE id = $1 AND is_active = true`, id,
	).Scan(&sv.ID, &sv.ServiceName, &sv.Description, &sv.DurationMinutes, &sv.IsActive)
	if err != nil {
		return nil, err
	}
	return sv, nil
}
