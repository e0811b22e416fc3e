package store

import (
	"context"

	"github.com/google/uuid"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateInquiry(ctx context.Context, name, email, message string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO inquiries (id, name, email, message) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), name, email, message,
	)
	return err
}

func (s *Store) ListInquiries(ctx context.Context, status string) ([]model.Inquiry, error) {
	q := NewQuery(`SELECT id, name, email, message, status, created_at
		FROM inquiries WHERE 1=1`).
		Eq("status", status).
		Suffix(`ORDER BY created_at DESC`)

	rows, err := s.pool.Query(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Inquiry
	for rows.Next() {
		var in model.Inquiry
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Message, &in.Status, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) UpdateInquiryStatus(ctx context.Context, id, status string) (*model.Inquiry, error) {
	in := &model.Inquiry{}
	err := s.pool.QueryRow(ctx,
		`UPDATE inquiries SET status = $1 WHERE id = $2
		 RETURNING id, name, email, message, status, created_at`,
		status, id,
	).Scan(&in.ID, &in.Name, &in.Email, &in.Message, &in.Status, &in.CreatedAt)
	if err != nil {
		return nil, err
	}
	return in, nil
}
