package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

const userCols = `id, full_name, email, phone, password_hash,
	COALESCE(to_char(date_of_birth, 'YYYY-MM-DD'), ''),
	gender, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.DateOfBirth, &u.Gender, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	var dob any
	if u.DateOfBirth != "" {
		dob = u.DateOfBirth
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, full_name, email, phone, password_hash, date_of_birth, gender, role)
		 VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)`,
		u.ID, u.FullName, u.Email, u.Phone, u.PasswordHash, dob, u.Gender, u.Role,
	)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

// UpdateProfile applies a partial update: nil fields keep their current value.
func (s *Store) UpdateProfile(ctx context.Context, id string, fullName, phone, dateOfBirth, gender *string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users
		 SET full_name = COALESCE($1, full_name),
		     phone = COALESCE($2, phone),
		     date_of_birth = COALESCE($3::date, date_of_birth),
		     gender = COALESCE($4, gender),
		     updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+userCols,
		fullName, phone, dateOfBirth, gender, id))
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		hash, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListClients returns client users with their appointment counts, optionally
// narrowed by a name/email search.
func (s *Store) ListClients(ctx context.Context, search string) ([]model.Client, error) {
	q := NewQuery(`SELECT u.id, u.full_name, u.email, u.phone,
			COALESCE(to_char(u.date_of_birth, 'YYYY-MM-DD'), ''),
			u.gender, u.role, u.is_active, u.created_at, u.updated_at,
			COUNT(a.id)
		FROM users u
		LEFT JOIN appointments a ON u.id = a.user_id
		WHERE u.role = 'client'`).
		Search(search, "u.full_name", "u.email").
		Suffix(`GROUP BY u.id ORDER BY u.created_at DESC`)

	rows, err := s.pool.Query(ctx, q.SQL(), q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(
			&c.ID, &c.FullName, &c.Email, &c.Phone,
			&c.DateOfBirth, &c.Gender, &c.Role, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &c.TotalAppointments,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ClientByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1 AND role = 'client'`, id))
}
