package model

import "time"

type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	DateOfBirth  string    `json:"date_of_birth,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Client is a user row as the admin client list sees it.
type Client struct {
	User
	TotalAppointments int64 `json:"total_appointments"`
}

type Service struct {
	ID              string `json:"id"`
	ServiceName     string `json:"service_name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

type Appointment struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	ServiceID          string    `json:"service_id"`
	AppointmentDate    string    `json:"appointment_date"`
	AppointmentTime    string    `json:"appointment_time"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// joined service / client fields, populated on reads only
	ServiceName     string `json:"service_name,omitempty"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	ClientName      string `json:"full_name,omitempty"`
	ClientEmail     string `json:"email,omitempty"`
	ClientPhone     string `json:"phone,omitempty"`
}

type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ServiceBookings struct {
	ServiceName  string `json:"service_name"`
	BookingCount int64  `json:"booking_count"`
}

type Stats struct {
	TotalClients          int64             `json:"total_clients"`
	TotalAppointments     int64             `json:"total_appointments"`
	PendingAppointments   int64             `json:"pending_appointments"`
	ConfirmedAppointments int64             `json:"confirmed_appointments"`
	CompletedAppointments int64             `json:"completed_appointments"`
	CancelledAppointments int64             `json:"cancelled_appointments"`
	TodayAppointments     int64             `json:"today_appointments"`
	UpcomingAppointments  int64             `json:"upcoming_appointments"`
	PopularServices       []ServiceBookings `json:"popular_services"`
	RecentAppointments    []Appointment     `json:"recent_appointments"`
}
