// Package model defines the core domain types for the school events dashboard.
package model

import "time"

// Layouts of the civil date and wall-clock time carried by an event.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultMaxRegistrations is used when a create request omits the limit.
const DefaultMaxRegistrations = 50

// Status is the lifecycle stage of an event.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Categories lists the event categories offered by the dashboard.
var Categories = []string{"Academic", "Sports", "Cultural", "Competition", "Workshop"}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Role is a profile's role in the school.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleParticipant Role = "participant"
)

// CanPublish reports whether the role may create events and announcements.
// Only participants are excluded.
func (r Role) CanPublish() bool {
	return r != RoleParticipant
}

// Event is a school event. Registrations, IsRegistered, RegisteredAt and
// Action are derived on every fetch and never persisted.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Location         string    `json:"location"`
	Category         string    `json:"category"`
	MaxRegistrations int       `json:"max_registrations"`
	Status           Status    `json:"status"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Registrations int        `json:"registrations"`
	IsRegistered  bool       `json:"is_registered"`
	RegisteredAt  *time.Time `json:"registered_at,omitempty"`
	Action        *Action    `json:"action,omitempty"`
}

// IsFull reports whether the live count reached the limit.
func (e *Event) IsFull() bool {
	return e.Registrations >= e.MaxRegistrations
}

// Registration is a (event, user) membership row.
type Registration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// User is an account that can sign in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile carries the school-facing details of a user.
type Profile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	StudentID   string    `json:"student_id,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	Section     string    `json:"section,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Announcement is a post on the announcements board.
type Announcement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	CreatorName string    `json:"creator_name"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	Category         string `json:"category"`
	MaxRegistrations int    `json:"max_registrations"`
	Status           Status `json:"status"`
}

// SignUpRequest is the payload for creating an account.
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            Role   `json:"role"`
	StudentID       string `json:"student_id"`
	Grade           string `json:"grade"`
	Section         string `json:"section"`
	Phone           string `json:"phone"`
}

// SignInRequest is the payload for starting a session.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAnnouncementRequest is the payload for posting an announcement.
type CreateAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Notices []Notice `json:"notices,omitempty"`
}
