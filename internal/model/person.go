package model

import (
	"encoding/json"
	"time"
)

// Person statuses. Inactive persons are hidden from default listings but kept in storage.
const (
	PersonStatusActive   = "Active"
	PersonStatusInactive = "Inactive"
)

// DateLayout is the wire and storage format of Person.JoinDate.
const DateLayout = "2006-01-02"

// Person is a member of the organisation.
// JSON output goes through MarshalJSON; the json tags name fields in
// validation errors.
type Person struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name" validate:"required,max=100"`
	LastName   string     `json:"last_name" validate:"required,max=100"`
	Email      string     `json:"email" validate:"required,email,max=120"`
	Phone      string     `json:"phone" validate:"max=20"`
	Role       string     `json:"role" validate:"max=100"`
	Department string     `json:"department" validate:"max=100"`
	JoinDate   *time.Time `json:"join_date"`
	Status     string     `json:"status" validate:"omitempty,oneof=Active Inactive"`
	TeamID     *string    `json:"team_id"`
	// TeamName is denormalised from the referenced team on read; it is never written.
	TeamName  string    `json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the first and last name joined by a space.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsActive reports whether the person appears in default listings.
func (p *Person) IsActive() bool {
	return p.Status == PersonStatusActive
}

// ValidPersonStatus reports whether s is one of the known statuses.
func ValidPersonStatus(s string) bool {
	return s == PersonStatusActive || s == PersonStatusInactive
}

type personJSON struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	JoinDate   *string   `json:"join_date"`
	Status     string    `json:"status"`
	TeamID     *string   `json:"team_id"`
	TeamName   *string   `json:"team_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarshalJSON renders the person with its computed full name and team name.
func (p *Person) MarshalJSON() ([]byte, error) {
	out := personJSON{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		FullName:   p.FullName(),
		Email:      p.Email,
		Phone:      p.Phone,
		Role:       p.Role,
		Department: p.Department,
		Status:     p.Status,
		TeamID:     p.TeamID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.JoinDate != nil {
		d := p.JoinDate.Format(DateLayout)
		out.JoinDate = &d
	}
	if p.TeamName != "" {
		name := p.TeamName
		out.TeamName = &name
	}
	return json.Marshal(out)
}

// PersonPatch carries a partial update. Only non-nil fields are applied.
// ClearTeam detaches the person from its team and wins over TeamID;
// ClearJoinDate likewise wins over JoinDate.
type PersonPatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Role       *string
	Department *string
	JoinDate   *time.Time
	Status     *string
	TeamID     *string
	ClearTeam  bool

	ClearJoinDate bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PersonPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.Role == nil && p.Department == nil && p.JoinDate == nil && p.Status == nil &&
		p.TeamID == nil && !p.ClearTeam && !p.ClearJoinDate
}

// Apply copies the patch onto person.
func (p PersonPatch) Apply(person *Person) {
	if p.FirstName != nil {
		person.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		person.LastName = *p.LastName
	}
	if p.Email != nil {
		person.Email = *p.Email
	}
	if p.Phone != nil {
		person.Phone = *p.Phone
	}
	if p.Role != nil {
		person.Role = *p.Role
	}
	if p.Department != nil {
		person.Department = *p.Department
	}
	switch {
	case p.ClearJoinDate:
		person.JoinDate = nil
	case p.JoinDate != nil:
		d := *p.JoinDate
		person.JoinDate = &d
	}
	if p.Status != nil {
		person.Status = *p.Status
	}
	switch {
	case p.ClearTeam:
		person.TeamID = nil
		person.TeamName = ""
	case p.TeamID != nil:
		id := *p.TeamID
		if person.TeamID == nil || *person.TeamID != id {
			person.TeamName = ""
		}
		person.TeamID = &id
	}
}
