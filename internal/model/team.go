package model

import "time"

// Team is an organisational unit that owns a set of members.
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description"`
	Icon        string    `json:"icon" validate:"max=32"`
	TeamLead    string    `json:"team_lead" validate:"max=100"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Members holds the active members when loaded through GetWithMembers.
	Members []*Person `json:"members,omitempty"`
}

// TeamPatch holds the team fields that can be changed after creation.
// A nil field is left untouched.
type TeamPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	TeamLead    *string `json:"team_lead"`
}

// Apply copies the non-nil fields of p onto t.
func (p TeamPatch) Apply(t *Team) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Icon != nil {
		t.Icon = *p.Icon
	}
	if p.TeamLead != nil {
		t.TeamLead = *p.TeamLead
	}
}
