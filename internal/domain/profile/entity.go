package profile

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	DisplayName         string
	Headline            string
	IsPublic            bool
	OnboardingCompleted bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsCandidate reports whether the profile may appear in anyone's match pool.
func (p Profile) IsCandidate() bool {
	return p.IsPublic && p.OnboardingCompleted
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyProfessional Proficiency = "professional"
)

func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyAdvanced:
		return 2
	case ProficiencyExpert:
		return 3
	case ProficiencyProfessional:
		return 4
	default:
		return 0
	}
}

func (p Proficiency) IsValid() bool {
	return p.Rank() > 0
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

func (u Urgency) Rank() int {
	switch u {
	case UrgencyLow:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyHigh:
		return 3
	default:
		return 0
	}
}

func (u Urgency) IsValid() bool {
	return u.Rank() > 0
}

// OfferedSkill marks a skill the profile is willing to help others with.
type OfferedSkill struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	Proficiency     Proficiency
	YearsExperience int
	CreatedAt       time.Time
}

// Need marks a skill the profile is actively seeking help with. Inactive
// needs are kept for history but never enter match scoring.
type Need struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	SkillID   uuid.UUID
	SkillName string
	Urgency   Urgency
	IsActive  bool
	CreatedAt time.Time
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Connection links two profiles. An accepted connection is bidirectional and
// removes both profiles from each other's candidate pool.
type Connection struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	AddresseeID uuid.UUID
	Status      ConnectionStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
}

func (c Connection) Involves(profileID uuid.UUID) bool {
	return c.RequesterID == profileID || c.AddresseeID == profileID
}

func (c Connection) Other(profileID uuid.UUID) uuid.UUID {
	if c.RequesterID == profileID {
		return c.AddresseeID
	}
	return c.RequesterID
}
