package services

import "fmt"

// Humanitarian categories returned by the humanitarian image model.
const (
	AffectedInjuredOrDeadPeople        = "affected_injured_or_dead_people"
	InfrastructureAndUtilityDamage     = "infrastructure_and_utility_damage"
	RescueVolunteeringOrDonationEffort = "rescue_volunteering_or_donation_effort"
	NotHumanitarian                    = "not_humanitarian"
)

// Severity categories returned by the damage image model.
const (
	SeveritySevere       = "severe"
	SeverityMild         = "mild"
	SeverityLittleOrNone = "little_or_none"
)

// Urgency is an ordinal tier; Rank 0 means the inputs were not recognised.
type Urgency struct {
	Rank int
	Name string
}

var (
	UrgencyCritical = Urgency{5, "Critical"}
	UrgencyHigh     = Urgency{4, "High"}
	UrgencyModerate = Urgency{3, "Moderate"}
	UrgencyLow      = Urgency{2, "Low"}
	UrgencyMinimal  = Urgency{1, "Minimal"}
	UrgencyUnknown  = Urgency{}
)

func (u Urgency) String() string {
	if u.Rank == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d (%s)", u.Rank, u.Name)
}

var urgencyMatrix = map[string]map[string]Urgency{
	AffectedInjuredOrDeadPeople: {
		SeveritySevere:       UrgencyCritical,
		SeverityMild:         UrgencyHigh,
		SeverityLittleOrNone: UrgencyModerate,
	},
	InfrastructureAndUtilityDamage: {
		SeveritySevere:       UrgencyHigh,
		SeverityMild:         UrgencyModerate,
		SeverityLittleOrNone: UrgencyLow,
	},
	RescueVolunteeringOrDonationEffort: {
		SeveritySevere:       UrgencyModerate,
		SeverityMild:         UrgencyLow,
		SeverityLittleOrNone: UrgencyMinimal,
	},
	NotHumanitarian: {
		SeveritySevere:       UrgencyLow,
		SeverityMild:         UrgencyMinimal,
		SeverityLittleOrNone: UrgencyMinimal,
	},
}

// ClassifyUrgency looks up the tier for a humanitarian/severity pair.
// Unknown labels yield UrgencyUnknown rather than an error.
func ClassifyUrgency(humanitarian, severity string) Urgency {
	if u, ok := urgencyMatrix[humanitarian][severity]; ok {
		return u
	}
	return UrgencyUnknown
}

// UrgencyRank parses the rank back out of a stored urgency label; 0 when unknown.
func UrgencyRank(label string) int {
	for _, row := range urgencyMatrix {
		for _, u := range row {
			if u.String() == label {
				return u.Rank
			}
		}
	}
	return 0
}
