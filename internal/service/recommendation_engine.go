package service

import (
	"fmt"

	"role-profile/internal/domain"
)

const (
	strengthRoleCount     = 3
	strengthRoleThreshold = 50
	focusRoleThreshold    = 60
	growthAreaThreshold   = 40
	minRecommendations    = 3
)

var fillerRecommendations = []string{
	"Use your strongest roles deliberately: pick tasks and projects where they are needed most.",
	"Keep your competencies in balance: invest a little time every week in the areas you use least.",
}

// RecommendationEngine derives short guidance from ranked roles and
// competencies. Rules run in a fixed order and their output keeps it.
type RecommendationEngine struct{}

// Generate expects roles in descending order, top competencies highest first
// and bottom competencies lowest first.
func (RecommendationEngine) Generate(roles []domain.Role, top, bottom []domain.Competency) []string {
	var out []string

	for i, r := range roles {
		if i >= strengthRoleCount {
			break
		}
		if r.Percentage >= strengthRoleThreshold {
			out = append(out, fmt.Sprintf("Your %s role is a clear strength (%d%%): build on it in your day-to-day work.", r.Name, r.Percentage))
		}
	}

	if len(top) > 0 {
		out = append(out, fmt.Sprintf("Your strongest competency is %s (%d%%): rely on it when taking on new challenges.", top[0].Name, top[0].Percentage))
	}

	if len(bottom) > 0 && bottom[0].Percentage < growthAreaThreshold {
		out = append(out, fmt.Sprintf("Growth area: %s (%d%%). Small, regular practice here will pay off.", bottom[0].Name, bottom[0].Percentage))
	}

	if len(roles) > 0 && roles[0].Percentage >= focusRoleThreshold {
		out = append(out, fmt.Sprintf("Focus on responsibilities that fit the %s role, where your profile is most pronounced.", roles[0].Name))
	}

	for _, filler := range fillerRecommendations {
		if len(out) >= minRecommendations {
			break
		}
		out = append(out, filler)
	}
	return out
}
