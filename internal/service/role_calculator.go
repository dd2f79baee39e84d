package service

import (
	"role-profile/internal/domain"
	"role-profile/internal/weights"
)

// RoleCalculator ranks the configured roles for a set of metaprogram scores.
type RoleCalculator struct {
	roles []weights.Target
}

func NewRoleCalculator(tables *weights.Tables) RoleCalculator {
	return RoleCalculator{roles: tables.Roles}
}

// Calculate returns one Role per configured role, descending by percentage.
func (c RoleCalculator) Calculate(mps domain.Metaprograms) ([]domain.Role, error) {
	ranked, err := rankTargets("role", c.roles, mps)
	if err != nil {
		return nil, err
	}
	roles := make([]domain.Role, len(ranked))
	for i, r := range ranked {
		roles[i] = domain.Role{ID: r.id, Name: r.name, Percentage: r.percentage}
	}
	return roles, nil
}
