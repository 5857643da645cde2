package users

import (
	"barbershop-billing/internal/domain/plans"
	"barbershop-billing/internal/domain/users"
)

func BuildUserDTO(sub users.Subscriber) UserDTO {
	return UserDTO{
		ID:    sub.UserID,
		Email: sub.Email,
		Role:  string(sub.Role),
	}
}

func BuildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		Name:          p.Name,
		Interval:      p.Interval,
		Amount:        p.UnitAmount,
		Currency:      p.Currency,
		StripePriceID: p.PriceID,
	}
}
