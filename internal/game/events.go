package game

import (
	"fmt"
	"time"
)

type EventEffect string

const (
	EffectRentIncrease   EventEffect = "rent_increase"
	EffectBonus          EventEffect = "bonus"
	EffectDoubleRent     EventEffect = "double_rent"
	EffectStormDamage    EventEffect = "storm_damage"
	EffectTenantLeaves   EventEffect = "tenant_leaves"
	EffectRepairCost     EventEffect = "repair_cost"
	EffectRentDecrease   EventEffect = "rent_decrease"
	EffectFreeRenovation EventEffect = "free_renovation"
	EffectNone           EventEffect = "none"
)

type eventSpec struct {
	Effect   EventEffect
	Category EventCategory
}

var eventCatalog = []eventSpec{
	{Effect: EffectRentIncrease, Category: EventPositive},
	{Effect: EffectBonus, Category: EventPositive},
	{Effect: EffectDoubleRent, Category: EventPositive},
	{Effect: EffectStormDamage, Category: EventNegative},
	{Effect: EffectTenantLeaves, Category: EventNegative},
	{Effect: EffectRepairCost, Category: EventNegative},
	{Effect: EffectRentDecrease, Category: EventNegative},
	{Effect: EffectFreeRenovation, Category: EventPositive},
	{Effect: EffectNone, Category: EventNeutral},
}

// maybeTriggerEvent rolls the monthly event. With insurance purchased,
// negative entries are removed from the pool before the uniform draw.
// Returns nil when no event fired. Caller holds the service mutex.
func (s *Service) maybeTriggerEvent(now time.Time) *GameEvent {
	if s.rand.Float64() >= s.bal.EventProbability {
		return nil
	}

	pool := eventCatalog
	if s.state.hasUpgrade(UpgradeInsurance) {
		filtered := make([]eventSpec, 0, len(eventCatalog))
		for _, spec := range eventCatalog {
			if spec.Category != EventNegative {
				filtered = append(filtered, spec)
			}
		}
		pool = filtered
	}

	spec := pool[s.rand.Intn(len(pool))]
	msg := s.applyEvent(spec.Effect)
	ev := s.state.appendEvent(msg, spec.Category, now)
	return &ev
}

// applyEvent mutates state per the effect and returns the log message.
func (s *Service) applyEvent(effect EventEffect) string {
	st := &s.state
	switch effect {
	case EffectRentIncrease:
		for i := range st.Portfolio {
			st.Portfolio[i].PotentialRent = roundMoney(float64(st.Portfolio[i].PotentialRent) * s.bal.RentIncreaseFactor)
		}
		return fmt.Sprintf("Housing market boom! Rents rise by %d%%.", factorToPct(s.bal.RentIncreaseFactor))

	case EffectBonus:
		st.Cash += s.bal.EventBonus
		return fmt.Sprintf("Unexpected tax refund: +%d cash.", s.bal.EventBonus)

	case EffectDoubleRent:
		income := s.totalIncome()
		st.Cash += income
		return fmt.Sprintf("Excellent month! Tenants pay an extra month of rent: +%d.", income)

	case EffectStormDamage:
		st.Cash = maxInt64(0, st.Cash-s.bal.EventStormDamage)
		return fmt.Sprintf("Storm damage across the portfolio: -%d cash.", s.bal.EventStormDamage)

	case EffectTenantLeaves:
		rented := make([]int, 0, len(st.Portfolio))
		for i := range st.Portfolio {
			if st.Portfolio[i].Status == StatusRented {
				rented = append(rented, i)
			}
		}
		if len(rented) == 0 {
			return "A tenant threatened to move out, but nothing came of it."
		}
		idx := rented[s.rand.Intn(len(rented))]
		name := st.Portfolio[idx].Name
		st.Portfolio[idx].Tenant = nil
		st.Portfolio[idx].Status = StatusOwned
		return fmt.Sprintf("The tenant of %s moved out.", name)

	case EffectRepairCost:
		st.Cash = maxInt64(0, st.Cash-s.bal.EventRepairCost)
		return fmt.Sprintf("Emergency repairs: -%d cash.", s.bal.EventRepairCost)

	case EffectRentDecrease:
		for i := range st.Portfolio {
			st.Portfolio[i].PotentialRent = roundMoney(float64(st.Portfolio[i].PotentialRent) * s.bal.RentDecreaseFactor)
		}
		return fmt.Sprintf("Market slump: rents fall by %d%%.", -factorToPct(s.bal.RentDecreaseFactor))

	case EffectFreeRenovation:
		eligible := make([]int, 0, len(st.Portfolio))
		for i := range st.Portfolio {
			if st.Portfolio[i].Status != StatusRented && st.Portfolio[i].Condition < MaxCondition {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			return "A contractor friend offered free work, but everything is in shape."
		}
		idx := eligible[s.rand.Intn(len(eligible))]
		st.Portfolio[idx].Condition = MaxCondition
		return fmt.Sprintf("A contractor friend renovated %s for free!", st.Portfolio[idx].Name)

	default:
		return "A quiet month goes by."
	}
}

func factorToPct(factor float64) int {
	return int(roundMoney((factor - 1) * 100))
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
