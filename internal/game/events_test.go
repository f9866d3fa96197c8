package game

import (
	"context"
	mathrand "math/rand"
	"testing"
	"time"

	"immotycoon/internal/config"
	"immotycoon/internal/store"
)

func TestEventCatalogComposition(t *testing.T) {
	if len(eventCatalog) != 9 {
		t.Fatalf("catalog size %d, want 9", len(eventCatalog))
	}
	counts := map[EventCategory]int{}
	for _, spec := range eventCatalog {
		counts[spec.Category]++
	}
	if counts[EventPositive] != 4 || counts[EventNegative] != 4 || counts[EventNeutral] != 1 {
		t.Fatalf("catalog split %v, want 4/4/1", counts)
	}
}

func TestEventProbabilityGate(t *testing.T) {
	bal := config.DefaultBalance()
	bal.EventProbability = 0
	svc := NewServiceWithSource(store.NewMemStore(), nil, bal, mathrand.NewSource(1))

	for i := 0; i < 100; i++ {
		if ev := svc.maybeTriggerEvent(time.Now()); ev != nil {
			t.Fatalf("event fired with zero probability: %+v", ev)
		}
	}
	if len(svc.state.EventLog) != 0 {
		t.Fatalf("no-op roll produced log entries")
	}
}

func TestInsuranceBlocksNegativeEvents(t *testing.T) {
	bal := config.DefaultBalance()
	bal.EventProbability = 1 // force the roll to fire every trial
	svc := NewServiceWithSource(store.NewMemStore(), nil, bal, mathrand.NewSource(42))
	svc.state.findUpgrade(UpgradeInsurance).Purchased = true
	svc.state.Portfolio = []Property{rentedProperty(10, 1000, 100)}

	for i := 0; i < 1000; i++ {
		ev := svc.maybeTriggerEvent(time.Now())
		if ev == nil {
			t.Fatalf("trial %d: forced event did not fire", i)
		}
		if ev.Category == EventNegative {
			t.Fatalf("trial %d: negative event %q despite insurance", i, ev.Message)
		}
	}
	for _, ev := range svc.state.EventLog {
		if ev.Category == EventNegative {
			t.Fatalf("negative event in log despite insurance: %q", ev.Message)
		}
	}
}

func TestApplyRentChanges(t *testing.T) {
	svc, _ := newTestService(t, testBalance())
	svc.state.Portfolio = []Property{
		{ID: 1, Name: "A", PotentialRent: 250, Status: StatusOwned},
		{ID: 2, Name: "B", PotentialRent: 999, Status: StatusOwned},
	}

	svc.applyEvent(EffectRentIncrease)
	if a, b := svc.state.Portfolio[0].PotentialRent, svc.state.Portfolio[1].PotentialRent; a != 275 || b != 1099 {
		t.Fatalf("rent increase: got %d and %d, want 275 and 1099", a, b)
	}

	svc.applyEvent(EffectRentDecrease)
	if a, b := svc.state.Portfolio[0].PotentialRent, svc.state.Portfolio[1].PotentialRent; a != 261 || b != 1044 {
		t.Fatalf("rent decrease: got %d and %d, want 261 and 1044", a, b)
	}
}

func TestApplyCashEvents(t *testing.T) {
	svc, _ := newTestService(t, testBalance())

	svc.state.Cash = 1000
	svc.applyEvent(EffectBonus)
	if svc.state.Cash != 3000 {
		t.Fatalf("bonus: cash %d, want 3000", svc.state.Cash)
	}

	svc.applyEvent(EffectStormDamage)
	if svc.state.Cash != 2200 {
		t.Fatalf("storm: cash %d, want 2200", svc.state.Cash)
	}

	// Costs floor at zero.
	svc.state.Cash = 500
	svc.applyEvent(EffectRepairCost)
	if svc.state.Cash != 0 {
		t.Fatalf("repair floor: cash %d, want 0", svc.state.Cash)
	}

	// One extra month of current income.
	svc.state.Portfolio = []Property{rentedProperty(10, 1000, 100), rentedProperty(11, 500, 100)}
	svc.state.Cash = 0
	svc.applyEvent(EffectDoubleRent)
	if svc.state.Cash != 1500 {
		t.Fatalf("double rent: cash %d, want 1500", svc.state.Cash)
	}
}

func TestApplyTenantLeaves(t *testing.T) {
	svc, _ := newTestService(t, testBalance())

	// No rented properties: log-only.
	svc.applyEvent(EffectTenantLeaves)

	svc.state.Portfolio = []Property{rentedProperty(10, 1000, 100)}
	svc.applyEvent(EffectTenantLeaves)
	p := svc.state.Portfolio[0]
	if p.Tenant != nil || p.Status != StatusOwned {
		t.Fatalf("tenant not cleared: %+v", p)
	}
}

func TestApplyFreeRenovation(t *testing.T) {
	svc, _ := newTestService(t, testBalance())

	// Nothing eligible: log-only.
	svc.applyEvent(EffectFreeRenovation)

	svc.state.Portfolio = []Property{
		rentedProperty(10, 1000, 100),
		{ID: 11, Name: "Shack", Condition: 40, Status: StatusOwned},
	}
	svc.applyEvent(EffectFreeRenovation)
	if svc.state.Portfolio[1].Condition != 100 {
		t.Fatalf("eligible property not renovated: %d", svc.state.Portfolio[1].Condition)
	}
	if svc.state.Portfolio[0].Condition != 100 {
		t.Fatalf("rented property touched")
	}
}

func TestEventsKeepConditionInRange(t *testing.T) {
	bal := config.DefaultBalance()
	bal.EventProbability = 1
	svc := NewServiceWithSource(store.NewMemStore(), nil, bal, mathrand.NewSource(7))
	ctx := context.Background()

	if err := svc.BuyProperty(ctx, 1); err != nil {
		t.Fatalf("buy: %v", err)
	}
	for i := 0; i < 200; i++ {
		svc.AdvanceMonth(ctx)
		for _, p := range svc.State(ctx).Portfolio {
			if p.Condition < MinCondition || p.Condition > MaxCondition {
				t.Fatalf("condition out of range: %d", p.Condition)
			}
		}
		if svc.State(ctx).Cash < 0 {
			t.Fatalf("cash went negative")
		}
		if len(svc.State(ctx).EventLog) > EventLogCap {
			t.Fatalf("event log over cap")
		}
	}
}
