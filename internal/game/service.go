package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"immotycoon/internal/config"
	"immotycoon/internal/store"
)

// Service owns the game state and is the single entry point for every
// state transition. All mutations run under one mutex and re-persist the
// snapshot before returning.
type Service struct {
	store store.Store
	log   *slog.Logger
	bal   config.Balance

	mu      sync.Mutex
	rand    *mathrand.Rand
	state   State
	pending map[int][]Tenant
}

func NewService(st store.Store, logger *slog.Logger, bal config.Balance) *Service {
	return NewServiceWithSource(st, logger, bal, mathrand.NewSource(time.Now().UnixNano()))
}

// NewServiceWithSource injects the randomness source so tests can force
// specific draws.
func NewServiceWithSource(st store.Store, logger *slog.Logger, bal config.Balance, src mathrand.Source) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	bal = fillBalance(bal)
	return &Service{
		store:   st,
		log:     logger,
		bal:     bal,
		rand:    mathrand.New(src),
		state:   newState(bal, uuid.NewString()),
		pending: make(map[int][]Tenant),
	}
}

// fillBalance backfills tenant bands and upgrade prices missing from a
// partial balance override.
func fillBalance(bal config.Balance) config.Balance {
	def := config.DefaultBalance()
	if bal.Tenants == nil {
		bal.Tenants = def.Tenants
	}
	if bal.UpgradePrices == nil {
		bal.UpgradePrices = def.UpgradePrices
	}
	return bal
}

// Restore loads the persisted snapshot, best-effort: a missing snapshot or
// a parse failure keeps the in-memory defaults and the session continues.
func (s *Service) Restore(ctx context.Context) {
	raw, ok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("load snapshot failed", "err", err)
		return
	}
	if !ok {
		return
	}

	var loaded State
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.log.Error("parse snapshot failed, starting fresh", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = loaded
	if s.state.SaveID == "" {
		s.state.SaveID = uuid.NewString()
	}
	if s.state.Upgrades == nil {
		s.state.Upgrades = defaultUpgrades(s.bal)
	}
	// The event counter is the one field not restored verbatim: recompute
	// it from the surviving entries so ids stay monotonic.
	maxID := 0
	for _, ev := range s.state.EventLog {
		if ev.ID > maxID {
			maxID = ev.ID
		}
	}
	s.state.EventCounter = maxID + 1
	if s.state.NextPropertyID == 0 {
		s.state.NextPropertyID = 1
	}

	s.state.appendEvent("Saved game loaded.", EventNeutral, time.Now())
	s.persist(ctx)
	s.log.Info("snapshot restored", "save_id", s.state.SaveID, "day", s.state.Day, "cash", s.state.Cash)
}

// State returns a deep copy of the current snapshot.
func (s *Service) State(_ context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// NewGame clears the persisted snapshot and resets to the starting state.
func (s *Service) NewGame(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Error("clear snapshot failed", "err", err)
	}
	s.state = newState(s.bal, uuid.NewString())
	s.pending = make(map[int][]Tenant)
	s.persist(ctx)
	return cloneState(s.state)
}

// BuyProperty moves a market listing into the portfolio.
func (s *Service) BuyProperty(ctx context.Context, propertyID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.findMarket(propertyID)
	if p == nil {
		return ErrPropertyNotFound
	}
	if p.Status != StatusForSale {
		return ErrInvalidState
	}
	if s.state.Cash < p.PurchasePrice {
		return ErrInsufficientFunds
	}

	bought := *p
	bought.Status = StatusOwned
	bought.Invested = bought.PurchasePrice
	s.state.Cash -= bought.PurchasePrice
	s.state.Portfolio = append(s.state.Portfolio, bought)
	s.state.removeMarket(propertyID)
	s.state.appendEvent(fmt.Sprintf("Purchased %s for %d.", bought.Name, bought.PurchasePrice), EventNeutral, time.Now())
	s.persist(ctx)
	return nil
}

// RenovateProperty pays the effective renovation cost and raises the
// condition by one increment. The renovating status is cosmetic: a timer
// flips it back to owned after the configured delay.
func (s *Service) RenovateProperty(ctx context.Context, propertyID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.findPortfolio(propertyID)
	if p == nil {
		return ErrPropertyNotFound
	}
	if p.Status == StatusRented || p.Condition >= MaxCondition {
		return ErrInvalidState
	}
	cost := EffectiveRenovationCost(p.RenovationCost, s.state.hasUpgrade(UpgradeCheapLabor), s.bal.RenovationDiscountPct)
	if s.state.Cash < cost {
		return ErrInsufficientFunds
	}

	s.state.Cash -= cost
	p.Condition = clampCondition(p.Condition + s.bal.RenovationIncrement)
	p.Invested += cost
	p.Status = StatusRenovating
	s.persist(ctx)

	if delay := s.bal.RenovationDelay(); delay > 0 {
		time.AfterFunc(delay, func() {
			s.finishRenovation(context.Background(), propertyID)
		})
	} else {
		p.Status = StatusOwned
		s.persist(ctx)
	}
	return nil
}

// finishRenovation normalizes the cosmetic renovating status back to
// owned. Idempotent; the property may have been sold or rented meanwhile.
func (s *Service) finishRenovation(ctx context.Context, propertyID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.findPortfolio(propertyID)
	if p == nil || p.Status != StatusRenovating {
		return
	}
	p.Status = StatusOwned
	s.persist(ctx)
}

// TenantCandidates opens tenant selection for a property: a fresh batch of
// three randomized offers, held transiently until one is selected or the
// selection is cancelled. Never persisted.
func (s *Service) TenantCandidates(_ context.Context, propertyID int) ([]Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.findPortfolio(propertyID)
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	if p.Status == StatusRented {
		return nil, ErrInvalidState
	}

	batch := s.generateCandidates(*p)
	s.pending[propertyID] = batch
	out := make([]Tenant, len(batch))
	copy(out, batch)
	return out, nil
}

// CancelTenantSelection discards an open candidate batch.
func (s *Service) CancelTenantSelection(_ context.Context, propertyID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, propertyID)
}

// AssignTenant attaches a candidate from the open batch. A property below
// the tenant's minimum condition produces one negative log entry and no
// other mutation; the batch stays open so another candidate can be picked.
func (s *Service) AssignTenant(ctx context.Context, propertyID, tenantID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.pending[propertyID]
	if !ok {
		return ErrNoCandidates
	}
	var tenant *Tenant
	for i := range batch {
		if batch[i].ID == tenantID {
			tenant = &batch[i]
			break
		}
	}
	if tenant == nil {
		return ErrNoCandidates
	}

	p := s.state.findPortfolio(propertyID)
	if p == nil {
		return ErrPropertyNotFound
	}
	if p.Status == StatusRented {
		return ErrInvalidState
	}

	if p.Condition < tenant.MinCondition {
		s.state.appendEvent(
			fmt.Sprintf("%s rejected %s: condition below %d%%.", tenant.Name, p.Name, tenant.MinCondition),
			EventNegative, time.Now())
		s.persist(ctx)
		return ErrTenantRejected
	}

	chosen := *tenant
	p.Tenant = &chosen
	p.Status = StatusRented
	delete(s.pending, propertyID)
	s.state.MonthlyIncome = s.totalIncome()
	s.state.appendEvent(fmt.Sprintf("%s moved into %s.", chosen.Name, p.Name), EventPositive, time.Now())
	s.persist(ctx)
	return nil
}

// SellProperty sells a portfolio property at a random markup over the
// total invested amount and re-lists a clone on the market under a fresh
// id, with reduced condition and a discounted asking price.
func (s *Service) SellProperty(ctx context.Context, propertyID int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.state.findPortfolio(propertyID)
	if p == nil {
		return 0, ErrPropertyNotFound
	}

	multiplier := s.bal.SaleMultiplierMin + s.rand.Float64()*(s.bal.SaleMultiplierMax-s.bal.SaleMultiplierMin)
	salePrice := roundMoney(float64(p.PurchasePrice+p.Invested) * multiplier)

	condition := p.Condition - s.bal.RelistConditionLoss
	if condition < s.bal.RelistConditionFloor {
		condition = s.bal.RelistConditionFloor
	}
	relisted := Property{
		ID:             s.state.allocatePropertyID(),
		Name:           p.Name,
		PurchasePrice:  roundMoney(float64(salePrice) * s.bal.RelistPriceFactor),
		Condition:      condition,
		RenovationCost: p.RenovationCost,
		PotentialRent:  p.PotentialRent,
		Status:         StatusForSale,
	}
	name := p.Name

	s.state.Cash += salePrice
	s.state.removePortfolio(propertyID)
	s.state.Market = append(s.state.Market, relisted)
	delete(s.pending, propertyID)
	s.state.MonthlyIncome = s.totalIncome()
	s.state.appendEvent(fmt.Sprintf("Sold %s for %d.", name, salePrice), EventPositive, time.Now())
	s.persist(ctx)
	return salePrice, nil
}

// BuyUpgrade marks a one-time upgrade as purchased.
func (s *Service) BuyUpgrade(ctx context.Context, upgradeID UpgradeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.state.findUpgrade(upgradeID)
	if u == nil {
		return ErrUpgradeNotFound
	}
	if u.Purchased {
		return ErrUpgradeOwned
	}
	if s.state.Cash < u.Price {
		return ErrInsufficientFunds
	}

	s.state.Cash -= u.Price
	u.Purchased = true
	s.state.MonthlyIncome = s.totalIncome()
	s.state.appendEvent(fmt.Sprintf("Purchased upgrade: %s.", u.Name), EventNeutral, time.Now())
	s.persist(ctx)
	return nil
}

// MonthSummary reports what a month advance did.
type MonthSummary struct {
	Income          int64      `json:"income"`
	Day             int        `json:"day"`
	Week            int        `json:"week"`
	AutoRenovatedID int        `json:"auto_renovated_id,omitempty"`
	Event           *GameEvent `json:"event,omitempty"`
}

// AdvanceMonth runs the fixed monthly sequence: construction-manager
// auto-renovation first (a property renovated now is not yet rented, so it
// cannot earn this month), then income settlement, then the clock, then
// the event roll against the post-settlement balance.
func (s *Service) AdvanceMonth(ctx context.Context) MonthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var summary MonthSummary

	if s.state.hasUpgrade(UpgradeConstructionManager) {
		for i := range s.state.Portfolio {
			p := &s.state.Portfolio[i]
			if p.Condition < MaxCondition && p.Status != StatusRented {
				p.Condition = clampCondition(p.Condition + s.bal.AutoRenovationIncrement)
				s.state.appendEvent(
					fmt.Sprintf("Construction manager renovated %s to %d%%.", p.Name, p.Condition),
					EventPositive, now)
				summary.AutoRenovatedID = p.ID
				break
			}
		}
	}

	income := s.totalIncome()
	s.state.Cash += income
	summary.Income = income

	s.state.Day += s.bal.DaysPerMonth
	s.state.Week += s.bal.WeeksPerMonth

	summary.Event = s.maybeTriggerEvent(now)

	if income > 0 {
		s.state.appendEvent(fmt.Sprintf("Collected %d in rent.", income), EventPositive, now)
	}

	s.state.MonthlyIncome = s.totalIncome()
	summary.Day = s.state.Day
	summary.Week = s.state.Week
	s.persist(ctx)
	return summary
}

// totalIncome is one month of rent across the rented portfolio: the sum of
// tenant-scaled base rents, boosted as a whole by the marketing upgrade.
// Caller holds the mutex.
func (s *Service) totalIncome() int64 {
	var sum float64
	for _, p := range s.state.Portfolio {
		if p.Status != StatusRented || p.Tenant == nil {
			continue
		}
		sum += float64(p.PotentialRent) * float64(p.Tenant.RentOfferPct) / 100
	}
	if s.state.hasUpgrade(UpgradeMarketing) {
		sum *= 1 + float64(s.bal.MarketingBoostPct)/100
	}
	return roundMoney(sum)
}

// persist overwrites the stored snapshot. Failure is logged and the
// session continues; the in-memory state is authoritative.
func (s *Service) persist(ctx context.Context) {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.log.Error("marshal snapshot failed", "err", err)
		return
	}
	if err := s.store.Save(ctx, raw); err != nil {
		s.log.Error("save snapshot failed", "err", err)
	}
}
