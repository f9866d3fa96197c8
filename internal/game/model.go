package game

import (
	"errors"
	"math"
	"time"
)

const (
	// Condition bounds for every property.
	MinCondition = 0
	MaxCondition = 100

	// EventLogCap is the number of log entries retained, newest first.
	EventLogCap = 5
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrInvalidState      = errors.New("action not allowed in current property state")
	ErrUpgradeNotFound   = errors.New("upgrade not found")
	ErrUpgradeOwned      = errors.New("upgrade already purchased")
	ErrTenantRejected    = errors.New("tenant rejected the property")
	ErrNoCandidates      = errors.New("no tenant candidates open for this property")
)

type PropertyStatus string

const (
	StatusForSale    PropertyStatus = "for_sale"
	StatusOwned      PropertyStatus = "owned"
	StatusRenovating PropertyStatus = "renovating"
	StatusRented     PropertyStatus = "rented"
)

// Property is one real-estate unit, either listed on the market or held in
// the player's portfolio. A tenant is attached only while Status is rented.
type Property struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	PurchasePrice  int64          `json:"purchase_price"`
	Condition      int            `json:"condition"`
	RenovationCost int64          `json:"renovation_cost"`
	PotentialRent  int64          `json:"potential_rent"`
	Status         PropertyStatus `json:"status"`
	Invested       int64          `json:"invested"`
	Tenant         *Tenant        `json:"tenant,omitempty"`
}

type TenantCategory string

const (
	TenantStudent      TenantCategory = "student"
	TenantFamily       TenantCategory = "family"
	TenantStartup      TenantCategory = "startup"
	TenantSenior       TenantCategory = "senior"
	TenantProfessional TenantCategory = "professional"
)

// Tenant is a rental offer. Candidates are generated in batches of three
// when the player opens tenant selection and discarded once one is chosen.
type Tenant struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Category     TenantCategory `json:"category"`
	RentOfferPct int            `json:"rent_offer_pct"`
	Risk         int            `json:"risk"`
	MinCondition int            `json:"min_condition"`
}

type UpgradeID string

const (
	UpgradeCheapLabor          UpgradeID = "cheap_labor"
	UpgradeMarketing           UpgradeID = "marketing"
	UpgradeConstructionManager UpgradeID = "construction_manager"
	UpgradeInsurance           UpgradeID = "insurance"
)

// Upgrade is a one-time purchasable flag consulted by the engine.
type Upgrade struct {
	ID          UpgradeID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Purchased   bool      `json:"purchased"`
}

type EventCategory string

const (
	EventPositive EventCategory = "positive"
	EventNegative EventCategory = "negative"
	EventNeutral  EventCategory = "neutral"
)

// GameEvent is an immutable log entry. IDs are monotonically increasing
// and never reused, even across save/load.
type GameEvent struct {
	ID        int           `json:"id"`
	Message   string        `json:"message"`
	Category  EventCategory `json:"category"`
	CreatedAt time.Time     `json:"created_at"`
}

func clampCondition(v int) int {
	if v < MinCondition {
		return MinCondition
	}
	if v > MaxCondition {
		return MaxCondition
	}
	return v
}

func roundMoney(v float64) int64 {
	return int64(math.Round(v))
}

// EffectiveRenovationCost applies the cheap-labor discount to a base
// renovation cost. Pure; used by both the renovate path and valuations.
func EffectiveRenovationCost(baseCost int64, cheapLabor bool, discountPct int) int64 {
	if !cheapLabor {
		return baseCost
	}
	return roundMoney(float64(baseCost) * (1 - float64(discountPct)/100))
}

// EffectiveRent is the rent a rented property earns per month: base
// potential rent scaled by the tenant's offer, then by the marketing boost.
// Returns 0 for properties without a tenant.
func EffectiveRent(p Property, marketing bool, boostPct int) int64 {
	if p.Tenant == nil {
		return 0
	}
	rent := float64(p.PotentialRent) * float64(p.Tenant.RentOfferPct) / 100
	if marketing {
		rent *= 1 + float64(boostPct)/100
	}
	return roundMoney(rent)
}
