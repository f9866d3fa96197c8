package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TenantBand is the sampling range for one tenant category.
type TenantBand struct {
	RentMinPct   int `yaml:"rent_min_pct" json:"rent_min_pct"`
	RentMaxPct   int `yaml:"rent_max_pct" json:"rent_max_pct"`
	RiskMin      int `yaml:"risk_min" json:"risk_min"`
	RiskMax      int `yaml:"risk_max" json:"risk_max"`
	MinCondition int `yaml:"min_condition" json:"min_condition"`
}

// Balance holds gameplay balance tuning.
type Balance struct {
	StartingCash int64 `yaml:"starting_cash" json:"starting_cash"`

	// Renovation
	RenovationIncrement     int `yaml:"renovation_increment" json:"renovation_increment"`
	AutoRenovationIncrement int `yaml:"auto_renovation_increment" json:"auto_renovation_increment"`
	RenovationDiscountPct   int `yaml:"renovation_discount_pct" json:"renovation_discount_pct"`
	RenovationDelayMS       int `yaml:"renovation_delay_ms" json:"renovation_delay_ms"`

	// Rent
	MarketingBoostPct int `yaml:"marketing_boost_pct" json:"marketing_boost_pct"`

	// Monthly events
	EventProbability   float64 `yaml:"event_probability" json:"event_probability"`
	EventBonus         int64   `yaml:"event_bonus" json:"event_bonus"`
	EventStormDamage   int64   `yaml:"event_storm_damage" json:"event_storm_damage"`
	EventRepairCost    int64   `yaml:"event_repair_cost" json:"event_repair_cost"`
	RentIncreaseFactor float64 `yaml:"rent_increase_factor" json:"rent_increase_factor"`
	RentDecreaseFactor float64 `yaml:"rent_decrease_factor" json:"rent_decrease_factor"`

	// Selling and re-listing
	SaleMultiplierMin    float64 `yaml:"sale_multiplier_min" json:"sale_multiplier_min"`
	SaleMultiplierMax    float64 `yaml:"sale_multiplier_max" json:"sale_multiplier_max"`
	RelistPriceFactor    float64 `yaml:"relist_price_factor" json:"relist_price_factor"`
	RelistConditionLoss  int     `yaml:"relist_condition_loss" json:"relist_condition_loss"`
	RelistConditionFloor int     `yaml:"relist_condition_floor" json:"relist_condition_floor"`

	// Clock
	DaysPerMonth  int `yaml:"days_per_month" json:"days_per_month"`
	WeeksPerMonth int `yaml:"weeks_per_month" json:"weeks_per_month"`

	Tenants       map[string]TenantBand `yaml:"tenants" json:"tenants"`
	UpgradePrices map[string]int64      `yaml:"upgrade_prices" json:"upgrade_prices"`
}

// DefaultBalance returns the stock game tuning.
func DefaultBalance() Balance {
	return Balance{
		StartingCash:            25000,
		RenovationIncrement:     25,
		AutoRenovationIncrement: 30,
		RenovationDiscountPct:   20,
		RenovationDelayMS:       1000,
		MarketingBoostPct:       10,
		EventProbability:        0.30,
		EventBonus:              2000,
		EventStormDamage:        800,
		EventRepairCost:         1200,
		RentIncreaseFactor:      1.10,
		RentDecreaseFactor:      0.95,
		SaleMultiplierMin:       1.10,
		SaleMultiplierMax:       1.30,
		RelistPriceFactor:       0.85,
		RelistConditionLoss:     20,
		RelistConditionFloor:    30,
		DaysPerMonth:            30,
		WeeksPerMonth:           4,
		Tenants: map[string]TenantBand{
			"student":      {RentMinPct: 70, RentMaxPct: 85, RiskMin: 6, RiskMax: 9, MinCondition: 60},
			"family":       {RentMinPct: 95, RentMaxPct: 105, RiskMin: 3, RiskMax: 5, MinCondition: 85},
			"startup":      {RentMinPct: 110, RentMaxPct: 130, RiskMin: 7, RiskMax: 10, MinCondition: 75},
			"senior":       {RentMinPct: 80, RentMaxPct: 95, RiskMin: 2, RiskMax: 4, MinCondition: 80},
			"professional": {RentMinPct: 100, RentMaxPct: 115, RiskMin: 2, RiskMax: 5, MinCondition: 90},
		},
		UpgradePrices: map[string]int64{
			"cheap_labor":          5000,
			"marketing":            8000,
			"construction_manager": 12000,
			"insurance":            10000,
		},
	}
}

// RenovationDelay converts the configured cosmetic renovation delay.
func (b Balance) RenovationDelay() time.Duration {
	if b.RenovationDelayMS <= 0 {
		return 0
	}
	return time.Duration(b.RenovationDelayMS) * time.Millisecond
}

// LoadBalance reads a YAML balance file over the defaults. An empty path
// returns the defaults unchanged.
func LoadBalance(path string) (Balance, error) {
	bal := DefaultBalance()
	if path == "" {
		return bal, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return bal, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &bal); err != nil {
		return bal, fmt.Errorf("parse balance file: %w", err)
	}
	return bal, nil
}
