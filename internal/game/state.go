package game

import (
	"time"

	"immotycoon/internal/config"
)

// State is the aggregate game snapshot. It is owned by a single Service
// and serialized wholesale after every mutation.
type State struct {
	SaveID         string      `json:"save_id"`
	Cash           int64       `json:"cash"`
	Day            int         `json:"day"`
	Week           int         `json:"week"`
	MonthlyIncome  int64       `json:"monthly_income"`
	Market         []Property  `json:"market_properties"`
	Portfolio      []Property  `json:"portfolio"`
	EventLog       []GameEvent `json:"event_log"`
	Upgrades       []Upgrade   `json:"upgrades"`
	EventCounter   int         `json:"event_counter"`
	NextPropertyID int         `json:"next_property_id"`
}

func defaultMarket() []Property {
	return []Property{
		{ID: 1, Name: "Tiny Garage", PurchasePrice: 8000, Condition: 30, RenovationCost: 2000, PotentialRent: 250, Status: StatusForSale},
		{ID: 2, Name: "Moldy Apartment", PurchasePrice: 15000, Condition: 20, RenovationCost: 5000, PotentialRent: 650, Status: StatusForSale},
		{ID: 3, Name: "Old Townhouse", PurchasePrice: 22000, Condition: 40, RenovationCost: 8000, PotentialRent: 1200, Status: StatusForSale},
		{ID: 4, Name: "Run-down Loft", PurchasePrice: 35000, Condition: 25, RenovationCost: 12000, PotentialRent: 1800, Status: StatusForSale},
	}
}

func defaultUpgrades(bal config.Balance) []Upgrade {
	price := func(id UpgradeID, fallback int64) int64 {
		if p, ok := bal.UpgradePrices[string(id)]; ok {
			return p
		}
		return fallback
	}
	return []Upgrade{
		{ID: UpgradeCheapLabor, Name: "Cheap Labor", Description: "Renovations cost 20% less", Price: price(UpgradeCheapLabor, 5000)},
		{ID: UpgradeMarketing, Name: "Marketing Campaign", Description: "All rental income +10%", Price: price(UpgradeMarketing, 8000)},
		{ID: UpgradeConstructionManager, Name: "Construction Manager", Description: "Auto-renovates one property each month", Price: price(UpgradeConstructionManager, 12000)},
		{ID: UpgradeInsurance, Name: "Insurance", Description: "Blocks negative monthly events", Price: price(UpgradeInsurance, 10000)},
	}
}

func newState(bal config.Balance, saveID string) State {
	market := defaultMarket()
	return State{
		SaveID:         saveID,
		Cash:           bal.StartingCash,
		Day:            1,
		Week:           1,
		Market:         market,
		Portfolio:      []Property{},
		EventLog:       []GameEvent{},
		Upgrades:       defaultUpgrades(bal),
		EventCounter:   1,
		NextPropertyID: len(market) + 1,
	}
}

func (st *State) findPortfolio(id int) *Property {
	for i := range st.Portfolio {
		if st.Portfolio[i].ID == id {
			return &st.Portfolio[i]
		}
	}
	return nil
}

func (st *State) findMarket(id int) *Property {
	for i := range st.Market {
		if st.Market[i].ID == id {
			return &st.Market[i]
		}
	}
	return nil
}

func (st *State) removeMarket(id int) {
	out := st.Market[:0]
	for _, p := range st.Market {
		if p.ID != id {
			out = append(out, p)
		}
	}
	st.Market = out
}

func (st *State) removePortfolio(id int) {
	out := st.Portfolio[:0]
	for _, p := range st.Portfolio {
		if p.ID != id {
			out = append(out, p)
		}
	}
	st.Portfolio = out
}

func (st *State) findUpgrade(id UpgradeID) *Upgrade {
	for i := range st.Upgrades {
		if st.Upgrades[i].ID == id {
			return &st.Upgrades[i]
		}
	}
	return nil
}

func (st *State) hasUpgrade(id UpgradeID) bool {
	u := st.findUpgrade(id)
	return u != nil && u.Purchased
}

// appendEvent prepends a log entry, keeping the log capped newest-first.
func (st *State) appendEvent(message string, category EventCategory, now time.Time) GameEvent {
	ev := GameEvent{
		ID:        st.EventCounter,
		Message:   message,
		Category:  category,
		CreatedAt: now,
	}
	st.EventCounter++
	st.EventLog = append([]GameEvent{ev}, st.EventLog...)
	if len(st.EventLog) > EventLogCap {
		st.EventLog = st.EventLog[:EventLogCap]
	}
	return ev
}

// usedPropertyIDs reports every id currently present on the market or in
// the portfolio.
func (st *State) usedPropertyIDs() map[int]bool {
	used := make(map[int]bool, len(st.Market)+len(st.Portfolio))
	for _, p := range st.Market {
		used[p.ID] = true
	}
	for _, p := range st.Portfolio {
		used[p.ID] = true
	}
	return used
}

// allocatePropertyID hands out a fresh id for a re-listed property,
// skipping any id still in use.
func (st *State) allocatePropertyID() int {
	used := st.usedPropertyIDs()
	id := st.NextPropertyID
	for id == 0 || used[id] {
		id++
	}
	st.NextPropertyID = id + 1
	return id
}

func cloneProperties(src []Property) []Property {
	out := make([]Property, len(src))
	copy(out, src)
	for i := range out {
		if out[i].Tenant != nil {
			t := *out[i].Tenant
			out[i].Tenant = &t
		}
	}
	return out
}

func cloneState(st State) State {
	out := st
	out.Market = cloneProperties(st.Market)
	out.Portfolio = cloneProperties(st.Portfolio)
	out.EventLog = append([]GameEvent(nil), st.EventLog...)
	out.Upgrades = append([]Upgrade(nil), st.Upgrades...)
	return out
}
