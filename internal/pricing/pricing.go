// Package pricing computes the lead cost a logistics partner pays when its offer is accepted.
//
// The cost is a base amount picked by quantity band, multiplied by a factor for each
// cargo attribute: hazard class, pickup urgency, temperature control and the
// partner's subscription tier. The rate card can be overridden from a YAML file.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// Band is a quantity bracket. MaxTons of zero marks the open-ended top band.
type Band struct {
	MaxTons    float64 `yaml:"max_tons"`
	BaseRupees int64   `yaml:"base_rupees"`
}

// UrgencyRule applies when pickup is at most WithinDays away.
type UrgencyRule struct {
	WithinDays int     `yaml:"within_days"`
	Multiplier float64 `yaml:"multiplier"`
}

// RateCard holds every lookup table used by the calculator.
type RateCard struct {
	Bands                 []Band                             `yaml:"bands"`
	Hazard                map[int]float64                    `yaml:"hazard"`
	Urgency               []UrgencyRule                      `yaml:"urgency"`
	TemperatureMultiplier float64                            `yaml:"temperature_multiplier"`
	Tiers                 map[model.SubscriptionTier]float64 `yaml:"tiers"`
}

// DefaultRateCard returns the built-in INR rate card.
func DefaultRateCard() RateCard {
	return RateCard{
		Bands: []Band{
			{MaxTons: 5, BaseRupees: 500},
			{MaxTons: 20, BaseRupees: 1000},
			{MaxTons: 50, BaseRupees: 2000},
			{MaxTons: 0, BaseRupees: 3500},
		},
		Hazard: map[int]float64{
			0: 1.0, 1: 2.0, 2: 1.5, 3: 1.4, 4: 1.4, 5: 1.3, 6: 1.6, 7: 2.5, 8: 1.5, 9: 1.1,
		},
		Urgency: []UrgencyRule{
			{WithinDays: 2, Multiplier: 1.5},
			{WithinDays: 7, Multiplier: 1.2},
		},
		TemperatureMultiplier: 1.25,
		Tiers: map[model.SubscriptionTier]float64{
			model.TierFree:     1.0,
			model.TierStandard: 0.9,
			model.TierPremium:  0.75,
		},
	}
}

// LoadRateCard reads a YAML rate card from path. Sections missing from the file keep their defaults.
func LoadRateCard(path string) (RateCard, error) {
	card := DefaultRateCard()
	b, err := os.ReadFile(path)
	if err != nil {
		return RateCard{}, fmt.Errorf("read rate card: %w", err)
	}
	if err := yaml.Unmarshal(b, &card); err != nil {
		return RateCard{}, fmt.Errorf("parse rate card: %w", err)
	}
	if err := card.Validate(); err != nil {
		return RateCard{}, err
	}
	return card, nil
}

// Validate checks the card is usable: ascending bands ending in an open band and positive multipliers.
func (c RateCard) Validate() error {
	if len(c.Bands) == 0 {
		return errors.New("rate card: at least one band is required")
	}
	prev := 0.0
	for i, b := range c.Bands {
		last := i == len(c.Bands)-1
		if b.BaseRupees <= 0 {
			return fmt.Errorf("rate card: band %d base must be positive", i)
		}
		if last {
			if b.MaxTons != 0 {
				return errors.New("rate card: last band must be open-ended (max_tons: 0)")
			}
			continue
		}
		if b.MaxTons <= prev {
			return fmt.Errorf("rate card: band %d max_tons must increase", i)
		}
		prev = b.MaxTons
	}
	for class := 0; class <= 9; class++ {
		if m, ok := c.Hazard[class]; !ok || m <= 0 {
			return fmt.Errorf("rate card: hazard class %d needs a positive multiplier", class)
		}
	}
	for _, u := range c.Urgency {
		if u.Multiplier <= 0 {
			return errors.New("rate card: urgency multipliers must be positive")
		}
	}
	if c.TemperatureMultiplier <= 0 {
		return errors.New("rate card: temperature multiplier must be positive")
	}
	for t, m := range c.Tiers {
		if m <= 0 {
			return fmt.Errorf("rate card: tier %s needs a positive multiplier", t)
		}
	}
	return nil
}

// Input is everything the calculator needs to price a lead.
type Input struct {
	QuantityTons          float64
	HazardClass           int
	PickupDate            time.Time
	Now                   time.Time
	TemperatureControlled bool
	Tier                  model.SubscriptionTier
}

// InputFor builds an Input for a quote priced for a partner on the given tier.
func InputFor(q *model.Quote, tier model.SubscriptionTier, now time.Time) Input {
	return Input{
		QuantityTons:          q.QuantityTons(),
		HazardClass:           q.HazardClass,
		PickupDate:            q.PickupDate,
		Now:                   now,
		TemperatureControlled: q.TemperatureControlled,
		Tier:                  tier,
	}
}

// Factor is one multiplier applied to the base cost.
type Factor struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// Breakdown explains how a lead cost was reached.
type Breakdown struct {
	Base     model.Money `json:"base"`
	Factors  []Factor    `json:"factors"`
	Total    model.Money `json:"total"`
	Currency string      `json:"currency"`
}

// Calculator prices leads against a rate card. It is safe for concurrent use.
type Calculator struct {
	card RateCard
}

// NewCalculator returns a calculator over card.
func NewCalculator(card RateCard) *Calculator {
	return &Calculator{card: card}
}

// LeadCost prices a lead. Unknown hazard classes and tiers use a multiplier of 1.
func (c *Calculator) LeadCost(in Input) Breakdown {
	base := model.Money(c.baseRupees(in.QuantityTons) * 100)

	factors := []Factor{
		{Name: fmt.Sprintf("hazard_class_%d", in.HazardClass), Multiplier: lookup(c.card.Hazard, in.HazardClass)},
		{Name: "urgency", Multiplier: c.urgency(in.PickupDate, in.Now)},
	}
	if in.TemperatureControlled {
		factors = append(factors, Factor{Name: "temperature_controlled", Multiplier: c.card.TemperatureMultiplier})
	}
	tier := in.Tier
	if tier == "" {
		tier = model.TierFree
	}
	factors = append(factors, Factor{Name: "tier_" + string(tier), Multiplier: lookup(c.card.Tiers, tier)})

	total := float64(base)
	for _, f := range factors {
		total *= f.Multiplier
	}

	return Breakdown{
		Base:     base,
		Factors:  factors,
		Total:    model.Money(math.Round(total)),
		Currency: model.Currency,
	}
}

func (c *Calculator) baseRupees(tons float64) int64 {
	for _, b := range c.card.Bands {
		if b.MaxTons == 0 || tons <= b.MaxTons {
			return b.BaseRupees
		}
	}
	return c.card.Bands[len(c.card.Bands)-1].BaseRupees
}

// urgency counts whole calendar days (UTC) from today to the pickup date, so a
// date-only pickup is priced the same at any time of day.
func (c *Calculator) urgency(pickup, now time.Time) float64 {
	days := int(utcDay(pickup).Sub(utcDay(now)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	best := 1.0
	bestWithin := math.MaxInt
	for _, u := range c.card.Urgency {
		if days <= u.WithinDays && u.WithinDays < bestWithin {
			best = u.Multiplier
			bestWithin = u.WithinDays
		}
	}
	return best
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lookup[K comparable](m map[K]float64, k K) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return 1.0
}
