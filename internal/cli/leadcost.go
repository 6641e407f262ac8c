package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/app"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/pricing"
)

type leadCostOptions struct {
	quantity    float64
	unit        string
	hazardClass int
	pickupDate  string
	temperature bool
	tier        string
	rates       string
}

// NewLeadCostCommand creates the lead-cost command. It needs no database.
func NewLeadCostCommand(rootOpts *RootOptions) *cobra.Command {
	o := &leadCostOptions{}

	cmd := &cobra.Command{
		Use:   "lead-cost",
		Short: "Preview the lead cost of a cargo against the rate card",
		Long: `Preview the lead cost a logistics partner would pay for a cargo.

The breakdown is printed as JSON with amounts in paise. The rate card comes
from --rates, then PRICING_RATES_FILE, then the built-in INR card.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeadCost(cmd, rootOpts, o)
		},
	}

	cmd.Flags().Float64Var(&o.quantity, "quantity", 0, "cargo quantity")
	cmd.Flags().StringVar(&o.unit, "unit", string(model.UnitMetricTons), "quantity unit (MT|KG|L)")
	cmd.Flags().IntVar(&o.hazardClass, "hazard-class", 0, "UN hazard class 1..9, 0 for non-hazardous")
	cmd.Flags().StringVar(&o.pickupDate, "pickup-date", "", "pickup date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&o.temperature, "temperature", false, "cargo needs temperature control")
	cmd.Flags().StringVar(&o.tier, "tier", string(model.TierFree), "partner subscription tier (FREE|STANDARD|PREMIUM)")
	cmd.Flags().StringVar(&o.rates, "rates", "", "YAML rate card file")

	return cmd
}

func runLeadCost(cmd *cobra.Command, rootOpts *RootOptions, o *leadCostOptions) error {
	in, err := o.input(rootOpts.Now())
	if err != nil {
		return err
	}

	rates := o.rates
	if rates == "" {
		rates = rootOpts.Config().Marketplace.PricingRatesFile
	}
	calc, err := app.Calculator(rates)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(calc.LeadCost(in))
}

func (o *leadCostOptions) input(now time.Time) (pricing.Input, error) {
	if o.quantity <= 0 {
		return pricing.Input{}, fmt.Errorf("--quantity must be positive")
	}
	unit := model.QuantityUnit(strings.ToUpper(o.unit))
	switch unit {
	case model.UnitMetricTons, model.UnitKilograms, model.UnitLitres:
	default:
		return pricing.Input{}, fmt.Errorf("unknown unit %q", o.unit)
	}
	if o.hazardClass < 0 || o.hazardClass > 9 {
		return pricing.Input{}, fmt.Errorf("--hazard-class must be between 0 and 9")
	}
	tier := model.SubscriptionTier(strings.ToUpper(o.tier))
	if !tier.Valid() {
		return pricing.Input{}, fmt.Errorf("unknown tier %q", o.tier)
	}

	pickup := now
	if o.pickupDate != "" {
		d, err := time.Parse(time.DateOnly, o.pickupDate)
		if err != nil {
			return pricing.Input{}, fmt.Errorf("--pickup-date: %w", err)
		}
		pickup = d
	}

	return pricing.Input{
		QuantityTons:          unit.Tons(o.quantity),
		HazardClass:           o.hazardClass,
		PickupDate:            pickup,
		Now:                   now,
		TemperatureControlled: o.temperature,
		Tier:                  tier,
	}, nil
}
