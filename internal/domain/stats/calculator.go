package stats

import (
	"context"

	"github.com/okian/broodsheet/internal/domain/model"
)

// HealthSlot carries the tamed-base-health multiplier.
const HealthSlot = 0

// Values holds the two computed value sets for a creature: the values at
// breeding time (no domesticated levels) and the current values.
type Values struct {
	Breeding [model.StatSlots]float64
	Current  [model.StatSlots]float64
}

// Calculator computes stat values from species metadata and a derived
// creature. Implementations are injected into the orchestrator so the core
// stays testable with stubs.
type Calculator interface {
	Compute(ctx context.Context, meta *model.SpeciesMeta, c *model.Creature) (Values, error)
}

// DefaultCalculator implements the standard additive/multiplicative stat
// formula over the normalized descriptors produced by extraction. The server
// multipliers are already folded into the table, so no further scaling
// happens here.
type DefaultCalculator struct{}

// NewCalculator returns the default stat calculator.
func NewCalculator() *DefaultCalculator {
	return &DefaultCalculator{}
}

// Compute derives both value sets. Unused stat slots yield zero.
func (dc *DefaultCalculator) Compute(_ context.Context, meta *model.SpeciesMeta, c *model.Creature) (Values, error) {
	var v Values
	for i := 0; i < model.StatSlots; i++ {
		raw := meta.FullStatsRaw[i]
		if raw == nil {
			continue
		}
		wild := c.LevelsWild[i] + c.LevelsMutated[i]
		v.Breeding[i] = dc.value(meta, c, raw, i, wild, 0)
		v.Current[i] = dc.value(meta, c, raw, i, wild, c.LevelsDom[i])
	}
	return v, nil
}

func (dc *DefaultCalculator) value(meta *model.SpeciesMeta, c *model.Creature, raw *model.RawStatDescriptor, slot, wild, dom int) float64 {
	base := raw[model.StatBaseValue]
	v := base * (1 + float64(wild)*raw[model.StatIncPerWildLevel])

	if c.IsTamed {
		if slot == HealthSlot {
			v *= meta.TamedBaseHealthMultiplier
		}
		if c.IsBred {
			v *= 1 + c.ImprintingBonus*meta.StatImprintMultipliers[slot]
		}
		v += raw[model.StatAddWhenTamed]
		if raw[model.StatMultAffinity] > 0 {
			v *= 1 + c.EffectiveTE*raw[model.StatMultAffinity]
		}
	}

	return v * (1 + float64(dom)*raw[model.StatIncPerDomLevel])
}
