package stats_test

import (
	"context"
	"testing"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApplyMultiplier(t *testing.T) {
	Convey("Given a raw stat descriptor and a server multiplier", t, func() {
		raw := model.RawStatDescriptor{100, 0.2, 0.1, 0.5, 0.4}
		mult := model.StatMultiplier{2, 3, 4, 5}

		Convey("When the multiplier is applied", func() {
			out := stats.ApplyMultiplier(raw, mult)

			Convey("Then the base value is unchanged", func() {
				So(out[model.StatBaseValue], ShouldEqual, 100)
			})

			Convey("And the wild increment scales by the wild factor", func() {
				So(out[model.StatIncPerWildLevel], ShouldEqual, 0.2*5)
			})

			Convey("And the dom increment scales by the dom factor", func() {
				So(out[model.StatIncPerDomLevel], ShouldEqual, 0.1*4)
			})

			Convey("And the taming add scales by the taming-add factor", func() {
				So(out[model.StatAddWhenTamed], ShouldEqual, 0.5*2)
			})

			Convey("And the affinity scales by the taming-mult factor", func() {
				So(out[model.StatMultAffinity], ShouldEqual, 0.4*3)
			})
		})

		Convey("When the taming add is zero", func() {
			raw[model.StatAddWhenTamed] = 0
			out := stats.ApplyMultiplier(raw, mult)

			Convey("Then it stays bit-identical to the input", func() {
				So(out[model.StatAddWhenTamed], ShouldEqual, 0)
			})
		})

		Convey("When the taming add is negative", func() {
			raw[model.StatAddWhenTamed] = -1
			out := stats.ApplyMultiplier(raw, mult)

			Convey("Then the sentinel is not amplified", func() {
				So(out[model.StatAddWhenTamed], ShouldEqual, -1)
			})
		})

		Convey("When the affinity is negative", func() {
			raw[model.StatMultAffinity] = -0.05
			out := stats.ApplyMultiplier(raw, mult)

			Convey("Then the sentinel is not amplified", func() {
				So(out[model.StatMultAffinity], ShouldEqual, -0.05)
			})
		})

		Convey("When the identity multiplier is applied", func() {
			out := stats.ApplyMultiplier(raw, model.IdentityMultiplier())

			Convey("Then the descriptor is unchanged", func() {
				So(out, ShouldResemble, raw)
			})
		})
	})
}

func TestLevelDerivation(t *testing.T) {
	Convey("Given wild and domesticated level arrays", t, func() {
		var wild, dom [model.StatSlots]int
		wild[model.TorporSlot] = 10

		Convey("When no domesticated levels were spent", func() {
			Convey("Then level and hatched level are torpor plus one", func() {
				So(stats.Level(wild, dom), ShouldEqual, 11)
				So(stats.LevelHatched(wild), ShouldEqual, 11)
			})
		})

		Convey("When domesticated levels were spent", func() {
			dom[0] = 3
			dom[7] = 2

			Convey("Then they add to the total level only", func() {
				So(stats.Level(wild, dom), ShouldEqual, 16)
				So(stats.LevelHatched(wild), ShouldEqual, 11)
			})
		})

		Convey("When wild levels exist outside the torpor slot", func() {
			wild[0] = 40

			Convey("Then only the torpor slot drives the baseline", func() {
				So(stats.Level(wild, dom), ShouldEqual, 11)
			})
		})
	})
}

func TestDefaultCalculator(t *testing.T) {
	Convey("Given species metadata with one used stat", t, func() {
		health := model.RawStatDescriptor{100, 0.2, 0.05, 50, 0.4}
		meta := &model.SpeciesMeta{TamedBaseHealthMultiplier: 1}
		meta.FullStatsRaw[0] = &health
		meta.UsedStats[0] = true

		calc := stats.NewCalculator()

		Convey("When computing values for a wild creature", func() {
			c := &model.Creature{Species: "Dodo"}
			c.LevelsWild[0] = 5

			v, err := calc.Compute(context.Background(), meta, c)
			So(err, ShouldBeNil)

			Convey("Then only base and wild levels contribute", func() {
				So(v.Current[0], ShouldAlmostEqual, 100*(1+5*0.2))
				So(v.Breeding[0], ShouldEqual, v.Current[0])
			})

			Convey("And unused slots stay zero", func() {
				So(v.Current[1], ShouldEqual, 0)
			})
		})

		Convey("When computing values for a tamed creature", func() {
			c := &model.Creature{Species: "Dodo", IsTamed: true, EffectiveTE: 0.5}
			c.LevelsWild[0] = 5
			c.LevelsDom[0] = 2

			v, err := calc.Compute(context.Background(), meta, c)
			So(err, ShouldBeNil)

			Convey("Then taming bonuses and dom levels apply", func() {
				atBreeding := (100*(1+5*0.2) + 50) * (1 + 0.5*0.4)
				So(v.Breeding[0], ShouldAlmostEqual, atBreeding)
				So(v.Current[0], ShouldAlmostEqual, atBreeding*(1+2*0.05))
			})
		})
	})
}
