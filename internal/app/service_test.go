package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/okian/broodsheet/internal/adapters/mq/tasks"
	"github.com/okian/broodsheet/internal/adapters/repository"
	"github.com/okian/broodsheet/internal/app"
	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
	"github.com/okian/broodsheet/internal/render"
	"github.com/okian/broodsheet/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// syncTasks runs submitted tasks inline so tests observe cache writes
// deterministically.
type syncTasks struct{}

func (syncTasks) Submit(task tasks.Task) bool {
	_ = task(context.Background())
	return true
}

// countingCalculator counts invocations around the default formula.
type countingCalculator struct {
	calls atomic.Int64
	inner stats.Calculator
}

func (c *countingCalculator) Compute(ctx context.Context, meta *model.SpeciesMeta, cr *model.Creature) (stats.Values, error) {
	c.calls.Add(1)
	return c.inner.Compute(ctx, meta, cr)
}

// recordingRenderer captures the last input and counts invocations.
type recordingRenderer struct {
	calls atomic.Int64
	last  *render.Input
	inner render.Renderer
}

func (r *recordingRenderer) Render(ctx context.Context, in *render.Input, format string) ([]byte, string, error) {
	r.calls.Add(1)
	r.last = in
	return r.inner.Render(ctx, in, format)
}

// stubSprites serves fixed bytes, or nothing at all.
type stubSprites struct {
	base []byte
	mask []byte
}

func (s *stubSprites) FetchPair(context.Context, string, string) ([]byte, []byte) {
	return s.base, s.mask
}

func writeTables(t *testing.T) (colorPath, speciesPath string) {
	t.Helper()
	dir := t.TempDir()

	colors := []model.ColorDefinition{
		{ID: 1, Name: "Red", RGBA: [4]float64{1, 0, 0, 1}},
		{ID: 2, Name: "Blue", RGBA: [4]float64{0, 0, 1, 1}},
	}

	health := model.RawStatDescriptor{100, 0.2, 0.1, 0.5, 0.4}
	dodo := model.SpeciesMeta{TamedBaseHealthMultiplier: 1}
	dodo.FullStatsRaw[0] = &health
	dodo.UsedStats[0] = true
	dodo.EnabledColorRegions[0] = true
	dodo.EnabledColorRegions[1] = true
	// Region 3 stays disabled on purpose for the region-resolution scenario.

	species := map[string]model.SpeciesMeta{"Dodo": dodo}

	for name, v := range map[string]any{"colors.json": colors, "species.json": species} {
		raw, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "colors.json"), filepath.Join(dir, "species.json")
}

func newService(t *testing.T, opts ...app.Option) (*app.Service, *countingCalculator, *recordingRenderer) {
	t.Helper()
	colorPath, speciesPath := writeTables(t)

	calc := &countingCalculator{inner: stats.NewCalculator()}
	rend := &recordingRenderer{inner: render.NewSVGRenderer()}

	base := []app.Option{
		app.WithColorLookup(repository.NewColorLookup(colorPath)),
		app.WithSpeciesStore(repository.NewSpeciesStore(speciesPath)),
		app.WithCalculator(calc),
		app.WithRenderer(rend),
		app.WithTasks(syncTasks{}),
	}
	svc := app.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc, calc, rend
}

func body(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestInfographicOrchestration(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	levels := func(torpor int) []int {
		l := make([]int, model.StatSlots)
		l[model.TorporSlot] = torpor
		return l
	}
	zeros := make([]int, model.StatSlots)

	Convey("Given a started service", t, func() {
		svc, calc, rend := newService(t)

		Convey("When a valid wild creature is requested", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
			}
			out, err := svc.Infographic(ctx, body(t, req))

			Convey("Then levels derive from torpor plus dom spend", func() {
				So(err, ShouldBeNil)
				So(rend.last.Creature.Level, ShouldEqual, 11)
				So(rend.last.Creature.LevelHatched, ShouldEqual, 11)
			})

			Convey("And defaults fill the optional fields", func() {
				So(err, ShouldBeNil)
				So(rend.last.Creature.IsBred, ShouldBeFalse)
				So(rend.last.Creature.IsTamed, ShouldBeFalse)
				So(rend.last.Creature.TamingEffectiveness, ShouldEqual, 0)
				So(rend.last.Creature.Sex, ShouldEqual, model.SexUnknown)
			})

			Convey("And the response is SVG", func() {
				So(err, ShouldBeNil)
				So(out.ContentType, ShouldEqual, render.ContentTypeSVG)
				So(out.FromCache, ShouldBeFalse)
			})
		})

		Convey("When a bred creature is requested", func() {
			req := map[string]any{
				"species":             "Dodo",
				"levelsWild":          levels(10),
				"levelsDom":           zeros,
				"isBred":              true,
				"tamingEffectiveness": 0.3,
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then breeding forces full taming effectiveness", func() {
				So(err, ShouldBeNil)
				So(rend.last.Creature.IsTamed, ShouldBeTrue)
				So(rend.last.Creature.EffectiveTE, ShouldEqual, 1)
			})
		})

		Convey("When the species is unknown", func() {
			req := map[string]any{
				"species":    "Gryphon",
				"levelsWild": levels(5),
				"levelsDom":  zeros,
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the error names the species and nothing was computed", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"Gryphon"`)
				So(calc.calls.Load(), ShouldEqual, 0)
			})

			Convey("And no cache write occurred", func() {
				again, err2 := svc.Infographic(ctx, body(t, req))
				So(again, ShouldBeNil)
				So(errors.Is(err2, app.ErrBadInput), ShouldBeTrue)
			})
		})

		Convey("When levelsDom is missing entirely", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(5),
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the error cites the missing field", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "levelsDom")
			})
		})

		Convey("When levelsWild has the wrong shape", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": []int{1, 2, 3},
				"levelsDom":  zeros,
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the error cites the field", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "levelsWild")
			})
		})

		Convey("When the body is not valid JSON", func() {
			_, err := svc.Infographic(ctx, []byte("{nope"))

			Convey("Then it is a client-input error", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
			})
		})

		Convey("When the identical request is sent twice", func() {
			req := body(t, map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
			})
			first, err := svc.Infographic(ctx, req)
			So(err, ShouldBeNil)
			second, err := svc.Infographic(ctx, req)
			So(err, ShouldBeNil)

			Convey("Then the second is served from cache, byte-identical", func() {
				So(second.FromCache, ShouldBeTrue)
				So(second.Body, ShouldResemble, first.Body)
			})

			Convey("And neither stat computation nor rendering re-ran", func() {
				So(calc.calls.Load(), ShouldEqual, 1)
				So(rend.calls.Load(), ShouldEqual, 1)
			})
		})

		Convey("When a color is supplied for a disabled region", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
				"colors":     []int{1, 0, 0, 2, 0, 0},
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the disabled region resolves to no color", func() {
				So(err, ShouldBeNil)
				So(rend.last.RegionColors[3], ShouldBeNil)
			})

			Convey("And the enabled region resolves via the lookup", func() {
				So(err, ShouldBeNil)
				So(rend.last.RegionColors[0], ShouldNotBeNil)
				So(rend.last.RegionColors[0].Name, ShouldEqual, "Red")
			})

			Convey("And a zero ID on an enabled region stays uncolorized", func() {
				So(err, ShouldBeNil)
				So(rend.last.RegionColors[1], ShouldBeNil)
			})
		})

		Convey("When taming effectiveness is out of range", func() {
			req := map[string]any{
				"species":             "Dodo",
				"levelsWild":          levels(10),
				"levelsDom":           zeros,
				"tamingEffectiveness": 1.5,
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the error cites the field", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "tamingEffectiveness")
			})
		})

		Convey("When an unsupported format is requested", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
				"options":    map[string]any{"format": "gif"},
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then it is a client-input error", func() {
				So(errors.Is(err, app.ErrBadInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "gif")
			})
		})
	})

	Convey("Given a service whose sprite store has images", t, func() {
		svc, _, rend := newService(t, app.WithSpriteStore(&stubSprites{
			base: []byte("base-bytes"),
			mask: []byte("mask-bytes"),
		}))

		Convey("When a creature is rendered", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
			}
			_, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the sprite reaches the renderer", func() {
				So(err, ShouldBeNil)
				So(string(rend.last.Sprite), ShouldEqual, "base-bytes")
			})
		})
	})

	Convey("Given a service whose sprite store is empty", t, func() {
		svc, _, rend := newService(t, app.WithSpriteStore(&stubSprites{}))

		Convey("When a creature is rendered", func() {
			req := map[string]any{
				"species":    "Dodo",
				"levelsWild": levels(10),
				"levelsDom":  zeros,
			}
			out, err := svc.Infographic(ctx, body(t, req))

			Convey("Then the request still succeeds, imageless", func() {
				So(err, ShouldBeNil)
				So(out.Body, ShouldNotBeEmpty)
				So(rend.last.Sprite, ShouldBeNil)
			})
		})
	})
}

func TestSpeciesNames(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	Convey("Given a started service", t, func() {
		svc, _, _ := newService(t)

		Convey("Then it lists the known species", func() {
			So(svc.SpeciesNames(context.Background()), ShouldResemble, []string{"Dodo"})
		})
	})
}
