package render_test

import (
	"context"
	"testing"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
	"github.com/okian/broodsheet/internal/render"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLinearToSRGB(t *testing.T) {
	Convey("Given linear components", t, func() {
		Convey("Then the endpoints map exactly", func() {
			So(render.LinearToSRGB(0), ShouldEqual, 0)
			So(render.LinearToSRGB(1), ShouldEqual, 255)
		})

		Convey("Then out-of-range input is clamped", func() {
			So(render.LinearToSRGB(-0.5), ShouldEqual, 0)
			So(render.LinearToSRGB(2), ShouldEqual, 255)
		})

		Convey("Then mid-range values follow the transfer curve", func() {
			// linear 0.5 -> sRGB ~188
			So(render.LinearToSRGB(0.5), ShouldEqual, 188)
		})

		Convey("Then hex rendering uses sRGB space", func() {
			So(render.HexColor([4]float64{1, 0, 0, 1}), ShouldEqual, "#ff0000")
			So(render.HexColor([4]float64{0, 0, 0, 1}), ShouldEqual, "#000000")
		})
	})
}

func TestSVGRenderer(t *testing.T) {
	Convey("Given a renderer and a derived creature", t, func() {
		r := render.NewSVGRenderer()

		health := model.RawStatDescriptor{100, 0.2, 0.1, 0.5, 0.4}
		meta := &model.SpeciesMeta{TamedBaseHealthMultiplier: 1}
		meta.FullStatsRaw[0] = &health
		meta.UsedStats[0] = true
		meta.EnabledColorRegions[0] = true

		creature := &model.Creature{
			Species:      "Dodo",
			Sex:          model.SexFemale,
			Level:        11,
			LevelHatched: 11,
		}

		red := &model.ColorDefinition{ID: 1, Name: "Red", RGBA: [4]float64{1, 0, 0, 1}}
		in := &render.Input{
			Creature: creature,
			Meta:     meta,
			Values:   stats.Values{},
			Game:     model.GameASA,
		}
		in.RegionColors[0] = red

		Convey("When rendering SVG", func() {
			body, contentType, err := r.Render(context.Background(), in, model.FormatSVG)

			Convey("Then a stat sheet is produced", func() {
				So(err, ShouldBeNil)
				So(contentType, ShouldEqual, render.ContentTypeSVG)
				So(string(body), ShouldContainSubstring, "<svg")
				So(string(body), ShouldContainSubstring, "Dodo")
				So(string(body), ShouldContainSubstring, "Level 11")
			})

			Convey("And region colors appear as sRGB swatches", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "#ff0000")
			})

			Convey("And no sprite image is embedded when absent", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldNotContainSubstring, "<image")
			})
		})

		Convey("When a sprite is present", func() {
			in.Sprite = []byte("png-bytes")
			body, _, err := r.Render(context.Background(), in, model.FormatSVG)

			Convey("Then it is embedded as a data URI", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "data:image/png;base64,")
			})
		})

		Convey("When asked for raster output", func() {
			_, _, err := r.Render(context.Background(), in, model.FormatPNG)

			Convey("Then the format is reported unsupported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unsupported output format")
			})
		})
	})
}
