package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/edgeboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestOptional(t *testing.T) {
	convey.Convey("Given present and absent values", t, func() {
		present := model.Some(0.0)
		absent := model.None[float64]()

		convey.Convey("Then zero is still present", func() {
			v, ok := present.Get()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, 0.0)
			convey.So(absent.Valid(), convey.ShouldBeFalse)
			convey.So(absent.Or(-1), convey.ShouldEqual, -1)
			convey.So(absent.IsZero(), convey.ShouldBeTrue)
		})

		convey.Convey("Then JSON distinguishes null from 0", func() {
			b, err := json.Marshal(struct {
				A model.Float `json:"a"`
				B model.Float `json:"b"`
			}{present, absent})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, `{"a":0,"b":null}`)
		})

		convey.Convey("When decoding", func() {
			var out struct {
				A model.Float `json:"a"`
				B model.Float `json:"b"`
			}
			convey.So(json.Unmarshal([]byte(`{"a":1.5,"b":null}`), &out), convey.ShouldBeNil)
			convey.So(out.A.Or(0), convey.ShouldEqual, 1.5)
			convey.So(out.B.Valid(), convey.ShouldBeFalse)
		})
	})
}

func TestRecordKeys(t *testing.T) {
	convey.Convey("Given rows of each kind", t, func() {
		g := model.GameRecord{Season: 2024, Week: 3, Team: "KC", Conference: "AFC", Division: "AFC West"}
		m := model.TeamWeekMetric{Season: 2024, Week: 3, Team: "KC"}
		p := model.PlayerGradeRow{Season: 2024, Week: 3, Team: "KC", Position: "QB"}

		convey.Convey("Then they share the season-week-team key", func() {
			want := model.Key{Season: 2024, Week: 3, Team: "KC"}
			convey.So(g.Key(), convey.ShouldResemble, want)
			convey.So(m.Key(), convey.ShouldResemble, want)
			convey.So(p.Key(), convey.ShouldResemble, want)
			conf, div := g.Grouping()
			convey.So(conf, convey.ShouldEqual, "AFC")
			convey.So(div, convey.ShouldEqual, "AFC West")
		})

		convey.Convey("Then all eleven categories are listed", func() {
			convey.So(len(model.Categories), convey.ShouldEqual, 11)
			convey.So(model.Categories[len(model.Categories)-1], convey.ShouldEqual, model.Coverage)
		})
	})
}
