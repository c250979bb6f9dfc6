package aggregate_test

import (
	"math"
	"testing"

	"github.com/okian/babynames/internal/domain/aggregate"
	"github.com/okian/babynames/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(name string, sex model.Sex, count, year int) model.Record {
	return model.Record{Name: name, Sex: sex, Count: count, Year: year}
}

func TestProportions(t *testing.T) {
	Convey("Given one F and one M record in the same year", t, func() {
		rows := aggregate.Proportions([]model.Record{
			rec("Alice", model.Female, 100, 1999),
			rec("Bob", model.Male, 50, 1999),
		})

		Convey("Then each is the whole of its group", func() {
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Name, ShouldEqual, "Alice")
			So(rows[0].Year, ShouldEqual, 1999)
			So(rows[0].Count, ShouldEqual, 100)
			So(rows[0].Proportion, ShouldEqual, 1.0)
			So(rows[1].Name, ShouldEqual, "Bob")
			So(rows[1].Proportion, ShouldEqual, 1.0)
		})
	})

	Convey("Given duplicate name rows in the same group", t, func() {
		rows := aggregate.Proportions([]model.Record{
			rec("Alice", model.Female, 60, 2001),
			rec("Alice", model.Female, 40, 2001),
		})

		Convey("Then both are retained and shares are additive", func() {
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Proportion, ShouldAlmostEqual, 0.6, 1e-12)
			So(rows[1].Proportion, ShouldAlmostEqual, 0.4, 1e-12)
		})
	})

	Convey("Given many groups", t, func() {
		var records []model.Record
		for year := 1950; year < 1960; year++ {
			for i, name := range []string{"Ann", "Beth", "Cora", "Dora", "Eve"} {
				records = append(records, rec(name, model.Female, (i+1)*(year-1940), year))
				records = append(records, rec(name+"o", model.Male, 7*(i+2)+year%13, year))
			}
		}
		rows := aggregate.Proportions(records)

		Convey("Then proportions sum to one per group and stay in [0,1]", func() {
			sums := make(map[model.GroupKey]float64)
			for _, r := range rows {
				So(r.Proportion, ShouldBeBetweenOrEqual, 0, 1)
				sums[r.Key()] += r.Proportion
			}
			So(sums, ShouldHaveLength, 20)
			for _, s := range sums {
				So(math.Abs(s-1), ShouldBeLessThanOrEqualTo, 1e-9)
			}
		})

		Convey("Then input order is preserved", func() {
			for i := range records {
				So(rows[i].Record, ShouldResemble, records[i])
			}
		})
	})

	Convey("Given a group whose counts are all zero", t, func() {
		rows := aggregate.Proportions([]model.Record{
			rec("Zed", model.Male, 0, 1900),
			rec("Zoe", model.Female, 5, 1900),
		})

		Convey("Then the zero group gets proportion 0 instead of NaN", func() {
			So(math.IsNaN(rows[0].Proportion), ShouldBeFalse)
			So(rows[0].Proportion, ShouldEqual, 0)
			So(rows[1].Proportion, ShouldEqual, 1)
		})
	})

	Convey("Given an empty table", t, func() {
		rows := aggregate.Proportions(nil)

		Convey("Then the result is empty", func() {
			So(rows, ShouldBeEmpty)
		})
	})
}

func TestSpanAndDescribe(t *testing.T) {
	Convey("Given an enriched table", t, func() {
		rows := aggregate.Proportions([]model.Record{
			rec("A", model.Female, 1, 1990),
			rec("B", model.Male, 1, 1880),
			rec("C", model.Female, 1, 2020),
			rec("D", model.Female, 1, 1990),
		})

		Convey("Then Span reports the year bounds", func() {
			lo, hi, ok := aggregate.Span(rows)
			So(ok, ShouldBeTrue)
			So(lo, ShouldEqual, 1880)
			So(hi, ShouldEqual, 2020)
		})

		Convey("Then Describe counts years and groups", func() {
			So(aggregate.Describe(rows), ShouldResemble, aggregate.Shape{Records: 4, Years: 3, Groups: 3})
		})

		Convey("Then Years is sorted and distinct", func() {
			So(aggregate.Years(rows), ShouldResemble, []int{1880, 1990, 2020})
		})
	})

	Convey("Given an empty table", t, func() {
		_, _, ok := aggregate.Span(nil)

		Convey("Then Span is not ok", func() {
			So(ok, ShouldBeFalse)
		})
	})
}
