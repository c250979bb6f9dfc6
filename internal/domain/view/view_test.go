package view_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/babynames/internal/domain/aggregate"
	"github.com/okian/babynames/internal/domain/model"
	"github.com/okian/babynames/internal/domain/view"
)

func table() []model.Row {
	return aggregate.Proportions([]model.Record{
		{Name: "Jordan", Sex: model.Female, Count: 10, Year: 1990},
		{Name: "Mary", Sex: model.Female, Count: 90, Year: 1990},
		{Name: "Jordan", Sex: model.Male, Count: 40, Year: 1990},
		{Name: "John", Sex: model.Male, Count: 60, Year: 1990},
		{Name: "Jordan", Sex: model.Female, Count: 30, Year: 1995},
		{Name: "Mary", Sex: model.Female, Count: 70, Year: 1995},
		{Name: "Jordan", Sex: model.Male, Count: 40, Year: 1995},
		{Name: "John", Sex: model.Male, Count: 10, Year: 1995},
		{Name: "Jordan", Sex: model.Female, Count: 5, Year: 2005},
		{Name: "Mary", Sex: model.Female, Count: 5, Year: 2005},
	})
}

func filters(name string) view.Filters {
	f := view.DefaultFilters()
	f.Name = name
	return f
}

func TestFilter(t *testing.T) {
	Convey("Given the enriched table", t, func() {
		rows := table()

		Convey("Then names match case-insensitively and exactly", func() {
			So(view.Filter(rows, filters("jordan")), ShouldHaveLength, 4)
			So(view.Filter(rows, filters("JORDAN")), ShouldHaveLength, 4)
			So(view.Filter(rows, filters("Jord")), ShouldBeEmpty)
		})

		Convey("Then an absent name gives an empty subset", func() {
			So(view.Filter(rows, filters("Zebulon")), ShouldBeEmpty)
		})

		Convey("Then a blank name gives an empty subset", func() {
			So(view.Filter(rows, filters("  ")), ShouldBeEmpty)
		})

		Convey("Then the year range is inclusive", func() {
			f := filters("Jordan")
			f.YearMin, f.YearMax = 1995, 2005
			got := view.Filter(rows, f)
			So(got, ShouldHaveLength, 3)
			So(got[0].Year, ShouldEqual, 1995)
			So(got[2].Year, ShouldEqual, 2005)
		})

		Convey("Then a range outside the data span is empty", func() {
			f := filters("Jordan")
			f.YearMin, f.YearMax = 1800, 1850
			So(view.Filter(rows, f), ShouldBeEmpty)
		})

		Convey("Then sex toggles drop rows", func() {
			f := filters("Jordan")
			f.Male = false
			got := view.Filter(rows, f)
			So(got, ShouldHaveLength, 2)
			for _, r := range got {
				So(r.Sex, ShouldEqual, model.Female)
			}
		})

		Convey("Then the input table is not modified", func() {
			before := len(rows)
			_ = view.Filter(rows, filters("Jordan"))
			So(rows, ShouldHaveLength, before)
			So(rows[0].Name, ShouldEqual, "Jordan")
		})
	})

	Convey("Given inverted years", t, func() {
		f := filters("Jordan")
		f.YearMin, f.YearMax = 2000, 1900
		So(errors.Is(f.Validate(), view.ErrInvalidFilters), ShouldBeTrue)
		So(view.DefaultFilters().Validate(), ShouldBeNil)
	})
}

func TestRender(t *testing.T) {
	Convey("Given a name present in both sexes", t, func() {
		v := view.Render(table(), filters("jordan"))

		Convey("Then the view is populated", func() {
			So(v.Empty, ShouldBeFalse)
			So(v.Message, ShouldBeEmpty)
			So(v.Rows, ShouldHaveLength, 4)
		})

		Convey("Then the most popular year is the year of max count, first wins", func() {
			So(v.MostPopularYear, ShouldEqual, 1990)
			So(v.Summary, ShouldEqual, "The name 'jordan' was most popular in 1990.")
		})

		Convey("Then the proportion chart has one series per sex", func() {
			So(v.Proportion.Kind, ShouldEqual, view.KindLine)
			So(v.Proportion.Series, ShouldHaveLength, 2)
			female := v.Proportion.Series[0]
			So(female.Sex, ShouldEqual, model.Female)
			So(female.Points, ShouldResemble, []view.Point{{Year: 1990, Value: 0.1}, {Year: 1995, Value: 0.3}})
			So(v.Proportion.XMin, ShouldEqual, 1900)
			So(v.Proportion.XMax, ShouldEqual, 2000)
		})

		Convey("Then the count chart sums counts per year and sex", func() {
			So(v.Counts.Kind, ShouldEqual, view.KindBar)
			male := v.Counts.Series[1]
			So(male.Sex, ShouldEqual, model.Male)
			So(male.Points, ShouldResemble, []view.Point{{Year: 1990, Value: 40}, {Year: 1995, Value: 40}})
		})

		Convey("Then the table lists year, sex, count and prop", func() {
			So(v.Table.Columns, ShouldResemble, []string{"year", "sex", "count", "prop"})
			So(v.Table.Total, ShouldEqual, 4)
			So(v.Table.Rows[0], ShouldResemble, view.TableRow{Year: 1990, Sex: model.Female, Count: 10, Prop: 0.1})
		})
	})

	Convey("Given a table row limit", t, func() {
		v := view.Render(table(), filters("Jordan"), view.WithMaxTableRows(2))

		Convey("Then the listing is truncated but the view is not", func() {
			So(v.Table.Rows, ShouldHaveLength, 2)
			So(v.Table.Total, ShouldEqual, 4)
			So(v.Table.Truncated, ShouldBeTrue)
			So(v.Rows, ShouldHaveLength, 4)
		})
	})

	Convey("Given a name with no match", t, func() {
		v := view.Render(table(), filters("Zebulon"))

		Convey("Then an empty view with a message is returned", func() {
			So(v.Empty, ShouldBeTrue)
			So(v.Message, ShouldEqual, view.MessageNoData)
			So(v.MostPopularYear, ShouldEqual, 0)
			So(v.Proportion.Empty(), ShouldBeTrue)
			So(v.Counts.Series, ShouldBeEmpty)
			So(v.Table.Rows, ShouldBeEmpty)
		})
	})

	Convey("Given no name", t, func() {
		v := view.Render(table(), view.DefaultFilters())

		Convey("Then the view asks for a name", func() {
			So(v.Empty, ShouldBeTrue)
			So(v.Message, ShouldEqual, view.MessageNoName)
		})
	})

	Convey("Given an empty table", t, func() {
		v := view.Render(nil, filters("Jordan"))
		So(v.Empty, ShouldBeTrue)
	})

	Convey("Given ties on count", t, func() {
		rows := []model.Row{
			{Record: model.Record{Name: "Ann", Sex: model.Female, Count: 7, Year: 1950}},
			{Record: model.Record{Name: "Ann", Sex: model.Female, Count: 7, Year: 1940}},
		}
		So(view.MostPopularYear(rows), ShouldEqual, 1950)
		So(view.MostPopularYear(nil), ShouldEqual, 0)
	})
}
