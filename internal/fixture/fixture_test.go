package fixture_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/okian/babynames/internal/fixture"
	"github.com/okian/babynames/internal/loader"
	. "github.com/smartystreets/goconvey/convey"
)

func TestArchive(t *testing.T) {
	Convey("Given two entries", t, func() {
		data, err := fixture.Archive(
			fixture.YearFile(1999, "Alice,F,100", "Bob,M,50"),
			fixture.Entry{Name: "NationalReadMe.pdf", Body: "%PDF"},
		)
		So(err, ShouldBeNil)

		Convey("Then the zip holds them in order", func() {
			zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			So(err, ShouldBeNil)
			So(zr.File, ShouldHaveLength, 2)
			So(zr.File[0].Name, ShouldEqual, "yob1999.txt")
			So(zr.File[1].Name, ShouldEqual, "NationalReadMe.pdf")

			rc, err := zr.File[0].Open()
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(rc)
			_ = rc.Close()
			So(string(body), ShouldEqual, "Alice,F,100\r\nBob,M,50\r\n")
		})
	})
}

func TestSynthetic(t *testing.T) {
	Convey("Given the default synthetic config", t, func() {
		cfg := fixture.DefaultConfig()
		cfg.FromYear, cfg.ToYear = 1950, 1952

		Convey("Then the archive has one entry per year", func() {
			data, err := fixture.Synthetic(cfg)
			So(err, ShouldBeNil)
			zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			So(err, ShouldBeNil)
			So(zr.File, ShouldHaveLength, 3)
			So(zr.File[2].Name, ShouldEqual, "yob1952.txt")
		})

		Convey("Then two builds are identical", func() {
			a, _ := fixture.Synthetic(cfg)
			b, _ := fixture.Synthetic(cfg)
			So(bytes.Equal(a, b), ShouldBeTrue)
		})

		Convey("Then an inverted range fails", func() {
			cfg.FromYear = 2000
			_, err := fixture.Synthetic(cfg)
			So(errors.Is(err, fixture.ErrYearRange), ShouldBeTrue)
		})

		Convey("Then years without four digits are rejected", func() {
			for _, r := range [][2]int{{10000, 10001}, {-5, 3}, {9998, 10000}} {
				cfg.FromYear, cfg.ToYear = r[0], r[1]
				_, err := fixture.Synthetic(cfg)
				So(errors.Is(err, fixture.ErrYearRange), ShouldBeTrue)
			}
		})

		Convey("Then the boundary years load back", func() {
			cfg.FromYear, cfg.ToYear = 0, 1
			data, err := fixture.Synthetic(cfg)
			So(err, ShouldBeNil)
			recs, err := loader.ParseArchive(data)
			So(err, ShouldBeNil)
			So(recs[0].Year, ShouldEqual, 0)

			cfg.FromYear, cfg.ToYear = 9999, 9999
			data, err = fixture.Synthetic(cfg)
			So(err, ShouldBeNil)
			_, err = loader.ParseArchive(data)
			So(err, ShouldBeNil)
		})
	})
}
