package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the babynames binary entrypoint", t, func() {
		convey.Convey("When asked for its version", func() {
			convey.Convey("Then it exits cleanly", func() {
				convey.So(run([]string{"--version"}), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When writing a fixture and querying it", func() {
			path := filepath.Join(t.TempDir(), "names.zip")

			convey.Convey("Then both commands succeed", func() {
				convey.So(run([]string{"fixture", "--out", path, "--from", "1950", "--to", "1952"}), convey.ShouldEqual, 0)
				_, err := os.Stat(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(run([]string{"trend", "Emma", "--source", path}), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the command is unknown", func() {
			convey.Convey("Then it exits with status 1", func() {
				convey.So(run([]string{"no-such-command"}), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("BABYNAMES_ADDR", "")

			convey.Convey("Then it exits with status 1", func() {
				convey.So(run([]string{"trend", "Emma"}), convey.ShouldEqual, 1)
			})
		})
	})
}
