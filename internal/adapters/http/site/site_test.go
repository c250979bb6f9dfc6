package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			Register(ctx, mux)

			Convey("Then / redirects to the dashboard", func() {
				req := httptest.NewRequest("GET", "/", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusFound)
				So(w.Header().Get("Location"), ShouldEqual, "/dashboard")
			})

			Convey("And /about renders the markdown as HTML", func() {
				req := httptest.NewRequest("GET", "/about", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				body := w.Body.String()
				So(body, ShouldContainSubstring, "<h2>How to Use This App</h2>")
				So(body, ShouldContainSubstring, "<table>")
				So(body, ShouldContainSubstring, "<code>/span</code>")
			})

			Convey("And /about answers HEAD but rejects writes", func() {
				req := httptest.NewRequest("HEAD", "/about", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				req = httptest.NewRequest("POST", "/about", nil)
				w = httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
			})

			Convey("And unknown root subpaths are 404", func() {
				req := httptest.NewRequest("GET", "/some-asset", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRenderPage(t *testing.T) {
	Convey("Given markdown", t, func() {
		page, err := RenderPage("Title", []byte("# Hello\n\n*world*\n"))

		Convey("Then a full page is produced", func() {
			So(err, ShouldBeNil)
			So(string(page), ShouldStartWith, "<!doctype html>")
			So(string(page), ShouldContainSubstring, "<title>Title</title>")
			So(string(page), ShouldContainSubstring, "<h1>Hello</h1>")
			So(string(page), ShouldContainSubstring, "<em>world</em>")
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		So(ErrGenerate, ShouldNotBeNil)
		So(ErrServe, ShouldNotBeNil)
		So(ErrGenerate, ShouldNotEqual, ErrServe)
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
