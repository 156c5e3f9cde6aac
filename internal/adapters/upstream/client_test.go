package upstream_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/statsboard/internal/adapters/upstream"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClientFetch(t *testing.T) {
	Convey("Given a stats server", t, func() {
		var gotUA, gotReferer, gotAccept string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotReferer = r.Header.Get("Referer")
			gotAccept = r.Header.Get("Accept")
			switch r.URL.Path {
			case "/ok":
				_, _ = w.Write([]byte(`{"stats":[]}`))
			case "/big":
				_, _ = w.Write([]byte(strings.Repeat("x", 64)))
			default:
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			}
		}))
		defer srv.Close()

		client := upstream.New(
			upstream.WithUserAgent("test-agent"),
			upstream.WithHeader("Referer", "https://www.nba.com/"),
			upstream.WithTimeout(time.Second),
			upstream.WithMaxBodyBytes(32),
		)
		ctx := context.Background()

		Convey("When the page is served with 200", func() {
			body, err := client.Fetch(ctx, srv.URL+"/ok")

			Convey("Then the body is returned and headers are sent", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `{"stats":[]}`)
				So(gotUA, ShouldEqual, "test-agent")
				So(gotReferer, ShouldEqual, "https://www.nba.com/")
				So(gotAccept, ShouldEqual, "application/json")
			})
		})

		Convey("When the server answers 500", func() {
			_, err := client.Fetch(ctx, srv.URL+"/fail")

			Convey("Then the error is a status error of kind unavailable", func() {
				So(errors.Is(err, upstream.ErrUnavailable), ShouldBeTrue)
				var se *upstream.StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.StatusCode, ShouldEqual, http.StatusInternalServerError)
				So(se.Body, ShouldEqual, "boom")
			})
		})

		Convey("When the body exceeds the cap", func() {
			_, err := client.Fetch(ctx, srv.URL+"/big")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, upstream.ErrBodyTooLarge), ShouldBeTrue)
			})
		})

		Convey("When the server is unreachable", func() {
			addr := srv.URL
			srv.Close()
			_, err := client.Fetch(ctx, addr+"/ok")

			Convey("Then the error is of kind unavailable", func() {
				So(errors.Is(err, upstream.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestClientRateLimit(t *testing.T) {
	Convey("Given a rate limited client", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := upstream.New(upstream.WithRateLimit(1, 1))

		Convey("When the context is canceled while waiting for a token", func() {
			_, err := client.Fetch(context.Background(), srv.URL)
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err = client.Fetch(ctx, srv.URL)

			Convey("Then the request is not sent and the page counts as unavailable", func() {
				So(errors.Is(err, upstream.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}
