package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		_ = os.Setenv("COURTSIDE_ADDR", ":8080")
		_ = os.Setenv("COURTSIDE_MAX_ACTIVE_MATCHES", "10")
		_ = os.Setenv("COURTSIDE_SCORE_RATE_LIMIT", "0")
		defer func() {
			_ = os.Unsetenv("COURTSIDE_ADDR")
			_ = os.Unsetenv("COURTSIDE_MAX_ACTIVE_MATCHES")
			_ = os.Unsetenv("COURTSIDE_SCORE_RATE_LIMIT")
		}()

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.MaxActiveMatches, convey.ShouldEqual, 10)
			convey.So(cfg.ScoreRateLimit, convey.ShouldEqual, float64(0))
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		_ = os.Setenv("COURTSIDE_ADDR", " ")
		defer func() { _ = os.Unsetenv("COURTSIDE_ADDR") }()

		convey.Convey("Then configuration loading should fail", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestNewHTTPServer(t *testing.T) {
	convey.Convey("Given a started service and the default config", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := app.New(app.WithLogger(logger.Nop()))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(ctx, cfg, svc, logger.Nop())

		convey.Convey("Then the server should carry the configured address and timeouts", func() {
			convey.So(srv.Addr, convey.ShouldEqual, ":9080")
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
		})

		convey.Convey("Then API and docs routes should be served", func() {
			for _, path := range []string{"/teams", "/healthz", "/stats", "/openapi.yaml", "/api-docs"} {
				req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
				w := httptest.NewRecorder()
				srv.Handler.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then a full match should be playable through the handler", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
			loc := w.Header().Get("Location")

			w = httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, loc+"/scores",
				strings.NewReader(`{"side":"B","contributor":2,"points":3}`)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			w = httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, loc+"/finalize", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"result":"win_b"`)
		})
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a config listening on a free port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- run(ctx, cfg) }()

			time.Sleep(100 * time.Millisecond)
			cancel()

			convey.Convey("Then run should shut down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					t.Fatal("run did not return after cancel")
				}
			})
		})

		convey.Convey("When the roster file is missing", func() {
			cfg.RosterFile = "/nonexistent/roster.yaml"

			convey.Convey("Then run should fail before serving", func() {
				convey.So(run(context.Background(), cfg), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestEvery(t *testing.T) {
	convey.Convey("Given a short interval", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		calls := 0
		every(ctx, 10*time.Millisecond, func() { calls++ })

		convey.Convey("Then fn should run until the context ends", func() {
			convey.So(calls, convey.ShouldBeGreaterThan, 0)
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
		})
	})
}
