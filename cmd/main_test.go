package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/edgeboard/internal/adapters/cache"
	"github.com/okian/edgeboard/internal/adapters/datasource"
	"github.com/okian/edgeboard/internal/app"
	"github.com/okian/edgeboard/internal/config"
	"github.com/okian/edgeboard/pkg/logger"
)

func writeDataset(t *testing.T, root, id, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(id))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestWiring(t *testing.T) {
	convey.Convey("Given a file-backed configuration", t, func() {
		ctx := context.Background()
		root := t.TempDir()
		writeDataset(t, root, datasource.Games, "season,week,team,points_for,points_against,spread\n2024,1,KC,27,20,-3\n")

		cfg := config.New()
		cfg.DataDir = root

		convey.Convey("When the source and cache are built", func() {
			src, err := newSource(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			store, closeStore, err := newCache(ctx, cfg)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = closeStore() }()

			convey.So(store.Backend(), convey.ShouldEqual, "memory")

			convey.Convey("Then the API serves computed records end to end", func() {
				svc := app.New(cache.NewSource(src, store, time.Minute))
				mux := newMux(ctx, svc, logger.Nop())

				req := httptest.NewRequest(http.MethodGet, "/api/ats?season=2024", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"record_string":"1-0"`)
			})

			convey.Convey("Then a missing dataset maps to 404", func() {
				svc := app.New(cache.NewSource(src, store, time.Minute))
				mux := newMux(ctx, svc, logger.Nop())

				req := httptest.NewRequest(http.MethodGet, "/api/league?season=2024", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
			})

			convey.Convey("Then docs and health are mounted", func() {
				mux := newMux(ctx, app.New(src), logger.Nop())
				for _, path := range []string{"/healthz", "/api-docs", "/openapi.yaml", "/metrics"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})
	})

	convey.Convey("Given an unknown backend", t, func() {
		cfg := config.New()
		cfg.Source = "ftp"
		cfg.CacheBackend = "memcached"

		_, err := newSource(context.Background(), cfg, logger.Nop())
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)

		_, _, err = newCache(context.Background(), cfg)
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}
