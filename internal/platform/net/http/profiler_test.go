package http_test

import (
	"net/http"
	"testing"

	phttp "eshoppers/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestMountProfiler(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(r, "debug/", true)

	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if rec := serve(r, http.MethodGet, p); rec.Code != http.StatusOK {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}
	if rec := serve(r, http.MethodGet, "/debug"); rec.Code != http.StatusMovedPermanently {
		t.Fatalf("/debug = %d, want a redirect to pprof", rec.Code)
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Get("/", func(http.ResponseWriter, *http.Request) {})
	phttp.MountProfiler(r, "/debug", false)
	if rec := serve(r, http.MethodGet, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler answered %d", rec.Code)
	}
}
