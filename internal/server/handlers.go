package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/dagcheck/pkg/buildinfo"
	dcerrors "github.com/matzehuels/dagcheck/pkg/errors"
	"github.com/matzehuels/dagcheck/pkg/graph"
	"github.com/matzehuels/dagcheck/pkg/pipeline"
)

// CacheHeader reports whether /v1/validate was answered from the cache.
const CacheHeader = "X-Dagcheck-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	strict := s.opts.Strict
	if v := r.URL.Query().Get("strict"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, dcerrors.New(dcerrors.ErrCodeInvalidInput, "strict: %q is not a boolean", v))
			return
		}
		strict = b
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	g, err := graph.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out, err := s.runner.Validate(r.Context(), g, pipeline.Options{
		Strict: strict,
		TTL:    s.opts.CacheTTL,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if out.Cached {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	s.writeJSON(w, http.StatusOK, out.Result)
}
