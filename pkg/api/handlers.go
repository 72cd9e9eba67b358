package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/paraphraser/pkg/buildinfo"
	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
	"github.com/matzehuels/paraphraser/pkg/pipeline"
)

// maxBodyBytes bounds POST bodies; the tree itself is further limited by
// errors.MaxTreeLength.
const maxBodyBytes = 2 * perrors.MaxTreeLength

// ParaphraseRequest is the body of POST /paraphrase.
type ParaphraseRequest struct {
	Tree    string   `json:"tree"`
	Limit   int      `json:"limit,omitempty"`
	Methods []string `json:"methods,omitempty"`
	Seed    uint64   `json:"seed,omitempty"`
	Nested  string   `json:"nested,omitempty"`
}

// ParaphraseResponse is the body of a successful paraphrase request.
type ParaphraseResponse struct {
	Paraphrases []Paraphrase `json:"paraphrases"`
	Total       int          `json:"total"`
}

// Paraphrase is one rewritten tree.
type Paraphrase struct {
	Tree string `json:"tree"`
}

// handleParaphraseQuery serves GET /paraphrase. Besides tree and limit it
// accepts repeated method parameters, seed and nested.
func (s *Server) handleParaphraseQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ParaphraseRequest{
		Tree:    q.Get("tree"),
		Methods: q["method"],
		Nested:  q.Get("nested"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "limit must be an integer, got %q", v))
			return
		}
		req.Limit = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v))
			return
		}
		req.Seed = n
	}
	s.paraphrase(w, r, req)
}

// handleParaphraseJSON serves POST /paraphrase.
func (s *Server) handleParaphraseJSON(w http.ResponseWriter, r *http.Request) {
	var req ParaphraseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = perrors.New(perrors.ErrCodeInvalidInput, "Please provide a syntax tree to paraphrase")
		} else {
			err = perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
		}
		s.writeError(w, err)
		return
	}
	s.paraphrase(w, r, req)
}

func (s *Server) paraphrase(w http.ResponseWriter, r *http.Request, req ParaphraseRequest) {
	nested := s.cfg.Nested
	if req.Nested != "" {
		p, err := paraphrase.ParseNestedPolicy(req.Nested)
		if err != nil {
			s.writeError(w, err)
			return
		}
		nested = p
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Tree:            req.Tree,
		Methods:         req.Methods,
		Limit:           req.Limit,
		Seed:            req.Seed,
		MaxCombinations: s.cfg.MaxCombinations,
		Nested:          nested,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := ParaphraseResponse{
		Paraphrases: make([]Paraphrase, len(res.Trees)),
		Total:       res.Total,
	}
	for i, t := range res.Trees {
		resp.Paraphrases[i] = Paraphrase{Tree: t}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request) {
	methods := paraphrase.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.String()
	}
	writeJSON(w, http.StatusOK, map[string][]string{"methods": names})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

// writeError writes err as plain text. Server-side failures are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := perrors.HTTPStatus(err)
	msg := perrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
