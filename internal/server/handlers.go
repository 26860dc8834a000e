package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sphaso/treap/pkg/buildinfo"
	"github.com/sphaso/treap/pkg/errors"
	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/store"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// createTreeRequest is the POST /v1/trees payload. Either a key list or a
// full JSON tree document must be provided.
type createTreeRequest struct {
	Name     string          `json:"name"`
	Keys     []string        `json:"keys,omitempty"`
	Values   []string        `json:"values,omitempty"`
	Seed     uint64          `json:"seed,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
}

// treeSummary is the API view of a stored tree.
type treeSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listTreesResponse struct {
	Trees []treeSummary `json:"trees"`
}

func summarize(rec *store.Record, nodes int) treeSummary {
	return treeSummary{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		Nodes:     nodes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCreateTree(w http.ResponseWriter, r *http.Request) {
	var req createTreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := errors.ValidateTreeName(req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var t *treap.Treap[string, string]
	if len(req.Document) > 0 {
		var err error
		t, err = treapio.Unmarshal(req.Document)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse document"))
			return
		}
	} else {
		var err error
		t, err = s.runner.Build(r.Context(), pipeline.Options{
			Keys:   req.Keys,
			Values: req.Values,
			Seed:   req.Seed,
		})
		if err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeInvalidInput, err, "build tree")
			}
			s.writeError(w, r, err)
			return
		}
	}

	// Store the canonical document regardless of how the tree arrived.
	doc, err := treapio.Marshal(t)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "serialize tree"))
		return
	}

	rec := store.NewRecord(req.Name, doc)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "store tree %s", req.Name))
		return
	}

	writeJSON(w, http.StatusCreated, summarize(rec, t.Len()))
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "list trees"))
		return
	}

	resp := listTreesResponse{Trees: make([]treeSummary, 0, len(recs))}
	for _, rec := range recs {
		resp.Trees = append(resp.Trees, summarize(rec, 0))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(rec.Tree)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateTreeName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "delete tree %s", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetArt(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadTree(w, r)
	if !ok {
		return
	}

	style := r.URL.Query().Get("style")
	if style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q", style))
			return
		}
	}

	art, err := s.runner.Art(r.Context(), t, pipeline.Options{Style: style})
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render art"))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(append([]byte(art), '\n'))
}

func (s *Server) handleGetDOT(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadTree(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{
		Formats:  []string{pipeline.FormatDOT},
		Detailed: r.URL.Query().Get("detailed") == "true",
	}
	artifacts, err := s.runner.Artifacts(r.Context(), t, opts)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render dot"))
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write(artifacts[pipeline.FormatDOT])
}

// loadRecord fetches the stored record named in the URL, writing the error
// response itself when the lookup fails.
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateTreeName(name); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "load tree %s", name))
		return nil, false
	}
	if rec == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeTreeNotFound, "tree %s not found", name))
		return nil, false
	}
	return rec, true
}

// loadTree fetches a stored record and decodes its tree document.
func (s *Server) loadTree(w http.ResponseWriter, r *http.Request) (*treap.Treap[string, string], bool) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return nil, false
	}
	t, err := treapio.Unmarshal(rec.Tree)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "stored tree %s is corrupt", rec.Name))
		return nil, false
	}
	return t, true
}
