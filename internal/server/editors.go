package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dagcheck/pkg/dagcheck"
	"github.com/matzehuels/dagcheck/pkg/editor"
	dcerrors "github.com/matzehuels/dagcheck/pkg/errors"
	"github.com/matzehuels/dagcheck/pkg/graph"
)

type editorView struct {
	ID     string          `json:"id"`
	Graph  graph.Graph     `json:"graph"`
	Status dagcheck.Result `json:"status"`
}

type createEditorRequest struct {
	Empty bool         `json:"empty"`
	Graph *graph.Graph `json:"graph,omitempty"`
}

type addNodeRequest struct {
	Label string         `json:"label"`
	Type  graph.Category `json:"type"`
}

type connectRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type moveRequest struct {
	Position graph.Position `json:"position"`
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

func view(id string, ed *editor.Editor) editorView {
	return editorView{ID: id, Graph: ed.Graph(), Status: ed.Status()}
}

// editorFor resolves the {id} URL parameter, writing a 404 when absent.
func (s *Server) editorFor(w http.ResponseWriter, r *http.Request) (string, *editor.Editor, bool) {
	id := chi.URLParam(r, "id")
	ed, err := s.sessions.get(id)
	if err != nil {
		s.writeError(w, err)
		return "", nil, false
	}
	return id, ed, true
}

func (s *Server) handleCreateEditor(w http.ResponseWriter, r *http.Request) {
	var req createEditorRequest
	// The body is optional: an empty POST opens the default two-node editor.
	if err := s.decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, err)
		return
	}

	var opts []editor.Option
	switch {
	case req.Graph != nil:
		opts = append(opts, editor.WithGraph(*req.Graph))
	case req.Empty:
		opts = append(opts, editor.WithEmpty())
	}

	id, ed, err := s.sessions.create(opts...)
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorBody{
			Code:    dcerrors.GetCode(err),
			Message: dcerrors.UserMessage(err),
		})
		return
	}
	s.logger.Debug("editor opened", "id", id, "sessions", s.sessions.len())
	s.writeJSON(w, http.StatusCreated, view(id, ed))
}

func (s *Server) handleGetEditor(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, view(id, ed))
}

func (s *Server) handleDeleteEditor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.remove(id) {
		s.writeError(w, dcerrors.New(dcerrors.ErrCodeNotFound, "editor %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	var req addNodeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := ed.AddNode(r.Context(), req.Label, req.Type); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view(id, ed))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	var req connectRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := ed.Connect(r.Context(), req.Source, req.Target); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, view(id, ed))
}

func (s *Server) handleMoveNode(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := ed.Move(chi.URLParam(r, "nodeID"), req.Position); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view(id, ed))
}

func (s *Server) handleDeleteElements(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	var req deleteRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	ed.Delete(r.Context(), req.IDs...)
	s.writeJSON(w, http.StatusOK, view(id, ed))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id, ed, ok := s.editorFor(w, r)
	if !ok {
		return
	}
	ed.Clear(r.Context())
	s.writeJSON(w, http.StatusOK, view(id, ed))
}
