package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/portfolio-builder/internal/editor"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// locationHeader carries the editor address of a session
const locationHeader = "X-Editor-Location"

// CreateSessionRequest represents the request body for POST /sessions
type CreateSessionRequest struct {
	Template string `json:"template,omitempty" validate:"omitempty,alphanum,max=64"`
	DraftID  string `json:"id,omitempty" validate:"max=128"`
	ResumeID string `json:"resumeId,omitempty" validate:"max=128"`
	Title    string `json:"title,omitempty" validate:"max=200"`
}

// SessionResponse is the state of a session plus its recent acknowledgements
type SessionResponse struct {
	ID string `json:"id"`
	editor.State
	Notifications []editor.Notification `json:"notifications"`
	// LoadError is set when the template could not be resolved at creation
	LoadError string `json:"load_error,omitempty"`
}

// SaveResponse represents the response for POST /sessions/{id}/save
type SaveResponse struct {
	Draft        *types.Draft         `json:"draft"`
	Location     string               `json:"location"`
	Notification *editor.Notification `json:"notification,omitempty"`
}

// PublishResponse represents the response for POST /sessions/{id}/publish
type PublishResponse struct {
	URL          string               `json:"url"`
	Location     string               `json:"location"`
	Notification *editor.Notification `json:"notification,omitempty"`
}

// handleListTemplates lists the template catalog
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.ListTemplates(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": templates})
}

// handleCreateSession opens an editing session and loads it before responding
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		s.failure(w, r, err)
		return
	}
	if req.Template != "" {
		if _, ok := s.renderers.Get(req.Template); !ok {
			s.failure(w, r, &ErrValidation{Field: "template", Message: "unknown template " + strconv.Quote(req.Template)})
			return
		}
	}

	nav := editor.NavigationContext{TemplateKey: req.Template, DraftID: req.DraftID, ResumeID: req.ResumeID}
	title := req.Title
	if title == "" {
		title = s.title
	}
	sess := s.sessions.create(s.logger, func(notifier editor.Notifier) *editor.Controller {
		return editor.New(nav, editor.Options{
			Portfolios:    s.portfolios,
			Templates:     s.templates,
			Drafts:        s.drafts,
			Notifier:      notifier,
			Logger:        s.logger,
			PublicBaseURL: s.publicBaseURL,
			Title:         title,
		})
	})

	loadErr := sess.controller.Load(r.Context())
	resp := s.sessionResponse(sess)
	if loadErr != nil {
		s.logger.Warn("session loaded without template",
			zap.String("session_id", sess.id),
			zap.Error(loadErr),
		)
		resp.LoadError = loadErr.Error()
	}

	w.Header().Set("Location", "/sessions/"+sess.id)
	w.Header().Set(locationHeader, resp.Location)
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetSession returns the session state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	resp := s.sessionResponse(sess)
	w.Header().Set(locationHeader, resp.Location)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleEditSession applies a sparse edit to the session
func (s *Server) handleEditSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	var edit editor.Edit
	if err := decodeJSON(w, r, &edit, false); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := sess.controller.Apply(edit); err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleDeleteSession discards a session and its unsaved edits
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.delete(id) {
		s.failure(w, r, &ErrSessionNotFound{SessionID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePreview renders the session as the static page an export would contain
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	html, err := sess.controller.Document()
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// handleSave persists the session as a draft
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	draft, err := sess.controller.Save(r.Context())
	if err != nil {
		s.persistFailure(w, r, sess, err)
		return
	}
	location := sess.controller.Location()
	w.Header().Set(locationHeader, location)
	s.jsonResponse(w, http.StatusOK, SaveResponse{
		Draft:        draft,
		Location:     location,
		Notification: sess.latest(),
	})
}

// handlePublish publishes the session draft, creating it first when needed
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	url, err := sess.controller.Publish(r.Context())
	if err != nil {
		s.persistFailure(w, r, sess, err)
		return
	}
	location := sess.controller.Location()
	w.Header().Set(locationHeader, location)
	s.jsonResponse(w, http.StatusOK, PublishResponse{
		URL:          url,
		Location:     location,
		Notification: sess.latest(),
	})
}

// handleExport streams the static site archive
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	archive, err := sess.controller.Export()
	if err != nil {
		s.failure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": archive.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := archive.WriteTo(w); err != nil {
		s.logger.Warn("failed to write export", zap.String("session_id", sess.id), zap.Error(err))
	}
}

// persistFailure reports a failed save or publish along with its acknowledgement
func (s *Server) persistFailure(w http.ResponseWriter, r *http.Request, sess *session, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("persist failed", zap.String("session_id", sess.id), zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]any{
		"error":        err.Error(),
		"notification": sess.latest(),
	})
}

func (s *Server) sessionResponse(sess *session) SessionResponse {
	return SessionResponse{
		ID:            sess.id,
		State:         sess.controller.Snapshot(),
		Notifications: sess.recent(),
	}
}

// decodeJSON decodes a JSON body, rejecting unknown fields. An empty body is
// accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// validateRequest runs struct tag validation and reports the first failing field
func validateRequest(v any) error {
	err := validator.New().Struct(v)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: "failed " + fe.Tag() + " check"}
	}
	return err
}
