package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/docker/go-units"

	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/settings"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// multipartMemory is how much of an upload is kept in memory before spilling to disk
const multipartMemory = 8 << 20

type inputRequest struct {
	Input string `json:"input"`
}

type remoteRequest struct {
	URL string `json:"url"`
}

// SettingsResponse is the body of the settings endpoints.
type SettingsResponse struct {
	Live   settings.Connection  `json:"live"`
	Staged *settings.Connection `json:"staged,omitempty"`
}

func settingsResponse(snap terminal.Snapshot) SettingsResponse {
	return SettingsResponse{Live: snap.Settings, Staged: snap.Staged}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"clients": s.hub.count(),
	})
}

func (s *Server) respondTerminal(w http.ResponseWriter, snap terminal.Snapshot) {
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) respondSettings(w http.ResponseWriter, snap terminal.Snapshot) {
	writeJSON(w, http.StatusOK, settingsResponse(snap))
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.respondTerminal(w, s.session.Submit(req.Input))
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.respondTerminal(w, s.session.SetInput(req.Input))
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.respondTerminal(w, s.session.Previous())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.respondTerminal(w, s.session.Next())
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, settingsResponse(s.session.Snapshot()))
}

func (s *Server) handleOpenSettings(w http.ResponseWriter, r *http.Request) {
	s.respondSettings(w, s.session.OpenSettings())
}

func (s *Server) handleStageSettings(w http.ResponseWriter, r *http.Request) {
	var c settings.Connection
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	snap, ok := s.session.StageSettings(c)
	if !ok {
		writeError(w, http.StatusConflict, "Settings editor is not open")
		return
	}
	s.respondSettings(w, snap)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	s.respondSettings(w, s.session.SaveSettings())
}

func (s *Server) handleCancelSettings(w http.ResponseWriter, r *http.Request) {
	s.respondSettings(w, s.session.CancelSettings())
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.panel.List())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.MaxUploadBytes
	if limit > 0 {
		if r.ContentLength > limit {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(limit))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	for _, fh := range headers {
		if limit > 0 && fh.Size > limit {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(limit))
			return
		}
	}

	records := make([]files.Record, 0, len(headers))
	for _, fh := range headers {
		records = append(records, s.panel.AddLocal(fh.Filename, fh.Size))
	}
	s.log.Info("files uploaded", logging.Fields{"count": len(records)})
	writeJSON(w, http.StatusCreated, records)
}

func (s *Server) handleRemote(w http.ResponseWriter, r *http.Request) {
	var req remoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	record, err := s.panel.AddRemote(req.URL)
	if err != nil {
		if errors.Is(err, files.ErrEmptyURL) {
			writeError(w, http.StatusBadRequest, "Please enter a valid URL.")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func tooLargeMessage(limit int64) string {
	return fmt.Sprintf("Upload exceeds the maximum size of %s", units.BytesSize(float64(limit)))
}
