package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGetCommand returns the current command of an actuator, or
// {value: "off", timestamp: null} when none was sent.
func (s *Server) handleGetCommand(w http.ResponseWriter, r *http.Request) {
	room, kind := chi.URLParam(r, "room"), chi.URLParam(r, "command_type")

	desc, rec, err := s.commands.Status(r.Context(), room, kind)
	if err != nil {
		writeServiceError(w, err, "failed to read command status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("%s status for %s retrieved", kind, room),
		"room":         room,
		"command_type": kind,
		"command_info": desc,
		"status":       rec,
	})
}

// handleSendCommand validates and stores a command.
//
// Request body: {"command": "on"}
func (s *Server) handleSendCommand(w http.ResponseWriter, r *http.Request) {
	room, kind := chi.URLParam(r, "room"), chi.URLParam(r, "command_type")

	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	value, present := body["command"]

	rec, err := s.commands.Send(r.Context(), room, kind, value, present)
	if err != nil {
		writeServiceError(w, err, "failed to send command")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      fmt.Sprintf("%s command sent to %s", kind, room),
		"room":         room,
		"command_type": kind,
		"command":      rec.Value,
		"timestamp":    rec.Timestamp,
	})
}
