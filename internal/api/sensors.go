package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListSensors returns every room with its sensors and their status.
func (s *Server) handleListSensors(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.sensors.All(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list sensors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sensor list for all rooms retrieved",
		"rooms":   rooms,
	})
}

// handleRoomSensors returns the sensors installed in one room.
func (s *Server) handleRoomSensors(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	sensors, err := s.sensors.Room(r.Context(), room)
	if err != nil {
		writeServiceError(w, err, "failed to list room sensors")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Sensor list for %s retrieved", room),
		"room":    room,
		"sensors": sensors,
	})
}

// handleGetSensorData returns the descriptor and current reading of a
// sensor. Sensors never written report {value: null, timestamp: null}.
func (s *Server) handleGetSensorData(w http.ResponseWriter, r *http.Request) {
	room, kind := chi.URLParam(r, "room"), chi.URLParam(r, "sensor_type")

	desc, rec, err := s.sensors.Current(r.Context(), room, kind)
	if err != nil {
		writeServiceError(w, err, "failed to read sensor")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("%s reading for %s retrieved", kind, room),
		"room":        room,
		"sensor_type": kind,
		"sensor_info": desc,
		"data":        rec,
	})
}

// handlePostSensorData validates and stores a reading.
//
// Request body: {"value": ...}
func (s *Server) handlePostSensorData(w http.ResponseWriter, r *http.Request) {
	room, kind := chi.URLParam(r, "room"), chi.URLParam(r, "sensor_type")

	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	value, present := body["value"]

	rec, err := s.sensors.Update(r.Context(), room, kind, value, present)
	if err != nil {
		writeServiceError(w, err, "failed to store reading")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("%s reading for %s updated", kind, room),
		"room":        room,
		"sensor_type": kind,
		"data":        rec,
	})
}

// handleSensorHistory returns the history log of a sensor in append order.
func (s *Server) handleSensorHistory(w http.ResponseWriter, r *http.Request) {
	room, kind := chi.URLParam(r, "room"), chi.URLParam(r, "sensor_type")

	history, err := s.sensors.History(r.Context(), room, kind)
	if err != nil {
		writeServiceError(w, err, "failed to read sensor history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("%s history for %s retrieved", kind, room),
		"room":        room,
		"sensor_type": kind,
		"history":     history,
		"count":       len(history),
	})
}

// handleTemperature returns the stored temperature of a room. The room is
// not checked against the catalog; a room without a reading is 404.
func (s *Server) handleTemperature(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	rec, err := s.sensors.Temperature(r.Context(), room)
	if err != nil {
		writeServiceError(w, err, "failed to read temperature")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room":        room,
		"temperature": rec.Value,
		"timestamp":   rec.Timestamp,
	})
}

// handleBulkUpdate writes many sensor values in one request.
//
// Request body: {"updates": [{"room": ..., "sensor_type": ..., "value": ...}, ...]}
//
// Answers 200 when every item was written and 207 otherwise.
func (s *Server) handleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	updates, ok := body["updates"].([]any)
	if !ok {
		writeBadRequest(w, "updates array is required")
		return
	}

	res := s.sensors.BulkUpdate(r.Context(), updates)
	status := http.StatusOK
	if res.Partial() {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, res)
}
