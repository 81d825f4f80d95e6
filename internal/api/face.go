package api

import (
	"net/http"

	"github.com/nerrad567/homegate/internal/facerecog"
	"github.com/nerrad567/homegate/internal/reading"
)

// handleFaceRecognition stores a result pushed by the recognition service.
//
// Request body: {"device_id": "...", "recognized": true, "timestamp": "..."}
//
// timestamp is optional and defaults to now.
func (s *Server) handleFaceRecognition(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	deviceID, ok := stringField(body, "device_id")
	if !ok {
		writeBadRequest(w, "device_id is required")
		return
	}
	recognized, ok := body["recognized"].(bool)
	if !ok {
		writeBadRequest(w, "recognized must be a boolean")
		return
	}
	ts, _ := stringField(body, "timestamp")

	rec, err := s.faces.Ingest(r.Context(), facerecog.Event{
		DeviceID:   deviceID,
		Recognized: recognized,
		Timestamp:  reading.Timestamp(ts),
	})
	if err != nil {
		writeServiceError(w, err, "failed to store face recognition result")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Face recognition result stored",
		"data":    rec,
	})
}
