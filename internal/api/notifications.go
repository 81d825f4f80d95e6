package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListNotifications returns all notifications, newest first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := s.notifications.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list notifications")
		return
	}

	message := "Notifications retrieved"
	if len(list) == 0 {
		message = "No notifications yet"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       message,
		"notifications": list,
	})
}

// handleDeleteNotification removes a notification. Unknown ids succeed.
func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.notifications.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete notification")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Notification deleted",
		"notification_id": id,
	})
}
