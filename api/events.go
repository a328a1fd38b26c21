package api

import (
	"net/http"
	"time"

	"goRaceServer/state"
)

// HandleGetCurrentEvent handles GET /api/game/current-event
// Reads the scheduler's in-process cache; the window check means an expired
// event is reported as absent even before the next sweep.
func HandleGetCurrentEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	event := state.Server.Events.Current(time.Now())
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}
