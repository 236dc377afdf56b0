package handler

import "net/http"

// HandleStatus answers the root path with a liveness message.
//
// HTTP: GET /
//
// No auth, no database — load balancers and uptime checks hit this.
func HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "content automation api is running",
	})
}
