package handlers

import "net/http"

func Welcome(w http.ResponseWriter, r *http.Request) {
	resp := jsonResponse{"message": "Welcome to the Skull King Companion App API"}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "healthy"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
