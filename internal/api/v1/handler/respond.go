package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/api/v1/dto"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponseDTO{Error: message})
}
