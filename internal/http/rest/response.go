package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pollhub/pollhub_api/util"
	"github.com/pollhub/pollhub_api/util/tracing"
	"github.com/pollhub/pollhub_api/util/values"
)

// ServerResponse is the envelope every handler returns. Failed calls carry a
// plain error string and never a stack trace.
type ServerResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"-"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		if tc != nil {
			log.Printf("[%s] %s: %v", tc.RequestID, message, err)
		} else {
			log.Printf("%s: %v", message, err)
		}
	}

	return &ServerResponse{
		Status:     status,
		Error:      message,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Println("error writing response body:", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}

	resp := ServerResponse{
		Status: status,
		Error:  message,
	}
	body, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		http.Error(w, message, util.StatusCode(values.Error))
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}
