package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the envelope every JSON endpoint answers with. Exactly
// one of Data and Error is set.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

const internalErrorJSON = `{"success":false,"statusCode":500,"error":"internalError"}`

func WriteData(w http.ResponseWriter, statusCode int, data any) {
	write(w, Response{Success: true, StatusCode: statusCode, Data: data})
}

func WriteError(w http.ResponseWriter, statusCode int, errorID string) {
	write(w, Response{Success: false, StatusCode: statusCode, Error: errorID})
}

func write(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(resp)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, internalErrorJSON)
}
