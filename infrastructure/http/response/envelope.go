package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Msg is the trivial success payload used by the password flows.
type Msg struct {
	Msg string `json:"msg"`
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// Error writes the uniform error payload.
func Error(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, ErrorBody{Detail: detail})
}

func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	Error(w, http.StatusUnauthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}

// XML writes a prerendered XML document, as the telephony webhook expects.
func XML(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(body))
}
