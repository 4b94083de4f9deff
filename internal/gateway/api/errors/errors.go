// Пакет errors — конструкторы стандартных ошибок Gateway.
// Единый формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"
)

// Машиночитаемые коды ошибок Gateway.
// Ошибки upstream-сервисов (404, 400 и т.п.) Gateway не перекодирует —
// они возвращаются клиенту как есть. Собственные коды у Gateway три:
const (
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeUpstreamFailure    = "UPSTREAM_FAILURE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// errorBody — структура тела ответа ошибки.
type errorBody struct {
	Error errorDetail `json:"error"`
}

// errorDetail — детали ошибки.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки в стандартном формате.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// --- Конструкторы для типичных ошибок ---

// ServiceUnavailable — 503 нет здоровых экземпляров, запрос не отправлялся.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, CodeServiceUnavailable, message)
}

// UpstreamFailure — 502 обе попытки форвардинга завершились сбоем.
func UpstreamFailure(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadGateway, CodeUpstreamFailure, message)
}

// InternalError — 500 внутренняя ошибка Gateway.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
