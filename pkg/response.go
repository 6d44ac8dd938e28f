package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrnoUnhandled, controller'ların envelope'a çevirmediği hatalar için kullanılır.
const ErrnoUnhandled = -1

// Envelope, tüm API yanıtları için standart format.
//
//	başarılı: { "errno": 0, "data": {...} }
//	hatalı:   { "errno": 10003, "message": "..." }
type Envelope struct {
	Errno   int    `json:"errno"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success, başarılı bir envelope oluşturur.
func Success(data any) *Envelope {
	return &Envelope{Errno: 0, Data: data}
}

// Fail, katalogdaki bir hata girdisinden envelope oluşturur.
func Fail(info ErrorInfo) *Envelope {
	return &Envelope{Errno: info.Errno, Message: info.Message}
}

// OK, envelope'un başarılı olup olmadığını döner.
func (e *Envelope) OK() bool {
	return e.Errno == 0
}

// JSON, envelope'u HTTP 200 ile yazar.
// Controller seviyesindeki hatalar (errno != 0) da 200 döner — frontend errno'ya bakar.
func JSON(w http.ResponseWriter, env *Envelope) {
	write(w, http.StatusOK, env)
}

// JSONWithStatus, envelope'u verilen status ile yazar (ör: 429 + Fail envelope).
func JSONWithStatus(w http.ResponseWriter, status int, env *Envelope) {
	write(w, status, env)
}

// Error, controller'ın yakalamadığı hatayı yazar.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Store detaylarını dışarı sızdırma
		message = ErrInternal.Error()
	}
	write(w, status, &Envelope{Errno: ErrnoUnhandled, Message: message})
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	write(w, status, &Envelope{Errno: ErrnoUnhandled, Message: message})
}

func write(w http.ResponseWriter, status int, env *Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() wrap edilmiş error'ları da doğru eşler.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
