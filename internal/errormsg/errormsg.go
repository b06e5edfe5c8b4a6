// Package errormsg extracts user-presentable messages from backend
// failures, keeping stack traces and framework noise away from screens.
package errormsg

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// Generic is the absolute fallback shown when nothing better exists.
	Generic = "Ocorreu um erro inesperado"

	maxFriendlyLen = 200
)

// Candidate body fields, scanned in order. Mirrors what the backend
// actually emits across its Spring error shapes.
var messageFields = []string{
	"message",
	"error",
	"userMessage",
	"details",
	"error_description",
	"errorMessage",
}

// Markers that flag a message as technical output rather than product
// copy. Checked case-insensitively.
var technicalMarkers = []string{
	"exception",
	"at ",
	"stack",
	"trace",
	"java.",
	"org.springframework",
	"caused by",
	"com.example",
	"\tat ",
	"error_trace",
	"<html",
	"<!doctype",
}

// FromResponse derives a message for a non-2xx response. The body is
// scanned for a friendly message field first; anything technical or
// oversized falls back to the status table.
func FromResponse(status int, body []byte) string {
	if msg, ok := fromBody(body); ok {
		return msg
	}
	return FromStatus(status)
}

func fromBody(body []byte) (string, bool) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return "", false
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		// Raw text is never product copy; the status table is.
		return "", false
	}

	for _, field := range messageFields {
		v := parsed.Get(field)
		if v.Type != gjson.String {
			continue
		}
		msg := strings.TrimSpace(v.String())
		if msg != "" && isUserFriendly(msg) {
			return msg, true
		}
	}
	return "", false
}

func isUserFriendly(msg string) bool {
	if len(msg) > maxFriendlyLen {
		return false
	}
	lower := strings.ToLower(msg)
	for _, marker := range technicalMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// FromStatus maps an HTTP status onto the product copy for it.
func FromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Dados inválidos fornecidos"
	case http.StatusUnauthorized:
		return "Email ou senha incorretos"
	case http.StatusForbidden:
		return "Usuário inativo"
	case http.StatusNotFound:
		return "Recurso não encontrado"
	case http.StatusConflict:
		return "Conflito de dados"
	case http.StatusUnprocessableEntity:
		return "Dados inválidos"
	case http.StatusTooManyRequests:
		return "Muitas tentativas, aguarde um momento"
	case http.StatusInternalServerError:
		return "Erro interno do servidor"
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return "Serviço temporariamente indisponível"
	default:
		return Generic
	}
}

// Connectivity is shown when the transport failed before any HTTP
// response, naming the configured endpoint so devs can spot a wrong IP.
func Connectivity(baseURL string) string {
	if strings.TrimSpace(baseURL) == "" {
		return "Verifique sua conexão com a internet"
	}
	return "Erro de conexão: Verifique se o servidor está rodando em " + baseURL
}
