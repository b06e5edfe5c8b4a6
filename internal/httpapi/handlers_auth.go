package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
	"github.com/pedrohsales/comparaprecos/internal/ratelimit"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

type AuthHandler struct {
	Repo    *Repo
	Limiter *ratelimit.Limiter
}

type loginRequest struct {
	Email string `json:"email"`
	CPF   string `json:"cpf"`
	Senha string `json:"senha"`
}

// userResponse is the login payload the mobile client decodes. Tipo is
// derived from the cargo.
type userResponse struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Tipo  string `json:"tipo"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`
}

func tipoFromCargo(cargo funcionarios.Cargo) string {
	if cargo == funcionarios.CargoAdministrador {
		return "ADMINISTRADOR"
	}
	return "FUNCIONARIO"
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.CPF = strings.TrimSpace(req.CPF)
	req.Senha = strings.TrimSpace(req.Senha)

	if (req.Email == "" && req.CPF == "") || req.Senha == "" {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}

	limitKey := req.Email
	if limitKey == "" {
		limitKey = digitsOnly(req.CPF)
	}
	if h.Limiter != nil {
		if ok, _ := h.Limiter.Allow(limitKey); !ok {
			writeError(w, r, http.StatusTooManyRequests, "Muitas tentativas, aguarde um momento")
			return
		}
	}

	var (
		e   employee
		err error
	)
	if req.Email != "" {
		e, err = h.Repo.GetByEmail(req.Email)
	} else {
		e, err = h.Repo.GetByCPF(req.CPF)
	}
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	_, span := telemetry.StartSpan(r.Context(), "auth.verify_password",
		attribute.Int64("funcionario.id", e.ID),
	)
	err = bcrypt.CompareHashAndPassword([]byte(e.SenhaHash), []byte(req.Senha))
	span.End()
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	if !e.Ativo {
		writeError(w, r, http.StatusForbidden, "Usuário inativo")
		return
	}

	if h.Limiter != nil {
		h.Limiter.Reset(limitKey)
	}

	telemetry.LogInfo(r.Context(), "user login",
		telemetry.LogString("event", "user.login"),
		telemetry.LogInt64("funcionario.id", e.ID),
	)

	writeJSON(w, http.StatusOK, userResponse{
		ID:    e.ID,
		Nome:  e.Nome,
		Tipo:  tipoFromCargo(e.Cargo),
		Email: e.Email,
		CPF:   e.CPF,
	})
}

// Refresh reports whether the presented token is still acceptable. The
// development server only checks that a bearer token is present.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")) == "" {
		writeError(w, r, http.StatusUnauthorized, "Sessão expirada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
