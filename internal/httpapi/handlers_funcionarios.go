package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

type FuncionariosHandler struct {
	Repo *Repo
}

// funcionarioRequest covers create and update bodies. Senha absent on
// update means keep the stored password. Ativo is a pointer so an
// omitted field defaults to active.
type funcionarioRequest struct {
	Nome      string             `json:"nome"`
	Email     string             `json:"email"`
	Senha     string             `json:"senha"`
	CPF       string             `json:"cpf"`
	Ativo     *bool              `json:"ativo"`
	Cargo     funcionarios.Cargo `json:"cargo"`
	IDMercado int64              `json:"idMercado"`
}

func (req *funcionarioRequest) normalize() {
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Cargo == "" {
		req.Cargo = funcionarios.DefaultCargo
	}
	if req.IDMercado <= 0 {
		req.IDMercado = funcionarios.DefaultIDMercado
	}
}

func (req *funcionarioRequest) employee() employee {
	ativo := true
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	return employee{
		Nome:      req.Nome,
		Email:     req.Email,
		CPF:       req.CPF,
		Ativo:     ativo,
		Cargo:     req.Cargo,
		IDMercado: req.IDMercado,
	}
}

func (h *FuncionariosHandler) List(w http.ResponseWriter, r *http.Request) {
	idMercado := funcionarios.DefaultIDMercado
	if raw := r.URL.Query().Get("idMercado"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
			return
		}
		idMercado = parsed
	}

	list := h.Repo.List(idMercado)
	out := make([]funcionarios.Funcionario, 0, len(list))
	for _, e := range list {
		out = append(out, e.dto())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FuncionariosHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e, err := h.Repo.Get(id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e.dto())
}

func (h *FuncionariosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req funcionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}
	req.normalize()

	if req.Nome == "" || req.Email == "" || strings.TrimSpace(req.Senha) == "" {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}

	created, err := h.Repo.Create(req.employee(), req.Senha)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "funcionario created",
		telemetry.LogString("event", "funcionario.created"),
		telemetry.LogInt64("funcionario.id", created.ID),
	)

	writeJSON(w, http.StatusCreated, created.dto())
}

func (h *FuncionariosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req funcionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}
	req.normalize()

	if req.Nome == "" || req.Email == "" {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return
	}

	updated, err := h.Repo.Update(id, req.employee(), req.Senha)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated.dto())
}

func (h *FuncionariosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.Delete(id); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "Dados inválidos fornecidos")
		return 0, false
	}
	return id, true
}
