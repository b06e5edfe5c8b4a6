package httpapi

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/pedrohsales/comparaprecos/internal/apperrors"
	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
)

// employee is the server-side record. CPF and the password hash never
// leave the repo; responses carry the funcionarios.Funcionario shape.
type employee struct {
	ID        int64
	Nome      string
	Email     string
	CPF       string
	Ativo     bool
	Cargo     funcionarios.Cargo
	IDMercado int64
	SenhaHash string
}

func (e employee) dto() funcionarios.Funcionario {
	return funcionarios.Funcionario{
		ID:        e.ID,
		Nome:      e.Nome,
		Email:     e.Email,
		Ativo:     e.Ativo,
		Cargo:     e.Cargo,
		IDMercado: e.IDMercado,
	}
}

// Repo is the in-memory employee store backing the development server.
type Repo struct {
	mu        sync.RWMutex
	seq       int64
	employees map[int64]employee
}

func NewRepo() *Repo {
	return &Repo{employees: make(map[int64]employee)}
}

func (r *Repo) Create(e employee, senha string) (employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return employee{}, apperrors.Wrap(apperrors.KindInternal, "erro ao processar senha", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(e.Email))
	for _, existing := range r.employees {
		if strings.EqualFold(existing.Email, email) {
			return employee{}, apperrors.New(apperrors.KindConflict, "Email já cadastrado")
		}
	}

	r.seq++
	e.ID = r.seq
	e.Email = email
	e.SenhaHash = string(hash)
	r.employees[e.ID] = e
	return e, nil
}

func (r *Repo) Get(id int64) (employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee{}, apperrors.New(apperrors.KindNotFound, "Funcionário não encontrado")
	}
	return e, nil
}

func (r *Repo) GetByEmail(email string) (employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if strings.EqualFold(e.Email, strings.TrimSpace(email)) {
			return e, nil
		}
	}
	return employee{}, apperrors.New(apperrors.KindNotFound, "Funcionário não encontrado")
}

func (r *Repo) GetByCPF(cpf string) (employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := digitsOnly(cpf)
	for _, e := range r.employees {
		if e.CPF != "" && digitsOnly(e.CPF) == want {
			return e, nil
		}
	}
	return employee{}, apperrors.New(apperrors.KindNotFound, "Funcionário não encontrado")
}

// List returns employees of one market ordered by id.
func (r *Repo) List(idMercado int64) []employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employee, 0, len(r.employees))
	for _, e := range r.employees {
		if e.IDMercado == idMercado {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update replaces the mutable fields. An empty senha keeps the stored
// hash, matching the backend's keep-password-on-update contract.
func (r *Repo) Update(id int64, e employee, senha string) (employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.employees[id]
	if !ok {
		return employee{}, apperrors.New(apperrors.KindNotFound, "Funcionário não encontrado")
	}

	email := strings.ToLower(strings.TrimSpace(e.Email))
	for _, other := range r.employees {
		if other.ID != id && strings.EqualFold(other.Email, email) {
			return employee{}, apperrors.New(apperrors.KindConflict, "Email já cadastrado")
		}
	}

	current.Nome = e.Nome
	current.Email = email
	current.Ativo = e.Ativo
	current.Cargo = e.Cargo
	current.IDMercado = e.IDMercado

	if senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
		if err != nil {
			return employee{}, apperrors.Wrap(apperrors.KindInternal, "erro ao processar senha", err)
		}
		current.SenhaHash = string(hash)
	}

	r.employees[id] = current
	return current, nil
}

func (r *Repo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Funcionário não encontrado")
	}
	delete(r.employees, id)
	return nil
}

// Seed loads a default administrator so a fresh server accepts logins.
func (r *Repo) Seed() error {
	_, err := r.Create(employee{
		Nome:      "Administrador",
		Email:     "admin@comparaprecos.com",
		CPF:       "52998224725",
		Ativo:     true,
		Cargo:     funcionarios.CargoAdministrador,
		IDMercado: funcionarios.DefaultIDMercado,
	}, "Admin@123")
	return err
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
