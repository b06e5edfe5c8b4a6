// Package auth is the login/session façade over the backend. The
// session token is still fabricated client-side (the backend does not
// issue one); everything else treats it as an opaque bearer credential,
// so a real server token slots in without touching the transport.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pedrohsales/comparaprecos/internal/apiclient"
	"github.com/pedrohsales/comparaprecos/internal/apperrors"
	"github.com/pedrohsales/comparaprecos/internal/storage"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
	"github.com/pedrohsales/comparaprecos/internal/validate"
)

const (
	endpointLogin    = "/login"
	endpointRegister = "/funcionarios"
	endpointRefresh  = "/auth/refresh"
)

const msgIncompleteUser = "Dados do usuário incompletos na resposta da API"

type API interface {
	Post(ctx context.Context, endpoint string, body any) apiclient.Result
}

type SessionStore interface {
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// User is the backend login payload. Only id/nome/tipo are required;
// the rest is carried opaquely.
type User struct {
	ID    int64  `json:"id" validate:"required"`
	Nome  string `json:"nome" validate:"required,notblank"`
	Tipo  string `json:"tipo" validate:"required,notblank"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`
}

// Credentials carries one identifier (email or CPF) plus the password,
// already in backend vocabulary.
type Credentials struct {
	Email string `json:"email,omitempty" validate:"required_without=CPF,omitempty,trimmedemail"`
	CPF   string `json:"cpf,omitempty" validate:"required_without=Email,omitempty,cpf"`
	Senha string `json:"senha" validate:"required,notblank"`
}

func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.CPF = strings.TrimSpace(c.CPF)
	if err := validate.Struct(c); err != nil {
		return validate.Message(err, map[string]map[string]string{
			"Email": {
				"required_without": "Informe email ou CPF",
				"trimmedemail":     "Digite um email válido",
			},
			"CPF": {
				"required_without": "Informe email ou CPF",
				"cpf":              "Digite um CPF válido",
			},
			"Senha": {
				"*": "Este campo é obrigatório",
			},
		}, "Dados inválidos")
	}
	return nil
}

type RegisterInput struct {
	Nome  string `json:"nome" validate:"required,notblank"`
	Email string `json:"email" validate:"required,trimmedemail"`
	Senha string `json:"senha" validate:"required,strongpassword"`
	CPF   string `json:"cpf" validate:"required,cpf"`
}

func (in *RegisterInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return validate.Message(err, map[string]map[string]string{
			"Nome": {
				"*": "Este campo é obrigatório",
			},
			"Email": {
				"required":     "Este campo é obrigatório",
				"trimmedemail": "Digite um email válido",
			},
			"Senha": {
				"required":       "Este campo é obrigatório",
				"strongpassword": "A senha deve ter pelo menos 8 caracteres, com maiúscula, minúscula, número e símbolo",
			},
			"CPF": {
				"required": "Este campo é obrigatório",
				"cpf":      "Digite um CPF válido",
			},
		}, "Dados inválidos")
	}
	return nil
}

type Session struct {
	Token string
	User  User
}

type Service struct {
	API   API
	Store SessionStore
	Now   func() time.Time
}

// Login authenticates against the backend and persists the session
// token. A 200 with a payload missing id/nome/tipo is a failure; the
// store is only touched after the payload passes.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if s.API == nil || s.Store == nil {
		return nil, apperrors.New(apperrors.KindInternal, "auth não configurado")
	}

	res := s.API.Post(ctx, endpointLogin, creds)
	if !res.Success {
		return nil, res.Err()
	}

	var u User
	if err := res.Decode(&u); err != nil {
		return nil, apperrors.Wrap(apperrors.KindIncompleteData, msgIncompleteUser, err)
	}
	if err := validate.Struct(&u); err != nil {
		return nil, apperrors.Wrap(apperrors.KindIncompleteData, msgIncompleteUser, err)
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}
	token := fmt.Sprintf("token_%d_%d", u.ID, now().UnixMilli())

	if err := s.Store.Set(ctx, storage.KeyAuthToken, token); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "Não foi possível salvar a sessão", err)
	}

	telemetry.LogInfo(ctx, "user login",
		telemetry.LogString("event", "user.login"),
		telemetry.LogInt64("user.id", u.ID),
		telemetry.LogString("user.tipo", u.Tipo),
	)

	return &Session{Token: token, User: u}, nil
}

// Register creates the account; the payload already maps app fields
// onto the backend DTO names.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if s.API == nil {
		return apperrors.New(apperrors.KindInternal, "auth não configurado")
	}
	return s.API.Post(ctx, endpointRegister, in).Err()
}

// Logout clears the stored token. It never fails: a store error leaves
// nothing worse than an orphaned token entry.
func (s *Service) Logout(ctx context.Context) {
	if s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, storage.KeyAuthToken); err != nil {
		telemetry.LogWarn(ctx, "failed to clear auth token",
			telemetry.LogErr(err),
		)
	}
}

// RefreshToken hits the refresh endpoint; the backend does not issue
// tokens yet, so callers only learn whether the session is still valid.
func (s *Service) RefreshToken(ctx context.Context) error {
	if s.API == nil {
		return apperrors.New(apperrors.KindInternal, "auth não configurado")
	}
	return s.API.Post(ctx, endpointRefresh, nil).Err()
}
