package funcionarios

import (
	"github.com/pedrohsales/comparaprecos/internal/validate"
)

// Cargo values mirror the backend enum.
type Cargo string

const (
	CargoAdministrador Cargo = "Administrador"
	CargoEstoquista    Cargo = "Estoquista"
)

const (
	DefaultCargo     = CargoEstoquista
	DefaultIDMercado = int64(1)
)

type Funcionario struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Ativo     bool   `json:"ativo"`
	Cargo     Cargo  `json:"cargo"`
	IDMercado int64  `json:"idMercado"`
}

// CreateInput is the app-side shape; zero-valued optionals get backend
// defaults when the DTO is built.
type CreateInput struct {
	Nome      string `validate:"required,notblank"`
	Email     string `validate:"required,trimmedemail"`
	Senha     string `validate:"required,notblank"`
	Ativo     *bool
	Cargo     Cargo
	IDMercado int64
}

func (in *CreateInput) Validate() error {
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
				"*": "Este campo é obrigatório",
			},
		}, "Dados inválidos")
	}
	return nil
}

// UpdateInput leaves Senha empty to keep the stored credential: the
// outgoing DTO then has no senha key at all.
type UpdateInput struct {
	Nome      string `validate:"required,notblank"`
	Email     string `validate:"required,trimmedemail"`
	Senha     string
	Ativo     *bool
	Cargo     Cargo
	IDMercado int64
}

func (in *UpdateInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return validate.Message(err, map[string]map[string]string{
			"Nome": {
				"*": "Este campo é obrigatório",
			},
			"Email": {
				"required":     "Este campo é obrigatório",
				"trimmedemail": "Digite um email válido",
			},
		}, "Dados inválidos")
	}
	return nil
}

// createDTO and updateDTO are the exact backend request shapes. The
// omitempty on senha is what implements keep-password-on-update.
type createDTO struct {
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
	Ativo     bool   `json:"ativo"`
	Cargo     Cargo  `json:"cargo"`
	IDMercado int64  `json:"idMercado"`
}

type updateDTO struct {
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Senha     string `json:"senha,omitempty"`
	Ativo     bool   `json:"ativo"`
	Cargo     Cargo  `json:"cargo"`
	IDMercado int64  `json:"idMercado"`
}

func buildCreateDTO(in CreateInput) createDTO {
	dto := createDTO{
		Nome:      in.Nome,
		Email:     in.Email,
		Senha:     in.Senha,
		Ativo:     true,
		Cargo:     in.Cargo,
		IDMercado: in.IDMercado,
	}
	if in.Ativo != nil {
		dto.Ativo = *in.Ativo
	}
	if dto.Cargo == "" {
		dto.Cargo = DefaultCargo
	}
	if dto.IDMercado <= 0 {
		dto.IDMercado = DefaultIDMercado
	}
	return dto
}

func buildUpdateDTO(in UpdateInput) updateDTO {
	dto := updateDTO{
		Nome:      in.Nome,
		Email:     in.Email,
		Senha:     in.Senha,
		Ativo:     true,
		Cargo:     in.Cargo,
		IDMercado: in.IDMercado,
	}
	if in.Ativo != nil {
		dto.Ativo = *in.Ativo
	}
	if dto.Cargo == "" {
		dto.Cargo = DefaultCargo
	}
	if dto.IDMercado <= 0 {
		dto.IDMercado = DefaultIDMercado
	}
	return dto
}
