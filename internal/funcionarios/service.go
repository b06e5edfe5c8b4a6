// Package funcionarios is the employee-management façade used by the
// staff mode of the app.
package funcionarios

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pedrohsales/comparaprecos/internal/apiclient"
	"github.com/pedrohsales/comparaprecos/internal/apperrors"
)

const endpoint = "/funcionarios"

type API interface {
	Get(ctx context.Context, endpoint string, params url.Values) apiclient.Result
	Post(ctx context.Context, endpoint string, body any) apiclient.Result
	Put(ctx context.Context, endpoint string, body any) apiclient.Result
	Delete(ctx context.Context, endpoint string) apiclient.Result
}

type Service struct {
	API API
}

func (s *Service) List(ctx context.Context, idMercado int64) ([]Funcionario, error) {
	if s.API == nil {
		return nil, apperrors.New(apperrors.KindInternal, "serviço de funcionários não configurado")
	}
	if idMercado <= 0 {
		idMercado = DefaultIDMercado
	}

	params := url.Values{}
	params.Set("idMercado", strconv.FormatInt(idMercado, 10))

	res := s.API.Get(ctx, endpoint, params)
	if !res.Success {
		return nil, res.Err()
	}

	var out []Funcionario
	if len(res.Data) > 0 {
		if err := res.Decode(&out); err != nil {
			return nil, apperrors.Wrap(apperrors.KindIncompleteData, "Resposta inesperada do servidor", err)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Funcionario, error) {
	if s.API == nil {
		return nil, apperrors.New(apperrors.KindInternal, "serviço de funcionários não configurado")
	}

	res := s.API.Get(ctx, endpoint+"/"+strconv.FormatInt(id, 10), nil)
	if !res.Success {
		return nil, res.Err()
	}

	var f Funcionario
	if err := res.Decode(&f); err != nil {
		return nil, apperrors.Wrap(apperrors.KindIncompleteData, "Resposta inesperada do servidor", err)
	}
	return &f, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Funcionario, error) {
	if s.API == nil {
		return nil, apperrors.New(apperrors.KindInternal, "serviço de funcionários não configurado")
	}

	res := s.API.Post(ctx, endpoint, buildCreateDTO(in))
	if !res.Success {
		return nil, res.Err()
	}
	return decodeOptional(res)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Funcionario, error) {
	if s.API == nil {
		return nil, apperrors.New(apperrors.KindInternal, "serviço de funcionários não configurado")
	}

	res := s.API.Put(ctx, endpoint+"/"+strconv.FormatInt(id, 10), buildUpdateDTO(in))
	if !res.Success {
		return nil, res.Err()
	}
	return decodeOptional(res)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.API == nil {
		return apperrors.New(apperrors.KindInternal, "serviço de funcionários não configurado")
	}
	return s.API.Delete(ctx, endpoint+"/"+strconv.FormatInt(id, 10)).Err()
}

// Some backend versions answer writes with the stored record, others
// with an empty body. Both count as success.
func decodeOptional(res apiclient.Result) (*Funcionario, error) {
	if len(res.Data) == 0 {
		return nil, nil
	}
	var f Funcionario
	if err := res.Decode(&f); err != nil {
		return nil, nil
	}
	return &f, nil
}
