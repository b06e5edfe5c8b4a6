// Package app coordinates the domain services against the state store.
// It is the layer the UI talks to: every operation runs the service
// call, persists what outlives the process and dispatches the state
// transitions and notifications that describe the outcome.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedrohsales/comparaprecos/internal/apperrors"
	"github.com/pedrohsales/comparaprecos/internal/appstate"
	"github.com/pedrohsales/comparaprecos/internal/auth"
	"github.com/pedrohsales/comparaprecos/internal/errormsg"
	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
	"github.com/pedrohsales/comparaprecos/internal/storage"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

type AuthService interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	Register(ctx context.Context, in auth.RegisterInput) error
	Logout(ctx context.Context)
}

type EmployeeService interface {
	List(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error)
	Get(ctx context.Context, id int64) (*funcionarios.Funcionario, error)
	Create(ctx context.Context, in funcionarios.CreateInput) (*funcionarios.Funcionario, error)
	Update(ctx context.Context, id int64, in funcionarios.UpdateInput) (*funcionarios.Funcionario, error)
	Delete(ctx context.Context, id int64) error
}

type App struct {
	Auth      AuthService
	Employees EmployeeService
	Sessions  storage.Store
	State     *appstate.Store
}

func New(authSvc AuthService, empSvc EmployeeService, sessions storage.Store, state *appstate.Store) *App {
	return &App{Auth: authSvc, Employees: empSvc, Sessions: sessions, State: state}
}

// Bootstrap rehydrates the state store from persisted storage. Called
// once at startup, before any other operation.
func (a *App) Bootstrap(ctx context.Context) error {
	return a.State.Init(ctx)
}

// Login runs the credential flow end to end: authenticate, persist the
// user payload, flip the session state and notify. On failure nothing
// is persisted and the state keeps its anonymous session.
func (a *App) Login(ctx context.Context, creds auth.Credentials) (*auth.User, error) {
	a.setLoading(ctx, true)
	defer a.setLoading(ctx, false)

	session, err := a.Auth.Login(ctx, creds)
	if err != nil {
		a.notify(ctx, "error", "Erro no login", userMessage(err))
		return nil, err
	}

	if err := a.Sessions.Set(ctx, storage.KeyUserData, session.User); err != nil {
		telemetry.LogWarn(ctx, "failed to persist user data",
			telemetry.LogErr(err),
		)
	}

	user := session.User
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionSetUser, Payload: &user})
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionSetAuthenticated, Payload: true})
	a.notify(ctx, "success", "Login realizado com sucesso!",
		fmt.Sprintf("Bem-vindo(a), %s!", user.Nome))

	return &user, nil
}

// Register creates a new employee account. It does not log the account
// in; the caller goes through Login afterwards.
func (a *App) Register(ctx context.Context, in auth.RegisterInput) error {
	a.setLoading(ctx, true)
	defer a.setLoading(ctx, false)

	if err := a.Auth.Register(ctx, in); err != nil {
		a.notify(ctx, "error", "Erro no cadastro", userMessage(err))
		return err
	}

	a.notify(ctx, "success", "Cadastro realizado com sucesso!",
		"Funcionário cadastrado com sucesso")
	return nil
}

// Logout clears the persisted session and resets the state. It always
// succeeds from the caller's point of view.
func (a *App) Logout(ctx context.Context) {
	a.setLoading(ctx, true)

	if err := a.Sessions.Delete(ctx, storage.KeyUserData); err != nil {
		telemetry.LogWarn(ctx, "failed to clear user data",
			telemetry.LogErr(err),
		)
	}
	a.Auth.Logout(ctx)

	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionResetState})
	a.notify(ctx, "info", "Logout realizado", "Você foi desconectado com sucesso")
}

// LoadEmployees fetches the roster for a market and replaces the
// employee list in state.
func (a *App) LoadEmployees(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error) {
	list, err := a.Employees.List(ctx, idMercado)
	if err != nil {
		a.notify(ctx, "error", "Erro ao carregar funcionários", userMessage(err))
		return nil, err
	}
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionSetEmployees, Payload: list})
	return list, nil
}

// CreateEmployee creates an employee and appends it to state when the
// backend echoes the created record back.
func (a *App) CreateEmployee(ctx context.Context, in funcionarios.CreateInput) (*funcionarios.Funcionario, error) {
	created, err := a.Employees.Create(ctx, in)
	if err != nil {
		a.notify(ctx, "error", "Erro ao cadastrar funcionário", userMessage(err))
		return nil, err
	}
	if created != nil {
		a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionAddEmployee, Payload: *created})
	}
	a.notify(ctx, "success", "Funcionário cadastrado", "Funcionário cadastrado com sucesso")
	return created, nil
}

func (a *App) UpdateEmployee(ctx context.Context, id int64, in funcionarios.UpdateInput) (*funcionarios.Funcionario, error) {
	updated, err := a.Employees.Update(ctx, id, in)
	if err != nil {
		a.notify(ctx, "error", "Erro ao atualizar funcionário", userMessage(err))
		return nil, err
	}
	if updated != nil {
		a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionUpdateEmployee, Payload: *updated})
	}
	a.notify(ctx, "success", "Funcionário atualizado", "Dados atualizados com sucesso")
	return updated, nil
}

func (a *App) DeleteEmployee(ctx context.Context, id int64) error {
	if err := a.Employees.Delete(ctx, id); err != nil {
		a.notify(ctx, "error", "Erro ao remover funcionário", userMessage(err))
		return err
	}
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionRemoveEmployee, Payload: id})
	a.notify(ctx, "success", "Funcionário removido", "Funcionário removido com sucesso")
	return nil
}

func (a *App) setLoading(ctx context.Context, v bool) {
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionSetLoading, Payload: v})
}

func (a *App) notify(ctx context.Context, typ, title, message string) {
	a.State.Dispatch(ctx, appstate.Action{Type: appstate.ActionAddNotification, Payload: appstate.Notification{
		Type:    typ,
		Title:   title,
		Message: message,
	}})
}

// userMessage pulls the presentable message out of an error. Untagged
// errors fall back to the generic copy so raw internals never reach a
// notification.
func userMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return errormsg.Generic
}
