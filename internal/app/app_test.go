package app

import (
	"context"
	"errors"
	"testing"

	"github.com/pedrohsales/comparaprecos/internal/apperrors"
	"github.com/pedrohsales/comparaprecos/internal/appstate"
	"github.com/pedrohsales/comparaprecos/internal/auth"
	"github.com/pedrohsales/comparaprecos/internal/errormsg"
	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
	"github.com/pedrohsales/comparaprecos/internal/storage"
)

type authStub struct {
	loginFn    func(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	registerFn func(ctx context.Context, in auth.RegisterInput) error
	logoutFn   func(ctx context.Context)
}

func (s *authStub) Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	return s.loginFn(ctx, creds)
}

func (s *authStub) Register(ctx context.Context, in auth.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *authStub) Logout(ctx context.Context) {
	if s.logoutFn != nil {
		s.logoutFn(ctx)
	}
}

type employeeStub struct {
	listFn   func(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error)
	getFn    func(ctx context.Context, id int64) (*funcionarios.Funcionario, error)
	createFn func(ctx context.Context, in funcionarios.CreateInput) (*funcionarios.Funcionario, error)
	updateFn func(ctx context.Context, id int64, in funcionarios.UpdateInput) (*funcionarios.Funcionario, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *employeeStub) List(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error) {
	return s.listFn(ctx, idMercado)
}

func (s *employeeStub) Get(ctx context.Context, id int64) (*funcionarios.Funcionario, error) {
	return s.getFn(ctx, id)
}

func (s *employeeStub) Create(ctx context.Context, in funcionarios.CreateInput) (*funcionarios.Funcionario, error) {
	return s.createFn(ctx, in)
}

func (s *employeeStub) Update(ctx context.Context, id int64, in funcionarios.UpdateInput) (*funcionarios.Funcionario, error) {
	return s.updateFn(ctx, id, in)
}

func (s *employeeStub) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func newTestApp(authSvc AuthService, empSvc EmployeeService) (*App, *storage.MemoryStore) {
	sessions := storage.NewMemoryStore()
	return New(authSvc, empSvc, sessions, appstate.New(sessions)), sessions
}

func lastNotification(t *testing.T, state appstate.State) appstate.Notification {
	t.Helper()
	if len(state.Notifications) == 0 {
		t.Fatal("no notifications dispatched")
	}
	return state.Notifications[len(state.Notifications)-1]
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	authSvc := &authStub{
		loginFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
			return &auth.Session{
				Token: "token_7_1700000000000",
				User:  auth.User{ID: 7, Nome: "Ana", Tipo: "FUNCIONARIO"},
			}, nil
		},
	}
	a, sessions := newTestApp(authSvc, nil)

	user, err := a.Login(ctx, auth.Credentials{Email: "ana@teste.com", Senha: "Senha@123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Nome != "Ana" {
		t.Fatalf("user: %+v", user)
	}

	state := a.State.State()
	if !state.IsAuthenticated || state.User == nil || state.User.ID != 7 {
		t.Fatalf("session state: %+v", state)
	}
	if state.IsLoading {
		t.Fatal("loading left on")
	}

	n := lastNotification(t, state)
	if n.Type != "success" || n.Message != "Bem-vindo(a), Ana!" {
		t.Fatalf("notification: %+v", n)
	}

	var persisted auth.User
	if found, _ := sessions.Get(ctx, storage.KeyUserData, &persisted); !found || persisted.ID != 7 {
		t.Fatalf("user data not persisted: %+v", persisted)
	}
}

func TestLoginFailureKeepsAnonymousState(t *testing.T) {
	ctx := context.Background()
	authSvc := &authStub{
		loginFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
			return nil, apperrors.HTTP(401, "Email ou senha incorretos")
		},
	}
	a, sessions := newTestApp(authSvc, nil)

	if _, err := a.Login(ctx, auth.Credentials{Email: "ana@teste.com", Senha: "errada"}); err == nil {
		t.Fatal("expected error")
	}

	state := a.State.State()
	if state.IsAuthenticated || state.User != nil {
		t.Fatalf("state must stay anonymous: %+v", state)
	}

	n := lastNotification(t, state)
	if n.Type != "error" || n.Title != "Erro no login" || n.Message != "Email ou senha incorretos" {
		t.Fatalf("notification: %+v", n)
	}

	var persisted auth.User
	if found, _ := sessions.Get(ctx, storage.KeyUserData, &persisted); found {
		t.Fatal("user data persisted on failed login")
	}
}

func TestLoginFailureUntaggedErrorUsesGenericCopy(t *testing.T) {
	authSvc := &authStub{
		loginFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
			return nil, errors.New("dial tcp: i/o timeout")
		},
	}
	a, _ := newTestApp(authSvc, nil)

	_, _ = a.Login(context.Background(), auth.Credentials{Email: "ana@teste.com", Senha: "x"})

	n := lastNotification(t, a.State.State())
	if n.Message != errormsg.Generic {
		t.Fatalf("raw error leaked to notification: %q", n.Message)
	}
}

func TestLogoutClearsSessionAndResetsState(t *testing.T) {
	ctx := context.Background()
	var loggedOut bool
	authSvc := &authStub{
		loginFn: func(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
			return &auth.Session{Token: "t", User: auth.User{ID: 7, Nome: "Ana", Tipo: "FUNCIONARIO"}}, nil
		},
		logoutFn: func(ctx context.Context) { loggedOut = true },
	}
	a, sessions := newTestApp(authSvc, nil)

	if _, err := a.Login(ctx, auth.Credentials{Email: "ana@teste.com", Senha: "Senha@123"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	a.Logout(ctx)

	if !loggedOut {
		t.Fatal("auth logout not called")
	}
	state := a.State.State()
	if state.IsAuthenticated || state.User != nil {
		t.Fatalf("state not reset: %+v", state)
	}

	n := lastNotification(t, state)
	if n.Type != "info" || n.Title != "Logout realizado" {
		t.Fatalf("notification: %+v", n)
	}

	var persisted auth.User
	if found, _ := sessions.Get(ctx, storage.KeyUserData, &persisted); found {
		t.Fatal("user data survived logout")
	}
}

func TestRegisterSuccessNotifies(t *testing.T) {
	authSvc := &authStub{
		registerFn: func(ctx context.Context, in auth.RegisterInput) error { return nil },
	}
	a, _ := newTestApp(authSvc, nil)

	if err := a.Register(context.Background(), auth.RegisterInput{
		Nome: "Ana", Email: "ana@teste.com", Senha: "Senha@123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	n := lastNotification(t, a.State.State())
	if n.Type != "success" || n.Title != "Cadastro realizado com sucesso!" {
		t.Fatalf("notification: %+v", n)
	}
}

func TestLoadEmployeesReplacesList(t *testing.T) {
	empSvc := &employeeStub{
		listFn: func(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error) {
			if idMercado != 3 {
				t.Fatalf("idMercado: %d", idMercado)
			}
			return []funcionarios.Funcionario{{ID: 1, Nome: "Ana"}, {ID: 2, Nome: "Bia"}}, nil
		},
	}
	a, _ := newTestApp(nil, empSvc)

	list, err := a.LoadEmployees(context.Background(), 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 || len(a.State.State().Employees) != 2 {
		t.Fatalf("employees: %d in return, %d in state", len(list), len(a.State.State().Employees))
	}
}

func TestCreateEmployeeDispatchesAdd(t *testing.T) {
	empSvc := &employeeStub{
		createFn: func(ctx context.Context, in funcionarios.CreateInput) (*funcionarios.Funcionario, error) {
			return &funcionarios.Funcionario{ID: 9, Nome: in.Nome}, nil
		},
	}
	a, _ := newTestApp(nil, empSvc)

	created, err := a.CreateEmployee(context.Background(), funcionarios.CreateInput{
		Nome: "Caio", Email: "caio@teste.com", Senha: "Senha@123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created == nil || created.ID != 9 {
		t.Fatalf("created: %+v", created)
	}
	state := a.State.State()
	if len(state.Employees) != 1 || state.Employees[0].ID != 9 {
		t.Fatalf("state employees: %+v", state.Employees)
	}
}

func TestDeleteEmployeeDispatchesRemove(t *testing.T) {
	ctx := context.Background()
	empSvc := &employeeStub{
		listFn: func(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error) {
			return []funcionarios.Funcionario{{ID: 1, Nome: "Ana"}, {ID: 2, Nome: "Bia"}}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	a, _ := newTestApp(nil, empSvc)
	if _, err := a.LoadEmployees(ctx, 1); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := a.DeleteEmployee(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	state := a.State.State()
	if len(state.Employees) != 1 || state.Employees[0].ID != 2 {
		t.Fatalf("state employees: %+v", state.Employees)
	}
}

func TestDeleteEmployeeFailureLeavesList(t *testing.T) {
	ctx := context.Background()
	empSvc := &employeeStub{
		listFn: func(ctx context.Context, idMercado int64) ([]funcionarios.Funcionario, error) {
			return []funcionarios.Funcionario{{ID: 1, Nome: "Ana"}}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			return apperrors.HTTP(404, "Recurso não encontrado")
		},
	}
	a, _ := newTestApp(nil, empSvc)
	if _, err := a.LoadEmployees(ctx, 1); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := a.DeleteEmployee(ctx, 1); err == nil {
		t.Fatal("expected error")
	}
	if len(a.State.State().Employees) != 1 {
		t.Fatal("list changed on failed delete")
	}
	n := lastNotification(t, a.State.State())
	if n.Type != "error" || n.Message != "Recurso não encontrado" {
		t.Fatalf("notification: %+v", n)
	}
}
