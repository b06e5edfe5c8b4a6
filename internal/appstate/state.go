// Package appstate holds the global application state behind a
// reducer: screens read snapshots and dispatch actions, nothing else
// mutates it.
package appstate

import (
	"github.com/pedrohsales/comparaprecos/internal/auth"
	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
)

type ActionType string

const (
	ActionSetUser            ActionType = "SET_USER"
	ActionSetAuthenticated   ActionType = "SET_AUTHENTICATED"
	ActionSetLoading         ActionType = "SET_LOADING"
	ActionSetTheme           ActionType = "SET_THEME"
	ActionSetLanguage        ActionType = "SET_LANGUAGE"
	ActionSetEmployees       ActionType = "SET_EMPLOYEES"
	ActionAddEmployee        ActionType = "ADD_EMPLOYEE"
	ActionUpdateEmployee     ActionType = "UPDATE_EMPLOYEE"
	ActionRemoveEmployee     ActionType = "REMOVE_EMPLOYEE"
	ActionAddNotification    ActionType = "ADD_NOTIFICATION"
	ActionRemoveNotification ActionType = "REMOVE_NOTIFICATION"
	ActionClearNotifications ActionType = "CLEAR_NOTIFICATIONS"
	ActionResetState         ActionType = "RESET_STATE"
)

type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Action struct {
	Type    ActionType
	Payload any
}

type State struct {
	User            *auth.User
	IsAuthenticated bool
	IsLoading       bool
	Theme           string
	Language        string
	Employees       []funcionarios.Funcionario
	Notifications   []Notification
}

func initialState() State {
	return State{
		User:            nil,
		IsAuthenticated: false,
		IsLoading:       true,
		Theme:           "light",
		Language:        "pt-BR",
	}
}

// reduce is a pure transition: it never mutates prior state (slices are
// replaced, not appended in place) and unknown or ill-typed actions
// leave the state unchanged.
func reduce(state State, action Action) State {
	switch action.Type {
	case ActionSetUser:
		user, ok := action.Payload.(*auth.User)
		if !ok {
			return state
		}
		state.User = user
		return state

	case ActionSetAuthenticated:
		v, ok := action.Payload.(bool)
		if !ok {
			return state
		}
		state.IsAuthenticated = v
		return state

	case ActionSetLoading:
		v, ok := action.Payload.(bool)
		if !ok {
			return state
		}
		state.IsLoading = v
		return state

	case ActionSetTheme:
		v, ok := action.Payload.(string)
		if !ok {
			return state
		}
		state.Theme = v
		return state

	case ActionSetLanguage:
		v, ok := action.Payload.(string)
		if !ok {
			return state
		}
		state.Language = v
		return state

	case ActionSetEmployees:
		list, ok := action.Payload.([]funcionarios.Funcionario)
		if !ok {
			return state
		}
		state.Employees = append([]funcionarios.Funcionario(nil), list...)
		return state

	case ActionAddEmployee:
		f, ok := action.Payload.(funcionarios.Funcionario)
		if !ok {
			return state
		}
		next := append([]funcionarios.Funcionario(nil), state.Employees...)
		state.Employees = append(next, f)
		return state

	case ActionUpdateEmployee:
		f, ok := action.Payload.(funcionarios.Funcionario)
		if !ok {
			return state
		}
		next := append([]funcionarios.Funcionario(nil), state.Employees...)
		for i := range next {
			if next[i].ID == f.ID {
				next[i] = f
			}
		}
		state.Employees = next
		return state

	case ActionRemoveEmployee:
		id, ok := action.Payload.(int64)
		if !ok {
			return state
		}
		next := make([]funcionarios.Funcionario, 0, len(state.Employees))
		for _, f := range state.Employees {
			if f.ID != id {
				next = append(next, f)
			}
		}
		state.Employees = next
		return state

	case ActionAddNotification:
		n, ok := action.Payload.(Notification)
		if !ok {
			return state
		}
		next := append([]Notification(nil), state.Notifications...)
		state.Notifications = append(next, n)
		return state

	case ActionRemoveNotification:
		id, ok := action.Payload.(string)
		if !ok {
			return state
		}
		next := make([]Notification, 0, len(state.Notifications))
		for _, n := range state.Notifications {
			if n.ID != id {
				next = append(next, n)
			}
		}
		state.Notifications = next
		return state

	case ActionClearNotifications:
		state.Notifications = nil
		return state

	case ActionResetState:
		reset := initialState()
		reset.IsLoading = false
		return reset

	default:
		return state
	}
}
