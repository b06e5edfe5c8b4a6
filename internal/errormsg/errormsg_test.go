package errormsg

import (
	"strings"
	"testing"
)

func TestFromResponseFriendlyField(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "message field",
			status: 401,
			body:   `{"message":"Bad credentials"}`,
			want:   "Bad credentials",
		},
		{
			name:   "error field when message absent",
			status: 400,
			body:   `{"error":"Email já cadastrado"}`,
			want:   "Email já cadastrado",
		},
		{
			name:   "message wins over error",
			status: 400,
			body:   `{"error":"segundo","message":"primeiro"}`,
			want:   "primeiro",
		},
		{
			name:   "error_description field",
			status: 400,
			body:   `{"error_description":"Senha expirada"}`,
			want:   "Senha expirada",
		},
		{
			name:   "technical message skipped in favor of next field",
			status: 409,
			body:   `{"message":"org.springframework.dao.DataIntegrityViolationException","userMessage":"Registro duplicado"}`,
			want:   "Registro duplicado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromResponse(tt.status, []byte(tt.body))
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromResponseNeverLeaksTechnicalText(t *testing.T) {
	bodies := []string{
		`{"message":"java.lang.NullPointerException: Cannot invoke"}`,
		`{"message":"Exception in thread main"}`,
		"NullPointerException\n\tat com.example.Service.login(Service.java:42)",
		`{"details":"` + strings.Repeat("x", 250) + `"}`,
		"<html><body><h1>502 Bad Gateway</h1></body></html>",
	}

	for _, body := range bodies {
		got := FromResponse(500, []byte(body))
		if got != "Erro interno do servidor" {
			t.Fatalf("body %q leaked through: %q", body, got)
		}
	}
}

func TestFromResponseUnparseableBodyFallsBackToStatus(t *testing.T) {
	got := FromResponse(401, []byte(`{"broken`))
	if got != "Email ou senha incorretos" {
		t.Fatalf("got %q", got)
	}
}

func TestFromResponseEmptyBody(t *testing.T) {
	if got := FromResponse(404, nil); got != "Recurso não encontrado" {
		t.Fatalf("got %q", got)
	}
	if got := FromResponse(418, nil); got != Generic {
		t.Fatalf("unknown status: got %q", got)
	}
}

func TestFromResponsePlainTextBodyUsesStatusTable(t *testing.T) {
	got := FromResponse(401, []byte("Acesso negado para este usuario"))
	if got != "Email ou senha incorretos" {
		t.Fatalf("got %q", got)
	}
	got = FromResponse(403, []byte("Usuário bloqueado pelo administrador"))
	if got != "Usuário inativo" {
		t.Fatalf("got %q", got)
	}
}

func TestFromStatusTable(t *testing.T) {
	cases := map[int]string{
		400: "Dados inválidos fornecidos",
		401: "Email ou senha incorretos",
		403: "Usuário inativo",
		404: "Recurso não encontrado",
		409: "Conflito de dados",
		422: "Dados inválidos",
		429: "Muitas tentativas, aguarde um momento",
		500: "Erro interno do servidor",
		502: "Serviço temporariamente indisponível",
		503: "Serviço temporariamente indisponível",
		599: Generic,
	}
	for status, want := range cases {
		if got := FromStatus(status); got != want {
			t.Fatalf("status %d: got %q, want %q", status, got, want)
		}
	}
}

func TestConnectivity(t *testing.T) {
	got := Connectivity("http://192.168.18.50:8080")
	if !strings.Contains(got, "http://192.168.18.50:8080") {
		t.Fatalf("connectivity message should name the endpoint: %q", got)
	}
	if Connectivity("") != "Verifique sua conexão com a internet" {
		t.Fatalf("empty base URL message wrong")
	}
}
