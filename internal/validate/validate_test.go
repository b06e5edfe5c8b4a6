package validate

import "testing"

func TestIsCPF(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"111.111.111-11", false},
		{"00000000000", false},
		{"1234567890", false},
		{"123456789012", false},
		{"", false},
		{"abc.def.ghi-jk", false},
	}
	for _, tt := range tests {
		if got := IsCPF(tt.cpf); got != tt.want {
			t.Errorf("IsCPF(%q) = %v, want %v", tt.cpf, got, tt.want)
		}
	}
}

func TestStrongPassword(t *testing.T) {
	tests := []struct {
		senha string
		want  bool
	}{
		{"Abcdef1!", true},
		{"Senha@2024", true},
		{"abcdef1!", false},
		{"ABCDEF1!", false},
		{"Abcdefg!", false},
		{"Abcdefg1", false},
		{"Ab1!", false},
	}
	for _, tt := range tests {
		if got := isStrongPassword(tt.senha); got != tt.want {
			t.Errorf("isStrongPassword(%q) = %v, want %v", tt.senha, got, tt.want)
		}
	}
}

func TestStructCustomTags(t *testing.T) {
	type form struct {
		Email string `validate:"required,notblank,trimmedemail"`
	}
	if err := Struct(form{Email: "ana@mercado.com"}); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := Struct(form{Email: "   "}); err == nil {
		t.Fatal("blank email accepted")
	}
	if err := Struct(form{Email: "nope"}); err == nil {
		t.Fatal("malformed email accepted")
	}
}

func TestMessageMapping(t *testing.T) {
	type form struct {
		Senha string `validate:"required,strongpassword"`
	}
	err := Struct(form{Senha: "fraca"})
	if err == nil {
		t.Fatal("weak password accepted")
	}

	mapped := Message(err, map[string]map[string]string{
		"Senha": {
			"strongpassword": "A senha deve ter pelo menos 8 caracteres",
		},
	}, "Dados inválidos")
	if mapped.Error() != "A senha deve ter pelo menos 8 caracteres" {
		t.Fatalf("got %q", mapped.Error())
	}
}
