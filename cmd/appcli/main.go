// Command appcli drives the client stack against a running backend
// from the terminal: login, list the roster, logout. It is the smoke
// test used when pointing the app at a new environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pedrohsales/comparaprecos/internal"
	"github.com/pedrohsales/comparaprecos/internal/apiclient"
	"github.com/pedrohsales/comparaprecos/internal/app"
	"github.com/pedrohsales/comparaprecos/internal/appstate"
	"github.com/pedrohsales/comparaprecos/internal/auth"
	"github.com/pedrohsales/comparaprecos/internal/funcionarios"
	"github.com/pedrohsales/comparaprecos/internal/storage"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "admin@comparaprecos.com", "login email")
	cpf := flag.String("cpf", "", "login CPF, used instead of email when set")
	senha := flag.String("senha", "Admin@123", "login password")
	idMercado := flag.Int64("mercado", 1, "market id for the roster")
	flag.Parse()

	ctx := context.Background()

	store, err := newStore(ctx)
	if err != nil {
		log.Fatalf("storage error: %v", err)
	}

	baseURL := internal.Env("API_BASE_URL", "http://localhost:8080")
	client := apiclient.New(apiclient.Config{BaseURL: baseURL}, &storage.TokenSource{Store: store})

	authSvc := &auth.Service{API: client, Store: store}
	empSvc := &funcionarios.Service{API: client}
	state := appstate.New(store)
	defer state.Close()

	a := app.New(authSvc, empSvc, store, state)

	if err := a.Bootstrap(ctx); err != nil {
		log.Printf("bootstrap warning: %v", err)
	}

	creds := auth.Credentials{Email: *email, Senha: *senha}
	if *cpf != "" {
		creds = auth.Credentials{CPF: *cpf, Senha: *senha}
	}
	if err := creds.Validate(); err != nil {
		log.Fatalf("credenciais: %v", err)
	}

	user, err := a.Login(ctx, creds)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	fmt.Printf("logado como %s (%s)\n", user.Nome, user.Tipo)

	roster, err := a.LoadEmployees(ctx, *idMercado)
	if err != nil {
		log.Fatalf("funcionarios: %v", err)
	}
	for _, f := range roster {
		status := "inativo"
		if f.Ativo {
			status = "ativo"
		}
		fmt.Printf("  #%d %s <%s> %s %s\n", f.ID, f.Nome, f.Email, f.Cargo, status)
	}

	a.Logout(ctx)
	fmt.Println("sessão encerrada")
}

// newStore picks the persistence backend from the environment: redis
// when REDIS_URL is set, otherwise a JSON file under the user cache
// dir, overridable with STORAGE_FILE.
func newStore(ctx context.Context) (storage.Store, error) {
	if redisURL := internal.Env("REDIS_URL", ""); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return storage.NewRedisStore(client, internal.Env("STORAGE_REDIS_PREFIX", "comparaprecos:app:")), nil
	}

	path := internal.Env("STORAGE_FILE", "")
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return storage.NewMemoryStore(), nil
		}
		path = filepath.Join(dir, "comparaprecos", "storage.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return storage.NewFileStore(path)
}
