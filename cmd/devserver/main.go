package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/pedrohsales/comparaprecos/internal"
	"github.com/pedrohsales/comparaprecos/internal/httpapi"
	"github.com/pedrohsales/comparaprecos/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	port := internal.Env("APP_PORT", "8080")
	serviceName := internal.Env("OTEL_SERVICE_NAME", "comparaprecos-devserver")

	shutdown := telemetry.InitTracer(serviceName)
	defer shutdown(context.Background())
	shutdownMetrics := telemetry.InitMetrics(serviceName)
	defer shutdownMetrics(context.Background())
	shutdownLogger := telemetry.InitLogger(serviceName)
	defer shutdownLogger(context.Background())

	repo := httpapi.NewRepo()
	if err := repo.Seed(); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpapi.NewRouter(httpapi.NewApp(repo), serviceName),
		ReadHeaderTimeout: internal.EnvDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
	}

	log.Printf("devserver listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
