package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"equipcare-cloud/internal/analytics/application"
	analyticsrepo "equipcare-cloud/internal/analytics/infrastructure/postgres"
	analyticsinterfaces "equipcare-cloud/internal/analytics/interfaces"
	kpihttp "equipcare-cloud/internal/analytics/interfaces/http"
	"equipcare-cloud/internal/audit"
	"equipcare-cloud/internal/auth"
	masterdataapp "equipcare-cloud/internal/masterdata/application"
	masterdatarepo "equipcare-cloud/internal/masterdata/infrastructure/postgres"
	assethttp "equipcare-cloud/internal/masterdata/interfaces/http"
	"equipcare-cloud/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	analyticsCfg, err := application.LoadConfig()
	if err != nil {
		logger.Fatalf("analytics config error: %v", err)
	}

	historyReader := analyticsrepo.NewHistoryReader(db)
	kpiService, err := application.NewKPIService(historyReader, historyReader, analyticsCfg, application.SystemClock{})
	if err != nil {
		logger.Fatalf("kpi service error: %v", err)
	}
	kpiHandler, err := kpihttp.NewHandler(kpiService)
	if err != nil {
		logger.Fatalf("kpi handler error: %v", err)
	}
	exportHandler, err := analyticsinterfaces.NewExportHandler(kpiService, application.SystemClock{}, auditRepo)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	assetRepo := masterdatarepo.NewAssetRepository(db)
	suggestionService, err := masterdataapp.NewSuggestionService(assetRepo)
	if err != nil {
		logger.Fatalf("suggestion service error: %v", err)
	}
	assetHandler, err := assethttp.NewHandler(suggestionService)
	if err != nil {
		logger.Fatalf("assets handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/kpi/", kpiHandler)
	mux.Handle("/api/v1/assets/suggest", assetHandler)
	mux.Handle("/api/v1/assets/validate-code", assetHandler)
	mux.Handle("/api/v1/exports/health-report.xlsx", exportHandler)
	mux.Handle("/api/v1/exports/health-report.pdf", exportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
