package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Bearing/internal/auth"
	"Bearing/internal/cache"
	"Bearing/internal/calc/bearing"
	"Bearing/internal/calc/loads"
	"Bearing/internal/calc/premium/autodesign"
	"Bearing/internal/calc/premium/batch"
	"Bearing/internal/calc/premium/importer"
	"Bearing/internal/calc/premium/recommend"
	"Bearing/internal/calc/report"
	"Bearing/internal/config"
	"Bearing/internal/database"
	"Bearing/internal/logger"
	"Bearing/internal/profile"
	"Bearing/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

// Deps are the collaborators the routes need.
type Deps struct {
	Repo      repo.Repository
	TokenKey  []byte
	Cache     cache.KVStore
	CacheTTL  time.Duration
	RateRPS   float64
	RateBurst int
	Logger    *zap.Logger
}

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an X-Request-ID and logs it once
// served.
func RequestLogger(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

func HandleList(mux *mux.Router, d Deps) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mux.Use(RequestLogger(log))

	authEnv := &auth.Authenv{JWTkey: d.TokenKey, Repo: d.Repo, Logger: log}
	limiter := auth.NewIPRateLimiter(rate.Limit(d.RateRPS), d.RateBurst)

	bearingH := &bearing.Handler{Logger: log, Cache: d.Cache, TTL: d.CacheTTL}
	loadsH := &loads.Handler{}
	reportH := &report.Handler{Eval: bearingH.Evaluate, Logger: log}
	batchH := &batch.Handler{Eval: bearingH.Evaluate, Logger: log}
	importH := &importer.Handler{Eval: bearingH.Evaluate, Logger: log}
	autoH := &autodesign.Handler{Eval: bearingH.Evaluate}
	recommendH := &recommend.Handler{}
	profileH := &profile.ProfileHandler{}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
	api.HandleFunc("/materials", bearingH.Materials).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/tools/bearing/calc", bearingH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/bearing/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/bearing/report/text", reportH.Text).Methods("POST")
	secureApi.HandleFunc("/tools/loads/calc", loadsH.Calc).Methods("POST")

	secureApi.HandleFunc("/tools-premium/bearing/batch", batchH.Bearing).Methods("POST")
	secureApi.HandleFunc("/tools-premium/bearing/import", importH.Bearing).Methods("POST")
	secureApi.HandleFunc("/tools-premium/bearing/import/template", importH.Template).Methods("GET")
	secureApi.HandleFunc("/tools-premium/bearing/export", importH.Export).Methods("POST")
	secureApi.HandleFunc("/tools-premium/bearing/autodesign", autoH.Bearing).Methods("POST")
	secureApi.HandleFunc("/tools-premium/bearing/recommend", recommendH.Shim).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "bearing-api")
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	deps := Deps{
		Repo:      repo.NewPostgresUserDB(db),
		TokenKey:  []byte(cfg.TokenKey),
		CacheTTL:  cfg.Cache.TTL,
		RateRPS:   cfg.RateLimit.RPS,
		RateBurst: cfg.RateLimit.Burst,
		Logger:    log,
	}
	if cfg.Cache.Enabled {
		if rc := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); rc != nil {
			defer rc.Close()
			deps.Cache = cache.NewRedisKVStore(rc)
			log.Info("result cache enabled", zap.String("redis", cfg.Redis.Addr), zap.Duration("ttl", cfg.Cache.TTL))
		} else {
			log.Warn("redis unreachable, running without result cache", zap.String("redis", cfg.Redis.Addr))
		}
	}

	router := mux.NewRouter()
	HandleList(router, deps)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
