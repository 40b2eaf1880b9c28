package main

import (
	auth "Wellcore/internal/auth"
	batch "Wellcore/internal/calc/batch"
	importer "Wellcore/internal/calc/importer"
	pumpsched "Wellcore/internal/calc/pumpsched"
	recommend "Wellcore/internal/calc/recommend"
	report "Wellcore/internal/calc/report"
	rheology "Wellcore/internal/calc/rheology"
	swabsurge "Wellcore/internal/calc/swabsurge"
	volumes "Wellcore/internal/calc/volumes"
	project "Wellcore/internal/project"
	repo "Wellcore/internal/repo"
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	projectRepo := repo.NewPostgresDB(db)
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		zap.L().Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: projectRepo}
	projectH := &project.Handler{Repo: projectRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/projects", projectH.List).Methods("GET")
	secureApi.HandleFunc("/projects", projectH.Create).Methods("POST")
	secureApi.HandleFunc("/projects/{id}", projectH.Get).Methods("GET")
	secureApi.HandleFunc("/projects/{id}", projectH.Save).Methods("PUT")
	secureApi.HandleFunc("/projects/{id}", projectH.Delete).Methods("DELETE")

	volumesH := &volumes.Handler{}
	rheologyH := &rheology.Handler{}
	swabH := &swabsurge.Handler{}
	pumpschedH := &pumpsched.Handler{}
	recommendH := &recommend.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/volumes/calc", volumesH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/rheology/resolve", rheologyH.Resolve).Methods("POST")
	secureApi.HandleFunc("/tools/swab/calc", swabH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pumpsched/calc", pumpschedH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pumpsched/program", pumpschedH.Program).Methods("POST")
	secureApi.HandleFunc("/tools/recommend/tripspeed", recommendH.TripSpeed).Methods("POST")
	secureApi.HandleFunc("/tools/batch/swab", batchH.SwabSweep).Methods("POST")
	secureApi.HandleFunc("/tools/import/geometry", importerH.Geometry).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file; relying on the environment")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	logger.Info("starting server", zap.String("addr", ":443"))
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")

	wg.Wait()
}
