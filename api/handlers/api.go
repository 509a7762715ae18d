package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/api"
	"github.com/lobbychat/lobby-chat-api/chat"
	"github.com/lobbychat/lobby-chat-api/config"
	"github.com/lobbychat/lobby-chat-api/databases"
	"github.com/lobbychat/lobby-chat-api/models"
)

// App stores the router, the chat hub and the account store, so it can be reused
type App struct {
	Router   *mux.Router
	Accounts databases.AccountDatabase
	Hub      *chat.Hub
	Config   config.Config
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the admin middleware
	m := api.MiddlewareDB{DB: a.Accounts}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	s := Stats{Hub: a.Hub}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.HandleFunc("/ws", a.WebSocketHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/stats", api.Middleware(http.HandlerFunc(s.StatsHandler))).Methods("GET")

	// chat frontend hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./public/"))))
	return r
}

// Initialize is invoked by main to load the account store and create the
// hub and router
func (a *App) Initialize() error {

	a.Accounts = databases.NewAccountDatabase(a.Config.UsersFile, a.Config.OwnerPassword)
	if err := a.Accounts.Load(); err != nil {
		// Load fails soft on bad data; an error here means the seed
		// account could not even be hashed, so kill the pod
		zap.S().With(err).Error("failed to initialize account store")
		return err
	}

	a.Hub = chat.NewHub(a.Accounts)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
