package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rcpp-platform/rcpp-api/api"
	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	guard := api.Guard{
		Secret:       []byte(a.Config.TokenSecret),
		AllowedRoles: a.Config.AllowedRoles,
	}

	r := mux.NewRouter()

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	auth := Auth{DB: databases.NewUserDatabase(a.dbHelper), Secret: []byte(a.Config.TokenSecret), AllowedRoles: a.Config.AllowedRoles}
	c := Case{DB: databases.NewIncidentDatabase(a.dbHelper), UDB: databases.NewUserDatabase(a.dbHelper)}
	stats := Stats{DB: databases.NewIncidentDatabase(a.dbHelper)}
	hd := HelpDesk{
		DB:           databases.NewHelpDeskDatabase(a.dbHelper),
		Mailer:       NewSendGridMailer(os.Getenv("SENDGRID_API_KEY"), a.Config.EmailFrom),
		SupportEmail: a.Config.SupportEmail,
	}
	n := News{DB: databases.NewNewsDatabase(a.dbHelper), CDB: databases.NewCommentDatabase(a.dbHelper)}
	aw := Awareness{DB: databases.NewAwarenessDatabase(a.dbHelper), TDB: databases.NewThreatAlertDatabase(a.dbHelper)}
	up := Upload{Dir: a.Config.UploadDir}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	r.Handle("/users", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")
	r.Handle("/users", guard.Middleware(http.HandlerFunc(u.UserListHandler))).Methods("GET")
	r.Handle("/users/update-password/{user_id}", guard.Middleware(http.HandlerFunc(u.UpdatePasswordHandler))).Methods("PATCH")
	r.Handle("/users/{user_id}/assigned-cases", guard.Middleware(http.HandlerFunc(c.AssignedCasesHandler))).Methods("GET")
	r.Handle("/users/{user_id}", guard.Middleware(http.HandlerFunc(u.UserByIDHandler))).Methods("GET")
	r.Handle("/users/{user_id}", guard.Middleware(http.HandlerFunc(u.UpdateUserByIDHandler))).Methods("PUT")

	r.Handle("/auth/user/login", http.HandlerFunc(auth.LoginHandler)).Methods("POST")
	r.Handle("/auth/me", http.HandlerFunc(auth.MeHandler)).Methods("GET")

	r.Handle("/report-incident", http.HandlerFunc(c.SubmitCaseHandler)).Methods("POST")
	r.Handle("/report/{ticket}", http.HandlerFunc(c.CaseByTicketHandler)).Methods("GET")
	r.Handle("/cases", guard.Middleware(http.HandlerFunc(c.CaseListHandler))).Methods("GET")
	r.Handle("/cases/{case_id}", guard.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	r.Handle("/cases/{case_id}/assign", guard.Middleware(http.HandlerFunc(c.AssignCaseHandler))).Methods("POST")
	r.Handle("/cases/{case_id}/status", guard.Middleware(http.HandlerFunc(c.UpdateCaseStatusHandler))).Methods("PATCH")

	r.Handle("/admin-stats", guard.Middleware(http.HandlerFunc(stats.AdminStatsHandler))).Methods("GET")

	r.Handle("/contact-helpdesk", http.HandlerFunc(hd.CreateTicketHandler)).Methods("POST")
	r.Handle("/contact-helpdesk", guard.Middleware(http.HandlerFunc(hd.TicketListHandler))).Methods("GET")
	r.Handle("/contact-helpdesk/{ticket_id}/read", guard.Middleware(http.HandlerFunc(hd.MarkTicketReadHandler))).Methods("PATCH")

	r.Handle("/api/news", http.HandlerFunc(n.NewsListHandler)).Methods("GET")
	r.Handle("/api/news", guard.Middleware(http.HandlerFunc(n.CreateNewsHandler))).Methods("POST")
	r.Handle("/api/news/post-comment", http.HandlerFunc(n.PostCommentHandler)).Methods("POST")
	r.Handle("/api/news/get-comments/{news_id}", http.HandlerFunc(n.CommentsByNewsIDHandler)).Methods("GET")
	r.Handle("/api/news/like/{news_id}", http.HandlerFunc(n.LikeNewsHandler)).Methods("PATCH")
	r.Handle("/api/news/{news_id}", http.HandlerFunc(n.NewsByIDHandler)).Methods("GET")
	r.Handle("/api/news/{news_id}", guard.Middleware(http.HandlerFunc(n.DeleteNewsHandler))).Methods("DELETE")

	r.Handle("/api/awareness", http.HandlerFunc(aw.AwarenessListHandler)).Methods("GET")
	r.Handle("/api/awareness/alerts", http.HandlerFunc(aw.ThreatAlertsHandler)).Methods("GET")
	r.Handle("/api/awareness/details/{content_id}", http.HandlerFunc(aw.AwarenessDetailsHandler)).Methods("GET")
	r.Handle("/api/awareness/add", guard.Middleware(http.HandlerFunc(aw.CreateAwarenessHandler))).Methods("POST")

	r.Handle("/upload", http.HandlerFunc(up.UploadFileHandler)).Methods("POST")
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.Config.UploadDir))))

	r.HandleFunc("/", rootHandler).Methods("GET")
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(context.Background())
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("rcpp-api has connected to the database")

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Shutdown releases the database connection held for the process lifetime
func (a *App) Shutdown(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
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

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "RCPP main server is running")
}
