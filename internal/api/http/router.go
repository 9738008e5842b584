package http

import (
	"net/http"

	"thoonsheet-backend/internal/repository"
	"thoonsheet-backend/internal/security"
	"thoonsheet-backend/internal/service"
	"thoonsheet-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs wired in.
type Services struct {
	Auth            service.AuthService
	Users           service.UserService
	Groups          service.GroupService
	PaymentAccounts service.PaymentAccountService
	Transactions    service.TransactionService
	AuditEntries    service.AuditEntryService
	Summaries       service.SummaryService

	Tokens      security.TokenManager
	UserRepo    repository.UserRepository
	Images      storage.FileStore
	MaxFileSize int64
}

// NewRouter builds the full API surface. Everything except login and the
// health check sits behind the auth middleware.
func NewRouter(s Services) *mux.Router {
	root := mux.NewRouter()
	root.Use(RequestLogger)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(s.Auth)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(NewAuthMiddleware(s.Tokens, s.UserRepo).Handler)

	protected.HandleFunc("/auth/password/change", authHandler.ChangePassword).Methods(http.MethodPost)

	userHandler := NewUserHandler(s.Users)
	protected.HandleFunc("/users/me", userHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{id:[0-9]+}/password", authHandler.SetUserPassword).Methods(http.MethodPost)

	groupHandler := NewGroupHandler(s.Groups)
	protected.HandleFunc("/groups", groupHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/groups", groupHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id:[0-9]+}", groupHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id:[0-9]+}", groupHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/groups/{id:[0-9]+}", groupHandler.Delete).Methods(http.MethodDelete)

	accountHandler := NewPaymentAccountHandler(s.PaymentAccounts)
	protected.HandleFunc("/payment-accounts", accountHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/payment-accounts", accountHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/payment-accounts/{id:[0-9]+}", accountHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/payment-accounts/{id:[0-9]+}", accountHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/payment-accounts/{id:[0-9]+}", accountHandler.Delete).Methods(http.MethodDelete)

	txHandler := NewTransactionHandler(s.Transactions, s.Summaries)
	imageHandler := NewImageHandler(s.Images, s.MaxFileSize)
	protected.HandleFunc("/transactions/pending", txHandler.ListPending).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/rejected", txHandler.ListRejected).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/summary", txHandler.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/images", imageHandler.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/transactions/images/{key}", imageHandler.Download).Methods(http.MethodGet)
	protected.HandleFunc("/transactions", txHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/transactions", txHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/transactions/{id:[0-9]+}", txHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/{id:[0-9]+}", txHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/transactions/{id:[0-9]+}", txHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/transactions/{id:[0-9]+}/approve", txHandler.Approve).Methods(http.MethodPost)
	protected.HandleFunc("/transactions/{id:[0-9]+}/reject", txHandler.Reject).Methods(http.MethodPost)
	protected.HandleFunc("/transactions/{id:[0-9]+}/re_submit", txHandler.Resubmit).Methods(http.MethodPost)

	entryHandler := NewAuditEntryHandler(s.AuditEntries)
	protected.HandleFunc("/audit-entries", entryHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/audit-entries", entryHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/audit-entries/{id:[0-9]+}", entryHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/audit-entries/{id:[0-9]+}", entryHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/audit-entries/{id:[0-9]+}", entryHandler.Delete).Methods(http.MethodDelete)

	return root
}
