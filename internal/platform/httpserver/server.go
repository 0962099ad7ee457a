package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	forumservice "agora/contexts/community/forum-service"
	vitalityledger "agora/contexts/community/vitality-ledger"
	accountservice "agora/contexts/identity/account-service"
	adminservice "agora/contexts/moderation/admin-service"
	ticketservice "agora/contexts/support/ticket-service"

	_ "agora/internal/platform/httpserver/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	adminSecret string
	vitality    vitalityledger.Module
	forum       forumservice.Module
	accounts    accountservice.Module
	tickets     ticketservice.Module
	admin       adminservice.Module
}

func New(
	vitality vitalityledger.Module,
	forum forumservice.Module,
	accounts accountservice.Module,
	tickets ticketservice.Module,
	admin adminservice.Module,
	adminSecret string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		adminSecret: adminSecret,
		vitality:    vitality,
		forum:       forum,
		accounts:    accounts,
		tickets:     tickets,
		admin:       admin,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/vitality/{account_id}", s.handleGetVitality)
	s.mux.HandleFunc("GET /api/v1/vitality/{account_id}/history", s.handleGetVitalityHistory)

	s.mux.HandleFunc("POST /api/v1/posts", s.handleCreatePost)
	s.mux.HandleFunc("GET /api/v1/posts", s.handleListPosts)
	s.mux.HandleFunc("POST /api/v1/replies", s.handleCreateReply)
	s.mux.HandleFunc("POST /api/v1/react", s.handleReact)
	s.mux.HandleFunc("POST /api/v1/follow", s.handleFollow)
	s.mux.HandleFunc("GET /api/v1/follow/list", s.handleFollowList)

	s.mux.HandleFunc("POST /api/v1/profiles", s.handleInitProfile)
	s.mux.HandleFunc("GET /api/v1/profiles/{account_id}", s.handleGetProfile)

	s.mux.HandleFunc("POST /api/v1/tickets", s.handleCreateTicket)
	s.mux.HandleFunc("GET /api/v1/tickets", s.handleListTickets)

	s.mux.HandleFunc("POST /api/v1/admin/actions", s.handleAdminAction)
	s.mux.HandleFunc("GET /api/v1/admin/reports", s.handleListAdminReports)
	s.mux.HandleFunc("POST /api/v1/admin/run-weekly-decay", s.handleRunWeeklyDecay)
}

// secretOK reports whether the request carries the configured admin secret,
// in the X-Admin-Secret header or the secret query parameter.
func (s *Server) secretOK(r *http.Request) bool {
	if s.adminSecret == "" {
		return false
	}
	if r.Header.Get("X-Admin-Secret") == s.adminSecret {
		return true
	}
	return r.URL.Query().Get("secret") == s.adminSecret
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
