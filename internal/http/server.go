package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"attendancehub/internal/metrics"
	"attendancehub/internal/operations"
	"attendancehub/internal/store"
)

type Server struct {
	svc         *operations.Service
	metrics     *metrics.Metrics
	log         *slog.Logger
	corsOrigins []string
}

func NewServer(svc *operations.Service, m *metrics.Metrics, log *slog.Logger, corsOrigins []string) *Server {
	return &Server{
		svc:         svc,
		metrics:     m,
		log:         log,
		corsOrigins: corsOrigins,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Post("/login", s.handleLogin)

	r.Get("/companies", s.handleListCompanies)
	r.Post("/companies", s.handleCreateCompany)

	r.Get("/members", s.handleListMembers)
	r.Post("/members", s.handleCreateMember)
	r.Patch("/members/{id}", s.handlePatchMember)

	r.Get("/attendance", s.handleListAttendance)
	r.Post("/attendance", s.handleSaveAttendance)

	r.Get("/users", s.handleListUsers)
	r.Post("/users", s.handleCreateUser)
	r.Patch("/users/{id}", s.handlePatchUser)

	r.Get("/announcements", s.handleListAnnouncements)
	r.Post("/announcements", s.handleCreateAnnouncement)
	r.Post("/announcements/{id}/comments", s.handleCommentAnnouncement)

	r.Get("/permissions", s.handleListPermissions)
	r.Post("/permissions", s.handleCreatePermission)
	r.Patch("/permissions/{id}", s.handlePatchPermission)

	r.Get("/cases", s.handleListCases)
	r.Post("/cases", s.handleCreateCase)
	r.Post("/cases/{id}/comments", s.handleCommentCase)
	r.Patch("/cases/{id}/decision", s.handleDecideCase)

	r.Get("/ideas", s.handleListIdeas)
	r.Post("/ideas", s.handleCreateIdea)
	r.Patch("/ideas/{id}", s.handlePatchIdea)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Health())
}

// Login

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req operations.LoginInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	res, err := s.svc.Login(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Companies

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListCompanies(r.Context())
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateCompanyInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	company, err := s.svc.CreateCompany(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// Members

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListMembers(r.Context(), r.URL.Query().Get("companyId"))
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateMemberInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	member, err := s.svc.CreateMember(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handlePatchMember(w http.ResponseWriter, r *http.Request) {
	var req operations.UpdateMemberInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	member, err := s.svc.UpdateMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// Attendance

func (s *Server) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.svc.ListAttendance(r.Context(), store.AttendanceFilter{
		Date:     q.Get("date"),
		MemberID: q.Get("memberId"),
	})
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveAttendance(w http.ResponseWriter, r *http.Request) {
	var req operations.SaveAttendanceInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	created, err := s.svc.SaveAttendance(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Users

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListUsers(r.Context(), r.URL.Query().Get("companyId"))
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	user, err := s.svc.CreateUser(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	var req operations.UpdateUserInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	user, err := s.svc.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Announcements

func (s *Server) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListAnnouncements(r.Context())
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateAnnouncementInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	ann, err := s.svc.CreateAnnouncement(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ann)
}

func (s *Server) handleCommentAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req operations.CommentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	comment, err := s.svc.CommentOnAnnouncement(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Permissions

func (s *Server) handleListPermissions(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListPermissions(r.Context())
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreatePermission(w http.ResponseWriter, r *http.Request) {
	var req operations.CreatePermissionInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	created, err := s.svc.CreatePermission(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePatchPermission(w http.ResponseWriter, r *http.Request) {
	var req operations.UpdatePermissionInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	updated, err := s.svc.UpdatePermission(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Cases

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListCases(r.Context(), r.URL.Query().Get("companyId"))
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateCaseInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	created, err := s.svc.CreateCase(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCommentCase(w http.ResponseWriter, r *http.Request) {
	var req operations.CommentInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	comment, err := s.svc.CommentOnCase(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleDecideCase(w http.ResponseWriter, r *http.Request) {
	var req operations.DecideCaseInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	decided, err := s.svc.DecideCase(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decided)
}

// Ideas

func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListIdeas(r.Context())
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateIdea(w http.ResponseWriter, r *http.Request) {
	var req operations.CreateIdeaInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	idea, err := s.svc.CreateIdea(r.Context(), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idea)
}

func (s *Server) handlePatchIdea(w http.ResponseWriter, r *http.Request) {
	var req operations.UpdateIdeaInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, operations.ErrInvalidPayload)
		return
	}
	idea, err := s.svc.UpdateIdea(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeOpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}
