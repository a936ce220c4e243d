package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"slate/internal/api"
	"slate/internal/config"
	"slate/internal/dashboard"
	"slate/internal/logging"
	"slate/internal/takes"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}

	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/project", srv.handleProject)
	mux.HandleFunc("/api/takes", srv.handleTakes)
	mux.HandleFunc("/api/takes/", srv.handleTakeSubtree)
	mux.HandleFunc("/api/dashboard/stats", srv.handleDashboardStats)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler exposes the mux for in-process tests.
func (s *apiServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	s.writeJSON(w, http.StatusOK, api.DaemonStatus{
		Running:      status.Running,
		PID:          status.PID,
		DBPath:       status.DBPath,
		LockFilePath: status.LockFilePath,
		TrackedRuns:  status.TrackedRuns,
		TotalTakes:   status.TotalTakes,
	})
}

func (s *apiServer) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	project, err := s.daemon.store.EnsureProject(r.Context(), projectDefaults(s.daemon.cfg))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromProject(project))
}

func (s *apiServer) handleTakes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.daemon.store.List(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.TakeListResponse{Takes: api.FromTakes(list)})
	case http.MethodPost:
		var req api.CreateTakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.FileName = strings.TrimSpace(req.FileName)
		req.FilePath = strings.TrimSpace(req.FilePath)
		if req.FileName == "" || req.FilePath == "" {
			s.writeError(w, http.StatusBadRequest, "fileName and filePath are required")
			return
		}
		project, err := s.daemon.store.EnsureProject(r.Context(), projectDefaults(s.daemon.cfg))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		take, err := s.daemon.store.NewTake(r.Context(), project.ID, req.FileName, req.FilePath)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.TakeResponse{Take: api.FromTake(take)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleTakeSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/takes/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid take id")
		return
	}

	switch action {
	case "":
		s.handleTake(w, r, id)
	case "process":
		s.handleProcess(w, r, id)
	case "status":
		s.handleTakeStatus(w, r, id)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *apiServer) handleTake(w http.ResponseWriter, r *http.Request, id int64) {
	switch r.Method {
	case http.MethodGet:
		take, err := s.daemon.store.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if take == nil {
			s.writeError(w, http.StatusNotFound, "take not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.TakeResponse{Take: api.FromTake(take)})
	case http.MethodPatch:
		var req api.UpdateTakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		status, ok := takes.ParseAcceptStatus(req.AcceptStatus)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid accept status %q", req.AcceptStatus))
			return
		}
		if err := s.daemon.store.SetAcceptStatus(r.Context(), id, status); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		take, err := s.daemon.store.GetByID(r.Context(), id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if take == nil {
			s.writeError(w, http.StatusNotFound, "take not found")
			return
		}
		s.writeJSON(w, http.StatusOK, api.TakeResponse{Take: api.FromTake(take)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleProcess(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	take, err := s.daemon.store.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if take == nil {
		s.writeError(w, http.StatusNotFound, "take not found")
		return
	}
	s.daemon.Process(id)
	s.writeJSON(w, http.StatusAccepted, api.ProcessResponse{TakeID: id, Status: "processing"})
}

func (s *apiServer) handleTakeStatus(w http.ResponseWriter, r *http.Request, id int64) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	record, _ := s.daemon.tracker.Snapshot(id)
	s.writeJSON(w, http.StatusOK, api.StatusResponse{TakeID: id, Progress: record})
}

func (s *apiServer) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	list, err := s.daemon.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.StatsResponse{Stats: dashboard.Aggregate(list)})
}

func projectDefaults(cfg *config.Config) takes.ProjectDefaults {
	return takes.ProjectDefaults{
		Name:        cfg.Project.Name,
		Description: cfg.Project.Description,
		Settings: map[string]any{
			"aspect_ratio": cfg.Project.AspectRatio,
			"target_fps":   cfg.Project.TargetFPS,
		},
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
