package handler

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"net/http"
	"strconv"

	"github.com/KOFI-GYIMAH/github-repos/internal/github"
	"github.com/KOFI-GYIMAH/github-repos/internal/models"
	"github.com/KOFI-GYIMAH/github-repos/pkg/errors"
	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
	"github.com/gorilla/mux"
)

// RepositorySource is the part of *github.Client the handler serves.
type RepositorySource interface {
	ListRepositories(ctx context.Context) iter.Seq2[*github.Repository, error]
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	RateLimit() github.RateLimit
}

type RepositoryHandler struct {
	source  RepositorySource
	journal models.Journal
}

// * journal may be nil, in which case /requests is not registered
func NewRepositoryHandler(source RepositorySource, journal models.Journal) *RepositoryHandler {
	return &RepositoryHandler{
		source:  source,
		journal: journal,
	}
}

func (h *RepositoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/repositories", h.listRepositories).Methods("GET")
	r.HandleFunc("/repositories/{owner}/{repo}", h.getRepository).Methods("GET")
	r.HandleFunc("/rate-limit", h.getRateLimit).Methods("GET")
	if h.journal != nil {
		r.HandleFunc("/requests", h.getRecentRequests).Methods("GET")
	}
}

func writeSuccess(w http.ResponseWriter, data any, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// listRepositories godoc
// @Summary List Repositories
// @Description Streams the authenticated user's repositories, most recently updated first
// @Tags Repository
// @Produce json
// @Success 200 {array} github.Repository
// @Failure 401 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /repositories [get]
func (h *RepositoryHandler) listRepositories(w http.ResponseWriter, r *http.Request) {
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	count := 0

	for repo, err := range h.source.ListRepositories(r.Context()) {
		if err != nil {
			if count == 0 {
				errors.WriteHTTPError(w, err)
				return
			}
			// * headers are already sent; a truncated body is the only signal left
			logger.Error("repository stream aborted after %d records: %v", count, err)
			return
		}

		if count == 0 {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"status":"success","message":"Successfully fetched repositories","data":[`)
		} else {
			io.WriteString(w, ",")
		}
		enc.Encode(repo)
		count++

		if flusher != nil {
			flusher.Flush()
		}
	}

	if count == 0 {
		writeSuccess(w, []*github.Repository{}, "Successfully fetched repositories")
		return
	}
	io.WriteString(w, "]}\n")

	logger.Info("Streamed %d repositories", count)
}

// getRepository godoc
// @Summary Get Repository
// @Description Fetch one repository from GitHub
// @Tags Repository
// @Produce json
// @Param owner path string true "Repository Owner"
// @Param repo path string true "Repository Name"
// @Success 200 {object} github.Repository
// @Failure 404 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /repositories/{owner}/{repo} [get]
func (h *RepositoryHandler) getRepository(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	owner := vars["owner"]
	repoName := vars["repo"]

	repository, err := h.source.GetRepository(r.Context(), owner, repoName)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Info("Fetched repository %s/%s", owner, repoName)
	writeSuccess(w, repository, "Successfully fetched repository")
}

// getRateLimit godoc
// @Summary Get Rate Limit
// @Description Last rate budget GitHub reported to this client
// @Tags Client
// @Produce json
// @Success 200 {object} github.RateLimit
// @Router /rate-limit [get]
func (h *RepositoryHandler) getRateLimit(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.source.RateLimit())
}

// getRecentRequests godoc
// @Summary Recent Requests
// @Description Latest journaled GitHub API requests, newest first
// @Tags Client
// @Produce json
// @Param limit query int false "Max requests to return" default(20)
// @Success 200 {array} models.RequestLog
// @Failure 500 {object} errors.HTTPErrorResponse
// @Router /requests [get]
func (h *RepositoryHandler) getRecentRequests(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, err := h.journal.RecentRequests(r.Context(), limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	if logs == nil {
		logs = []models.RequestLog{}
	}

	writeSuccess(w, logs, "Successfully fetched requests")
}
