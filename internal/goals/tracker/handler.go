package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/goals"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tracker_test

type goalsService interface {
	Create(ctx context.Context, goal goals.Goal) (*goals.Goal, error)
	Get(ctx context.Context, id int) (*goals.Goal, error)
	List(ctx context.Context, owner string, status goals.Status) ([]goals.Goal, error)
	Delete(ctx context.Context, id int) error
	SetStatus(ctx context.Context, id int, status goals.Status) (*goals.Goal, error)
	Observe(ctx context.Context, owner string, metric goals.Metric, value float64) (*ObservationResult, error)
	Progress(ctx context.Context, id int) (*goals.Progress, error)
	ListProgress(ctx context.Context, owner string, status goals.Status) ([]goals.Progress, error)
}

// CreateGoalRequest carries dates as YYYY-MM-DD strings.
type CreateGoalRequest struct {
	Owner       string       `json:"owner"`
	Metric      goals.Metric `json:"metric"`
	StartValue  float64      `json:"startValue"`
	TargetValue float64      `json:"targetValue"`
	StartDate   string       `json:"startDate,omitempty"`
	TargetDate  string       `json:"targetDate"`
}

func (req CreateGoalRequest) toGoal() (goals.Goal, error) {
	goal := goals.Goal{
		Owner:       req.Owner,
		Metric:      req.Metric,
		StartValue:  req.StartValue,
		TargetValue: req.TargetValue,
	}
	if req.StartDate != "" {
		startDate, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			return goals.Goal{}, errors.New("invalid start date")
		}
		goal.StartDate = startDate
	}
	targetDate, err := time.Parse(time.DateOnly, req.TargetDate)
	if err != nil {
		return goals.Goal{}, errors.New("invalid target date")
	}
	goal.TargetDate = targetDate
	return goal, nil
}

type UpdateStatusRequest struct {
	Status goals.Status `json:"status"`
}

type ObserveRequest struct {
	Owner  string       `json:"owner"`
	Metric goals.Metric `json:"metric"`
	Value  float64      `json:"value"`
}

type DeleteGoalResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service goalsService
}

func NewHandler(service goalsService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers goal routes on r. Mutating routes are returned
// separately so the caller can put them behind rate limiting.
func (handler *Handler) SetupRoutes(r *mux.Router, writeRouter *mux.Router) {
	r.HandleFunc("/metrics", handler.HandleMetrics).Methods("GET", "OPTIONS")
	r.HandleFunc("/owner/{owner}", handler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/owner/{owner}/progress", handler.HandleListProgress).Methods("GET", "OPTIONS")
	r.HandleFunc("/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/{id:[0-9]+}/progress", handler.HandleProgress).Methods("GET", "OPTIONS")

	writeRouter.HandleFunc("", handler.HandleCreate).Methods("POST", "OPTIONS")
	writeRouter.HandleFunc("/observe", handler.HandleObserve).Methods("POST", "OPTIONS")
	writeRouter.HandleFunc("/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
	writeRouter.HandleFunc("/{id:[0-9]+}/status", handler.HandleSetStatus).Methods("PUT", "OPTIONS")
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	goal, err := req.toGoal()
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.service.Create(ctx, goal)
	if err != nil {
		log.Errorf("add goal for [%s]: %s", req.Owner, err)
		writeServiceError(w, err, "add goal failed")
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	id, ok := idFromVars(w, r)
	if !ok {
		return
	}

	goal, err := handler.service.Get(ctx, id)
	if err != nil {
		log.Debugf("get goal %d: %s", id, err)
		writeServiceError(w, err, "get goal failed")
		return
	}

	pkg.WriteJSON(w, goal, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	id, ok := idFromVars(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		log.Errorf("delete goal %d: %s", id, err)
		writeServiceError(w, err, "goal not deleted")
		return
	}

	pkg.WriteJSON(w, DeleteGoalResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.setstatus")
	defer span.End()

	id, ok := idFromVars(w, r)
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update goal status, unmarshal json params: %s", err)
		http.Error(w, "update goal status failed", http.StatusBadRequest)
		return
	}

	goal, err := handler.service.SetStatus(ctx, id, req.Status)
	if err != nil {
		log.Errorf("set goal %d status [%s]: %s", id, req.Status, err)
		writeServiceError(w, err, "update goal status failed")
		return
	}

	pkg.WriteJSON(w, goal, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.progress")
	defer span.End()

	id, ok := idFromVars(w, r)
	if !ok {
		return
	}

	progress, err := handler.service.Progress(ctx, id)
	if err != nil {
		log.Debugf("get goal %d progress: %s", id, err)
		writeServiceError(w, err, "get goal progress failed")
		return
	}

	pkg.WriteJSON(w, progress, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	if owner == "" {
		http.Error(w, "error, owner empty", http.StatusBadRequest)
		return
	}
	status := goals.Status(r.URL.Query().Get("status"))

	list, err := handler.service.List(ctx, owner, status)
	if err != nil {
		log.Errorf("list goals of [%s]: %s", owner, err)
		writeServiceError(w, err, "list goals failed")
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleListProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.listprogress")
	defer span.End()

	owner := mux.Vars(r)["owner"]
	if owner == "" {
		http.Error(w, "error, owner empty", http.StatusBadRequest)
		return
	}
	status := goals.Status(r.URL.Query().Get("status"))

	progressList, err := handler.service.ListProgress(ctx, owner, status)
	if err != nil {
		log.Errorf("list goals progress of [%s]: %s", owner, err)
		writeServiceError(w, err, "list goals progress failed")
		return
	}

	pkg.WriteJSON(w, progressList, http.StatusOK)
}

func (handler *Handler) HandleObserve(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.observe")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req ObserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("observe, unmarshal json params: %s", err)
		http.Error(w, "observe failed", http.StatusBadRequest)
		return
	}
	if req.Owner == "" {
		http.Error(w, "error, owner empty", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Observe(ctx, req.Owner, req.Metric, req.Value)
	if err != nil {
		log.Debugf("observe %s=%v for [%s]: %s", req.Metric, req.Value, req.Owner, err)
		writeServiceError(w, err, "observe failed")
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleMetrics(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, goals.DescribeMetrics(), http.StatusOK)
}

func idFromVars(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, goals.ErrInvalidGoal):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrGoalNotFound), errors.Is(err, ErrNoActiveGoal):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrActiveGoalExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
