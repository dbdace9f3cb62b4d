package healthdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=healthdata_test

type entriesService interface {
	Add(ctx context.Context, entry Entry) (*AddResult, error)
	Get(ctx context.Context, id int) (*Entry, error)
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
	Delete(ctx context.Context, id int) error
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type DeleteEntryResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service entriesService
}

func NewHandler(service entriesService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router, writeRouter *mux.Router) {
	r.HandleFunc("/{id:[0-9]+}", handler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/owner/{owner}/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS")

	writeRouter.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS")
	writeRouter.HandleFunc("/{id:[0-9]+}", handler.HandleDelete).Methods("DELETE", "OPTIONS")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthdata.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new health entry, unmarshal json params: %s", err)
		http.Error(w, "add health entry failed", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Add(ctx, entry)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add health entry for [%s]: %s", entry.Owner, err)
		http.Error(w, "add health entry failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new health entry %d for [%s], %d goals updated", result.Entry.ID, result.Entry.Owner, len(result.GoalUpdates))
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthdata.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	entry, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "health entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("get health entry %d: %s", id, err)
		http.Error(w, "get health entry failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, entry, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthdata.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "health entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete health entry %d: %s", id, err)
		http.Error(w, "health entry not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteEntryResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthdata.list")
	defer span.End()

	vars := mux.Vars(r)
	owner := vars["owner"]
	if owner == "" {
		http.Error(w, "error, owner empty", http.StatusBadRequest)
		return
	}
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size < 1 {
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	params := ListParams{
		Owner: owner,
		Page:  page,
		Size:  size,
	}
	if params.From, err = timeParam(r.URL.Query().Get("from")); err != nil {
		http.Error(w, "parse form error, parameter <from>", http.StatusBadRequest)
		return
	}
	if params.To, err = timeParam(r.URL.Query().Get("to")); err != nil {
		http.Error(w, "parse form error, parameter <to>", http.StatusBadRequest)
		return
	}

	entries, total, err := handler.service.List(ctx, params)
	if err != nil {
		if errors.Is(err, ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("list health entries of [%s]: %s", owner, err)
		http.Error(w, "list health entries failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, ListResponse{Entries: entries, Total: total}, http.StatusOK)
}

// timeParam accepts both RFC 3339 timestamps and plain dates.
func timeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid time format")
}
