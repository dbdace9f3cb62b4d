package misc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const healthCheckTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
	Version  string `json:"version"`
}

type Handler struct {
	db          dbPinger
	redisClient *redis.Client
	versionInfo string
}

func NewHandler(db dbPinger, redisClient *redis.Client, versionInfo string) *Handler {
	return &Handler{
		db:          db,
		redisClient: redisClient,
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("failed to get user IP address: %s", err))
		log.Errorf("failed to get user IP address: %s", err)
		http.Error(w, "failed to get IP", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

// handleHealth reports 503 when Postgres or Redis is not reachable.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Postgres: "ok",
		Redis:    "ok",
		Version:  handler.versionInfo,
	}
	if err := handler.db.Ping(ctx); err != nil {
		log.Warnf("health: ping postgres: %s", err)
		resp.Postgres = err.Error()
		resp.Status = "degraded"
	}
	if err := handler.redisClient.Ping(ctx).Err(); err != nil {
		log.Warnf("health: ping redis: %s", err)
		resp.Redis = err.Error()
		resp.Status = "degraded"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		span.SetStatus(codes.Error, resp.Status)
		status = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, resp, status)
}
