package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

type Config struct {
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Matches    logic.MatchStore
	Prediction logic.PredictionService
	Audit      logic.AuditQueue
}

type Handler struct {
	pg         *pgxpool.Pool
	ch         driver.Conn
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	matches    logic.MatchStore
	prediction logic.PredictionService
	audit      logic.AuditQueue
}

func New(cfg Config) *Handler {
	return &Handler{
		pg:         cfg.Postgres,
		ch:         cfg.ClickHouse,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		matches:    cfg.Matches,
		prediction: cfg.Prediction,
		audit:      cfg.Audit,
	}
}
