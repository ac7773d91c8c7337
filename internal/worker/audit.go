// Package worker implements the buffered worker pool that writes the
// prediction audit log to ClickHouse. Audit writes are decoupled from
// request handling: a full queue sheds rows rather than slowing the API,
// and shutdown flushes whatever is buffered.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/models"
)

var (
	auditsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_audits_enqueued_total",
		Help: "Total number of audit rows accepted into the queue",
	})

	auditsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_audits_written_total",
		Help: "Total number of audit rows written to ClickHouse",
	})

	auditsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_audits_failed_total",
		Help: "Total number of audit rows that failed to write",
	})

	auditsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_audits_load_shed_total",
		Help: "Total number of audit rows dropped because the queue was full",
	})

	auditQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "prediction_audit_queue_depth",
		Help: "Current depth of the audit queue",
	})

	auditFlushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_audit_flush_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

const insertAuditQuery = `
	INSERT INTO predictions_audit (
		prediction_id, match_id, model_version,
		home_win_prob, draw_prob, away_win_prob, confidence,
		home_score, away_score, evidence_len, duration_ms, created_at
	)
`

// PoolConfig configures the audit pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool buffers audit rows and batch-inserts them to ClickHouse.
type Pool struct {
	config PoolConfig
	queue  chan *models.PredictionAudit
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}

	return &Pool{
		config: cfg,
		queue:  make(chan *models.PredictionAudit, cfg.QueueSize),
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines. The context only scopes the
// queue-depth reporter; workers run until Stop closes the queue, so rows
// accepted while the server drains in-flight requests are still written.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("audit pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes intake and blocks until every buffered row is flushed. Safe
// to call on a pool that was never started.
func (p *Pool) Stop() {
	p.logger.Info("stopping audit pool")
	close(p.queue)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("audit pool stopped")
}

// Enqueue offers a row to the queue without blocking. A full queue drops
// the row; audit loss is preferred over slowing prediction generation.
func (p *Pool) Enqueue(audit *models.PredictionAudit) bool {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("enqueue after pool stop, dropping audit row", "error", r)
		}
	}()

	select {
	case p.queue <- audit:
		auditsEnqueued.Inc()
		return true
	default:
		auditsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]*models.PredictionAudit, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.writeBatch(batch); err != nil {
			p.logger.Errorw("audit batch write failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			auditsFailed.Add(float64(len(batch)))
		} else {
			auditsWritten.Add(float64(len(batch)))
		}
		auditFlushDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case audit, ok := <-p.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, audit)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (p *Pool) writeBatch(batch []*models.PredictionAudit) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertAuditQuery)
	if err != nil {
		return err
	}

	for _, a := range batch {
		err := chBatch.Append(
			a.PredictionID,
			a.MatchID,
			a.ModelVersion,
			a.HomeWinProb,
			a.DrawProb,
			a.AwayWinProb,
			a.Confidence,
			int32(a.HomeScore),
			int32(a.AwayScore),
			uint16(a.EvidenceLen),
			a.DurationMs,
			a.CreatedAt,
		)
		if err != nil {
			p.logger.Warnw("failed to append audit row", "prediction", a.PredictionID, "error", err)
			continue
		}
	}

	return chBatch.Send()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			auditQueueDepth.Set(float64(len(p.queue)))
		case <-p.ctx.Done():
			return
		}
	}
}
