package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/matchiq/predictions-api/internal/models"
)

// mockConn implements driver.Conn via embedding; only PrepareBatch is used.
type mockConn struct {
	driver.Conn

	mu      sync.Mutex
	batches []*mockBatch
}

func (m *mockConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &mockBatch{}
	m.batches = append(m.batches, b)
	return b, nil
}

func (m *mockConn) totalRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.batches {
		if b.sent {
			total += b.rows
		}
	}
	return total
}

type mockBatch struct {
	driver.Batch

	rows int
	sent bool
}

func (b *mockBatch) Append(v ...interface{}) error {
	b.rows++
	return nil
}

func (b *mockBatch) Send() error {
	b.sent = true
	return nil
}

func newTestAudit(id string) *models.PredictionAudit {
	return &models.PredictionAudit{
		PredictionID: id,
		MatchID:      "match-1",
		ModelVersion: "v2.0-comprehensive",
		HomeWinProb:  0.4,
		DrawProb:     0.3,
		AwayWinProb:  0.3,
		Confidence:   0.6,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestStopFlushesBufferedRows(t *testing.T) {
	conn := &mockConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		BatchSize:     100,
		FlushInterval: time.Hour, // only the shutdown flush should fire
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	for i := 0; i < 5; i++ {
		if !pool.Enqueue(newTestAudit("p")) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	pool.Stop()

	if got := conn.totalRows(); got != 5 {
		t.Errorf("flushed rows = %d, want 5", got)
	}
}

func TestBatchSizeTriggersFlush(t *testing.T) {
	conn := &mockConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		BatchSize:     2,
		FlushInterval: time.Hour,
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	pool.Enqueue(newTestAudit("a"))
	pool.Enqueue(newTestAudit("b"))

	deadline := time.Now().Add(2 * time.Second)
	for conn.totalRows() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	pool.Stop()

	if got := conn.totalRows(); got != 2 {
		t.Errorf("flushed rows = %d, want 2", got)
	}
}

func TestStopFlushesRowsAcceptedDuringDrain(t *testing.T) {
	conn := &mockConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		BatchSize:     100,
		FlushInterval: time.Hour,
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// The server keeps handling in-flight requests after the shutdown
	// signal cancels the base context; rows enqueued in that window must
	// still reach ClickHouse.
	cancel()
	if !pool.Enqueue(newTestAudit("late")) {
		t.Fatal("enqueue rejected while draining")
	}
	pool.Stop()

	if got := conn.totalRows(); got != 1 {
		t.Errorf("flushed rows = %d, want 1", got)
	}
}

func TestEnqueueAfterStopDropsRow(t *testing.T) {
	conn := &mockConn{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     16,
		FlushInterval: time.Hour,
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())
	pool.Enqueue(newTestAudit("a"))
	pool.Stop()

	if pool.Enqueue(newTestAudit("b")) {
		t.Error("enqueue after stop should report the row dropped")
	}
	if got := conn.totalRows(); got != 1 {
		t.Errorf("flushed rows = %d, want 1", got)
	}
}

func TestStopWithoutStart(t *testing.T) {
	pool := NewPool(PoolConfig{ClickHouse: &mockConn{}, Logger: zap.NewNop()})
	pool.Stop() // must not panic
}

func TestEnqueueShedsWhenFull(t *testing.T) {
	// Pool never started, so nothing drains: fill the queue and verify the
	// next row is rejected immediately instead of blocking.
	pool := NewPool(PoolConfig{
		QueueSize:  1,
		ClickHouse: &mockConn{},
		Logger:     zap.NewNop(),
	})

	if !pool.Enqueue(newTestAudit("a")) {
		t.Fatal("first enqueue rejected")
	}

	start := time.Now()
	if pool.Enqueue(newTestAudit("b")) {
		t.Error("enqueue should reject when queue is full")
	}
	if d := time.Since(start); d > 10*time.Millisecond {
		t.Errorf("enqueue took %v, expected immediate return", d)
	}
	if pool.QueueDepth() != 1 {
		t.Errorf("queue depth = %d, want 1", pool.QueueDepth())
	}
}
