// Package audit provides an optional, non-blocking sink for completed
// journey queries (spec §12). When a Postgres DSN is configured it
// batches records into journey_queries via pgx, and otherwise is a
// no-op so the façade's call site never has to branch on whether
// auditing is enabled.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/railplan/internal/metrics"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
)

// Record describes one completed /computejourneys call.
type Record struct {
	At           time.Time
	Origin       stations.StationId
	Depart       timetable.RailTime
	Destinations []stations.StationId
	Contingency  uint32
	FlexiDepart  uint32
	Elapsed      time.Duration
}

// Sink accepts completed-query records for asynchronous logging.
// Log never blocks the caller.
type Sink interface {
	Log(r Record)
	Close()
}

// noopSink is used when no audit DSN is configured.
type noopSink struct{}

func (noopSink) Log(Record) {}
func (noopSink) Close()     {}

const (
	bufferSize    = 1024
	flushInterval = 2 * time.Second
	flushBatch    = 100
)

// pgSink batches records into journey_queries, draining a buffered
// channel on a background goroutine.
type pgSink struct {
	pool *pgxpool.Pool
	recs chan Record
	done chan struct{}
}

// Open connects to dsn, ensures the journey_queries table exists, and
// starts the background batching goroutine. The returned Sink must be
// closed with Close to flush pending records on shutdown. If dsn is
// empty, Open returns a no-op Sink and nil error.
func Open(ctx context.Context, dsn string) (Sink, error) {
	if dsn == "" {
		return noopSink{}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	s := &pgSink{
		pool: pool,
		recs: make(chan Record, bufferSize),
		done: make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS journey_queries (
			id              BIGSERIAL PRIMARY KEY,
			queried_at      TIMESTAMPTZ NOT NULL,
			origin_station  INTEGER NOT NULL,
			depart_seconds  INTEGER NOT NULL,
			destinations    INTEGER[] NOT NULL,
			contingency     INTEGER NOT NULL,
			flexi_depart    INTEGER NOT NULL,
			elapsed_micros  BIGINT NOT NULL
		)
	`)
	return err
}

// Log enqueues r for asynchronous persistence. If the buffer is full
// the record is dropped and a warning is logged; the caller is never
// blocked.
func (s *pgSink) Log(r Record) {
	select {
	case s.recs <- r:
	default:
		metrics.AuditRecordsDropped.Inc()
		slog.Warn("audit sink buffer full, dropping journey query record",
			"origin", r.Origin, "destinations", len(r.Destinations))
	}
}

// Close stops the batching goroutine, flushing any buffered records,
// and closes the underlying pool.
func (s *pgSink) Close() {
	close(s.recs)
	<-s.done
	s.pool.Close()
}

func (s *pgSink) run() {
	defer close(s.done)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Record, 0, flushBatch)
	ctx := context.Background()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := s.insertBatch(ctx, batch); err != nil {
			slog.Error("audit sink failed to write batch", "error", err, "count", len(batch))
		}
		batch = batch[:0]
	}

	for {
		select {
		case r, ok := <-s.recs:
			if !ok {
				flush()
				return
			}
			batch = append(batch, r)
			if len(batch) >= flushBatch {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (s *pgSink) insertBatch(ctx context.Context, batch []Record) error {
	pgBatch := &pgx.Batch{}
	for _, r := range batch {
		dests := make([]int32, len(r.Destinations))
		for i, d := range r.Destinations {
			dests[i] = int32(d)
		}
		pgBatch.Queue(`
			INSERT INTO journey_queries
				(queried_at, origin_station, depart_seconds, destinations, contingency, flexi_depart, elapsed_micros)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, r.At, int32(r.Origin), int32(r.Depart.Seconds()), dests, int32(r.Contingency), int32(r.FlexiDepart), r.Elapsed.Microseconds())
	}

	br := s.pool.SendBatch(ctx, pgBatch)
	defer br.Close()

	for range batch {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
