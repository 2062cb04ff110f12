package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/cricket-scorecard/internal/config"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/logging"
	"github.com/riskibarqy/cricket-scorecard/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap/zapcore"
)

const betterStackQueueSize = 1024

// InitBetterStackLogger tees the stdout logger into a Better Stack sink that
// ships JSON batches over HTTP. The returned shutdown drains pending records.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper := newBetterStackShipper(betterStackOptions{
		endpoint:      endpoint,
		token:         cfg.BetterStackToken,
		timeout:       cfg.BetterStackTimeout,
		batchSize:     cfg.BetterStackBatchSize,
		flushInterval: cfg.BetterStackFlushInterval,
		circuit:       cfg.BetterStackCircuit,
	})

	shipCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(logging.EncoderConfig()),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	)
	logger := logging.New(zapcore.NewTee(baseLogger.Zap().Core(), shipCore))

	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"batch_size", cfg.BetterStackBatchSize,
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	return logger, func(ctx context.Context) error {
		if ctx == nil {
			ctx = context.Background()
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
		}
		if err := shipper.Close(ctx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

type betterStackOptions struct {
	endpoint      string
	token         string
	timeout       time.Duration
	batchSize     int
	flushInterval time.Duration
	circuit       resilience.BreakerConfig
}

// betterStackShipper is a zapcore.WriteSyncer. Writes never block the caller;
// records are dropped when the queue is full.
type betterStackShipper struct {
	opts      betterStackOptions
	client    *http.Client
	breaker   *resilience.Breaker
	queue     chan []byte
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
	dropped   atomic.Uint64
	failed    atomic.Uint64
}

func newBetterStackShipper(opts betterStackOptions) *betterStackShipper {
	if opts.timeout <= 0 {
		opts.timeout = 3 * time.Second
	}
	if opts.batchSize <= 0 {
		opts.batchSize = 50
	}
	if opts.flushInterval <= 0 {
		opts.flushInterval = time.Second
	}
	opts.token = strings.TrimSpace(opts.token)

	s := &betterStackShipper{
		opts:    opts,
		client:  &http.Client{Timeout: opts.timeout},
		breaker: resilience.NewBreaker(opts.circuit),
		queue:   make(chan []byte, betterStackQueueSize),
		done:    make(chan struct{}),
	}
	// The shipper cannot log through zap without feeding itself.
	s.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		fmt.Fprintf(os.Stderr, "betterstack circuit %s -> %s\n", from, to)
	})
	go s.run()

	return s
}

func (s *betterStackShipper) Write(p []byte) (int, error) {
	record := bytes.TrimSpace(p)
	if len(record) == 0 {
		return len(p), nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return len(p), nil
	}

	// zap reuses its buffer once Write returns.
	copied := append([]byte(nil), record...)
	select {
	case s.queue <- copied:
	default:
		if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
			fmt.Fprintf(os.Stderr, "betterstack queue full; dropped logs=%d\n", n)
		}
	}

	return len(p), nil
}

func (s *betterStackShipper) Sync() error {
	return nil
}

func (s *betterStackShipper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.opts.flushInterval)
	defer ticker.Stop()

	batch := make([][]byte, 0, s.opts.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.send(batch)
		batch = batch[:0]
	}

	for {
		select {
		case record, ok := <-s.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, record)
			if len(batch) >= s.opts.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

// send posts the batch as a JSON array of log records. Batches offered while
// the circuit is open are dropped.
func (s *betterStackShipper) send(batch [][]byte) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_ = buf.WriteByte('[')
	for i, record := range batch {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.Write(record)
	}
	_ = buf.WriteByte(']')

	err := s.breaker.Do(func() error { return s.post(buf.B) })
	switch {
	case err == nil:
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.dropped.Add(uint64(len(batch)))
	default:
		s.reportFailure("send batch", err)
	}
}

func (s *betterStackShipper) post(body []byte) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.opts.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func (s *betterStackShipper) reportFailure(op string, err error) {
	if n := s.failed.Add(1); n == 1 || n%100 == 0 {
		fmt.Fprintf(os.Stderr, "betterstack %s failed (failures=%d): %v\n", op, n, err)
	}
}

func (s *betterStackShipper) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument")
}
