package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/health"
)

// Pinger is the part of a storage backend the monitor needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageMonitor pings the storage backend on a cron schedule and keeps the
// last result for the readiness endpoint.
type StorageMonitor struct {
	cron     *cron.Cron
	storage  Pinger
	schedule string
	timeout  time.Duration
	onCheck  func(healthy bool)
	logger   *zap.Logger

	mu     sync.RWMutex
	status health.StorageStatus
}

// NewStorageMonitor creates a monitor for storage. schedule accepts the
// standard five field cron syntax and descriptors such as "@every 30s".
func NewStorageMonitor(storage Pinger, schedule string, timeout time.Duration, logger *zap.Logger) *StorageMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &StorageMonitor{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		storage:  storage,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
}

// OnCheck registers fn to be called with the result of every check. It must
// be set before Start.
func (m *StorageMonitor) OnCheck(fn func(healthy bool)) {
	m.onCheck = fn
}

// Start runs a first check synchronously and then schedules the periodic ones.
func (m *StorageMonitor) Start() error {
	m.logger.Info("starting storage monitor", zap.String("schedule", m.schedule))

	if _, err := m.cron.AddFunc(m.schedule, m.runCheck); err != nil {
		return fmt.Errorf("failed to schedule storage health check: %w", err)
	}

	m.runCheck()
	m.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (m *StorageMonitor) Stop() {
	m.logger.Info("stopping storage monitor")
	<-m.cron.Stop().Done()
}

// Status returns the result of the last check. Before the first check the
// storage is reported unhealthy.
func (m *StorageMonitor) Status() health.StorageStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check pings the storage once and records the outcome.
func (m *StorageMonitor) Check(ctx context.Context) health.StorageStatus {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.storage.Ping(ctx)
	status := health.StorageStatus{
		Healthy:   err == nil,
		CheckedAt: time.Now(),
		Err:       err,
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	switch {
	case err != nil && (previous.Healthy || previous.CheckedAt.IsZero()):
		m.logger.Error("storage unreachable", zap.Error(err))
	case err == nil && !previous.Healthy:
		m.logger.Info("storage reachable")
	}

	if m.onCheck != nil {
		m.onCheck(status.Healthy)
	}
	return status
}

func (m *StorageMonitor) runCheck() {
	m.Check(context.Background())
}
