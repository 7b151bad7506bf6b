// Package worker фоновые задачи сервиса по расписанию cron
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job одна итерация фоновой задачи, возвращает число обработанных записей
type Job func(ctx context.Context) (int, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает задачи по расписанию.
// Запуски одной задачи не перекрываются: пока итерация идет, следующий тик пропускается.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  Logger
}

// NewScheduler создает планировщик; timeout ограничивает одну итерацию задачи
func NewScheduler(timeout time.Duration, logger Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}
}

// AddJob регистрирует задачу name с расписанием spec ("@every 10s", "*/5 * * * *")
func (s *Scheduler) AddJob(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("worker: schedule %s with %q: %w", name, spec, err)
	}
	s.logger.Info("Scheduler: job %s scheduled (%s)", name, spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	started := time.Now()
	n, err := job(ctx)
	if err != nil {
		s.logger.Error("Scheduler: job %s failed after %s: %v", name, time.Since(started), err)
		return
	}
	if n > 0 {
		s.logger.Info("Scheduler: job %s processed=%d in %s", name, n, time.Since(started))
	}
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop отменяет текущие итерации и ждет их завершения
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}
