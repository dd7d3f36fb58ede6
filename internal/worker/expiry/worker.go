package expiry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	// ErrInvalidSchedule возвращается при некорректном cron-выражении
	ErrInvalidSchedule = errors.New("expiry.worker: invalid schedule")
)

// Sweeper перевод просроченных удержаний в expired
type Sweeper interface {
	Execute(ctx context.Context, now time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Worker периодически запускает просрочку удержаний по cron-расписанию.
// Следующий запуск пропускается, пока предыдущий не завершился.
type Worker struct {
	cron         *cron.Cron
	sweeper      Sweeper
	timeProvider TimeProvider
	logger       Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWorker создает воркер. schedule в формате robfig/cron, например "@every 60s"
func NewWorker(sweeper Sweeper, schedule string, logger Logger) (*Worker, error) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		sweeper:      sweeper,
		timeProvider: realTimeProvider{},
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}

	cl := cronLogger{logger: logger}
	w.cron = cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return w, nil
}

// Start запускает расписание в фоне
func (w *Worker) Start() {
	w.logger.Info("ExpiryWorker: started")
	w.cron.Start()
}

// Stop останавливает расписание и ждёт текущий проход, но не дольше ctx
func (w *Worker) Stop(ctx context.Context) {
	w.cancel()
	done := w.cron.Stop()

	select {
	case <-done.Done():
		w.logger.Info("ExpiryWorker: stopped")
	case <-ctx.Done():
		w.logger.Warn("ExpiryWorker: stop timed out: %v", ctx.Err())
	}
}

// RunOnce выполняет один проход синхронно
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	start := w.timeProvider.Now()

	expired, err := w.sweeper.Execute(ctx, start)
	if err != nil {
		w.logger.Error("ExpiryWorker: sweep failed: %v", err)
		return expired, err
	}

	if expired > 0 {
		w.logger.Info("ExpiryWorker: expired %d holds in %v", expired, time.Since(start))
	}
	return expired, nil
}

func (w *Worker) run() {
	_, _ = w.RunOnce(w.ctx)
}

// cronLogger адаптер Logger к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("ExpiryWorker: cron %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("ExpiryWorker: cron %s %v: %v", msg, keysAndValues, err)
}
