package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
)

// DefaultSchedule расписание очистки, если в конфиге пусто
const DefaultSchedule = "@every 5m"

// ErrInvalidSchedule выражение cron не разобрано
var ErrInvalidSchedule = errors.New("sweeper: invalid schedule")

// ReservationSweeper помечает просроченные резервы и чистит их ячейки
type ReservationSweeper interface {
	Sweep(ctx context.Context) (*models.SweepResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновая очистка резервов по расписанию cron.
// Корректность резервирования от неё не зависит: просроченные резервы игнорируются при чтении.
type Worker struct {
	sweeper  ReservationSweeper
	logger   Logger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// NewWorker создаёт воркер. Пустой schedule заменяется на DefaultSchedule.
func NewWorker(sweeper ReservationSweeper, schedule string, logger Logger) (*Worker, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	w := &Worker{
		sweeper:  sweeper,
		logger:   logger,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	if _, err := w.cron.AddFunc(schedule, func() { w.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return w, nil
}

// Start запускает планировщик в отдельной горутине
func (w *Worker) Start() {
	w.logger.Info("Sweeper: started with schedule %q", w.schedule)
	w.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего прохода или отмены ctx
func (w *Worker) Stop(ctx context.Context) {
	done := w.cron.Stop().Done()
	select {
	case <-done:
		w.logger.Info("Sweeper: stopped")
	case <-ctx.Done():
		w.logger.Warn("Sweeper: stop timed out: %v", ctx.Err())
	}
}

// RunOnce выполняет один проход очистки
func (w *Worker) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if _, err := w.sweeper.Sweep(ctx); err != nil {
		w.logger.Error("Sweeper: pass failed: %v", err)
	}
}
