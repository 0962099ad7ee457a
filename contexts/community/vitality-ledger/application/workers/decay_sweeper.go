package workers

import (
	"context"
	"log/slog"

	"agora/contexts/community/vitality-ledger/application"
)

// DecaySweeper runs the weekly inactivity sweep. The worker schedules it;
// the HTTP trigger calls the same application path directly.
type DecaySweeper struct {
	Ledger application.Service
	Logger *slog.Logger
}

func (w DecaySweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(w.Logger)

	result, err := w.Ledger.RunWeeklyDecay(ctx)
	if err != nil {
		logger.Error("decay sweep failed",
			"event", "vitality_decay_sweep_failed",
			"module", "community/vitality-ledger",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if result.Affected > 0 || result.Failed > 0 {
		logger.Info("decay sweep finished",
			"event", "vitality_decay_sweep_finished",
			"module", "community/vitality-ledger",
			"layer", "worker",
			"affected", result.Affected,
			"failed", result.Failed,
		)
	}
	return nil
}
