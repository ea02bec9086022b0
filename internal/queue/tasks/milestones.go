package tasks

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/pkg/logger"
)

// TypeMilestoneSweep marks overdue milestones Delayed. Scheduled
// periodically by the worker; the payload is empty.
const TypeMilestoneSweep = "milestones:sweep"

type MilestoneTaskHandler struct {
	milestones repository.MilestoneRepository
}

func NewMilestoneTaskHandler(milestones repository.MilestoneRepository) *MilestoneTaskHandler {
	return &MilestoneTaskHandler{milestones: milestones}
}

func (h *MilestoneTaskHandler) HandleSweep(ctx context.Context, _ *asynq.Task) error {
	n, err := h.milestones.MarkOverdueDelayed(ctx, time.Now().UTC())
	if err != nil {
		logger.L().Error("milestone sweep failed", zap.Error(err))
		return err
	}
	if n > 0 {
		logger.L().Info("milestones marked delayed", zap.Int64("count", n))
	}
	return nil
}
