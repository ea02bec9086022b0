package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/services"
	"github.com/capitrack/engine/pkg/logger"
)

// HistoryTaskHandler retries audit appends that failed inline. The entry id
// travels with the payload, so re-running a delivered task inserts nothing.
type HistoryTaskHandler struct {
	history repository.HistoryRepository
}

func NewHistoryTaskHandler(history repository.HistoryRepository) *HistoryTaskHandler {
	return &HistoryTaskHandler{history: history}
}

func (h *HistoryTaskHandler) HandleAppend(ctx context.Context, t *asynq.Task) error {
	var entry models.ProjectHistory
	if err := json.Unmarshal(t.Payload(), &entry); err != nil {
		logger.L().Error("invalid history append payload", zap.Error(err))
		return err
	}
	if err := h.history.Append(ctx, &entry); err != nil {
		logger.L().Warn("history append retry failed",
			zap.String("entry_id", entry.ID.String()),
			zap.String("project_id", entry.ProjectID.String()),
			zap.Error(err))
		return err
	}
	logger.L().Info("history entry recovered",
		zap.String("entry_id", entry.ID.String()),
		zap.String("project_id", entry.ProjectID.String()),
		zap.String("action", string(entry.ActionType)))
	return nil
}

// Type name re-exported for the worker mux.
const TypeHistoryAppend = services.TypeHistoryAppend
