package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	kafkaAdapter "github.com/admin/astrografia/internal/adapters/secondary/kafka"
	"github.com/admin/astrografia/internal/domain"
	kafkaPorts "github.com/admin/astrografia/internal/ports/kafka"
)

// ReportProcessor генерирует отчёт по id
type ReportProcessor interface {
	Process(ctx context.Context, id uuid.UUID) error
}

// ReportRequestHandler обрабатывает задания на генерацию отчётов
type ReportRequestHandler struct {
	Reports ReportProcessor
	Log     *slog.Logger
}

func NewReportRequestHandler(reports ReportProcessor, log *slog.Logger) kafkaPorts.MessageHandler {
	return &ReportRequestHandler{
		Reports: reports,
		Log:     log,
	}
}

func (h *ReportRequestHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var msg kafkaAdapter.ReportRequestMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return domain.WrapBusinessError(fmt.Errorf("failed to unmarshal report request: %w", err))
	}

	id, err := uuid.Parse(msg.ReportID)
	if err != nil {
		return domain.WrapBusinessError(fmt.Errorf("invalid report_id %q: %w", msg.ReportID, err))
	}

	h.Log.Debug("processing report request", "report_id", id, "key", key)

	if err := h.Reports.Process(ctx, id); err != nil {
		return fmt.Errorf("failed to process report %s: %w", id, err)
	}
	return nil
}
