package kafka

import (
	"context"

	"github.com/google/uuid"
)

// IKafkaProducer интерфейс для отправки сообщений в Kafka
type IKafkaProducer interface {
	// SendReportRequest ставит отчёт в очередь генерации
	SendReportRequest(ctx context.Context, reportID uuid.UUID) error
	Close() error
}
