package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	kafkaPorts "github.com/admin/astrografia/internal/ports/kafka"
)

// ReportRequestMessage сообщение очереди генерации отчётов
type ReportRequestMessage struct {
	ReportID string `json:"report_id"`
}

// Producer отправляет задания в Kafka
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

var _ kafkaPorts.IKafkaProducer = (*Producer)(nil)

// ProducerConfig настройки sync producer
func ProducerConfig(cfg *Config) *sarama.Config {
	config := cfg.SaramaConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	return config
}

func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), ProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return NewProducerWith(producer, cfg, log), nil
}

// NewProducerWith оборачивает готовый sarama.SyncProducer
func NewProducerWith(producer sarama.SyncProducer, cfg *Config, log *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}
}

// SendReportRequest ставит отчёт в очередь; ключ сообщения = id отчёта
func (p *Producer) SendReportRequest(ctx context.Context, reportID uuid.UUID) error {
	value, err := json.Marshal(ReportRequestMessage{ReportID: reportID.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal report request: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.cfg.Topic,
		Key:   sarama.StringEncoder(reportID.String()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("action"), Value: []byte("generate_report")},
		},
	}

	return p.send(msg)
}

func (p *Producer) send(msg *sarama.ProducerMessage) error {
	key, _ := msg.Key.Encode()

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", msg.Topic,
			"key", string(key),
		)
		return fmt.Errorf("kafka send failed [topic=%s, key=%s]: %w", msg.Topic, key, err)
	}

	p.log.Debug("message sent to kafka",
		"topic", msg.Topic,
		"partition", partition,
		"offset", offset,
		"key", string(key),
	)
	return nil
}

func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	p.log.Info("kafka producer closed")
	return nil
}
