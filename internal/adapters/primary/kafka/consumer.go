package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	kafkaAdapter "github.com/admin/astrografia/internal/adapters/secondary/kafka"
	"github.com/admin/astrografia/internal/domain"
	kafkaPorts "github.com/admin/astrografia/internal/ports/kafka"
)

// Consumer читает очередь отчётов через consumer group
type Consumer struct {
	consumer sarama.ConsumerGroup
	cfg      *kafkaAdapter.Config
	handler  kafkaPorts.MessageHandler
	log      *slog.Logger
}

func NewConsumer(cfg *kafkaAdapter.Config, handler kafkaPorts.MessageHandler, log *slog.Logger) (*Consumer, error) {
	config := cfg.SaramaConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumer, err := sarama.NewConsumerGroup(cfg.GetBrokers(), cfg.ConsumerGroup, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	log.Info("kafka consumer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
		"consumer_group", cfg.ConsumerGroup,
	)

	return &Consumer{
		consumer: consumer,
		cfg:      cfg,
		handler:  handler,
		log:      log,
	}, nil
}

// Start блокирует до отмены ctx, переподключаясь после ребалансировок
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		handler: c.handler,
		log:     c.log,
		topic:   c.cfg.Topic,
	}

	for {
		if err := c.consumer.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("error from consumer",
				"error", err,
				"topic", c.cfg.Topic,
			)
			return fmt.Errorf("consumer error: %w", err)
		}

		if ctx.Err() != nil {
			c.log.Info("kafka consumer stopping", "topic", c.cfg.Topic)
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	if err := c.consumer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.log.Info("kafka consumer closed", "topic", c.cfg.Topic)
	return nil
}

// consumerGroupHandler реализует sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler kafkaPorts.MessageHandler
	log     *slog.Logger
	topic   string
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session setup", "topic", h.topic)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	h.log.Info("kafka consumer group session cleanup", "topic", h.topic)
	return nil
}

// ConsumeClaim бизнес-ошибки коммитятся (повтор не поможет),
// технические оставляют offset на месте
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-session.Context().Done():
			return nil
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if message == nil {
				continue
			}

			key := string(message.Key)
			if err := h.handler.HandleMessage(session.Context(), key, message.Value); err != nil {
				if domain.IsBusinessError(err) {
					h.log.Warn("kafka message rejected",
						"error", err,
						"key", key,
						"offset", message.Offset,
					)
					session.MarkMessage(message, "")
					continue
				}
				h.log.Error("failed to handle kafka message",
					"error", err,
					"topic", message.Topic,
					"key", key,
					"partition", message.Partition,
					"offset", message.Offset,
				)
				continue
			}

			session.MarkMessage(message, "")
		}
	}
}
