package kafka

import (
	"strings"

	"github.com/IBM/sarama"
)

// Config конфигурация Kafka для очереди генерации отчётов
type Config struct {
	Enabled          bool   `envconfig:"ENABLED" default:"false"`
	Brokers          string `envconfig:"BROKERS" default:"localhost:9092"` // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"astrografia.reports"`
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP" default:"astrografia-report-workers"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "SASL_PLAINTEXT", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers список брокеров без пустых элементов
func (c *Config) GetBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return []string{"localhost:9092"}
	}
	return brokers
}

// SaramaConfig базовая конфигурация клиента с настройками безопасности
func (c *Config) SaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "astrografia"

	if c.SecurityProtocol == "SASL_SSL" || c.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if c.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = c.SASLUsername
		config.Net.SASL.Password = c.SASLPassword
		// TLS только для SASL_SSL
		if c.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}

	return config
}
