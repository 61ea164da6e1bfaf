package kafka

import "context"

// MessageHandler обработчик сообщения очереди отчётов.
// BusinessError означает, что сообщение обработано и повторять его не нужно.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, value []byte) error
}
