package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrUnknownAscendantMode частный случай ErrInvalidInput
	ErrUnknownAscendantMode = fmt.Errorf("%w: unknown ascendant mode", ErrInvalidInput)
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// ProviderError отказ точного провайдера эфемерид с причиной для ответа клиенту
type ProviderError struct {
	Kind   string // метка для метрик
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	return e.Reason + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
