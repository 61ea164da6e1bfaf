package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ReportStatus int16

const (
	ReportPending    ReportStatus = 1  // принят, ждёт обработки
	ReportProcessing ReportStatus = 2  // генерируется
	ReportDone       ReportStatus = 3  // готов
	ReportFailed     ReportStatus = 99 // ошибка
)

func (s ReportStatus) String() string {
	switch s {
	case ReportPending:
		return "pending"
	case ReportProcessing:
		return "processing"
	case ReportDone:
		return "done"
	case ReportFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s ReportStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ReportRequest данные для полного отчёта
type ReportRequest struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birthDate"`
	BirthTime  string `json:"birthTime"`
	BirthPlace string `json:"birthPlace"`
}

type Report struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	BirthDate    string           `json:"birth_date" db:"birth_date"`
	BirthTime    string           `json:"birth_time" db:"birth_time"`
	BirthPlace   string           `json:"birth_place" db:"birth_place"`
	Status       ReportStatus     `json:"status" db:"status"`
	Chart        *json.RawMessage `json:"chart,omitempty" db:"chart"`
	Markdown     *string          `json:"markdown,omitempty" db:"markdown"`
	HTML         *string          `json:"html,omitempty" db:"html"`
	ObjectKey    *string          `json:"-" db:"object_key"`
	ErrorMessage *string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`

	DownloadURL string `json:"download_url,omitempty" db:"-"`
}
