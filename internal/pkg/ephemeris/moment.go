package ephemeris

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	msPerDay = 86400000

	// maxInstantMs граница представимого момента: ±100 млн суток от 1970-01-01
	maxInstantMs = 8.64e15

	// maxComponent модуль поля даты, выше которого сборка времени переполняется
	maxComponent = 1e8
)

// J2000 опорная эпоха средних элементов
var J2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// Moment календарный момент рождения. Поля трактуются как UTC,
// если OffsetHours не задан; смещение вычитается перед расчётом эпохи.
type Moment struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	OffsetHours float64

	valid bool
}

// NewMoment собирает момент из готовых полей
func NewMoment(year, month, day, hour, minute int) Moment {
	return Moment{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, valid: true}
}

// MomentFromTime переводит time.Time в момент UTC
func MomentFromTime(t time.Time) Moment {
	u := t.UTC()
	return NewMoment(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute())
}

// ParseMoment разбирает "YYYY-MM-DD" и "HH:MM".
// Отсутствующие, нечисловые или нулевые месяц и день становятся 1, часы и минуты 0.
// Год обязателен: без него момент невалиден и расчёт вернёт пустую карту.
func ParseMoment(date, clock string) Moment {
	dateParts := strings.Split(date, "-")
	clockParts := strings.Split(clock, ":")

	year, ok := component(dateParts, 0)
	m := Moment{
		Year:  year,
		valid: ok,
	}

	var fits bool
	if m.Month, fits = componentOr(dateParts, 1, 1); !fits {
		m.valid = false
	}
	if m.Day, fits = componentOr(dateParts, 2, 1); !fits {
		m.valid = false
	}
	if m.Hour, fits = componentOr(clockParts, 0, 0); !fits {
		m.valid = false
	}
	if m.Minute, fits = componentOr(clockParts, 1, 0); !fits {
		m.valid = false
	}
	return m
}

// WithOffset возвращает копию момента со смещением от UTC в часах.
// Нечисловое смещение игнорируется.
func (m Moment) WithOffset(hours float64) Moment {
	if !isFinite(hours) {
		hours = 0
	}
	m.OffsetHours = hours
	return m
}

// Valid false для неразобранного года и для момента вне представимого диапазона
func (m Moment) Valid() bool {
	if !m.valid {
		return false
	}
	ms := m.UTC().UnixMilli()
	return ms >= -maxInstantMs && ms <= maxInstantMs
}

// UTC момент как время UTC; переполнения полей раскладываются как в time.Date
func (m Moment) UTC() time.Time {
	t := time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, time.UTC)
	if m.OffsetHours != 0 {
		t = t.Add(-time.Duration(m.OffsetHours * float64(time.Hour)))
	}
	return t
}

// DaysSinceEpoch дробное число суток от J2000 (отрицательное до эпохи).
// Для невалидного момента возвращает NaN.
func (m Moment) DaysSinceEpoch() float64 {
	if !m.Valid() {
		return math.NaN()
	}
	return float64(m.UTC().UnixMilli()-J2000.UnixMilli()) / msPerDay
}

// component разбирает число как это делает браузерный Number(): пробелы
// по краям допустимы, дробная часть отбрасывается. Слишком большие
// по модулю значения считаются неразобранными.
func component(parts []string, i int) (int, bool) {
	v, present, fits := parseComponent(parts, i)
	return v, present && fits
}

// componentOr ноль и отсутствующее значение заменяются def.
// Второй результат false, если значение есть, но не помещается в диапазон.
func componentOr(parts []string, i, def int) (int, bool) {
	v, present, fits := parseComponent(parts, i)
	if !fits {
		return def, false
	}
	if !present || v == 0 {
		return def, true
	}
	return v, true
}

func parseComponent(parts []string, i int) (v int, present, fits bool) {
	if i >= len(parts) {
		return 0, false, true
	}
	s := strings.TrimSpace(parts[i])
	if s == "" {
		return 0, false, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if math.IsInf(f, 0) {
		return 0, true, false
	}
	if err != nil || math.IsNaN(f) {
		return 0, false, true
	}
	f = math.Trunc(f)
	if math.Abs(f) > maxComponent {
		return 0, true, false
	}
	return int(f), true, true
}
