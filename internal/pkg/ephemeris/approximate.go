// Package ephemeris приближённый расчёт эклиптических долгот по средним
// движениям относительно J2000. Точность уровня знака, не градуса: без
// возмущений, нутации и параллакса. Все функции чистые и потокобезопасные.
package ephemeris

// Position положение тела на эклиптике
type Position struct {
	Body      Body
	Longitude float64
	Sign      Sign
	Degree    float64
}

// Ascendant восходящая точка эклиптики
type Ascendant struct {
	Longitude float64
	Sign      Sign
	Degree    float64
	Mode      AscendantMode
}

// Chart результат расчёта. Ascendant равен nil, а Bodies пуст, если
// момент не удалось разобрать.
type Chart struct {
	Days      float64
	Bodies    []Position
	Ascendant *Ascendant
}

// Empty true для карты, рассчитать которую не удалось
func (c Chart) Empty() bool {
	return len(c.Bodies) == 0 && c.Ascendant == nil
}

// Options параметры расчёта сверх момента
type Options struct {
	// Longitude долгота наблюдателя в градусах, восток положительный
	Longitude *float64
	// Mode формула асцендента, пустое значение выбирает автоматически
	Mode AscendantMode
}

const (
	earthLongitudeAtEpoch = 100.46435
	earthPeriodDays       = 365.256
)

// EarthLongitude средняя гелиоцентрическая долгота Земли
func EarthLongitude(days float64) float64 {
	return Normalize360(earthLongitudeAtEpoch + (360/earthPeriodDays)*days)
}

// BodyLongitude геоцентрическая долгота тела; Солнце противоположно Земле
func BodyLongitude(b Body, days float64) float64 {
	if b.EarthOpposed {
		return Normalize360(EarthLongitude(days) + 180)
	}
	return Normalize360(b.LongitudeAtEpoch + (360/b.PeriodDays)*days)
}

// ComputePositions базовый расчёт: поля даты и времени как UTC,
// асцендент по доле суток
func ComputePositions(date, clock string) Chart {
	return Compute(ParseMoment(date, clock), Options{Mode: AscendantTimeFraction})
}

// Compute считает все тела в каноническом порядке и асцендент.
// Никогда не паникует на плохом вводе.
func Compute(m Moment, opts Options) Chart {
	days := m.DaysSinceEpoch()
	if !isFinite(days) {
		return Chart{Bodies: []Position{}}
	}

	positions := make([]Position, 0, len(bodies))
	for _, b := range bodies {
		lon := BodyLongitude(b, days)
		sign, degree := SignOf(lon)
		positions = append(positions, Position{
			Body:      b,
			Longitude: lon,
			Sign:      sign,
			Degree:    degree,
		})
	}

	asc := ascendantFor(opts.Mode, m, days, opts.Longitude)

	return Chart{
		Days:      days,
		Bodies:    positions,
		Ascendant: &asc,
	}
}
