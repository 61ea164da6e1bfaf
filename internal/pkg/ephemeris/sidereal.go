package ephemeris

import (
	"fmt"
	"math"
)

// AscendantMode формула асцендента
type AscendantMode string

const (
	// AscendantTimeFraction доля суток как прямая проекция на эклиптику, без учёта места
	AscendantTimeFraction AscendantMode = "time-fraction"
	// AscendantSidereal местное звёздное время и наклон эклиптики, нужна долгота наблюдателя
	AscendantSidereal AscendantMode = "sidereal"
)

// ObliquityDeg наклон эклиптики к экватору
const ObliquityDeg = 23.4367

// ParseAscendantMode пустая строка означает автоматический выбор
func ParseAscendantMode(s string) (AscendantMode, error) {
	switch AscendantMode(s) {
	case "", AscendantTimeFraction, AscendantSidereal:
		return AscendantMode(s), nil
	default:
		return "", fmt.Errorf("unknown ascendant mode %q", s)
	}
}

// SiderealHours гринвичское среднее звёздное время в часах [0, 24)
func SiderealHours(days float64) float64 {
	gmst := 280.46061837 + 360.98564736629*days
	return Normalize360(gmst) / 15
}

// TimeFractionAscendant долгота асцендента по времени суток
func TimeFractionAscendant(hour, minute int) float64 {
	fraction := Normalize1((float64(hour) + float64(minute)/60) / 24)
	return Normalize360(fraction * 360)
}

// SiderealAscendant долгота асцендента по местному звёздному времени
func SiderealAscendant(days, longitudeDeg float64) float64 {
	lst := deg2rad(Normalize360(SiderealHours(days)*15 + longitudeDeg))
	eps := deg2rad(ObliquityDeg)
	return Normalize360(rad2deg(math.Atan2(math.Cos(eps)*math.Sin(lst), math.Cos(lst))))
}

// ComputeAscendant считает асцендент выбранной формулой.
// Пустой режим выбирает звёздную формулу при наличии долготы; без долготы
// всегда используется доля суток. Возвращает false, если момент не поддаётся расчёту.
func ComputeAscendant(mode AscendantMode, m Moment, longitude *float64) (Ascendant, bool) {
	days := m.DaysSinceEpoch()
	if !isFinite(days) {
		return Ascendant{}, false
	}
	return ascendantFor(mode, m, days, longitude), true
}

func ascendantFor(mode AscendantMode, m Moment, days float64, longitude *float64) Ascendant {
	hasLongitude := longitude != nil && isFinite(*longitude)

	var lon float64
	used := AscendantTimeFraction
	if hasLongitude && mode != AscendantTimeFraction {
		used = AscendantSidereal
		lon = SiderealAscendant(days, *longitude)
	} else {
		lon = TimeFractionAscendant(m.Hour, m.Minute)
	}

	sign, degree := SignOf(lon)
	return Ascendant{
		Longitude: lon,
		Sign:      sign,
		Degree:    degree,
		Mode:      used,
	}
}
