package ephemeris

import (
	"math"
	"strings"
)

// Sign знак зодиака, 30° эклиптики начиная с точки весеннего равноденствия
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

const signCount = 12

var signNames = [signCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signNamesPT = [signCount]string{
	"Áries", "Touro", "Gêmeos", "Câncer", "Leão", "Virgem",
	"Libra", "Escorpião", "Sagitário", "Capricórnio", "Aquário", "Peixes",
}

// Signs возвращает все знаки в каноническом порядке
func Signs() []Sign {
	out := make([]Sign, signCount)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

// String каноническое английское имя знака
func (s Sign) String() string {
	if !s.Valid() {
		return ""
	}
	return signNames[s]
}

// Portuguese имя знака для интерфейса
func (s Sign) Portuguese() string {
	if !s.Valid() {
		return ""
	}
	return signNamesPT[s]
}

// SignOf раскладывает долготу на знак и градус внутри знака.
// Ожидает нормализованную долготу, но корректно обрабатывает и отрицательные значения.
func SignOf(longitude float64) (Sign, float64) {
	idx := int(math.Floor(longitude/30)) % signCount
	if idx < 0 {
		idx += signCount
	}
	degree := math.Mod(longitude, 30)
	if degree < 0 {
		degree += 30
	}
	return Sign(idx), degree
}

// ParseSign ищет знак по английскому или португальскому имени (без учёта регистра)
func ParseSign(name string) (Sign, bool) {
	name = strings.TrimSpace(name)
	for i := 0; i < signCount; i++ {
		if strings.EqualFold(signNames[i], name) || strings.EqualFold(signNamesPT[i], name) {
			return Sign(i), true
		}
	}
	return 0, false
}
