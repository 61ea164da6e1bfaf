package ephemeris

import (
	"fmt"
	"strings"
)

// Body описание небесного тела для модели средних движений.
// EarthOpposed помечает Солнце: его долгота берётся противоположной долготе Земли.
type Body struct {
	Name             string
	NamePT           string
	PeriodDays       float64
	LongitudeAtEpoch float64
	Icon             string
	EarthOpposed     bool
}

// таблица средних элементов на J2000, порядок канонический
var bodies = [...]Body{
	{Name: "Sun", NamePT: "Sol", PeriodDays: 365.256, LongitudeAtEpoch: 280.46, Icon: "☀️", EarthOpposed: true},
	{Name: "Moon", NamePT: "Lua", PeriodDays: 27.321582, LongitudeAtEpoch: 218.316, Icon: "🌙"},
	{Name: "Mercury", NamePT: "Mercúrio", PeriodDays: 87.969, LongitudeAtEpoch: 252.25084, Icon: "☿️"},
	{Name: "Venus", NamePT: "Vênus", PeriodDays: 224.701, LongitudeAtEpoch: 181.97973, Icon: "♀️"},
	{Name: "Mars", NamePT: "Marte", PeriodDays: 686.98, LongitudeAtEpoch: 355.433, Icon: "♂️"},
	{Name: "Jupiter", NamePT: "Júpiter", PeriodDays: 4332.59, LongitudeAtEpoch: 34.35151, Icon: "♃"},
	{Name: "Saturn", NamePT: "Saturno", PeriodDays: 10759.22, LongitudeAtEpoch: 50.07744, Icon: "♄"},
	{Name: "Uranus", NamePT: "Urano", PeriodDays: 30685.4, LongitudeAtEpoch: 314.05501, Icon: "♅"},
	{Name: "Neptune", NamePT: "Netuno", PeriodDays: 60190.03, LongitudeAtEpoch: 304.34866, Icon: "♆"},
	{Name: "Pluto", NamePT: "Plutão", PeriodDays: 90560, LongitudeAtEpoch: 238.92903, Icon: "♇"},
}

func init() {
	if err := validateBodies(bodies[:]); err != nil {
		panic(fmt.Errorf("ephemeris: invalid body table: %w", err))
	}
}

// Bodies возвращает копию таблицы тел
func Bodies() []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies[:])
	return out
}

// LookupBody ищет тело по английскому или португальскому имени
func LookupBody(name string) (Body, bool) {
	name = strings.TrimSpace(name)
	for _, b := range bodies {
		if strings.EqualFold(b.Name, name) || strings.EqualFold(b.NamePT, name) {
			return b, true
		}
	}
	return Body{}, false
}

func validateBodies(table []Body) error {
	if len(table) == 0 {
		return fmt.Errorf("empty table")
	}

	seen := make(map[string]struct{}, len(table))
	opposed := 0
	for i, b := range table {
		if b.Name == "" || b.NamePT == "" {
			return fmt.Errorf("body %d: name is required", i)
		}
		if _, ok := seen[b.Name]; ok {
			return fmt.Errorf("body %s: duplicate name", b.Name)
		}
		seen[b.Name] = struct{}{}

		if !isFinite(b.PeriodDays) || b.PeriodDays <= 0 {
			return fmt.Errorf("body %s: period must be positive, got %v", b.Name, b.PeriodDays)
		}
		if !isFinite(b.LongitudeAtEpoch) || b.LongitudeAtEpoch < 0 || b.LongitudeAtEpoch >= 360 {
			return fmt.Errorf("body %s: epoch longitude out of range: %v", b.Name, b.LongitudeAtEpoch)
		}
		if b.EarthOpposed {
			opposed++
		}
	}

	if opposed != 1 {
		return fmt.Errorf("exactly one earth-opposed body expected, got %d", opposed)
	}
	return nil
}
