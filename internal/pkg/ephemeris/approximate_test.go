package ephemeris

import (
	"math"
	"reflect"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestComputePositionsDeterministic(t *testing.T) {
	first := ComputePositions("1990-06-15", "14:30")
	for i := 0; i < 5; i++ {
		next := ComputePositions("1990-06-15", "14:30")
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestComputePositionsRanges(t *testing.T) {
	inputs := [][2]string{
		{"1990-06-15", "14:30"},
		{"1850-12-31", "23:59"},
		{"2000-01-01", "12:00"},
		{"2150-02-28", "00:01"},
		{"1969-07-20", "20:17"},
	}

	for _, in := range inputs {
		chart := ComputePositions(in[0], in[1])
		if len(chart.Bodies) != 10 {
			t.Fatalf("%v: expected 10 bodies, got %d", in, len(chart.Bodies))
		}
		if chart.Ascendant == nil {
			t.Fatalf("%v: expected ascendant", in)
		}

		check := func(name string, lon float64, sign Sign, degree float64) {
			if lon < 0 || lon >= 360 {
				t.Fatalf("%v %s: longitude %v out of range", in, name, lon)
			}
			if degree < 0 || degree >= 30 {
				t.Fatalf("%v %s: degree %v out of range", in, name, degree)
			}
			want := Sign(int(math.Floor(lon/30)) % 12)
			if sign != want {
				t.Fatalf("%v %s: sign %s, want %s", in, name, sign, want)
			}
		}

		for _, p := range chart.Bodies {
			check(p.Body.Name, p.Longitude, p.Sign, p.Degree)
		}
		check("ascendant", chart.Ascendant.Longitude, chart.Ascendant.Sign, chart.Ascendant.Degree)
	}
}

func TestComputePositionsCanonicalOrder(t *testing.T) {
	chart := ComputePositions("1990-06-15", "14:30")
	want := []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"}
	for i, p := range chart.Bodies {
		if p.Body.Name != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, p.Body.Name, want[i])
		}
	}
}

func TestEpochIdentity(t *testing.T) {
	m := ParseMoment("2000-01-01", "12:00")
	if d := m.DaysSinceEpoch(); d != 0 {
		t.Fatalf("expected 0 days at epoch, got %v", d)
	}

	chart := ComputePositions("2000-01-01", "12:00")
	sun := chart.Bodies[0]
	if !almostEqual(sun.Longitude, 280.46435) {
		t.Fatalf("sun longitude at epoch: got %v", sun.Longitude)
	}
	if sun.Sign != Capricorn {
		t.Fatalf("sun sign at epoch: got %s", sun.Sign)
	}
	if !almostEqual(sun.Degree, 10.46435) {
		t.Fatalf("sun degree at epoch: got %v", sun.Degree)
	}
}

func TestSunOppositeEarth(t *testing.T) {
	for _, days := range []float64{-100000.5, -3486.8958333333335, -1, 0, 0.25, 365.256, 12345.678} {
		earth := Normalize360(100.46435 + (360/365.256)*days)
		sun := BodyLongitude(bodies[0], days)
		if sun != Normalize360(earth+180) {
			t.Fatalf("days=%v: sun %v is not opposite earth %v", days, sun, earth)
		}
		if EarthLongitude(days) != earth {
			t.Fatalf("days=%v: earth longitude mismatch", days)
		}
	}
}

func TestTimeFractionAscendantPeriodicity(t *testing.T) {
	if TimeFractionAscendant(0, 0) != TimeFractionAscendant(24, 0) {
		t.Fatalf("ascendant at 00:00 and 24:00 must match")
	}

	for h := 0; h < 24; h += 2 {
		lon := TimeFractionAscendant(h, 0)
		sign, degree := SignOf(lon)
		if int(sign) != h/2 {
			t.Fatalf("hour %d: expected sign %d, got %d (%v)", h, h/2, sign, lon)
		}
		if !almostEqual(degree, 0) {
			t.Fatalf("hour %d: expected 0 degree, got %v", h, degree)
		}
	}

	if got := TimeFractionAscendant(14, 30); !almostEqual(got, 217.5) {
		t.Fatalf("14:30: got %v, want 217.5", got)
	}
}

func TestComputePositionsMalformedInput(t *testing.T) {
	cases := [][2]string{
		{"not-a-date", "not-a-time"},
		{"", ""},
		{"abc", "12:00"},
		{"1e300-01-01", "12:00"},
		{"99999999999-13-40", "25:61"},
		{"275761-01-01", "00:00"},
		{"2000-Infinity-01", "12:00"},
		{"2000-01-01", "1e9:00"},
	}

	for _, c := range cases {
		chart := ComputePositions(c[0], c[1])
		if chart.Bodies == nil || len(chart.Bodies) != 0 {
			t.Fatalf("%v: expected empty bodies, got %d", c, len(chart.Bodies))
		}
		if chart.Ascendant != nil {
			t.Fatalf("%v: expected nil ascendant", c)
		}
		if !chart.Empty() {
			t.Fatalf("%v: expected empty chart", c)
		}
	}
}

func TestMomentRange(t *testing.T) {
	if m := ParseMoment("275760-09-13", "00:00"); !m.Valid() {
		t.Fatal("upper boundary must be valid")
	}
	if m := ParseMoment("-271821-04-20", "00:00"); !m.Valid() {
		t.Fatal("lower boundary must be valid")
	}
	if m := ParseMoment("275760-09-13", "00:01"); m.Valid() {
		t.Fatal("moment past the upper boundary must be invalid")
	}

	m := ParseMoment("1e300-01-01", "12:00")
	if !math.IsNaN(m.DaysSinceEpoch()) {
		t.Fatalf("expected NaN days, got %v", m.DaysSinceEpoch())
	}
	if _, ok := ComputeAscendant(AscendantTimeFraction, m, nil); ok {
		t.Fatal("ascendant must not be computed for out-of-range moment")
	}
}

func TestComputePositionsDefaultsMissingComponents(t *testing.T) {
	got := ComputePositions("1990", "")
	want := ComputePositions("1990-01-01", "00:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("missing components must default to 01-01 00:00")
	}

	got = ComputePositions("1990-xx-00", "ab:cd")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("non-numeric and zero components must default")
	}
}

func TestScenarioJune1990(t *testing.T) {
	chart := ComputePositions("1990-06-15", "14:30")

	if chart.Days != -3486.8958333333335 {
		t.Fatalf("days: got %v", chart.Days)
	}

	earth := EarthLongitude(chart.Days)
	if earth != 263.74462465667875 {
		t.Fatalf("earth longitude: got %v", earth)
	}

	sun := chart.Bodies[0]
	if sun.Longitude != 83.74462465667875 {
		t.Fatalf("sun longitude: got %v", sun.Longitude)
	}
	if sun.Sign != Gemini || sun.Sign.Portuguese() != "Gêmeos" {
		t.Fatalf("sun sign: got %s", sun.Sign)
	}
	if !almostEqual(sun.Degree, 23.744624656678752) {
		t.Fatalf("sun degree: got %v", sun.Degree)
	}

	expected := []struct {
		name string
		lon  float64
		sign Sign
	}{
		{"Moon", 353.59361898999487, Pisces},
		{"Mercury", 22.650185223885273, Aries},
		{"Venus", 355.5226158794576, Pisces},
		{"Mars", 328.1854818772015, Aquarius},
		{"Jupiter", 104.62123319097813, Cancer},
		{"Saturn", 293.40704010112256, Capricorn},
		{"Uranus", 273.14687453492536, Capricorn},
		{"Neptune", 283.4933372829321, Capricorn},
		{"Pluto", 225.0676949734982, Scorpio},
	}
	for i, e := range expected {
		p := chart.Bodies[i+1]
		if p.Body.Name != e.name {
			t.Fatalf("position %d: got %s, want %s", i+1, p.Body.Name, e.name)
		}
		if !almostEqual(p.Longitude, e.lon) {
			t.Fatalf("%s longitude: got %v, want %v", e.name, p.Longitude, e.lon)
		}
		if p.Sign != e.sign {
			t.Fatalf("%s sign: got %s, want %s", e.name, p.Sign, e.sign)
		}
	}

	if chart.Ascendant.Sign != Scorpio || !almostEqual(chart.Ascendant.Degree, 7.5) {
		t.Fatalf("ascendant: got %s %v", chart.Ascendant.Sign, chart.Ascendant.Degree)
	}
}

func TestScenarioMidnightAscendant(t *testing.T) {
	chart := ComputePositions("1990-06-15", "00:00")
	asc := chart.Ascendant
	if asc == nil {
		t.Fatalf("expected ascendant")
	}
	if asc.Longitude != 0 || asc.Degree != 0 {
		t.Fatalf("expected 0 longitude, got %v / %v", asc.Longitude, asc.Degree)
	}
	if asc.Sign != Aries || asc.Sign.Portuguese() != "Áries" {
		t.Fatalf("expected Aries, got %s", asc.Sign)
	}
	if asc.Mode != AscendantTimeFraction {
		t.Fatalf("expected time-fraction mode, got %s", asc.Mode)
	}
}

func TestComputeWithOffset(t *testing.T) {
	local := ParseMoment("1990-06-15", "14:30").WithOffset(-3)
	utc := ParseMoment("1990-06-15", "17:30")

	if local.DaysSinceEpoch() != utc.DaysSinceEpoch() {
		t.Fatalf("offset must shift the instant: %v vs %v", local.DaysSinceEpoch(), utc.DaysSinceEpoch())
	}

	chart := Compute(local, Options{})
	if !almostEqual(chart.Bodies[0].Longitude, 83.86782591825977) {
		t.Fatalf("sun longitude with offset: got %v", chart.Bodies[0].Longitude)
	}
	// асцендент по доле суток берёт местное время
	if !almostEqual(chart.Ascendant.Longitude, 217.5) {
		t.Fatalf("ascendant must follow local clock, got %v", chart.Ascendant.Longitude)
	}
}

func TestComputeAscendantModes(t *testing.T) {
	m := ParseMoment("1990-06-15", "14:30")
	lon := -46.6333

	auto, ok := ComputeAscendant("", m, &lon)
	if !ok {
		t.Fatalf("expected ascendant")
	}
	if auto.Mode != AscendantSidereal {
		t.Fatalf("longitude present: expected sidereal, got %s", auto.Mode)
	}
	if !almostEqual(auto.Longitude, 73.1579121188995) || auto.Sign != Gemini {
		t.Fatalf("sidereal ascendant: got %v %s", auto.Longitude, auto.Sign)
	}

	forced, _ := ComputeAscendant(AscendantTimeFraction, m, &lon)
	if forced.Mode != AscendantTimeFraction || !almostEqual(forced.Longitude, 217.5) {
		t.Fatalf("forced time-fraction: got %v %s", forced.Longitude, forced.Mode)
	}

	noLon, _ := ComputeAscendant(AscendantSidereal, m, nil)
	if noLon.Mode != AscendantTimeFraction {
		t.Fatalf("sidereal without longitude must fall back, got %s", noLon.Mode)
	}

	nan := math.NaN()
	withNaN, _ := ComputeAscendant(AscendantSidereal, m, &nan)
	if withNaN.Mode != AscendantTimeFraction {
		t.Fatalf("non-finite longitude must fall back, got %s", withNaN.Mode)
	}

	if _, ok := ComputeAscendant("", ParseMoment("bad", "bad"), &lon); ok {
		t.Fatalf("invalid moment must not produce an ascendant")
	}
}

func TestSiderealAscendantGreenwich(t *testing.T) {
	days := -3486.8958333333335
	if got := SiderealHours(days); !almostEqual(got, 8.074061581166461) {
		t.Fatalf("sidereal hours: got %v", got)
	}
	if got := SiderealAscendant(days, 0); !almostEqual(got, 123.33548468104732) {
		t.Fatalf("sidereal ascendant: got %v", got)
	}
}

func TestParseAscendantMode(t *testing.T) {
	for _, s := range []string{"", "time-fraction", "sidereal"} {
		if _, err := ParseAscendantMode(s); err != nil {
			t.Fatalf("%q: unexpected error %v", s, err)
		}
	}
	if _, err := ParseAscendantMode("placidus"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
