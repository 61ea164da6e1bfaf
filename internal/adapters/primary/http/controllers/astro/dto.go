package astroController

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/admin/astrografia/internal/domain"
)

type ChartReq struct {
	Date          string         `json:"date"`
	Time          string         `json:"time"`
	Lat           OptionalNumber `json:"lat"`
	Lon           OptionalNumber `json:"lon"`
	Timezone      OptionalFloat  `json:"timezone"`
	AscendantMode string         `json:"ascendantMode"`
}

func (r ChartReq) BirthData() domain.BirthData {
	return domain.BirthData{
		Date:          r.Date,
		Time:          r.Time,
		Latitude:      r.Lat.Value,
		Longitude:     r.Lon.Value,
		Timezone:      r.Timezone.Value,
		AscendantMode: r.AscendantMode,
	}
}

// OptionalFloat число или строка с числом; всё остальное игнорируется
type OptionalFloat struct {
	Value *float64
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	o.Value = nil

	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	o.Value = &v
	return nil
}

// OptionalNumber только JSON-число; строки, bool и прочее игнорируются
type OptionalNumber struct {
	Value *float64
}

func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	o.Value = nil

	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	o.Value = &v
	return nil
}
