// model/report.go
package model

import (
	"fmt"
	"math"
	"strconv"
)

// Variant selects which report columns are stored and whether predictions run.
type Variant string

const (
	// VariantPrediction runs the classifier and stores urgency columns.
	VariantPrediction Variant = "prediction"
	// VariantBasic stores a mutable status column instead.
	VariantBasic Variant = "basic"
)

// StatusNotResolved is the status every basic-variant report starts with.
const StatusNotResolved = "not_resolved"

// Report columns.
const (
	ColID            = "id"
	ColImageFilename = "image_filename"
	ColLatitude      = "latitude"
	ColLongitude     = "longitude"
	ColLocation      = "location"
	ColDescription   = "description"
	ColSeverity      = "severity"
	ColHumanitarian  = "humanitarian"
	ColDisasterOrNot = "disaster_or_not"
	ColUrgencyLevel  = "urgency_level"
	ColStatus        = "status"
)

var (
	baseColumns       = []string{ColID, ColImageFilename, ColLatitude, ColLongitude, ColLocation, ColDescription}
	predictionColumns = append(append([]string{}, baseColumns...), ColSeverity, ColHumanitarian, ColDisasterOrNot, ColUrgencyLevel)
	basicColumns      = append(append([]string{}, baseColumns...), ColStatus)
)

func (v Variant) Valid() bool {
	return v == VariantPrediction || v == VariantBasic
}

// Columns returns the fixed header of the report store for the variant.
func (v Variant) Columns() []string {
	if v == VariantPrediction {
		return append([]string{}, predictionColumns...)
	}
	return append([]string{}, basicColumns...)
}

type Report struct {
	ID            int64   `json:"id"`
	ImageFilename string  `json:"image_filename"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`

	// Prediction variant
	Severity      string `json:"severity,omitempty"`
	Humanitarian  string `json:"humanitarian,omitempty"`
	DisasterOrNot string `json:"disaster_or_not,omitempty"`
	UrgencyLevel  string `json:"urgency_level,omitempty"`

	// Basic variant
	Status string `json:"status,omitempty"`
}

// Field renders the stored text of a column.
func (r *Report) Field(col string) string {
	switch col {
	case ColID:
		return strconv.FormatInt(r.ID, 10)
	case ColImageFilename:
		return r.ImageFilename
	case ColLatitude:
		return strconv.FormatFloat(r.Latitude, 'f', -1, 64)
	case ColLongitude:
		return strconv.FormatFloat(r.Longitude, 'f', -1, 64)
	case ColLocation:
		return r.Location
	case ColDescription:
		return r.Description
	case ColSeverity:
		return r.Severity
	case ColHumanitarian:
		return r.Humanitarian
	case ColDisasterOrNot:
		return r.DisasterOrNot
	case ColUrgencyLevel:
		return r.UrgencyLevel
	case ColStatus:
		return r.Status
	}
	return ""
}

// SetField parses raw into the named column. id, latitude and longitude are numeric.
func (r *Report) SetField(col, raw string) error {
	var err error
	switch col {
	case ColID:
		r.ID, err = strconv.ParseInt(raw, 10, 64)
	case ColImageFilename:
		r.ImageFilename = raw
	case ColLatitude:
		r.Latitude, err = ParseCoordinate(raw)
	case ColLongitude:
		r.Longitude, err = ParseCoordinate(raw)
	case ColLocation:
		r.Location = raw
	case ColDescription:
		r.Description = raw
	case ColSeverity:
		r.Severity = raw
	case ColHumanitarian:
		r.Humanitarian = raw
	case ColDisasterOrNot:
		r.DisasterOrNot = raw
	case ColUrgencyLevel:
		r.UrgencyLevel = raw
	case ColStatus:
		r.Status = raw
	default:
		return fmt.Errorf("unknown column %q", col)
	}
	if err != nil {
		return fmt.Errorf("column %s: %w", col, err)
	}
	return nil
}

// ParseCoordinate parses a decimal degree value. NaN and infinities are rejected
// since they cannot be rendered as JSON.
func ParseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", raw)
	}
	return v, nil
}

// Row renders the report in the given column order.
func (r *Report) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = r.Field(col)
	}
	return row
}
