package models

// HotspotRecord is a single thermal anomaly detection reported by the
// satellite fire-detection provider (or its simulated stand-in).
type HotspotRecord struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Brightness      float64 `json:"brightness"`
	AcquisitionDate string  `json:"acq_date"`
	Confidence      int     `json:"confidence"`
}

// WeatherSample captures the weather conditions used as classifier features.
// NDVI is a placeholder vegetation proxy, not a real satellite-derived index.
type WeatherSample struct {
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	WindSpeedKmh float64 `json:"wind_speed"`
	RainfallMm   float64 `json:"rainfall"`
	NDVI         float64 `json:"ndvi"`
}

// TrendPoint is one entry in the bounded weather trend history.
type TrendPoint struct {
	TimeLabel   string  `json:"time"`
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"hum"`
}

// RiskLevel enumerates the classifier's categorical risk output.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskHigh   RiskLevel = "High Risk"
)

// RiskLevelFromClass maps a classifier class (0/1/2) onto a RiskLevel.
// Unknown classes map to low risk.
func RiskLevelFromClass(class int) RiskLevel {
	switch class {
	case 2:
		return RiskHigh
	case 1:
		return RiskMedium
	default:
		return RiskLow
	}
}
