package domain

const (
	aqiMin = 25
	aqiMax = 200
)

// AirQualitySimulator predicts the air quality index.
type AirQualitySimulator struct{}

func (AirQualitySimulator) Domain() Domain { return DomainAirQuality }

// Predict draws an integer AQI in [25, 200], then the confidence, from one
// salted stream.
func (AirQualitySimulator) Predict(date CalendarDate) Prediction {
	s := NewStream(date, SaltAirQuality)
	aqi := aqiMin + s.Intn(aqiMax-aqiMin+1)
	conf := confidence(s.Float64(), 0.55, 0.4)
	band := ClassifyAirQuality(aqi)

	return Prediction{
		Domain:         DomainAirQuality,
		Date:           date,
		Value:          float64(aqi),
		Unit:           "AQI",
		Condition:      band.Category,
		Confidence:     conf,
		Description:    "Air quality index forecast",
		Recommendation: band.Advice,
		Status:         band.Status,
	}
}

// AQIBand is one row of the AQI category table.
type AQIBand struct {
	Max      int // inclusive upper bound; the last band is open-ended
	Category string
	Status   Status
	Advice   string
}

// aqiBands covers the whole index. Bands above 200 are unreachable with the
// current draw range but stay defined for wider ranges.
var aqiBands = []AQIBand{
	{50, "Good", StatusNormal, "Enjoy outdoor activities."},
	{100, "Moderate", StatusNormal, "Sensitive groups should monitor symptoms."},
	{150, "Unhealthy for Sensitive Groups", StatusElevated, "Limit prolonged outdoor exertion if sensitive."},
	{200, "Unhealthy", StatusElevated, "Consider wearing a mask outdoors; reduce outdoor activities."},
	{300, "Very Unhealthy", StatusSevere, "Avoid outdoor exertion; use air purifiers indoors."},
}

var aqiHazardous = AQIBand{Max: -1, Category: "Hazardous", Status: StatusSevere, Advice: "Stay indoors; follow local health advisories."}

// ClassifyAirQuality returns the band containing aqi.
func ClassifyAirQuality(aqi int) AQIBand {
	for _, b := range aqiBands {
		if aqi <= b.Max {
			return b
		}
	}
	return aqiHazardous
}
