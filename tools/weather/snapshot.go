package weather

import (
	"fmt"

	"mcp-weather-server/client"
)

const (
	notAvailable      = "N/A"
	unknownConditions = "Unknown conditions"
)

// Snapshot is a current condition with every missing field already
// replaced by its placeholder.
type Snapshot struct {
	Description string
	TempC       string
	FeelsLikeC  string
	Humidity    string
	WindKmph    string
}

// NewSnapshot fills a Snapshot from cc field by field
func NewSnapshot(cc *client.CurrentCondition) Snapshot {
	s := Snapshot{
		Description: unknownConditions,
		TempC:       orDefault(cc.TempC, notAvailable),
		FeelsLikeC:  orDefault(cc.FeelsLikeC, notAvailable),
		Humidity:    orDefault(cc.Humidity, notAvailable),
		WindKmph:    orDefault(cc.WindspeedKmph, notAvailable),
	}
	if len(cc.WeatherDesc) > 0 && cc.WeatherDesc[0] != nil {
		s.Description = orDefault(cc.WeatherDesc[0].Value, unknownConditions)
	}
	return s
}

// Report renders the snapshot for location
func (s Snapshot) Report(location string) string {
	return fmt.Sprintf("Current weather for %s:\n"+
		"- Conditions: %s\n"+
		"- Temperature: %s°C (feels like %s°C)\n"+
		"- Humidity: %s%%\n"+
		"- Wind: %s km/h",
		location, s.Description, s.TempC, s.FeelsLikeC, s.Humidity, s.WindKmph)
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
