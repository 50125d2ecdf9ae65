package entity

// WeatherReport is the reshaped current weather for a location.
type WeatherReport struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Time             string  `json:"time"`
	Temperature      float64 `json:"temperature"`
	WindSpeed        float64 `json:"windspeed"`
	WindDirection    float64 `json:"winddirection"`
	Condition        string  `json:"condition"`
	IsDay            bool    `json:"is_day"`
	RelativeHumidity int     `json:"relative_humidity"`
	SurfacePressure  float64 `json:"surface_pressure"`
	CloudCover       int     `json:"cloud_cover"`
	CallCount        int64   `json:"call_count"`
}

// CurrentWeather is what the upstream provider returns for a location.
type CurrentWeather struct {
	Latitude         float64
	Longitude        float64
	Time             string
	Temperature      float64
	WindSpeed        float64
	WindDirection    float64
	WeatherCode      int
	IsDay            bool
	RelativeHumidity int
	SurfacePressure  float64
	CloudCover       int
}

// weatherCodes is the WMO weather interpretation table.
var weatherCodes = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Depositing rime fog",
	51: "Light drizzle", 53: "Moderate drizzle", 55: "Dense drizzle",
	56: "Light freezing drizzle", 57: "Dense freezing drizzle",
	61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	66: "Light freezing rain", 67: "Heavy freezing rain",
	71: "Slight snow fall", 73: "Moderate snow fall", 75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers", 81: "Moderate rain showers", 82: "Violent rain showers",
	85: "Slight snow showers", 86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail", 99: "Thunderstorm with heavy hail",
}

// WeatherCondition returns the description of a WMO code, or "Unknown".
func WeatherCondition(code int) string {
	if c, ok := weatherCodes[code]; ok {
		return c
	}
	return "Unknown"
}
