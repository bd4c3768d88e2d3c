package panel

import (
	"fmt"
	"strings"
)

const (
	CurrentPlaceholder = "Current Temperature: --°F"
	WeatherUnavailable = "Weather unavailable"
	WeatherError       = "Weather error"
	WeatherLoading     = "Loading weather..."
)

// Weather icons.
const (
	IconRain        = "🌧️"
	IconCloud       = "☁️"
	IconSnow        = "❄️"
	IconStorm       = "⛈️"
	IconMist        = "🌫️"
	IconClear       = "☀️"
	IconThermometer = "🌡️"
)

// SliderView mirrors the heatSlider range input.
type SliderView struct {
	Min   int
	Max   int
	Value int
	Step  int
}

// View is the rendered panel. Field names follow the page elements:
// heatSlider, temperature, currentTemperature, power and weather.
type View struct {
	Slider       SliderView
	TargetLabel  string
	CurrentLabel string
	PowerChecked bool
	WeatherLabel string
}

// Renderer displays a View. Render is called after every model change.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

func (f RendererFunc) Render(v View) { f(v) }

// Render derives the view from a snapshot.
func Render(s Snapshot) View {
	v := View{
		Slider: SliderView{
			Min:   s.Bounds.Min,
			Max:   s.Bounds.Max,
			Value: s.Heater.Target,
			Step:  s.Bounds.Step,
		},
		TargetLabel:  TargetLabel(s.Heater.Target),
		CurrentLabel: CurrentPlaceholder,
		PowerChecked: s.Heater.IsOn,
	}
	if s.HeaterStatus == StatusOK {
		v.CurrentLabel = CurrentLabel(s.Heater.Current)
	}
	if s.ShowWeather {
		v.WeatherLabel = weatherLabel(s.Weather, s.WeatherStatus)
	}
	return v
}

func TargetLabel(target int) string {
	return fmt.Sprintf("Set Temperature: %d°F", target)
}

func CurrentLabel(current float64) string {
	return fmt.Sprintf("Current Temperature: %.1f°F", current)
}

func WeatherLabel(w WeatherState) string {
	return fmt.Sprintf("%s %.1f°F, %s", WeatherIcon(w.Description), w.Temperature, w.Description)
}

func weatherLabel(w WeatherState, status FetchStatus) string {
	switch status {
	case StatusOK:
		return WeatherLabel(w)
	case StatusUnavailable:
		return WeatherUnavailable
	case StatusFetchError:
		return WeatherError
	default:
		return WeatherLoading
	}
}

var iconRules = []struct {
	keywords []string
	icon     string
}{
	{[]string{"rain"}, IconRain},
	{[]string{"cloud"}, IconCloud},
	{[]string{"snow"}, IconSnow},
	{[]string{"storm", "thunder"}, IconStorm},
	{[]string{"mist", "fog"}, IconMist},
	{[]string{"clear", "sun"}, IconClear},
}

// WeatherIcon picks an icon by case-insensitive substring; the first rule
// that matches wins.
func WeatherIcon(description string) string {
	d := strings.ToLower(description)
	for _, r := range iconRules {
		for _, k := range r.keywords {
			if strings.Contains(d, k) {
				return r.icon
			}
		}
	}
	return IconThermometer
}
