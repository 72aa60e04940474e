package store

import (
	"encoding/json"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Settings is the persisted appearance and playback configuration.
type Settings struct {
	PanelColor      string  `json:"panelColor"`
	AccentColor     string  `json:"accentColor"`
	BorderColor     string  `json:"borderColor"`
	PanelOpacity    float64 `json:"panelOpacity"`
	BackgroundColor string  `json:"backgroundColor"`
	BackgroundImage string  `json:"backgroundImage,omitempty"`
	Zoom            float64 `json:"zoom"`
	Language        string  `json:"language"`
	Volume          float64 `json:"volume"`
	ZoomSliderColor string  `json:"zoomSliderColor"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		PanelColor:      "#0a0a0a",
		AccentColor:     "#3b82f6",
		BorderColor:     "#ffffff22",
		PanelOpacity:    0.42,
		BackgroundColor: "#050505",
		Zoom:            1,
		Language:        "ru",
		Volume:          0.5,
		ZoomSliderColor: "#ffffff",
	}
}

// Document is a full saved state: the entity collections plus settings.
type Document struct {
	Objects  []scene.Object `json:"objects"`
	Groups   []scene.Group  `json:"groups"`
	Settings Settings       `json:"settings"`
}

// UnmarshalJSON accepts both the current field names and the short
// {o, g, s} keys of older autosaves. Missing settings keep their defaults.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Objects  []scene.Object  `json:"objects"`
		Groups   []scene.Group   `json:"groups"`
		Settings json.RawMessage `json:"settings"`
		O        []scene.Object  `json:"o"`
		G        []scene.Group   `json:"g"`
		S        json.RawMessage `json:"s"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Document{Objects: raw.Objects, Groups: raw.Groups, Settings: DefaultSettings()}
	if out.Objects == nil {
		out.Objects = raw.O
	}
	if out.Groups == nil {
		out.Groups = raw.G
	}
	settings := raw.Settings
	if len(settings) == 0 {
		settings = raw.S
	}
	if len(settings) > 0 && string(settings) != "null" {
		if err := json.Unmarshal(settings, &out.Settings); err != nil {
			return err
		}
	}
	*d = out
	return nil
}
