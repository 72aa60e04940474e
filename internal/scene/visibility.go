package scene

import (
	"encoding/json"
	"math"
	"time"
)

// Visibility is either a static opacity percentage or a blink rate.
//
// The persisted form is a single signed number: values >= 0 are an opacity
// percentage (0-100), negative values are a blink rate of abs(v) BPM.
type Visibility struct {
	Blink bool
	Value float64 // percent when static, BPM when blinking
}

// Static returns a static visibility of pct percent.
func Static(pct float64) Visibility {
	return Visibility{Value: pct}
}

// BlinkAt returns a 50% duty-cycle blink at bpm beats per minute.
func BlinkAt(bpm float64) Visibility {
	return Visibility{Blink: true, Value: math.Abs(bpm)}
}

// Opaque is full static visibility.
var Opaque = Static(100)

// DecodeVisibility converts the persisted signed encoding.
func DecodeVisibility(v float64) Visibility {
	if v < 0 {
		return BlinkAt(-v)
	}
	return Static(v)
}

// Encode returns the persisted signed encoding.
func (v Visibility) Encode() float64 {
	if v.Blink {
		return -v.Value
	}
	return v.Value
}

// Opacity evaluates the visibility at elapsed wall-clock time.
func (v Visibility) Opacity(elapsed time.Duration) float64 {
	if !v.Blink {
		return math.Max(0, math.Min(1, v.Value/100))
	}
	if v.Value <= 0 {
		return 1
	}
	interval := 60000 / v.Value
	ms := float64(elapsed) / float64(time.Millisecond)
	if math.Mod(ms, interval) < interval/2 {
		return 1
	}
	return 0
}

// MarshalJSON writes the signed encoding.
func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Encode())
}

// UnmarshalJSON reads the signed encoding. A JSON null means fully opaque.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var raw *float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = Opaque
		return nil
	}
	*v = DecodeVisibility(*raw)
	return nil
}
