package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts Go durations such as "15m", "1h" or "20s", and a bare
// integer meaning minutes. An empty string is zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}

	return time.ParseDuration(s)
}

// Duration is a time.Duration that unmarshals from JSON strings ("90s") or
// numbers (minutes).
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case float64:
		d.Duration = time.Duration(val * float64(time.Minute))
		return nil
	case string:
		dur, err := ParseDuration(val)
		if err != nil {
			return err
		}
		d.Duration = dur
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}
