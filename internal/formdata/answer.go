// Package formdata defines the in-memory form model shared by the rules
// engine, the snapshot codec and the legacy adapter. Question answers are
// a closed union: either a single value shared across minerals or one
// value per mineral key.
package formdata

import (
	"encoding/json"
	"fmt"
)

// Answer is a question answer. When PerMineral is true the answer lives
// in ByMineral keyed by mineral key; otherwise Value holds the shared
// answer. The JSON form collapses to a plain string or a string map.
type Answer struct {
	PerMineral bool
	Value      string
	ByMineral  map[string]string
}

// Scalar returns a shared answer.
func Scalar(value string) Answer {
	return Answer{Value: value}
}

// PerMineralAnswer returns an empty per-mineral answer.
func PerMineralAnswer() Answer {
	return Answer{PerMineral: true, ByMineral: map[string]string{}}
}

// Get returns the value for mineralKey, or the shared value when the
// answer is not per mineral.
func (a Answer) Get(mineralKey string) string {
	if a.PerMineral {
		return a.ByMineral[mineralKey]
	}
	return a.Value
}

// Set stores value for mineralKey on per-mineral answers and overwrites
// the shared value otherwise. It returns the updated answer.
func (a Answer) Set(mineralKey, value string) Answer {
	if a.PerMineral {
		if a.ByMineral == nil {
			a.ByMineral = map[string]string{}
		}
		a.ByMineral[mineralKey] = value
		return a
	}
	a.Value = value
	return a
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.PerMineral {
		if a.ByMineral == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(a.ByMineral)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		m := map[string]string{}
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*a = Answer{PerMineral: true, ByMineral: m}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string or a string map: %w", err)
	}
	*a = Answer{Value: s}
	return nil
}

// GetAnswerValue reads the answer for questionKey from answers, honoring
// the expected shape. A shape mismatch reads as unanswered.
func GetAnswerValue(answers map[string]Answer, questionKey, mineralKey string, perMineral bool) string {
	a, ok := answers[questionKey]
	if !ok || a.PerMineral != perMineral {
		return ""
	}
	if perMineral {
		return a.ByMineral[mineralKey]
	}
	return a.Value
}
