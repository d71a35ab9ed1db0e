package formdata

import (
	"strconv"
	"strings"

	"rmi-forms/internal/registry"
)

// OtherMineralPrefix prefixes the synthetic keys of free-form "other"
// mineral slots on dynamic-dropdown templates.
const OtherMineralPrefix = "other-"

// OtherMineralKey returns the synthetic key of other slot i.
func OtherMineralKey(i int) string {
	return OtherMineralPrefix + strconv.Itoa(i)
}

// ParseOtherMineralKey extracts the slot index from a synthetic other
// key. It reports false for anything else.
func ParseOtherMineralKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, OtherMineralPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// ActiveMineralKeys resolves which mineral keys are currently in scope.
//
// Fixed scopes activate the whole catalog. Dynamic-dropdown scopes
// activate the selected catalog minerals plus one synthetic key per
// filled "other" slot when "other" is selected. Free-text scopes map
// filled custom slots onto catalog keys by position.
func ActiveMineralKeys(def *registry.TemplateVersionDef, selected, custom []string) []string {
	scope := def.MineralScope
	switch scope.Mode {
	case registry.ScopeDynamicDropdown:
		chosen := make(map[string]bool, len(selected))
		for _, key := range selected {
			chosen[key] = true
		}
		keys := []string{}
		for _, m := range scope.Minerals {
			if m.Key != "other" && chosen[m.Key] {
				keys = append(keys, m.Key)
			}
		}
		if chosen["other"] {
			for i := 0; i < scope.OtherSlotCount && i < len(custom); i++ {
				if strings.TrimSpace(custom[i]) != "" {
					keys = append(keys, OtherMineralKey(i))
				}
			}
		}
		return keys
	case registry.ScopeFreeText:
		keys := []string{}
		for i, m := range scope.Minerals {
			if i < len(custom) && strings.TrimSpace(custom[i]) != "" {
				keys = append(keys, m.Key)
			}
		}
		return keys
	default:
		keys := make([]string, 0, len(scope.Minerals))
		for _, m := range scope.Minerals {
			keys = append(keys, m.Key)
		}
		return keys
	}
}

// CustomMineralLabels maps active custom mineral keys to the free-form
// labels the respondent typed.
func CustomMineralLabels(def *registry.TemplateVersionDef, selected, custom []string) map[string]string {
	scope := def.MineralScope
	labels := map[string]string{}
	switch scope.Mode {
	case registry.ScopeFreeText:
		for i, m := range scope.Minerals {
			if i < len(custom) && strings.TrimSpace(custom[i]) != "" {
				labels[m.Key] = custom[i]
			}
		}
	case registry.ScopeDynamicDropdown:
		hasOther := false
		for _, key := range selected {
			if key == "other" {
				hasOther = true
				break
			}
		}
		if hasOther {
			for i := 0; i < scope.OtherSlotCount && i < len(custom); i++ {
				if strings.TrimSpace(custom[i]) != "" {
					labels[OtherMineralKey(i)] = custom[i]
				}
			}
		}
	}
	return labels
}

// MineralLabelKeys maps catalog mineral keys to their label keys.
func MineralLabelKeys(def *registry.TemplateVersionDef) map[string]string {
	out := make(map[string]string, len(def.MineralScope.Minerals))
	for _, m := range def.MineralScope.Minerals {
		out[m.Key] = m.LabelKey
	}
	return out
}

// MetalsForSource resolves a metal dropdown source to concrete minerals.
// Synthetic other keys resolve with an empty label key; display labels
// for those come from CustomMineralLabels.
func MetalsForSource(source registry.MetalDropdownSource, def *registry.TemplateVersionDef, answers map[string]Answer, selected, custom []string) []registry.MineralDef {
	switch source.Kind {
	case registry.MetalsFixed:
		out := make([]registry.MineralDef, len(source.Metals))
		copy(out, source.Metals)
		return out
	case registry.MetalsActive:
		labelKeys := MineralLabelKeys(def)
		keys := ActiveMineralKeys(def, selected, custom)
		out := make([]registry.MineralDef, 0, len(keys))
		for _, key := range keys {
			out = append(out, registry.MineralDef{Key: key, LabelKey: labelKeys[key]})
		}
		return out
	case registry.MetalsQ1Yes, registry.MetalsQ2Yes:
		questionKey := "q1"
		if source.Kind == registry.MetalsQ2Yes {
			questionKey = "q2"
		}
		out := []registry.MineralDef{}
		for _, m := range def.MineralScope.Minerals {
			if GetAnswerValue(answers, questionKey, m.Key, true) == "Yes" {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}
