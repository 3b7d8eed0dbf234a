package services

import (
	"strings"

	"eventim-monitor/models"
)

// hexColorFamilies maps exact hex fill values seen on real seat maps to the
// color family names the heuristic rules match on. Substring matching alone
// cannot recognise these.
var hexColorFamilies = map[string]string{
	"#ffff00": "yellow",
	"#ffd700": "gold",
	"#ff0000": "red",
	"#dc143c": "crimson",
	"#808080": "grey",
	"#a9a9a9": "grey",
	"#c0c0c0": "silver",
	"#00ff00": "green",
	"#008000": "green",
	"#0000ff": "blue",
}

// Classify maps one seat marker's fill color and class name to a category.
//
// This is a best-effort heuristic against an uncontrolled third-party page:
// color rules run first, and a recognised class name overrides whatever the
// color suggested. Returns ok=false when neither attribute matches, in which
// case the element is not counted at all.
func Classify(fill, class string) (models.Category, bool) {
	cat, ok := classifyFill(fill)

	if classCat, classOK := classifyClass(class); classOK {
		return classCat, true
	}

	return cat, ok
}

func classifyFill(fill string) (models.Category, bool) {
	fill = strings.ToLower(strings.TrimSpace(fill))
	if fill == "" {
		return "", false
	}

	if family, known := hexColorFamilies[fill]; known {
		fill = family
	}

	switch {
	case containsAny(fill, "yellow", "gold"):
		return models.AvailableStandard, true
	case containsAny(fill, "red", "crimson"):
		return models.AvailablePremium, true
	case containsAny(fill, "grey", "gray", "silver"):
		return models.Sold, true
	case containsAny(fill, "green", "blue"):
		// Unknown availability color — assume standard availability.
		return models.AvailableStandard, true
	default:
		// Any other non-empty fill — assume sold.
		return models.Sold, true
	}
}

func classifyClass(class string) (models.Category, bool) {
	class = strings.ToLower(class)

	switch {
	case containsAny(class, "available", "free"):
		if containsAny(class, "premium", "vip") {
			return models.AvailablePremium, true
		}
		return models.AvailableStandard, true
	case containsAny(class, "sold", "taken", "occupied"):
		return models.Sold, true
	}

	return "", false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CountMarkers classifies every seat marker and aggregates the counts.
// Markers that match no rule contribute to neither category nor the total.
func CountMarkers(markers []models.SeatMarker) models.Snapshot {
	var snap models.Snapshot
	for _, m := range markers {
		if cat, ok := Classify(m.Fill, m.Class); ok {
			snap.Add(cat)
		}
	}
	return snap
}
