package speech

import "strings"

// Voice describes one synthesis voice reported by the platform.
type Voice struct {
	Name    string `json:"name"`
	Lang    string `json:"lang"`
	Female  bool   `json:"female"`
	Default bool   `json:"default"`
}

// expressiveMarkers flag enhanced/neural voices.
var expressiveMarkers = []string{
	"Neural", "Natural", "Enhanced", "Premium",
	"Samantha", "Karen", "Victoria", "Susan", "Zira", "Hazel",
}

// PickVoice selects the preferred synthesis voice: an enhanced/neural/natural
// voice first, then a named high-quality platform voice, then any
// female-flagged voice, then the platform default. This is a soft preference;
// the second return value is false only when no voices are available at all.
func PickVoice(voices []Voice) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	for _, v := range voices {
		for _, marker := range expressiveMarkers {
			if strings.Contains(v.Name, marker) {
				return v, true
			}
		}
	}

	for _, v := range voices {
		if (strings.Contains(v.Name, "Google") && strings.Contains(v.Name, "US")) ||
			(strings.Contains(v.Name, "Microsoft") && strings.Contains(v.Name, "US")) ||
			strings.Contains(v.Name, "Azure") ||
			strings.Contains(v.Name, "WaveNet") {
			return v, true
		}
	}

	for _, v := range voices {
		if v.Female {
			return v, true
		}
	}

	for _, v := range voices {
		if v.Default {
			return v, true
		}
	}

	return voices[0], true
}
