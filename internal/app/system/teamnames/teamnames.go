// internal/app/system/teamnames/teamnames.go
package teamnames

import (
	"fmt"
	"math/rand/v2"
)

// Readable two-word team names for promote-to-coach when the admin does not
// supply one.

var adjectives = []string{
	"Brave", "Bright", "Bold", "Calm", "Clever", "Daring", "Eager",
	"Fearless", "Golden", "Keen", "Lively", "Mighty", "Noble", "Radiant",
	"Rising", "Steady", "Swift", "Thriving", "Valiant", "Vivid",
}

var nouns = []string{
	"Falcons", "Summits", "Rivers", "Anchors", "Beacons", "Comets",
	"Compasses", "Eagles", "Embers", "Horizons", "Lanterns", "Oaks",
	"Pioneers", "Ridges", "Sparks", "Tides", "Trailblazers", "Voyagers",
	"Wolves", "Peaks",
}

// Random returns an adjective+noun pair, e.g. "Steady Horizons".
func Random() string {
	return fmt.Sprintf("%s %s",
		adjectives[rand.IntN(len(adjectives))],
		nouns[rand.IntN(len(nouns))])
}
