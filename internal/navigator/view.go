package navigator

import (
	"strings"

	"github.com/agnivade/levenshtein"

	apperrors "github.com/Iron-Ham/townreport/internal/errors"
)

// View identifies one of the mutually exclusive screens.
type View int

const (
	Title View = iota
	Home
	Camera
	Map
	Reports
	Profile
)

var viewNames = map[View]string{
	Title:   "title",
	Home:    "home",
	Camera:  "camera",
	Map:     "map",
	Reports: "reports",
	Profile: "profile",
}

// String returns the view's canonical name.
func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return "unknown"
}

// AllViews returns every view in display order.
func AllViews() []View {
	return []View{Title, Home, Camera, Map, Reports, Profile}
}

// maxSuggestDistance bounds how different a typo may be and still get a
// suggestion.
const maxSuggestDistance = 3

// ParseView resolves a view name case-insensitively. Unknown names return a
// *errors.LookupError suggesting the closest view name.
func ParseView(name string) (View, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, v := range AllViews() {
		if v.String() == needle {
			return v, nil
		}
	}

	err := apperrors.NewLookupError("view", name)
	best, bestDist := "", maxSuggestDistance+1
	for _, v := range AllViews() {
		if d := levenshtein.ComputeDistance(needle, v.String()); d < bestDist {
			best, bestDist = v.String(), d
		}
	}
	if best != "" {
		err = err.WithSuggestion(best)
	}
	return Title, err
}
