package elements

import (
	"github.com/jusunglee/railmap-go/internal/models"
)

// Colours used by the map stylesheet
const (
	StationColor  = "#0074D9"
	TopRouteColor = "#FF4136"
	EdgeColor     = "#888"
	LabelColor    = "#000"
	fontSize      = "16px"
)

// Stylesheet returns the renderer stylesheet. Every station with a custom
// label gets its own class rule, in labels order.
func Stylesheet(labels []models.StationLabel) []models.StyleRule {
	rules := []models.StyleRule{
		{
			Selector: "node",
			Style: map[string]any{
				"width":            "data(width)",
				"height":           "data(height)",
				"background-color": StationColor,
				"color":            LabelColor,
				"font-size":        fontSize,
				"text-opacity":     0,
				"shape":            "ellipse",
			},
		},
		{
			Selector: "." + models.ClassStation,
			Style: map[string]any{
				"font-size":    fontSize,
				"text-opacity": 1,
			},
		},
	}

	for _, l := range labels {
		style := l.Style.WithDefaults()
		rules = append(rules, models.StyleRule{
			Selector: "." + StationClass(l.Station),
			Style: map[string]any{
				"label":       style.Label,
				"text-halign": style.HAlign,
				"text-valign": style.VAlign,
			},
		})
	}

	rules = append(rules,
		models.StyleRule{
			Selector: "." + models.ClassTopRoute,
			Style: map[string]any{
				"line-color":         TopRouteColor,
				"width":              "data(width)",
				"target-arrow-color": TopRouteColor,
				"target-arrow-shape": "triangle",
				"arrow-scale":        1,
				"curve-style":        "bezier",
			},
		},
		models.StyleRule{
			Selector: "edge",
			Style: map[string]any{
				"line-color":  EdgeColor,
				"width":       "data(width)",
				"curve-style": "bezier",
			},
		},
	)

	return rules
}
