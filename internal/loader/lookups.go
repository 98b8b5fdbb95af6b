package loader

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/jusunglee/railmap-go/internal/models"
	"github.com/jusunglee/railmap-go/internal/validation"
)

// Coordinates reads a JSON object mapping station name to [row, col]. Node
// order follows the key order of the file.
func (l *Loader) Coordinates(ctx context.Context, path string) ([]models.StationCoordinate, error) {
	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, &SourceError{Kind: KindCoordinates, Path: path, Err: err}
	}
	defer rc.Close()

	coords, err := parseCoordinates(rc)
	if err != nil {
		return nil, &SourceError{Kind: KindCoordinates, Path: path, Err: err}
	}
	return coords, nil
}

func parseCoordinates(r io.Reader) ([]models.StationCoordinate, error) {
	var coords []models.StationCoordinate
	seen := make(map[string]int)

	err := decodeObject(r, func(station string, raw []byte) error {
		var pos []float64
		if err := json.Unmarshal(raw, &pos); err != nil {
			return fmt.Errorf("%w: station %q: %v", ErrMalformed, station, err)
		}
		if len(pos) != 2 {
			return fmt.Errorf("%w: station %q: want [row, col], got %d values", ErrMalformed, station, len(pos))
		}

		c := models.StationCoordinate{
			Name:     station,
			Position: models.Position{Row: pos[0], Col: pos[1]},
		}
		// a repeated key overrides the value but keeps its first position
		if i, ok := seen[station]; ok {
			coords[i] = c
			return nil
		}
		seen[station] = len(coords)
		coords = append(coords, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if coords == nil {
		coords = []models.StationCoordinate{}
	}
	return coords, nil
}

// Labels reads a JSON object mapping station name to its label style.
// Missing anchors default to center/top.
func (l *Loader) Labels(ctx context.Context, path string) ([]models.StationLabel, error) {
	rc, err := l.open(ctx, path)
	if err != nil {
		return nil, &SourceError{Kind: KindLabels, Path: path, Err: err}
	}
	defer rc.Close()

	labels, err := parseLabels(rc)
	if err != nil {
		return nil, &SourceError{Kind: KindLabels, Path: path, Err: err}
	}
	return labels, nil
}

func parseLabels(r io.Reader) ([]models.StationLabel, error) {
	var labels []models.StationLabel
	seen := make(map[string]int)

	err := decodeObject(r, func(station string, raw []byte) error {
		var style models.LabelStyle
		if err := json.Unmarshal(raw, &style); err != nil {
			return fmt.Errorf("%w: station %q: %v", ErrMalformed, station, err)
		}
		if err := validation.ValidateStruct(style); err != nil {
			return fmt.Errorf("%w: station %q: %v", ErrMalformed, station, err)
		}

		sl := models.StationLabel{Station: station, Style: style.WithDefaults()}
		if i, ok := seen[station]; ok {
			labels[i] = sl
			return nil
		}
		seen[station] = len(labels)
		labels = append(labels, sl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if labels == nil {
		labels = []models.StationLabel{}
	}
	return labels, nil
}

// decodeObject walks a top-level JSON object in key order, handing each raw
// value to fn.
func decodeObject(r io.Reader, fn func(key string, raw []byte) error) error {
	dec := stdjson.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(stdjson.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected an object key", ErrMalformed)
		}

		var raw stdjson.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: station %q: %v", ErrMalformed, key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
