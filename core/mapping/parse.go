package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"stock-sync/core/utils"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Format is the encoding of a mapping document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrMalformed is returned when a mapping document cannot be decoded as a key/value object.
var ErrMalformed = errors.New("malformed mapping document")

// FormatFromName picks the format from a file or object name. JSON is the default.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// pair is one undecoded key/value from a mapping document.
type pair struct {
	key   string
	value any
}

// Parse decodes a mapping document and validates every entry.
// Entries whose sink id is not a positive integer are dropped with a warning.
func Parse(data []byte, format Format, logger *zap.Logger) (*Mapping, error) {
	var (
		pairs []pair
		err   error
	)
	switch format {
	case FormatYAML:
		pairs, err = decodeYAML(data)
	default:
		pairs, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	for _, p := range pairs {
		e, err := parseEntry(p.key, p.value)
		if err != nil {
			logger.Warn("Skipping invalid mapping entry",
				zap.String("barcode", p.key),
				zap.Any("wc_id", p.value),
				zap.Error(err),
			)
			continue
		}
		b.add(e)
	}
	return b.build(), nil
}

// parseEntry coerces a raw value into a positive sink id.
func parseEntry(key string, value any) (Entry, error) {
	if strings.TrimSpace(key) == "" {
		return Entry{}, errors.New("empty source key")
	}
	id, ok := utils.ToInt64(value)
	if _, isFloat := value.(float64); isFloat {
		ok = ok && float64(id) == value.(float64)
	}
	if !ok {
		return Entry{}, fmt.Errorf("sink id %v is not an integer", value)
	}
	if id <= 0 {
		return Entry{}, fmt.Errorf("sink id %d is not positive", id)
	}
	return Entry{SourceKey: key, SinkID: id}, nil
}

// decodeJSON walks the top-level object token by token so key order survives.
func decodeJSON(data []byte) ([]pair, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformed)
	}

	var pairs []pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrMalformed, tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value for %q: %v", ErrMalformed, key, err)
		}
		if n, ok := value.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				value = i
			} else if f, err := n.Float64(); err == nil {
				value = f
			} else {
				value = n.String()
			}
		}
		pairs = append(pairs, pair{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}
	return pairs, nil
}

func decodeYAML(data []byte) ([]pair, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	pairs := make([]pair, 0, len(ms))
	for _, item := range ms {
		pairs = append(pairs, pair{key: utils.ToString(item.Key), value: item.Value})
	}
	return pairs, nil
}
