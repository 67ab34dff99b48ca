// Package catalog holds program records and the read-only catalog handle the
// recommendation pipeline runs against.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// ErrNoData is returned when there is no catalog to recommend from.
// It is distinct from an empty recommendation list.
var ErrNoData = errors.New("no program data available")

// Catalog is an immutable, shared-read set of programs. It is built once by
// the loader and may be read concurrently.
type Catalog struct {
	programs []Program
	warnings []error
}

// New builds a catalog from a deep copy of the given programs.
func New(programs []Program) *Catalog {
	return &Catalog{programs: cloneAll(programs)}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.programs)
}

// Programs returns a deep copy of the catalog entries in load order, so
// callers may modify the result freely.
func (c *Catalog) Programs() []Program {
	if c == nil {
		return nil
	}
	return cloneAll(c.programs)
}

// Warnings lists the record fields dropped while decoding.
func (c *Catalog) Warnings() []error {
	if c == nil {
		return nil
	}
	return slices.Clone(c.warnings)
}

func cloneAll(programs []Program) []Program {
	items := make([]Program, 0, len(programs))
	for i := range programs {
		items = append(items, programs[i].clone())
	}
	return items
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return New(nil), nil
	}

	c, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding catalog %q: %w", path, err)
	}
	return c, nil
}

// Decode parses a JSON array of program objects. Any other top-level value
// yields an empty catalog and entries that are not objects are skipped.
// A field that cannot be decoded is dropped from its record, which is kept
// with that field unknown; the dropped fields are reported by Warnings.
func Decode(r io.Reader) (*Catalog, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	items, ok := raw.([]any)
	if !ok {
		return New(nil), nil
	}

	c := &Catalog{programs: make([]Program, 0, len(items))}
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}

		program, problems := decodeProgram(record)
		c.programs = append(c.programs, program)
		c.warnings = append(c.warnings, problems...)
	}

	return c, nil
}

func decodeProgram(record map[string]any) (Program, []error) {
	fields := make(map[string]any, len(record))
	for k, v := range record {
		fields[k] = v
	}

	if tuition, ok := parseTuition(fields["annual_tuition"]); ok {
		fields["annual_tuition"] = tuition
	} else {
		delete(fields, "annual_tuition")
	}

	for _, key := range []string{"interest_areas", "delivery_modes"} {
		fields[key] = parseList(fields[key])
	}

	var program Program
	if err := decodeFields(fields, &program); err == nil {
		return program.trimmed(), nil
	}

	// Degrade field by field so one bad value does not lose the record.
	program = Program{}
	var problems []error
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		single := map[string]any{key: fields[key]}

		var scratch Program
		if err := decodeFields(single, &scratch); err != nil {
			problems = append(problems, fmt.Errorf("program %v: dropping %q: %w", record["program_name"], key, err))
			continue
		}
		// cannot fail: the same input just decoded
		_ = decodeFields(single, &program)
	}

	return program.trimmed(), problems
}

func decodeFields(fields map[string]any, program *Program) error {
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           program,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}

func parseTuition(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseList(v any) []string {
	var values []string
	switch t := v.(type) {
	case []any:
		values = cast.ToStringSlice(t)
	case []string:
		values = t
	case string:
		values = strings.Split(t, ",")
	default:
		return []string{}
	}

	result := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			result = append(result, value)
		}
	}
	return result
}
