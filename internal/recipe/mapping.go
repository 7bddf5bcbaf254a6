package recipe

import (
	"math"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rohankatakam/recipegraph/internal/errors"
)

// stringField reads a string column. A null property reads as "".
func stringField(record *neo4j.Record, key string) (string, error) {
	raw, ok := record.Get(key)
	if !ok {
		return "", errors.DataIntegrityErrorf("record has no column %q", key)
	}
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", errors.DataIntegrityErrorf("column %q: expected string, got %T", key, raw)
	}
}

// intField reads an integer column. Store integers arrive as int64;
// integral floats are tolerated. Anything else fails the request.
func intField(record *neo4j.Record, key string) (int, error) {
	raw, ok := record.Get(key)
	if !ok {
		return 0, errors.DataIntegrityErrorf("record has no column %q", key)
	}
	switch v := raw.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, errors.DataIntegrityErrorf("column %q: %v is not an integer", key, v)
		}
		return int(v), nil
	case nil:
		return 0, errors.DataIntegrityErrorf("column %q is null", key)
	default:
		return 0, errors.DataIntegrityErrorf("column %q: expected integer, got %T", key, raw)
	}
}

// stringsField reads a list column such as collect(i.name). Null entries are skipped.
func stringsField(record *neo4j.Record, key string) ([]string, error) {
	raw, ok := record.Get(key)
	if !ok {
		return nil, errors.DataIntegrityErrorf("record has no column %q", key)
	}
	out := []string{}
	switch v := raw.(type) {
	case nil:
		return out, nil
	case []string:
		return append(out, v...), nil
	case []any:
		for i, item := range v {
			switch s := item.(type) {
			case nil:
			case string:
				out = append(out, s)
			default:
				return nil, errors.DataIntegrityErrorf("column %q[%d]: expected string, got %T", key, i, item)
			}
		}
		return out, nil
	default:
		return nil, errors.DataIntegrityErrorf("column %q: expected list, got %T", key, raw)
	}
}

func toSummary(record *neo4j.Record) (Summary, error) {
	var (
		s   Summary
		err error
	)
	if s.Name, err = stringField(record, "name"); err != nil {
		return s, err
	}
	if s.Author, err = stringField(record, "author"); err != nil {
		return s, err
	}
	if s.SkillLevel, err = stringField(record, "skillLevel"); err != nil {
		return s, err
	}
	if s.NumberOfIngredients, err = intField(record, "numberOfIngredients"); err != nil {
		return s, err
	}
	return s, nil
}

func toDetails(record *neo4j.Record) (Details, error) {
	var (
		d   Details
		err error
	)
	if d.Description, err = stringField(record, "description"); err != nil {
		return d, err
	}
	if d.CookingTime, err = intField(record, "cookingTime"); err != nil {
		return d, err
	}
	if d.PreparationTime, err = intField(record, "preparationTime"); err != nil {
		return d, err
	}
	if d.Ingredients, err = stringsField(record, "ingredients"); err != nil {
		return d, err
	}
	return d, nil
}
