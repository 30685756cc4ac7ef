// Package analyzer converts between JSON documents and nested element trees
// with string scalars.
package analyzer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/mcncl/nestrep/internal/config"
	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/grammar"
	"github.com/mcncl/nestrep/internal/models"
)

// jsonNumberRegex matches the JSON number grammar, which is stricter than strconv.
var jsonNumberRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Analyzer maps JSON values onto collections and back
type Analyzer struct {
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// FromJSON builds a collection from a parsed JSON document. Objects become
// dictionaries with keys in sorted order. A root array becomes the configured
// root type, and a primitive root is wrapped in a one-entry list.
func (a *Analyzer) FromJSON(root models.JSONValue) (models.Collection[string], error) {
	switch v := root.(type) {
	case models.JSONObject:
		d, err := a.fromObject(v)
		if err != nil {
			return nil, err
		}
		return d, nil
	case models.JSONArray:
		return a.fromArrayRoot(v)
	default:
		e, err := a.fromNode(v)
		if err != nil {
			return nil, err
		}
		l, err := models.NewNestableListOf(e)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

func (a *Analyzer) fromNode(node models.JSONValue) (models.Element[string], error) {
	switch v := node.(type) {
	case models.JSONObject:
		d, err := a.fromObject(v)
		if err != nil {
			return models.Element[string]{}, err
		}
		return models.NewCollection[string](d)
	case models.JSONArray:
		return a.fromArray(v)
	default:
		s, err := scalarFromJSON(v)
		if err != nil {
			return models.Element[string]{}, err
		}
		return models.NewScalarOf(s), nil
	}
}

func (a *Analyzer) fromObject(obj models.JSONObject) (*models.NestableDictionary[string], error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := models.NewNestableDictionary[string](len(keys))
	for _, key := range keys {
		e, err := a.fromNode(obj[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if err := d.AddKeyed(a.config.KeyFor(key), e); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// fromArray keeps arrays of primitives flat and turns arrays holding
// objects or arrays into lists.
func (a *Analyzer) fromArray(arr models.JSONArray) (models.Element[string], error) {
	if isFlat(arr) {
		items := make([]models.Scalar[string], len(arr))
		for i, v := range arr {
			s, err := scalarFromJSON(v)
			if err != nil {
				return models.Element[string]{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = s
		}
		return models.NewArrayOf(items), nil
	}

	l := models.NewNestableList[string](len(arr))
	if err := a.fill(l, arr); err != nil {
		return models.Element[string]{}, err
	}
	return models.NewCollection[string](l)
}

func (a *Analyzer) fromArrayRoot(arr models.JSONArray) (models.Collection[string], error) {
	c, err := models.NewRegistry[string]().New(a.config.RootCollectionType().String())
	if err != nil {
		return nil, err
	}
	if err := a.fill(c, arr); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *Analyzer) fill(c models.Collection[string], arr models.JSONArray) error {
	d, isDict := c.(*models.NestableDictionary[string])
	for i, v := range arr {
		e, err := a.fromNode(v)
		if err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
		if isDict {
			err = d.AddKeyed(strconv.Itoa(i), e)
		} else {
			err = c.Add(e)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isFlat(arr models.JSONArray) bool {
	for _, v := range arr {
		switch v.(type) {
		case models.JSONObject, models.JSONArray:
			return false
		}
	}
	return true
}

func scalarFromJSON(v models.JSONValue) (models.Scalar[string], error) {
	switch t := v.(type) {
	case nil:
		return models.Null[string](), nil
	case string:
		return models.Of(t), nil
	case json.Number:
		return models.Of(t.String()), nil
	case bool:
		return models.Of(strconv.FormatBool(t)), nil
	default:
		return models.Scalar[string]{}, errors.NewConversionError(fmt.Sprintf("unsupported JSON value of type %T", v), nil)
	}
}

// ToJSON converts a collection back to JSON values. Dictionaries become
// objects; when a key repeats, the first entry wins, matching Lookup.
func (a *Analyzer) ToJSON(c models.Collection[string]) (models.JSONValue, error) {
	if models.IsNilCollection(c) {
		return nil, errors.NewInvalidArgumentError("cannot convert a nil collection", errors.ErrNilCollection)
	}

	if d, ok := c.(*models.NestableDictionary[string]); ok {
		obj := make(models.JSONObject, d.Len())
		for key, e := range d.Keyed() {
			if _, seen := obj[key]; seen {
				continue
			}
			v, err := a.elementToJSON(e)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj[key] = v
		}
		return obj, nil
	}

	arr := make(models.JSONArray, 0, c.Len())
	for i, e := range c.All() {
		v, err := a.elementToJSON(e)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func (a *Analyzer) elementToJSON(e models.Element[string]) (models.JSONValue, error) {
	switch e.Kind() {
	case models.KindScalar:
		s, _ := e.Scalar()
		return a.scalarToJSON(s), nil
	case models.KindArray:
		items, _ := e.Array()
		if items == nil {
			return nil, nil
		}
		arr := make(models.JSONArray, len(items))
		for i, s := range items {
			arr[i] = a.scalarToJSON(s)
		}
		return arr, nil
	default:
		c, _ := e.Collection()
		return a.ToJSON(c)
	}
}

func (a *Analyzer) scalarToJSON(s models.Scalar[string]) models.JSONValue {
	switch s.State() {
	case models.ScalarNull:
		return nil
	case models.ScalarHardNull:
		if a.config.Scalars.HardNullAsNull {
			return nil
		}
		return grammar.HardNullLiteral
	}
	v, _ := s.Value()
	if !a.config.Scalars.InferTypes {
		return v
	}
	if v == "true" || v == "false" {
		return v == "true"
	}
	if jsonNumberRegex.MatchString(v) {
		return json.Number(v)
	}
	return v
}
