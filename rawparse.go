package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformedData is returned when a data blob is not valid JSON or holds values the
	// catalog cannot accept (negative amounts, duplicate item ids).
	ErrMalformedData = errors.New("malformed data")
	// ErrUnknownItem is returned when a recipe, starter, area or scenario names an item
	// id the catalog does not define.
	ErrUnknownItem = errors.New("unknown item")
	// ErrUnknownKind is returned for an item kind outside the known set.
	ErrUnknownKind = errors.New("unknown item kind")
	// ErrUnknownCategory is returned for a recipe category outside the known set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownArea is returned when a scenario names an area the catalog lacks.
	ErrUnknownArea = errors.New("unknown area")
)

// LoadCatalogFile reads and parses a catalog data file.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cat, err := LoadCatalog(string(raw))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

// LoadCatalog parses the items, starters, areas and recipes tables of a data blob.
func LoadCatalog(dataJSON string) (*Catalog, error) {
	if !gjson.Valid(dataJSON) {
		return nil, ErrMalformedData
	}

	items, refs, err := parseItems(dataJSON)
	if err != nil {
		return nil, err
	}
	resolve := func(where string, ref int) (ItemID, error) {
		id, ok := refs[ref]
		if !ok {
			return 0, fmt.Errorf("%s: %w: %d", where, ErrUnknownItem, ref)
		}
		return id, nil
	}

	starters := make(map[ItemID]ItemID)
	var firstErr error
	gjson.Get(dataJSON, "starters").ForEach(func(_, v gjson.Result) bool {
		s, err := resolve("starter", int(v.Get("starter").Int()))
		if err != nil {
			firstErr = err
			return false
		}
		p, err := resolve("starter produce", int(v.Get("produce").Int()))
		if err != nil {
			firstErr = err
			return false
		}
		starters[s] = p
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	var areas []Area
	gjson.Get(dataJSON, "areas").ForEach(func(_, v gjson.Result) bool {
		a := Area{Terrain: v.Get("terrain").String()}
		v.Get("resources").ForEach(func(_, r gjson.Result) bool {
			id, err := resolve("area "+a.Terrain, int(r.Int()))
			if err != nil {
				firstErr = err
				return false
			}
			a.Resources = append(a.Resources, id)
			return true
		})
		if firstErr != nil {
			return false
		}
		if rare := v.Get("rare"); rare.Exists() {
			id, err := resolve("area "+a.Terrain, int(rare.Int()))
			if err != nil {
				firstErr = err
				return false
			}
			a.Rare, a.HasRare = id, true
		}
		areas = append(areas, a)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	var recipes []Recipe
	gjson.Get(dataJSON, "recipes").ForEach(func(_, v gjson.Result) bool {
		r, err := parseRecipe(v, resolve)
		if err != nil {
			firstErr = err
			return false
		}
		recipes = append(recipes, r)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	cat := NewCatalog(items, recipes, starters)
	cat.Areas = areas
	return cat, nil
}

func parseItems(dataJSON string) ([]Item, map[int]ItemID, error) {
	var items []Item
	refs := make(map[int]ItemID)
	var firstErr error
	gjson.Get(dataJSON, "items").ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		kind, ok := parseItemKind(v.Get("kind").String())
		if !ok {
			firstErr = fmt.Errorf("item %q: %w: %q", name, ErrUnknownKind, v.Get("kind").String())
			return false
		}
		ref := int(v.Get("id").Int())
		if _, dup := refs[ref]; dup {
			firstErr = fmt.Errorf("item %q: %w: duplicate id %d", name, ErrMalformedData, ref)
			return false
		}
		weekly := int(v.Get("weekly").Int())
		if weekly < 0 {
			firstErr = fmt.Errorf("item %q: %w: negative weekly %d", name, ErrMalformedData, weekly)
			return false
		}
		refs[ref] = ItemID(len(items))
		items = append(items, Item{
			Ref:    ref,
			Name:   name,
			Kind:   kind,
			Weekly: weekly,
		})
		return true
	})
	return items, refs, firstErr
}

func parseRecipe(v gjson.Result, resolve func(string, int) (ItemID, error)) (Recipe, error) {
	r := Recipe{
		Name:     v.Get("name").String(),
		Duration: int(v.Get("time").Int()),
		Value:    int(v.Get("value").Int()),
	}
	if r.Duration < 0 || r.Value < 0 {
		return r, fmt.Errorf("recipe %q: %w: negative time or value", r.Name, ErrMalformedData)
	}
	var ok bool
	if r.Category1, ok = parseCategory(v.Get("category1").String()); !ok {
		return r, fmt.Errorf("recipe %q: %w: %q", r.Name, ErrUnknownCategory, v.Get("category1").String())
	}
	if r.Category2, ok = parseCategory(v.Get("category2").String()); !ok {
		return r, fmt.Errorf("recipe %q: %w: %q", r.Name, ErrUnknownCategory, v.Get("category2").String())
	}
	var err error
	v.Get("ingredients").ForEach(func(_, ing gjson.Result) bool {
		var id ItemID
		id, err = resolve("recipe "+r.Name, int(ing.Get("item").Int()))
		if err != nil {
			return false
		}
		qty := int(ing.Get("quantity").Int())
		if qty < 0 {
			err = fmt.Errorf("recipe %q: %w: negative quantity %d", r.Name, ErrMalformedData, qty)
			return false
		}
		r.Ingredients = append(r.Ingredients, Ingredient{Item: id, Quantity: qty})
		return true
	})
	return r, err
}

// ParseScenario reads a scenario blob: chosen areas, leavings, planted starters and any
// extra materials, all keyed by the data's item ids.
func ParseScenario(scenarioJSON string) (Scenario, error) {
	if !gjson.Valid(scenarioJSON) {
		return Scenario{}, ErrMalformedData
	}
	sc := Scenario{
		Leavings:  int(gjson.Get(scenarioJSON, "leavings").Int()),
		Planted:   map[int]int{},
		Materials: map[int]int{},
	}
	gjson.Get(scenarioJSON, "areas").ForEach(func(_, v gjson.Result) bool {
		sc.Areas = append(sc.Areas, v.String())
		return true
	})
	var err error
	readCounts := func(path string, into map[int]int) {
		gjson.Get(scenarioJSON, path).ForEach(func(k, v gjson.Result) bool {
			var ref int
			ref, err = strconv.Atoi(k.String())
			if err != nil {
				err = fmt.Errorf("%s key %q: %w", path, k.String(), ErrMalformedData)
				return false
			}
			into[ref] += int(v.Int())
			return true
		})
	}
	readCounts("planted", sc.Planted)
	if err != nil {
		return Scenario{}, err
	}
	readCounts("materials", sc.Materials)
	if err != nil {
		return Scenario{}, err
	}
	return sc, nil
}
