package main

// ItemID is the handle assigned to an item at catalog load time. It indexes Catalog.Items.
type ItemID int

// RecipeID indexes Catalog.Recipes.
type RecipeID int

type ItemKind int

const (
	KindMaterial ItemKind = iota
	KindRareMaterial
	KindProduce
	KindLeavings
	KindStarter
)

// ResourceClass decides how the ledger accounts for an item.
type ResourceClass int

const (
	// TrackedMaterial items are counted one by one in the ledger map.
	TrackedMaterial ResourceClass = iota
	// PooledLeaving items all draw from one leavings counter.
	PooledLeaving
	// PooledProduce items all draw from one produce counter.
	PooledProduce
	// Ignored items never limit a recipe (planting inputs).
	Ignored
)

// Class maps the catalog kind onto the ledger's accounting class.
func (k ItemKind) Class() ResourceClass {
	switch k {
	case KindLeavings:
		return PooledLeaving
	case KindProduce:
		return PooledProduce
	case KindStarter:
		return Ignored
	}
	return TrackedMaterial
}

func (k ItemKind) String() string {
	switch k {
	case KindMaterial:
		return "Material"
	case KindRareMaterial:
		return "RareMaterial"
	case KindProduce:
		return "Produce"
	case KindLeavings:
		return "Leavings"
	case KindStarter:
		return "Starter"
	}
	return "Unknown"
}

type Category int

const (
	CatNone Category = iota
	CatPreservedFood
	CatAttire
	CatFoodstuffs
	CatConfections
	CatSundries
	CatFurnishings
	CatArms
	CatConcoctions
	CatIngredients
	CatAccessories
	CatMetalworks
	CatWoodworks
	CatTextiles
	CatCreatureCreations
	CatMarineMerchandise
	CatUnburiedTreasures
)

var categoryNames = [...]string{
	CatNone:              "None",
	CatPreservedFood:     "PreservedFood",
	CatAttire:            "Attire",
	CatFoodstuffs:        "Foodstuffs",
	CatConfections:       "Confections",
	CatSundries:          "Sundries",
	CatFurnishings:       "Furnishings",
	CatArms:              "Arms",
	CatConcoctions:       "Concoctions",
	CatIngredients:       "Ingredients",
	CatAccessories:       "Accessories",
	CatMetalworks:        "Metalworks",
	CatWoodworks:         "Woodworks",
	CatTextiles:          "Textiles",
	CatCreatureCreations: "CreatureCreations",
	CatMarineMerchandise: "MarineMerchandise",
	CatUnburiedTreasures: "UnburiedTreasures",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

func parseItemKind(s string) (ItemKind, bool) {
	switch s {
	case "Material":
		return KindMaterial, true
	case "RareMaterial", "Rare":
		return KindRareMaterial, true
	case "Produce":
		return KindProduce, true
	case "Leavings":
		return KindLeavings, true
	case "Starter", "Seed":
		return KindStarter, true
	}
	return KindMaterial, false
}

func parseCategory(s string) (Category, bool) {
	switch s {
	case "", "None":
		return CatNone, true
	case "PreservedFood", "Preserved Food":
		return CatPreservedFood, true
	case "Attire":
		return CatAttire, true
	case "Foodstuffs":
		return CatFoodstuffs, true
	case "Confections":
		return CatConfections, true
	case "Sundries":
		return CatSundries, true
	case "Furnishings":
		return CatFurnishings, true
	case "Arms":
		return CatArms, true
	case "Concoctions":
		return CatConcoctions, true
	case "Ingredients":
		return CatIngredients, true
	case "Accessories":
		return CatAccessories, true
	case "Metalworks":
		return CatMetalworks, true
	case "Woodworks":
		return CatWoodworks, true
	case "Textiles":
		return CatTextiles, true
	case "CreatureCreations", "Creature Creations":
		return CatCreatureCreations, true
	case "MarineMerchandise", "Marine Merchandise":
		return CatMarineMerchandise, true
	case "UnburiedTreasures", "Unburied Treasures":
		return CatUnburiedTreasures, true
	}
	return CatNone, false
}

// ── Catalog records ─────────────────────────────────────────────────

// Item is one gatherable, grown or pooled resource.
type Item struct {
	ID     ItemID
	Ref    int // id used by the source data
	Name   string
	Kind   ItemKind
	Class  ResourceClass
	Weekly int // amount gathered per week without expeditions
}

// Ingredient is one (item, quantity) requirement of a recipe.
type Ingredient struct {
	Item     ItemID
	Quantity int
}

// Recipe is a workshop handicraft.
type Recipe struct {
	ID          RecipeID
	Name        string
	Duration    int // hours
	Value       int
	Category1   Category
	Category2   Category
	Ingredients []Ingredient

	// filled by Catalog indexing
	leavingsNeed int
	produceNeed  int
	tracked      []Ingredient // tracked requirements, one entry per item
}

// LeavingsNeed returns the recipe's total pooled-leavings requirement.
func (r *Recipe) LeavingsNeed() int { return r.leavingsNeed }

// ProduceNeed returns the recipe's total pooled-produce requirement.
func (r *Recipe) ProduceNeed() int { return r.produceNeed }

// Area is an expedition destination: its normal resources and one rare resource.
type Area struct {
	Terrain   string
	Resources []ItemID
	Rare      ItemID
	HasRare   bool
}
