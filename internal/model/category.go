package model

import "strings"

// Category is one top-level equipment category with its subcategories.
type Category struct {
	Slug          string   `json:"-"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// Taxonomy is the payload served by the categories endpoint.
type Taxonomy struct {
	Categories       map[string]Category `json:"categories"`
	FlatCategories   []string            `json:"flat_categories"`
	ConditionOptions []string            `json:"condition_options"`
	StatusOptions    []string            `json:"status_options"`
}

// Category display names.
const (
	CategoryCameras     = "Cameras"
	CategoryLenses      = "Lenses"
	CategoryLighting    = "Lighting"
	CategoryAudio       = "Audio"
	CategorySupport     = "Support & Rigs"
	CategoryAccessories = "Accessories"
)

var categories = []Category{
	{Slug: "cameras", Name: CategoryCameras, Subcategories: []string{
		"DSLR Cameras", "Mirrorless Cameras", "Cinema Cameras",
		"Action Cameras", "Film Cameras", "Medium Format Cameras",
	}},
	{Slug: "lenses", Name: CategoryLenses, Subcategories: []string{
		"Prime Lenses", "Zoom Lenses", "Wide Angle Lenses",
		"Telephoto Lenses", "Macro Lenses", "Cinema Lenses",
	}},
	{Slug: "lighting", Name: CategoryLighting, Subcategories: []string{
		"LED Panels", "Softboxes", "Key Lights",
		"RGB Lights", "Studio Strobes", "Continuous Lights",
	}},
	{Slug: "audio", Name: CategoryAudio, Subcategories: []string{
		"Microphones", "Audio Recorders", "Wireless Systems",
		"Boom Poles", "Audio Mixers", "Headphones",
	}},
	{Slug: "support", Name: CategorySupport, Subcategories: []string{
		"Tripods", "Monopods", "Gimbals",
		"Sliders", "Shoulder Rigs", "Stabilizers",
	}},
	{Slug: "accessories", Name: CategoryAccessories, Subcategories: []string{
		"Memory Cards", "Batteries", "Chargers",
		"Filters", "Cables", "Cases & Bags",
	}},
}

var (
	conditionOptions = []string{ConditionNew, ConditionGood, ConditionFair, ConditionDamaged}
	statusOptions    = []string{StatusAvailable, StatusBooked, StatusMaintenance, StatusRetired}
)

// equipmentCategories maps an extracted equipment type to a category name.
var equipmentCategories = map[string]string{
	"camera":      CategoryCameras,
	"cameras":     CategoryCameras,
	"lens":        CategoryLenses,
	"lenses":      CategoryLenses,
	"lighting":    CategoryLighting,
	"light":       CategoryLighting,
	"audio":       CategoryAudio,
	"microphone":  CategoryAudio,
	"support":     CategorySupport,
	"tripod":      CategorySupport,
	"accessories": CategoryAccessories,
	"accessory":   CategoryAccessories,
}

// NewTaxonomy returns a fresh copy of the static category taxonomy.
func NewTaxonomy() Taxonomy {
	t := Taxonomy{
		Categories:       make(map[string]Category, len(categories)),
		FlatCategories:   make([]string, 0, len(categories)),
		ConditionOptions: append([]string(nil), conditionOptions...),
		StatusOptions:    append([]string(nil), statusOptions...),
	}
	for _, c := range categories {
		c.Subcategories = append([]string(nil), c.Subcategories...)
		t.Categories[c.Slug] = c
		t.FlatCategories = append(t.FlatCategories, c.Name)
	}
	return t
}

// CategoryForEquipmentType maps an equipment type to its category name,
// defaulting to Cameras.
func CategoryForEquipmentType(equipmentType string) string {
	if name, ok := equipmentCategories[strings.ToLower(strings.TrimSpace(equipmentType))]; ok {
		return name
	}
	return CategoryCameras
}

// ValidCondition reports whether c is a known item condition.
func ValidCondition(c string) bool {
	for _, v := range conditionOptions {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known item status.
func ValidStatus(s string) bool {
	for _, v := range statusOptions {
		if v == s {
			return true
		}
	}
	return false
}
