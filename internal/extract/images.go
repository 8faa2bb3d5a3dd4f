package extract

import "strings"

const unsplash = "https://images.unsplash.com/photo-"

func photo(id string) string {
	return unsplash + id + "?w=500"
}

type modelImages struct {
	key    string
	images []string
}

type brandImages struct {
	models   []modelImages
	fallback []string
}

var sampleImages = map[string]brandImages{
	"canon": {
		models: []modelImages{{"eos", []string{
			photo("1606983340126-99ab4feaa64a"),
			photo("1617005082133-7ff537b8ea44"),
			photo("1588456492923-ac77bb2dff29"),
		}}},
		fallback: []string{photo("1613121458007-f68a23cd6a3a"), photo("1582618735647-9ed0b5f2b4c7")},
	},
	"sony": {
		models:   []modelImages{{"a7", []string{photo("1609729088060-b24f2015c2a5"), photo("1622409430153-b8b8e5bb7f16")}}},
		fallback: []string{photo("1586953208448-b95a79798f07"), photo("1502444330042-d1a1ddf9bb5b")},
	},
	"nikon": {
		models:   []modelImages{{"z9", []string{photo("1606913084603-3e7702b01627"), photo("1604783009387-fe128f9c25e5")}}},
		fallback: []string{photo("1606983340479-c85c86b7d7e1")},
	},
}

var defaultImages = []string{photo("1606983340126-99ab4feaa64a"), photo("1617005082133-7ff537b8ea44")}

// SampleImages returns stock photos for a brand and model. A model matches
// when either its name or the table key contains the other. Known brands
// without a matching model get the brand's photos; everything else gets the
// generic set. The returned slice is a copy.
func SampleImages(brand, modelName string) []string {
	brand = strings.ToLower(strings.TrimSpace(brand))
	modelName = strings.ToLower(strings.TrimSpace(modelName))

	if brand != "" && modelName != "" {
		if b, ok := sampleImages[brand]; ok {
			for _, m := range b.models {
				if strings.Contains(modelName, m.key) || strings.Contains(m.key, modelName) {
					return clone(m.images)
				}
			}
			return clone(b.fallback)
		}
	}
	return clone(defaultImages)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
