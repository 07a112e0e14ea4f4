// Package templates holds the closed registry of landing-page template
// variants. The presentation layer renders one of these skins per page;
// the backend only validates that a stored template id resolves to a
// registered variant, so an unknown id fails at read time instead of
// rendering a blank page.
package templates

import "github.com/MatiasOrellano/invitly-backend/internal/domain"

// Descriptor describes a registered template variant.
type Descriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// Sections the skin renders; the editor uses this to decide which
	// content blocks to offer.
	Sections []string `json:"sections"`
}

var baseSections = []string{"hero", "countdown", "gallery", "social", "wishlist", "rsvp", "footer"}

// registry is the closed set of template variants. Adding a skin means
// adding an entry here; lookups against ids outside this set fail.
var registry = map[string]Descriptor{
	"classic-ivory":    {ID: "classic-ivory", Name: "Classic Ivory", Category: "classic", Sections: baseSections},
	"classic-noir":     {ID: "classic-noir", Name: "Classic Noir", Category: "classic", Sections: baseSections},
	"botanical-fern":   {ID: "botanical-fern", Name: "Botanical Fern", Category: "botanical", Sections: baseSections},
	"botanical-rose":   {ID: "botanical-rose", Name: "Botanical Rose", Category: "botanical", Sections: baseSections},
	"modern-slate":     {ID: "modern-slate", Name: "Modern Slate", Category: "modern", Sections: baseSections},
	"modern-blush":     {ID: "modern-blush", Name: "Modern Blush", Category: "modern", Sections: baseSections},
	"rustic-linen":     {ID: "rustic-linen", Name: "Rustic Linen", Category: "rustic", Sections: baseSections},
	"rustic-terracota": {ID: "rustic-terracota", Name: "Rustic Terracota", Category: "rustic", Sections: baseSections},
	"minimal-sand":     {ID: "minimal-sand", Name: "Minimal Sand", Category: "minimal", Sections: baseSections},
	"minimal-sage":     {ID: "minimal-sage", Name: "Minimal Sage", Category: "minimal", Sections: baseSections},
}

// Lookup resolves a stored template id to its descriptor.
func Lookup(id string) (Descriptor, error) {
	d, ok := registry[id]
	if !ok {
		return Descriptor{}, domain.NewUnknownTemplateError(id)
	}
	return d, nil
}

// All returns every registered descriptor, for the editor's template picker.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	return out
}
