// Package templates holds the prompt template catalog: a built-in set of
// ready-to-run production prompts plus an optional user catalog loaded from
// a YAML file.
package templates

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Template is one ready-made production prompt.
type Template struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Title    string `yaml:"title" json:"title"`
	Prompt   string `yaml:"prompt" json:"prompt"`
}

// builtin is the default catalog shipped with the studio.
var builtin = []Template{
	{ID: "st-1", Category: "Startup", Title: "Mumbai Founder", Prompt: "Mumbai café, young Indian woman typing on laptop, cinematic warm lighting, smooth zoom-in – Voice: Female Indian English – “Turn your ideas into reality today!”"},
	{ID: "st-2", Category: "Startup", Title: "Bangalore Pitch", Prompt: "Bangalore co-working space, man presenting to team, bright cinematic light, tracking shot – Voice: Male – “Innovation starts with teamwork!”"},
	{ID: "st-3", Category: "Startup", Title: "Delhi Freelancer", Prompt: "Delhi home office, freelancer brainstorming, soft morning light, close-up – Voice: Female – “Your passion drives success!”"},
	{ID: "st-4", Category: "Startup", Title: "Investor Pitch", Prompt: "Investor pitch room, entrepreneur presenting idea, cinematic wide-angle – Voice: Female – “Your vision can change the world!”"},
	{ID: "tr-1", Category: "Travel", Title: "Jaipur Streets", Prompt: "Jaipur Pink City, woman photographing streets, golden hour cinematic light – Voice: Female – “Discover the colors of Rajasthan!”"},
	{ID: "tr-2", Category: "Travel", Title: "Kerala Waters", Prompt: "Kerala houseboat, family enjoying river, sunrise cinematic lighting – Voice: Male – “Relax in God's own country.”"},
	{ID: "tr-3", Category: "Travel", Title: "Goa Sunset", Prompt: "Goa beach sunset, friends playing volleyball, warm cinematic glow, drone tracking – Voice: Female – “Sunsets and laughter on the beach!”"},
	{ID: "tr-4", Category: "Travel", Title: "Varanasi Ghats", Prompt: "Varanasi ghats sunrise, pilgrims on river boats, cinematic drone shot – Voice: Female – “Witness spiritual serenity!”"},
	{ID: "cult-1", Category: "Culture", Title: "Diwali Glow", Prompt: "Diwali, children lighting diyas, warm cinematic glow, slow pan – Voice: Female – “Light up your life with joy!”"},
	{ID: "cult-2", Category: "Culture", Title: "Pani Puri Vlog", Prompt: "Mumbai street food, man tasting pani puri, vibrant close-up, motion blur – Voice: Male – “Taste the city's vibrant flavors!”"},
}

// Catalog is a read-only template collection.
type Catalog struct {
	templates []Template
}

// Builtin returns the default catalog.
func Builtin() *Catalog {
	return &Catalog{templates: builtin}
}

// Load reads a YAML catalog file and merges it after the built-in set.
// A missing file yields the built-in catalog alone.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug().Str("path", path).Msg("No template catalog file, using builtins")
		return Builtin(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}

	var extra struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	for i, t := range extra.Templates {
		if t.ID == "" || t.Prompt == "" {
			return nil, fmt.Errorf("template %d in %s is missing id or prompt", i, path)
		}
	}

	log.Info().Int("count", len(extra.Templates)).Str("path", path).Msg("Loaded user template catalog")
	return &Catalog{templates: append(append([]Template(nil), builtin...), extra.Templates...)}, nil
}

// All returns every template.
func (c *Catalog) All() []Template {
	return append([]Template(nil), c.templates...)
}

// ByCategory returns the templates in the given category.
func (c *Catalog) ByCategory(category string) []Template {
	var out []Template
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the template with the given id.
func (c *Catalog) Find(id string) (Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Categories returns the distinct category names in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
