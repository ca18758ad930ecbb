// Package content holds the static biographical content of the portfolio
// page and the markdown rendering applied to it before templating.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/letsjoyn/portfolio/internal/section"
)

type Link struct {
	Label     string `yaml:"label"`
	URL       string `yaml:"url"`
	Icon      string `yaml:"icon,omitempty"`
	Highlight bool   `yaml:"highlight,omitempty"`
}

type Profile struct {
	Name         string `yaml:"name"`
	Avatar       string `yaml:"avatar"`
	Tagline      string `yaml:"tagline"`
	Bio          string `yaml:"bio"`
	Availability string `yaml:"availability"`
	LinksNote    string `yaml:"linksNote"`
	Links        []Link `yaml:"links"`
	Socials      []Link `yaml:"socials"`

	BioHTML          template.HTML `yaml:"-"`
	AvailabilityHTML template.HTML `yaml:"-"`
}

type Experience struct {
	Role        string `yaml:"role"`
	Company     string `yaml:"company"`
	Period      string `yaml:"period"`
	Description string `yaml:"description"`

	DescriptionHTML template.HTML `yaml:"-"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Tech        []string `yaml:"tech"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url,omitempty"`

	DescriptionHTML template.HTML `yaml:"-"`
}

type Achievement struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

type Volunteering struct {
	Role         string `yaml:"role"`
	Organization string `yaml:"organization"`
	Icon         string `yaml:"icon,omitempty"`
	Period       string `yaml:"period"`
	Description  string `yaml:"description"`
	Link         *Link  `yaml:"link,omitempty"`

	DescriptionHTML template.HTML `yaml:"-"`
}

type Education struct {
	Degree  string `yaml:"degree"`
	School  string `yaml:"school"`
	Period  string `yaml:"period"`
	Details string `yaml:"details"`
}

type Footer struct {
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
}

// Portfolio is everything rendered inside the content panel.
type Portfolio struct {
	Profile      Profile        `yaml:"profile"`
	Experience   []Experience   `yaml:"experience"`
	Projects     []Project      `yaml:"projects"`
	Achievements []Achievement  `yaml:"achievements"`
	Volunteering []Volunteering `yaml:"volunteering"`
	Education    []Education    `yaml:"education"`
	Footer       Footer         `yaml:"footer"`

	// Titles maps a section to its heading. Missing entries use the button label.
	Titles map[section.ID]string `yaml:"titles"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// Load reads a YAML portfolio from path. An empty path returns fallback.
// The result has its markdown fields rendered.
func Load(path string, fallback Portfolio) (*Portfolio, error) {
	p := fallback
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading content file %s: %w", path, err)
		}
		p = Portfolio{}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("error unmarshalling content file %s: %w", path, err)
		}
	}

	if err := p.render(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Sections lists the sections that have content, in page order. Only these
// get an anchor in the rendered document.
func (p *Portfolio) Sections() []section.ID {
	present := map[section.ID]bool{
		section.About:        p.Profile.Name != "",
		section.Experience:   len(p.Experience) > 0,
		section.Projects:     len(p.Projects) > 0,
		section.Achievements: len(p.Achievements) > 0,
		section.Volunteering: len(p.Volunteering) > 0,
		section.Education:    len(p.Education) > 0,
	}

	var out []section.ID
	for _, id := range section.All() {
		if present[id] {
			out = append(out, id)
		}
	}
	return out
}

// Title returns the heading shown above a section.
func (p *Portfolio) Title(id section.ID) string {
	if t, ok := p.Titles[id]; ok && t != "" {
		return t
	}
	return id.Label()
}

func (p *Portfolio) render() error {
	var err error
	if p.Profile.BioHTML, err = renderMarkdown(p.Profile.Bio); err != nil {
		return fmt.Errorf("profile bio: %w", err)
	}
	if p.Profile.AvailabilityHTML, err = renderMarkdown(p.Profile.Availability); err != nil {
		return fmt.Errorf("profile availability: %w", err)
	}

	// Copy slices so rendering never writes into the fallback's backing arrays.
	p.Experience = append([]Experience(nil), p.Experience...)
	for i := range p.Experience {
		if p.Experience[i].DescriptionHTML, err = renderMarkdown(p.Experience[i].Description); err != nil {
			return fmt.Errorf("experience %d: %w", i, err)
		}
	}
	p.Projects = append([]Project(nil), p.Projects...)
	for i := range p.Projects {
		if p.Projects[i].DescriptionHTML, err = renderMarkdown(p.Projects[i].Description); err != nil {
			return fmt.Errorf("project %d: %w", i, err)
		}
	}
	p.Volunteering = append([]Volunteering(nil), p.Volunteering...)
	for i := range p.Volunteering {
		if p.Volunteering[i].DescriptionHTML, err = renderMarkdown(p.Volunteering[i].Description); err != nil {
			return fmt.Errorf("volunteering %d: %w", i, err)
		}
	}
	return nil
}

func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
