package section

import (
	"errors"
	"strings"
)

// ID names one content section of the page. The set is closed.
type ID string

const (
	About        ID = "about"
	Experience   ID = "experience"
	Projects     ID = "projects"
	Achievements ID = "achievements"
	Volunteering ID = "volunteering"
	Education    ID = "education"
)

// Default is the active section before any navigation happens.
const Default = About

var ErrUnknownSection = errors.New("unknown section")

var order = []ID{About, Experience, Projects, Achievements, Volunteering, Education}

var labels = map[ID]string{
	About:        "About",
	Experience:   "Experience",
	Projects:     "Projects",
	Achievements: "Achievements",
	Volunteering: "Volunteering",
	Education:    "Education",
}

// All returns the six sections in page order.
func All() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// Parse maps a label or identifier onto a section, ignoring case.
func Parse(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if !id.Valid() {
		return "", ErrUnknownSection
	}
	return id, nil
}

func (id ID) Valid() bool {
	_, ok := labels[id]
	return ok
}

// Label is the text shown on the navigation button.
func (id ID) Label() string {
	return labels[id]
}

func (id ID) String() string {
	return string(id)
}
