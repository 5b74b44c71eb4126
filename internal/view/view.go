package view

import "strings"

// View is one of the dashboard's display modes.
type View int

const (
	Home View = iota
	Visualize
	Explore
	ExploreFactor
	ImplicitDefinition
)

var names = [...]string{
	Home:               "Home",
	Visualize:          "Visualize",
	Explore:            "Explore",
	ExploreFactor:      "Explore Factor",
	ImplicitDefinition: "Implicit Definition",
}

var slugs = [...]string{
	Home:               "home",
	Visualize:          "visualize",
	Explore:            "explore",
	ExploreFactor:      "explore-factor",
	ImplicitDefinition: "implicit-definition",
}

// All returns every view in sidebar order.
func All() []View {
	return []View{Home, Visualize, Explore, ExploreFactor, ImplicitDefinition}
}

// Actions returns the views reachable from the Home action row.
func Actions() []View {
	return []View{Visualize, Explore, ExploreFactor, ImplicitDefinition}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v >= Home && v <= ImplicitDefinition
}

// String returns the display name. Unknown values read as Home.
func (v View) String() string {
	if !v.Valid() {
		return names[Home]
	}
	return names[v]
}

// Slug returns the URL-safe name.
func (v View) Slug() string {
	if !v.Valid() {
		return slugs[Home]
	}
	return slugs[v]
}

// Parse accepts a display name or slug, ignoring case and surrounding space.
// Anything unrecognized yields Home and false.
func Parse(s string) (View, bool) {
	s = strings.TrimSpace(s)
	for _, v := range All() {
		if strings.EqualFold(s, names[v]) || strings.EqualFold(s, slugs[v]) {
			return v, true
		}
	}
	// "Explore_Factor", "explorefactor" and friends
	squashed := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for _, v := range All() {
		if squashed == strings.ReplaceAll(slugs[v], "-", "") {
			return v, true
		}
	}
	return Home, false
}
