package domain

// BundleInfo is marketing metadata for a product handle. It lives in the
// repository, not in the remote catalog.
type BundleInfo struct {
	Handle            string
	DisplayName       string
	Subject           string
	AgeRange          string
	IncludesAppAccess bool
	MissionPackSlug   *string
	WhatsInside       []string
	IdealFor          []string
}

type MissionColor string

const (
	MissionPurple MissionColor = "purple"
	MissionGreen  MissionColor = "green"
	MissionOrange MissionColor = "orange"
	MissionBlue   MissionColor = "blue"
)

func (c MissionColor) Valid() bool {
	switch c {
	case MissionPurple, MissionGreen, MissionOrange, MissionBlue:
		return true
	}
	return false
}

// ColorClasses are the CSS tokens used to theme a mission.
type ColorClasses struct {
	Bg       string
	BgLight  string
	Text     string
	Border   string
	Gradient string
}

func (c MissionColor) Classes() ColorClasses {
	name := string(c)
	if !c.Valid() {
		name = string(MissionPurple)
	}
	return ColorClasses{
		Bg:       "bg-brand-" + name,
		BgLight:  "bg-brand-" + name + "-light",
		Text:     "text-brand-" + name,
		Border:   "border-brand-" + name + "/20",
		Gradient: "from-brand-" + name + "/10 via-white to-white",
	}
}

type Mission struct {
	Slug             string
	Label            string
	ShortLabel       string
	Tagline          string
	Color            MissionColor
	AgeRange         string
	Description      string // markdown
	WhatTheyPractice []string
	WhatParentsGet   []string
	IdealFor         []string
}

// CollectionPage maps a site route to a remote collection handle.
type CollectionPage struct {
	Route        string
	Handle       string
	Title        string
	Description  string
	HeroGradient string
}
