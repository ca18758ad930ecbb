package page

// Background is the fixed configuration handed to the animated background
// widget when the page is rendered. Nothing reads it back afterwards.
type Background struct {
	Colors         []string `json:"glitchColors"`
	Speed          int      `json:"glitchSpeed"`
	CenterVignette bool     `json:"centerVignette"`
	OuterVignette  bool     `json:"outerVignette"`
	Smooth         bool     `json:"smooth"`
}

func DefaultBackground() Background {
	return Background{
		Colors:         []string{"#2b4539", "#61dca3", "#61b3dc"},
		Speed:          50,
		CenterVignette: false,
		OuterVignette:  true,
		Smooth:         true,
	}
}
