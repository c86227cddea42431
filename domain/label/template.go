package label

import "sort"

// TextSpot places one text overlay on a label
type TextSpot struct {
	X    int
	Y    int
	Size float64
}

// Template describes pixel placement for one physical label size. Templates
// are immutable configuration, defined once at build time.
type Template struct {
	SizeKey    string
	Background string
	Width      int
	Height     int
	QRX        int
	QRY        int
	QRSize     int
	Title      TextSpot
	Gramasi    TextSpot
	Fineness   TextSpot
	Code       TextSpot
	Serial     TextSpot
}

// templates maps a gramasi size key to its layout. Coordinates follow the
// printed bullion label artwork for each weight denomination.
var templates = map[string]Template{
	"1g": {
		SizeKey:    "1g",
		Background: "bullion_1g.png",
		Width:      400,
		Height:     560,
		QRX:        130,
		QRY:        290,
		QRSize:     140,
		Title:      TextSpot{X: 140, Y: 70, Size: 22},
		Gramasi:    TextSpot{X: 170, Y: 110, Size: 18},
		Fineness:   TextSpot{X: 160, Y: 145, Size: 16},
		Code:       TextSpot{X: 140, Y: 450, Size: 18},
		Serial:     TextSpot{X: 150, Y: 490, Size: 14},
	},
	"5g": {
		SizeKey:    "5g",
		Background: "bullion_5g.png",
		Width:      480,
		Height:     640,
		QRX:        155,
		QRY:        320,
		QRSize:     170,
		Title:      TextSpot{X: 170, Y: 80, Size: 26},
		Gramasi:    TextSpot{X: 210, Y: 125, Size: 20},
		Fineness:   TextSpot{X: 195, Y: 165, Size: 18},
		Code:       TextSpot{X: 170, Y: 530, Size: 20},
		Serial:     TextSpot{X: 185, Y: 575, Size: 15},
	},
	"10g": {
		SizeKey:    "10g",
		Background: "bullion_10g.png",
		Width:      560,
		Height:     720,
		QRX:        180,
		QRY:        350,
		QRSize:     200,
		Title:      TextSpot{X: 200, Y: 90, Size: 30},
		Gramasi:    TextSpot{X: 245, Y: 140, Size: 24},
		Fineness:   TextSpot{X: 230, Y: 185, Size: 20},
		Code:       TextSpot{X: 200, Y: 600, Size: 22},
		Serial:     TextSpot{X: 220, Y: 650, Size: 16},
	},
	"25g": {
		SizeKey:    "25g",
		Background: "bullion_25g.png",
		Width:      640,
		Height:     800,
		QRX:        205,
		QRY:        390,
		QRSize:     230,
		Title:      TextSpot{X: 230, Y: 100, Size: 34},
		Gramasi:    TextSpot{X: 280, Y: 155, Size: 26},
		Fineness:   TextSpot{X: 265, Y: 205, Size: 22},
		Code:       TextSpot{X: 230, Y: 670, Size: 24},
		Serial:     TextSpot{X: 255, Y: 725, Size: 18},
	},
	"50g": {
		SizeKey:    "50g",
		Background: "bullion_50g.png",
		Width:      720,
		Height:     880,
		QRX:        230,
		QRY:        430,
		QRSize:     260,
		Title:      TextSpot{X: 260, Y: 110, Size: 38},
		Gramasi:    TextSpot{X: 315, Y: 170, Size: 28},
		Fineness:   TextSpot{X: 300, Y: 225, Size: 24},
		Code:       TextSpot{X: 260, Y: 740, Size: 26},
		Serial:     TextSpot{X: 290, Y: 800, Size: 20},
	},
	"100g": {
		SizeKey:    "100g",
		Background: "bullion_100g.png",
		Width:      800,
		Height:     960,
		QRX:        255,
		QRY:        470,
		QRSize:     290,
		Title:      TextSpot{X: 290, Y: 120, Size: 42},
		Gramasi:    TextSpot{X: 345, Y: 185, Size: 30},
		Fineness:   TextSpot{X: 330, Y: 245, Size: 26},
		Code:       TextSpot{X: 290, Y: 810, Size: 28},
		Serial:     TextSpot{X: 320, Y: 875, Size: 22},
	},
}

// TemplateFor looks up the template for a gramasi size key
func TemplateFor(sizeKey string) (Template, bool) {
	tmpl, ok := templates[sizeKey]
	return tmpl, ok
}

// SizeKeys lists the registered size keys in stable order
func SizeKeys() []string {
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
