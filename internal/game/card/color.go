package card

// Color is a 5-bit color identity.
type Color uint8

const (
	colorWhite Color = 1 << iota
	colorBlue
	colorBlack
	colorRed
	colorGreen
)

func Colorless() Color { return 0 }
func White() Color     { return colorWhite }
func Blue() Color      { return colorBlue }
func Black() Color     { return colorBlack }
func Red() Color       { return colorRed }
func Green() Color     { return colorGreen }

func Selesnya() Color { return Green().And(White()) }
func Golgari() Color  { return Black().And(Green()) }
func Izzet() Color    { return Red().And(Blue()) }
func Rakdos() Color   { return Black().And(Red()) }

// And combines two color identities.
func (c Color) And(other Color) Color {
	return c | other
}

func (c Color) IsWhite() bool     { return c&colorWhite != 0 }
func (c Color) IsBlue() bool      { return c&colorBlue != 0 }
func (c Color) IsBlack() bool     { return c&colorBlack != 0 }
func (c Color) IsRed() bool       { return c&colorRed != 0 }
func (c Color) IsGreen() bool     { return c&colorGreen != 0 }
func (c Color) IsColorless() bool { return c == 0 }

func (c Color) String() string {
	if c.IsColorless() {
		return "C"
	}
	s := ""
	if c.IsWhite() {
		s += "W"
	}
	if c.IsBlue() {
		s += "U"
	}
	if c.IsBlack() {
		s += "B"
	}
	if c.IsRed() {
		s += "R"
	}
	if c.IsGreen() {
		s += "G"
	}
	return s
}
