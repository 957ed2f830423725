package core

// Color is a terminal colour understood by lipgloss: an ANSI index ("2",
// "245") or a hex triplet ("#196dbd"). The empty string is the terminal
// default.
type Color string

// Named colours used by the HUD and panels.
const (
	ColorDefault Color = ""
	ColorRed     Color = "1"
	ColorGreen   Color = "2"
	ColorYellow  Color = "3"
	ColorBlue    Color = "4"
	ColorMagenta Color = "5"
	ColorCyan    Color = "6"
	ColorWhite   Color = "7"
	ColorBright  Color = "15"
	ColorOrange  Color = "208"
	ColorGray    Color = "245"
)
