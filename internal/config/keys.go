package config

// Binding is one key press worth of change to a control.
type Binding struct {
	Control Control
	Dir     int
}

// Character bindings shared by the window and terminal front ends. Arrow keys
// (count and gravity) are bound by each front end directly.
var runeBindings = map[rune]Binding{
	'[':  {BlackHoleRadius, -1},
	']':  {BlackHoleRadius, 1},
	'-':  {DiskRadius, -1},
	'=':  {DiskRadius, 1},
	',':  {ParticleSize, -1},
	'.':  {ParticleSize, 1},
	';':  {TrailOpacity, -1},
	'\'': {TrailOpacity, 1},
	'n':  {ParticleCount, -1},
	'N':  {ParticleCount, 1},
	'g':  {GravityStrength, -1},
	'G':  {GravityStrength, 1},
}

// BindingFor returns the control step bound to r.
func BindingFor(r rune) (Binding, bool) {
	b, ok := runeBindings[r]
	return b, ok
}

// KeyHelp is a one-line summary of the bindings.
const KeyHelp = "up/down n/N count  left/right g/G gravity  [ ] hole  - = disk  , . size  ; ' trail  r reset  q quit"
