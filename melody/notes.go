package melody

// Equal temperament, rounded to whole hertz, C4 to B7. Octave 8 is octave 7
// doubled.
var octaves = [4][12]float64{
	{262, 277, 294, 311, 330, 349, 370, 392, 415, 440, 466, 494},
	{523, 554, 587, 622, 659, 698, 740, 784, 831, 880, 932, 988},
	{1047, 1109, 1175, 1245, 1319, 1397, 1480, 1568, 1661, 1760, 1865, 1976},
	{2093, 2217, 2349, 2489, 2637, 2794, 2960, 3136, 3322, 3520, 3729, 3951},
}

// A few reference pitches used outside of tunes.
const (
	A1 = 55
	C6 = 1047
)

// Frequency returns the pitch of note (1 = C .. 12 = B, 13 = B sharp) in
// octave. Rests and notes outside octaves 4..8 return 0.
func Frequency(octave, note int) float64 {
	if note <= 0 {
		return 0
	}
	i := (octave-4)*12 + note - 1
	if i < 0 || i >= 5*12 {
		return 0
	}
	if i >= 4*12 {
		return 2 * octaves[3][i-4*12]
	}
	return octaves[i/12][i%12]
}
