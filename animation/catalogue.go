package animation

import "time"

// Entry is one of the happy animations the cube picks from.
type Entry struct {
	Name string
	// Timeout bounds how long it plays. Zero means until it finishes.
	Timeout time.Duration
	New     func(env Env) Animation
}

// Catalogue lists the happy animations by index.
var Catalogue = [...]Entry{
	{"twinkle", 2 * time.Second, func(env Env) Animation { return NewTwinkle(env, "") }},
	{"five lights", 0, func(env Env) Animation { return NewFiveLights(env, close5) }},
	{"pulse", 0, func(env Env) Animation { return NewPulse(env) }},
	{"beat indicator", 0, func(env Env) Animation { return NewBeatIndicator(env, misland) }},
	{"scan fade", time.Second, func(env Env) Animation { return NewScanFade(env) }},
	{"circle", 0, func(env Env) Animation { return NewCircle(env) }},
	{"triad", time.Second, func(env Env) Animation { return NewTwinkle(env, triad) }},
	{"tiny fanfare", 0, func(env Env) Animation { return NewTinyFanfare(env) }},
	{"scatman", 0, func(env Env) Animation { return NewScatman(env) }},
	{"triple", 0, func(env Env) Animation { return NewTriple(env) }},
	{"cobo", 0, func(env Env) Animation { return NewCobo(env) }},
	{"motd", 0, func(env Env) Animation { return NewMOTD(env) }},
	{"smt", 0, func(env Env) Animation { return NewSMT(env) }},
	{"tetris", 0, func(env Env) Animation { return NewTetris(env) }},
	{"intel", 0, func(env Env) Animation { return NewIntel(env) }},
	{"chirp", 0, func(env Env) Animation { return NewChirp(env) }},
	{"hcock", 0, func(env Env) Animation { return NewHCock(env) }},
}

// Lookup returns entry i, or the first entry if i is out of range.
func Lookup(i int) Entry {
	if i < 0 || i >= len(Catalogue) {
		return Catalogue[0]
	}
	return Catalogue[i]
}
