package notes

// Pitch translates an abstract pitch value into display text.
type Pitch interface {
	Pitch() string
}

// ETPitch is a 12-tone equal tempered pitch identified by its MIDI value.
type ETPitch uint8

var etScale = [12]string{
	"c", "csharp", "d", "eflat", "e", "f",
	"fsharp", "g", "gsharp", "a", "bflat", "b",
}

func (p ETPitch) Pitch() string {
	return etScale[int(p)%12]
}
