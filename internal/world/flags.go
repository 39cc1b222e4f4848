package world

// Flags is the persistent string→bool state set: story beats, doors
// unlocked, dialogue guards. Unset flags read as false.
type Flags struct {
	values map[string]bool
}

func NewFlags() *Flags {
	return &Flags{values: make(map[string]bool, 32)}
}

// Get returns the flag's value; unset flags are false.
func (f *Flags) Get(name string) bool {
	return f.values[name]
}

// Set assigns a flag.
func (f *Flags) Set(name string, value bool) {
	if name == "" {
		return
	}
	f.values[name] = value
}

// All returns a copy of every set flag. Used by snapshot capture.
func (f *Flags) All() map[string]bool {
	out := make(map[string]bool, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Replace swaps in a full flag set. Used by snapshot restore.
func (f *Flags) Replace(values map[string]bool) {
	f.values = make(map[string]bool, len(values))
	for k, v := range values {
		f.values[k] = v
	}
}
