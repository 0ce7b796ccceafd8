package record

// Key is an optional record key. A record whose structured content could
// not be parsed carries None; callers must check before using the value.
type Key struct {
	value string
	ok    bool
}

// Some returns a present key.
func Some(value string) Key {
	return Key{value: value, ok: true}
}

// None returns an absent key.
func None() Key {
	return Key{}
}

// Get returns the key value and whether it is present.
func (k Key) Get() (string, bool) {
	return k.value, k.ok
}

// IsSome reports whether the key is present.
func (k Key) IsSome() bool {
	return k.ok
}

// String returns the key value, or "<none>" when absent.
func (k Key) String() string {
	if !k.ok {
		return "<none>"
	}
	return k.value
}
