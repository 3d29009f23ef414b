package shuffle

// seeded is a string-hash + linear congruential generator.
type seeded struct {
	state uint32
}

func newSeeded(seed string) *seeded {
	var h uint32
	for _, r := range seed {
		h = h*31 + uint32(r)
	}
	return &seeded{state: h}
}

func (s *seeded) next() uint32 {
	s.state = s.state*1664525 + 1013904223
	return s.state
}

// Intn maps the next 32-bit state onto [0, n).
func (s *seeded) Intn(n int) int {
	return int(uint64(s.next()) * uint64(n) >> 32)
}
