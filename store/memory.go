package store

// Memory is a map-backed store for tests and for running without a
// configured database. Not durable, never fails.
type Memory struct {
	m map[string]float64
}

func NewMemory() *Memory {
	return &Memory{m: map[string]float64{}}
}

func (s *Memory) GetFloat(key string) (float64, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) PutFloat(key string, val float64) error {
	s.m[key] = val
	return nil
}

func (s *Memory) Close() error { return nil }

// Len reports how many keys have been written, for test assertions.
func (s *Memory) Len() int { return len(s.m) }
