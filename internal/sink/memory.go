package sink

import "sync"

// MemorySink keeps the table in memory. It is used in tests and when
// write-through persistence is disabled.
type MemorySink struct {
	mu     sync.Mutex
	name   string
	table  *Table
	writes int

	// ReadErr and WriteErr, when set, are returned by Read and Write.
	ReadErr  error
	WriteErr error
}

// NewMemorySink creates a sink holding a copy of t. A nil table reads as ErrSourceNotFound.
func NewMemorySink(name string, t *Table) *MemorySink {
	m := &MemorySink{name: name}
	if t != nil {
		m.table = t.Clone()
	}
	return m
}

func (m *MemorySink) Name() string { return m.name }

func (m *MemorySink) Read() (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if m.table == nil {
		return nil, ErrSourceNotFound
	}
	return m.table.Clone(), nil
}

func (m *MemorySink) Write(t *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.table = t.Clone()
	m.writes++
	return nil
}

// Writes returns how many successful writes the sink has seen.
func (m *MemorySink) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Table returns a copy of the last written table, or nil.
func (m *MemorySink) Table() *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return nil
	}
	return m.table.Clone()
}

func (m *MemorySink) Close() error { return nil }
