package signal

import "sync"

var _ Hub = &MockHub{}

// MockHub collects emitted events instead of forwarding them to the
// package-level channel.
type MockHub struct {
	m           sync.Mutex
	emitCounter int
	events      []ExceptionEvent
	listener    func(event ExceptionEvent)
}

func NewMockHub() *MockHub { return &MockHub{} }

func (m *MockHub) Emit(event ExceptionEvent) {
	m.m.Lock()
	listener := m.listener
	m.emitCounter++
	m.events = append(m.events, event)
	m.m.Unlock()
	if listener != nil {
		listener(event)
	}
}

func (m *MockHub) Receive() (event ExceptionEvent, stop bool) {
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.events) == 0 {
		return ExceptionEvent{}, true
	}
	event = m.events[0]
	m.events = m.events[1:]
	return event, false
}

func (m *MockHub) CreateListener(callback func(event ExceptionEvent)) {
	m.m.Lock()
	defer m.m.Unlock()
	m.listener = callback
}

func (m *MockHub) DisposeListener() {
	m.m.Lock()
	defer m.m.Unlock()
	m.listener = nil
}

func (m *MockHub) EmitCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.emitCounter
}

func (m *MockHub) Events() []ExceptionEvent {
	m.m.Lock()
	defer m.m.Unlock()
	return append([]ExceptionEvent{}, m.events...)
}
