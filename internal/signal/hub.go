package signal

// Hub should be passed as a dependency to the types that call "signal.x"
// functions. This allows using mocks and keeps host surfaces decoupled
// from the package-level channel.
type Hub interface {
	Emit(event ExceptionEvent)
	Receive() (event ExceptionEvent, stop bool)
	CreateListener(callback func(event ExceptionEvent))
	DisposeListener()
}

var _ Hub = &hubImpl{}

type hubImpl struct{}

func NewHub() Hub {
	return &hubImpl{}
}

func (h *hubImpl) Emit(event ExceptionEvent) {
	Emit(event)
}

func (h *hubImpl) Receive() (event ExceptionEvent, stop bool) {
	return Receive()
}

func (h *hubImpl) CreateListener(callback func(event ExceptionEvent)) {
	CreateListener(callback)
}

func (h *hubImpl) DisposeListener() {
	DisposeListener()
}
