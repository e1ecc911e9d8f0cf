package task

type CreatedEvent struct {
	Result Task
}

type StartedEvent struct {
	Result Task
}

type CompletedEvent struct {
	Result Task
}

type CancelledEvent struct {
	Result Task
}

func NewCreatedEvent(result Task) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

func NewStartedEvent(result Task) *StartedEvent {
	return &StartedEvent{Result: result}
}

func NewCompletedEvent(result Task) *CompletedEvent {
	return &CompletedEvent{Result: result}
}

func NewCancelledEvent(result Task) *CancelledEvent {
	return &CancelledEvent{Result: result}
}
