package views

// ListState is where a list view or dashboard widget is in its lifecycle:
// Loading, then exactly one of Populated, Empty or Error.
type ListState int

const (
	Loading ListState = iota
	Populated
	Empty
	Error
)

func (s ListState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Empty:
		return "empty"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ListView is the render state of a table or list
type ListView[T any] struct {
	State   ListState
	Rows    []T
	Message string
}

// NewListView returns Populated for a non-empty slice, else Empty with emptyMsg
func NewListView[T any](rows []T, emptyMsg string) ListView[T] {
	if len(rows) == 0 {
		return ListView[T]{State: Empty, Message: emptyMsg}
	}
	return ListView[T]{State: Populated, Rows: rows}
}

// ErrorListView returns the Error state with msg
func ErrorListView[T any](msg string) ListView[T] {
	return ListView[T]{State: Error, Message: msg}
}

func (v ListView[T]) IsPopulated() bool { return v.State == Populated }
func (v ListView[T]) IsEmpty() bool     { return v.State == Empty }
func (v ListView[T]) IsError() bool     { return v.State == Error }

// Widget is the render state of a single-value dashboard component
type Widget[T any] struct {
	State   ListState
	Data    T
	Message string
}

// ReadyWidget wraps data in the Populated state
func ReadyWidget[T any](data T) Widget[T] {
	return Widget[T]{State: Populated, Data: data}
}

// FailedWidget returns the Error state with msg
func FailedWidget[T any](msg string) Widget[T] {
	return Widget[T]{State: Error, Message: msg}
}

func (w Widget[T]) IsReady() bool { return w.State == Populated }
func (w Widget[T]) IsError() bool { return w.State == Error }
