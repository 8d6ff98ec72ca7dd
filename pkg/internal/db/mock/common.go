package mocks

// CallLog records the argument of each invocation of a mocked method,
// in call order.
type CallLog[T any] []T

// Times returns how many invocations have been recorded.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}
