package slices

// Map applies f to each element of sli and collects the results.
func Map[T any, R any](sli []T, f func(T) R) []R {
	if sli == nil {
		return nil
	}
	ret := make([]R, len(sli))
	for i, v := range sli {
		ret[i] = f(v)
	}
	return ret
}

// First finds the first element satisfying pred.
//
// The second return value is false when no element matches.
func First[T any](sli []T, pred func(T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Filter collects elements satisfying pred, keeping their order.
func Filter[T any](sli []T, pred func(T) bool) []T {
	if sli == nil {
		return nil
	}
	ret := []T{}
	for _, v := range sli {
		if pred(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// KeysOf lists keys of m. Order is unstable.
func KeysOf[K comparable, V any](m map[K]V) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	return ret
}
