package statebox

import "encoding/json"

// CloneFunc produces an independent deep copy of a payload value. Snapshots
// and effect scratch copies are taken through this function, so the copy
// must share no mutable references with its source
type CloneFunc[T any] func(T) (T, error)

// JSONClone returns a CloneFunc that deep-copies by round-tripping the
// payload through encoding/json. It covers any payload built from
// JSON-serializable fields; payloads holding channels, funcs, or cyclic
// references need a hand-written CloneFunc instead
func JSONClone[T any]() CloneFunc[T] {
	return func(value T) (T, error) {
		var out T
		data, err := json.Marshal(value)
		if err != nil {
			return out, err
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return out, err
		}
		return out, nil
	}
}
