package focus

// skip is an item a batch could not process.
type skip[T any] struct {
	item T
	err  error
}

// fold attempts fn on every item in order. Failures never stop the batch;
// they are collected separately from the successes.
func fold[T any](items []T, fn func(T) error) (succeeded []T, skipped []skip[T]) {
	for _, item := range items {
		if err := fn(item); err != nil {
			skipped = append(skipped, skip[T]{item: item, err: err})
			continue
		}
		succeeded = append(succeeded, item)
	}
	return succeeded, skipped
}

// SkippedWindow describes a window a batch passed over.
type SkippedWindow struct {
	WindowID int    `yaml:"window_id,omitempty" json:"window_id,omitempty"`
	AppName  string `yaml:"app_name"            json:"app_name"`
	Reason   string `yaml:"reason"              json:"reason"`
}
