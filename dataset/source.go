package dataset

import "context"

// Source loads the dataset the assistant serves.
// Implementations return only validated datasets.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// StaticSource serves the compiled-in dataset
type StaticSource struct{}

// NewStaticSource creates a source backed by Default
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Load returns a validated copy of the compiled-in dataset
func (StaticSource) Load(ctx context.Context) (*Dataset, error) {
	d := Default()
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}
