package scoring

// WeightsProvider resolves the weight vector applied to a record at
// extraction time. The default implementation ignores the domain tag and
// always returns one static vector; alternate strategies can key off the
// record's primary domain without touching the pipeline.
type WeightsProvider interface {
	ForDomain(tag string) (Weights, error)
}

// DefaultWeights is the baseline vector used when no scenario or custom
// provider applies.
func DefaultWeights() Weights {
	return Weights{
		Rigor:        0.30,
		Innovation:   0.25,
		Practicality: 0.25,
		Impact:       0.15,
		Readability:  0.05,
	}
}

// StaticProvider returns the same weight vector for every domain.
type StaticProvider struct {
	weights Weights
}

// NewStaticProvider builds a provider around a fixed vector.
func NewStaticProvider(weights Weights) *StaticProvider {
	return &StaticProvider{weights: weights}
}

// ForDomain implements WeightsProvider.
func (p *StaticProvider) ForDomain(string) (Weights, error) {
	return p.weights, nil
}
