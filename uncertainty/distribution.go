package uncertainty

import (
	"math"
	"math/rand"

	"github.com/choragraph/chora/errors"
)

const probabilitySumTolerance = 1e-6

// Gaussian is an immutable normal distribution.
type Gaussian struct {
	Mu    float64
	Sigma float64
}

// NewGaussian rejects non-positive standard deviations.
func NewGaussian(mu, sigma float64) (Gaussian, error) {
	if sigma <= 0 {
		return Gaussian{}, errors.Distributionf("standard deviation must be positive, got %f", sigma)
	}
	return Gaussian{Mu: mu, Sigma: sigma}, nil
}

// PDF returns the probability density at x.
func (g Gaussian) PDF(x float64) float64 {
	coefficient := 1 / (g.Sigma * math.Sqrt(2*math.Pi))
	exponent := -0.5 * math.Pow((x-g.Mu)/g.Sigma, 2)
	return coefficient * math.Exp(exponent)
}

// Sample draws from the distribution using the provided source.
func (g Gaussian) Sample(rng *rand.Rand) float64 {
	return g.Mu + g.Sigma*rng.NormFloat64()
}

// Mean returns the expected value.
func (g Gaussian) Mean() float64 { return g.Mu }

// Variance returns sigma squared.
func (g Gaussian) Variance() float64 { return g.Sigma * g.Sigma }

// ConfidenceInterval returns the central interval for a common confidence
// level (0.90, 0.95, 0.99; anything else falls back to 0.95).
func (g Gaussian) ConfidenceInterval(confidence float64) ConfidenceInterval {
	z := 1.96
	switch confidence {
	case 0.90:
		z = 1.645
	case 0.99:
		z = 2.576
	}
	margin := z * g.Sigma
	return ConfidenceInterval{Lower: g.Mu - margin, Upper: g.Mu + margin, Confidence: confidence}
}

// Categorical is an immutable distribution over discrete outcomes.
type Categorical struct {
	categories    []string
	probabilities map[string]float64
}

// NewCategorical validates that categories and probabilities align and that
// the probabilities sum to 1 within tolerance.
func NewCategorical(categories []string, probabilities []float64) (Categorical, error) {
	if len(categories) != len(probabilities) {
		return Categorical{}, errors.Distributionf(
			"categories and probabilities must have same length: %d vs %d",
			len(categories), len(probabilities))
	}
	if len(categories) == 0 {
		return Categorical{}, errors.Distributionf("categorical distribution needs at least one category")
	}

	total := 0.0
	for _, p := range probabilities {
		if err := validateProbability(p, "category probability"); err != nil {
			return Categorical{}, err
		}
		total += p
	}
	if math.Abs(total-1.0) > probabilitySumTolerance {
		return Categorical{}, errors.Distributionf("probabilities must sum to 1, got %f", total)
	}

	probs := make(map[string]float64, len(categories))
	cats := make([]string, len(categories))
	copy(cats, categories)
	for i, c := range categories {
		probs[c] = probabilities[i]
	}
	return Categorical{categories: cats, probabilities: probs}, nil
}

// Probability returns the probability of a category, 0 if unknown.
func (c Categorical) Probability(category string) float64 {
	return c.probabilities[category]
}

// Categories returns the category labels in construction order.
func (c Categorical) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Mode returns the most likely category. Ties resolve to the earliest
// category in construction order.
func (c Categorical) Mode() string {
	best := ""
	bestP := -1.0
	for _, cat := range c.categories {
		if p := c.probabilities[cat]; p > bestP {
			best, bestP = cat, p
		}
	}
	return best
}

// Entropy returns the Shannon entropy in bits.
func (c Categorical) Entropy() float64 {
	h := 0.0
	for _, cat := range c.categories {
		if p := c.probabilities[cat]; p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// Sample draws a category using the provided source.
func (c Categorical) Sample(rng *rand.Rand) string {
	r := rng.Float64()
	cumulative := 0.0
	for _, cat := range c.categories {
		cumulative += c.probabilities[cat]
		if r < cumulative {
			return cat
		}
	}
	return c.categories[len(c.categories)-1]
}
