package derive

import (
	"strings"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/provenance"
	"github.com/choragraph/chora/uncertainty"
)

// AttachAffect creates an affect node for an encounter from explicit
// valence and arousal values. Self-reported affect stays observed;
// anything else is derived.
func AttachAffect(enc *graph.Encounter, valence, arousal float64, source string, unc float64) (*graph.Affect, error) {
	if valence < -1 || valence > 1 {
		return nil, errors.ConstraintViolationf("affect valence %f outside [-1, 1]", valence)
	}
	if arousal < 0 || arousal > 1 {
		return nil, errors.ConstraintViolationf("affect arousal %f outside [0, 1]", arousal)
	}
	valenceValue, err := uncertainty.NewValue(valence, unc)
	if err != nil {
		return nil, err
	}
	arousalValue, err := uncertainty.NewValue(arousal, unc)
	if err != nil {
		return nil, err
	}

	affect := graph.NewAffect(graph.AffectState{
		Valence: valenceValue,
		Arousal: arousalValue,
	}, source)
	affect.AddLineage(provenance.Derived(
		[]string{enc.ID()}, "attach_affect", map[string]any{"source": source}))
	return affect, nil
}

// DeriveAffectFromContext infers likely affect for an encounter from its
// situational contexts, a theory-encoded heuristic from environmental
// psychology. Returns nil with no error when there is no context to go on.
func DeriveAffectFromContext(enc *graph.Encounter, contexts []*graph.Context) (*graph.Affect, error) {
	if len(contexts) == 0 {
		return nil, nil
	}

	valence, arousal := 0.0, 0.5
	const unc = 0.2

	for _, ctx := range contexts {
		switch ctx.ContextType {
		case graph.ContextPurposive:
			purpose := strings.ToLower(stringValue(ctx.Value))
			switch {
			case strings.Contains(purpose, "leisure") || strings.Contains(purpose, "recreation"):
				valence += 0.3
			case strings.Contains(purpose, "work") || strings.Contains(purpose, "commute"):
				valence -= 0.1
				arousal += 0.1
			case strings.Contains(purpose, "explore"):
				valence += 0.2
				arousal += 0.2
			}
		case graph.ContextSocial:
			social, _ := ctx.Value.(map[string]any)
			if alone, _ := social["alone"].(bool); alone {
				arousal -= 0.1
			} else if companions, _ := social["companions"].([]string); len(companions) > 0 {
				n := len(companions)
				if n > 3 {
					n = 3
				}
				valence += 0.1 * float64(n)
			}
		case graph.ContextEnvironmental:
			conditions, _ := ctx.Value.(map[string]any)
			switch conditions["weather"] {
			case "sunny":
				valence += 0.2
			case "rainy":
				valence -= 0.1
			}
			if crowded, _ := conditions["crowded"].(bool); crowded {
				arousal += 0.2
				valence -= 0.1
			}
		case graph.ContextTemporal:
			timeOfDay := strings.ToLower(stringValue(ctx.Value))
			if strings.Contains(timeOfDay, "morning") {
				arousal += 0.1
			} else if strings.Contains(timeOfDay, "evening") {
				arousal -= 0.1
				valence += 0.05
			}
		}
	}

	valence = clamp(valence, -1, 1)
	arousal = clamp(arousal, 0, 1)

	affect := graph.NewAffect(graph.AffectState{
		Valence: uncertainty.Value{Value: valence, Uncertainty: unc},
		Arousal: uncertainty.Value{Value: arousal, Uncertainty: unc},
	}, "context_derived")

	sources := make([]string, 0, len(contexts)+1)
	sources = append(sources, enc.ID())
	for _, ctx := range contexts {
		sources = append(sources, ctx.ID())
	}
	affect.AddLineage(provenance.Derived(sources, "derive_affect_from_context",
		map[string]any{"context_count": len(contexts)}))
	return affect, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
