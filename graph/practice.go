package graph

import (
	"time"

	"github.com/choragraph/chora/errors"
)

// Practice is an emergent, patterned structure over encounters: the
// regularities that constitute routines, habits, and rituals.
type Practice struct {
	Meta
	PracticeType    PracticeType
	Name            string
	EncounterIDs    []string
	Frequency       float64 // occurrences per day
	Regularity      float64 // pattern consistency, [0, 1]
	Stability       float64 // persistence over time, [0, 1]
	TypicalDuration *time.Duration
	TypicalTime     string // e.g. "morning (8-12)"
	Metadata        map[string]any
}

func (*Practice) Type() NodeType { return NodeTypePractice }

// NewPractice creates a derived practice node. Regularity and stability
// must be in [0, 1].
func NewPractice(pt PracticeType, name string, regularity, stability float64) (*Practice, error) {
	for _, v := range []float64{regularity, stability} {
		if v < 0 || v > 1 {
			return nil, errors.ConstraintViolationf(
				"practice regularity/stability %f outside [0, 1]", v)
		}
	}
	return &Practice{
		Meta:         NewMeta(Derived),
		PracticeType: pt,
		Name:         name,
		Regularity:   regularity,
		Stability:    stability,
	}, nil
}

// EncounterCount is the number of constituent encounters.
func (p *Practice) EncounterCount() int { return len(p.EncounterIDs) }

// AddEncounter records an encounter as part of this practice.
func (p *Practice) AddEncounter(encounterID string) {
	p.EncounterIDs = append(p.EncounterIDs, encounterID)
}

// IsEstablished reports whether the practice is well settled: high
// stability and high regularity.
func (p *Practice) IsEstablished() bool {
	return p.Stability >= 0.7 && p.Regularity >= 0.7
}
