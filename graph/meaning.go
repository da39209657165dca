package graph

import (
	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/uncertainty"
)

// Meaning is a structured symbolic interpretation attached to place.
// Multiple, even conflicting, meanings can coexist for the same extent.
// Meanings are always interpreted, never observed or derived.
type Meaning struct {
	Meta
	MeaningType         MeaningType
	AgentID             string // empty for shared meanings
	ExtentID            string
	Content             string
	Symbols             []string
	Strength            float64 // how strongly held, [0, 1]
	Certainty           *uncertainty.Value
	RelatedMeanings     []string
	ConflictingMeanings []string
	Metadata            map[string]any
}

func (*Meaning) Type() NodeType { return NodeTypeMeaning }

// NewMeaning creates an interpreted meaning node. Strength must be
// in [0, 1].
func NewMeaning(mt MeaningType, agentID, extentID, content string, strength float64) (*Meaning, error) {
	if strength < 0 || strength > 1 {
		return nil, errors.ConstraintViolationf("meaning strength %f outside [0, 1]", strength)
	}
	return &Meaning{
		Meta:        NewMeta(Interpreted),
		MeaningType: mt,
		AgentID:     agentID,
		ExtentID:    extentID,
		Content:     content,
		Strength:    strength,
	}, nil
}

// PersonalMeaning creates an individual biographical meaning.
func PersonalMeaning(agentID, extentID, content string, symbols []string) (*Meaning, error) {
	m, err := NewMeaning(MeaningPersonal, agentID, extentID, content, 1.0)
	if err != nil {
		return nil, err
	}
	m.Symbols = symbols
	return m, nil
}

// CulturalMeaning creates a shared cultural meaning with no holding agent.
func CulturalMeaning(extentID, content string, symbols []string) (*Meaning, error) {
	m, err := NewMeaning(MeaningCultural, "", extentID, content, 1.0)
	if err != nil {
		return nil, err
	}
	m.Symbols = symbols
	return m, nil
}

// IsShared reports whether the meaning is held by no particular agent.
func (m *Meaning) IsShared() bool { return m.AgentID == "" }

// HasConflicts reports whether conflicting meanings are recorded.
func (m *Meaning) HasConflicts() bool { return len(m.ConflictingMeanings) > 0 }

// AddSymbol attaches a symbolic label once.
func (m *Meaning) AddSymbol(symbol string) {
	for _, s := range m.Symbols {
		if s == symbol {
			return
		}
	}
	m.Symbols = append(m.Symbols, symbol)
}

// RelatesTo records a relationship to another meaning once.
func (m *Meaning) RelatesTo(meaningID string) {
	for _, id := range m.RelatedMeanings {
		if id == meaningID {
			return
		}
	}
	m.RelatedMeanings = append(m.RelatedMeanings, meaningID)
}

// ConflictsWith records a conflict with another meaning once.
func (m *Meaning) ConflictsWith(meaningID string) {
	for _, id := range m.ConflictingMeanings {
		if id == meaningID {
			return
		}
	}
	m.ConflictingMeanings = append(m.ConflictingMeanings, meaningID)
}
