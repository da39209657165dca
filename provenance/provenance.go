// Package provenance implements lineage tracking for derived data.
// All derived and interpreted entities preserve a chain back to source
// observations, keeping the epistemic status of every value inspectable.
package provenance

import (
	"time"

	"github.com/google/uuid"

	"github.com/choragraph/chora/errors"
)

// Operation classifies how a record's data was produced.
type Operation string

const (
	Observation    Operation = "observation"
	Derivation     Operation = "derivation"
	Aggregation    Operation = "aggregation"
	Transformation Operation = "transformation"
	Interpretation Operation = "interpretation"
	Annotation     Operation = "annotation"
	Correction     Operation = "correction"
)

// Record is a single immutable lineage entry describing one operation.
type Record struct {
	ID         string
	SourceIDs  []string
	Operation  Operation
	Operator   string // name of the function that performed the operation
	Timestamp  time.Time
	Parameters map[string]any
	Agent      string // agent (human or system) responsible, if any
	Notes      string
}

// NewRecord validates and builds a lineage record. Future timestamps are
// invalid; a zero timestamp defaults to now.
func NewRecord(sourceIDs []string, op Operation, operator string, params map[string]any) (Record, error) {
	return newRecordAt(sourceIDs, op, operator, params, time.Now())
}

func newRecordAt(sourceIDs []string, op Operation, operator string, params map[string]any, at time.Time) (Record, error) {
	if at.After(time.Now().Add(time.Second)) {
		return Record{}, errors.Mark(
			errors.Newf("provenance timestamp %s is in the future", at.Format(time.RFC3339)),
			errors.ErrInvalidProvenance)
	}
	ids := make([]string, len(sourceIDs))
	copy(ids, sourceIDs)
	return Record{
		ID:         uuid.NewString(),
		SourceIDs:  ids,
		Operation:  op,
		Operator:   operator,
		Timestamp:  at,
		Parameters: params,
	}, nil
}

// Observed returns an observation record attributed to the given observer.
func Observed(observer string) Record {
	rec, _ := NewRecord(nil, Observation, "direct_observation", nil)
	rec.Agent = observer
	return rec
}

// Derived returns a derivation record citing its sources.
// Derivation inputs are internal values, so construction cannot fail.
func Derived(sourceIDs []string, operator string, params map[string]any) Record {
	rec, _ := NewRecord(sourceIDs, Derivation, operator, params)
	return rec
}

// Chain is an ordered list of lineage records, oldest first.
type Chain struct {
	Records []Record
}

// Add appends a record to the chain.
func (c *Chain) Add(rec Record) {
	c.Records = append(c.Records, rec)
}

// Len returns the number of records.
func (c *Chain) Len() int {
	return len(c.Records)
}

// Origin returns the first record, or false if the chain is empty.
func (c *Chain) Origin() (Record, bool) {
	if len(c.Records) == 0 {
		return Record{}, false
	}
	return c.Records[0], true
}

// Latest returns the most recent record, or false if the chain is empty.
func (c *Chain) Latest() (Record, bool) {
	if len(c.Records) == 0 {
		return Record{}, false
	}
	return c.Records[len(c.Records)-1], true
}

// AllSourceIDs returns the set of every source id referenced in the chain.
func (c *Chain) AllSourceIDs() map[string]struct{} {
	sources := make(map[string]struct{})
	for _, rec := range c.Records {
		for _, id := range rec.SourceIDs {
			sources[id] = struct{}{}
		}
	}
	return sources
}

// IsObserved reports whether the chain originates in direct observation.
func (c *Chain) IsObserved() bool {
	origin, ok := c.Origin()
	return ok && origin.Operation == Observation
}

// DerivationDepth counts derivation steps from origin.
func (c *Chain) DerivationDepth() int {
	depth := 0
	for _, rec := range c.Records {
		if rec.Operation == Derivation {
			depth++
		}
	}
	return depth
}

// Validate returns an ErrBrokenProvenanceChain naming every source id missing
// from the given id set, or nil when the chain fully resolves.
func (c *Chain) Validate(existingIDs map[string]struct{}) error {
	var missing []string
	for id := range c.AllSourceIDs() {
		if _, ok := existingIDs[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return errors.Mark(
			errors.Newf("provenance chain references %d missing sources: %v", len(missing), missing),
			errors.ErrBrokenProvenanceChain)
	}
	return nil
}

// Clone returns a deep copy of the chain.
func (c *Chain) Clone() Chain {
	records := make([]Record, len(c.Records))
	copy(records, c.Records)
	return Chain{Records: records}
}
