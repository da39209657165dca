package errors

// Domain sentinel errors, organised by family. Constructors below attach
// context and mark the result so callers can match with errors.Is while the
// message still carries the offending identifiers.
var (
	// Graph family
	ErrNodeNotFound  = New("node not found")
	ErrEdgeNotFound  = New("edge not found")
	ErrDuplicateNode = New("duplicate node")
	ErrInvalidEdge   = New("invalid edge")

	// Temporal family
	ErrInvalidTimeInterval = New("invalid time interval")
	ErrTemporalOrdering    = New("temporal ordering violation")
	ErrDecayComputation    = New("decay computation failed")

	// Uncertainty family
	ErrInvalidProbability = New("invalid probability")
	ErrDistribution       = New("invalid distribution")

	// Provenance family
	ErrBrokenProvenanceChain = New("broken provenance chain")
	ErrInvalidProvenance     = New("invalid provenance")

	// Validation family
	ErrSchemaValidation    = New("schema validation failed")
	ErrConstraintViolation = New("constraint violation")

	// Adapter family (storage backends)
	ErrAdapter             = New("adapter error")
	ErrAdapterNotConnected = New("adapter not connected")
	ErrGraphNotFound       = New("graph not found")
)

// NodeNotFound returns an ErrNodeNotFound carrying the missing id.
func NodeNotFound(id string) error {
	return Mark(Newf("node not found: %s", id), ErrNodeNotFound)
}

// EdgeNotFound returns an ErrEdgeNotFound carrying the missing id.
func EdgeNotFound(id string) error {
	return Mark(Newf("edge not found: %s", id), ErrEdgeNotFound)
}

// DuplicateNode returns an ErrDuplicateNode carrying the colliding id.
func DuplicateNode(id string) error {
	return Mark(Newf("duplicate node: %s", id), ErrDuplicateNode)
}

// InvalidEdgef returns an ErrInvalidEdge with a formatted reason.
func InvalidEdgef(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidEdge)
}

// TemporalOrderingf returns an ErrTemporalOrdering with a formatted reason.
func TemporalOrderingf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrTemporalOrdering)
}

// DecayComputationf returns an ErrDecayComputation with a formatted reason.
func DecayComputationf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrDecayComputation)
}

// InvalidIntervalf returns an ErrInvalidTimeInterval with a formatted reason.
func InvalidIntervalf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidTimeInterval)
}

// InvalidProbabilityf returns an ErrInvalidProbability with a formatted reason.
func InvalidProbabilityf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidProbability)
}

// Distributionf returns an ErrDistribution with a formatted reason.
func Distributionf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrDistribution)
}

// ConstraintViolationf returns an ErrConstraintViolation with a formatted reason.
func ConstraintViolationf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConstraintViolation)
}
