package graph

import (
	"github.com/choragraph/chora/errors"
)

// Context is a situational modifier for encounters. It shifts the character
// and meaning of an encounter without changing the spatial or temporal
// facts; several contexts can attach to one encounter.
type Context struct {
	Meta
	ContextType ContextType
	Value       any
	Description string
	Intensity   float64 // how strongly the context applies, [0, 1]
	Metadata    map[string]any
}

func (*Context) Type() NodeType { return NodeTypeContext }

// NewContext creates a context of the given type.
func NewContext(ct ContextType, value any, description string) *Context {
	return &Context{
		Meta:        NewMeta(Observed),
		ContextType: ct,
		Value:       value,
		Description: description,
		Intensity:   1.0,
	}
}

// TemporalContext creates a time-of-day / season style context.
func TemporalContext(value, description string) *Context {
	return NewContext(ContextTemporal, value, description)
}

// SocialContext creates a social context from companions present.
func SocialContext(companions []string, alone bool, description string) *Context {
	return NewContext(ContextSocial, map[string]any{
		"alone":      alone,
		"companions": companions,
	}, description)
}

// PurposiveContext creates a context describing the agent's purpose.
func PurposiveContext(purpose, description string) *Context {
	return NewContext(ContextPurposive, purpose, description)
}

// EnvironmentalContext creates a context from environmental conditions.
func EnvironmentalContext(conditions map[string]any, description string) *Context {
	return NewContext(ContextEnvironmental, conditions, description)
}

// SetIntensity sets how strongly this context applies, in [0, 1].
func (c *Context) SetIntensity(v float64) error {
	if v < 0 || v > 1 {
		return errors.ConstraintViolationf("context intensity %f outside [0, 1]", v)
	}
	c.Intensity = v
	return nil
}
