package graph

// Agent is an entity with situated experience: a human, group, or proxy
// that participates in encounters, develops familiarity, expresses affect,
// and interprets meaning.
type Agent struct {
	Meta
	Name       string
	AgentType  string // "individual", "group", or "proxy"
	Attributes map[string]any
}

func (*Agent) Type() NodeType { return NodeTypeAgent }

// NewAgent creates an individual agent.
func NewAgent(name string) *Agent {
	return &Agent{Meta: NewMeta(Observed), Name: name, AgentType: "individual"}
}

// NewGroupAgent creates an agent representing a group of members.
func NewGroupAgent(name string, members []string) *Agent {
	return &Agent{
		Meta:       NewMeta(Observed),
		Name:       name,
		AgentType:  "group",
		Attributes: map[string]any{"members": members},
	}
}

// NewProxyAgent creates an agent standing in for another entity.
func NewProxyAgent(name, representedBy string) *Agent {
	return &Agent{
		Meta:       NewMeta(Observed),
		Name:       name,
		AgentType:  "proxy",
		Attributes: map[string]any{"represented_by": representedBy},
	}
}

// DisplayName falls back to the node id when the agent is unnamed.
func (a *Agent) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.NodeID
}

// Attribute returns an agent attribute, or nil when unset.
func (a *Agent) Attribute(key string) any {
	if a.Attributes == nil {
		return nil
	}
	return a.Attributes[key]
}

// SetAttribute stores an agent attribute.
func (a *Agent) SetAttribute(key string, value any) {
	if a.Attributes == nil {
		a.Attributes = make(map[string]any)
	}
	a.Attributes[key] = value
}
