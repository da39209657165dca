// Package viz renders platial graphs into a D3-friendly structure for the
// web frontend and into JSON/YAML exports.
package viz

import (
	"time"
)

// Graph represents the complete graph structure for visualization
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
	Meta  Meta   `json:"meta" yaml:"meta"`
}

// Node represents an entity in the graph
type Node struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Level    string         `json:"level" yaml:"level"` // epistemic level
	Visible  bool           `json:"visible" yaml:"visible"`
	Group    int            `json:"group,omitempty" yaml:"group,omitempty"` // for coloring/clustering
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Link represents a relationship between nodes
type Link struct {
	Source string  `json:"source" yaml:"source"` // Node ID
	Target string  `json:"target" yaml:"target"` // Node ID
	Type   string  `json:"type" yaml:"type"`
	Weight float64 `json:"value" yaml:"value"` // D3 uses "value"
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Hidden bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Meta contains metadata about the graph
type Meta struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Stats       Stats             `json:"stats" yaml:"stats"`
	Config      map[string]string `json:"config" yaml:"config"`
	NodeTypes   []NodeTypeInfo    `json:"node_types" yaml:"node_types"`
}

// NodeTypeInfo describes a node type and its visual configuration
type NodeTypeInfo struct {
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Stats provides graph statistics
type Stats struct {
	TotalNodes int `json:"total_nodes,omitempty" yaml:"total_nodes,omitempty"`
	TotalEdges int `json:"total_edges,omitempty" yaml:"total_edges,omitempty"`
}
