package server

// This file contains HTTP handler methods for Server:
// - Health checks (HandleHealth)
// - Graph document export (HandleGraph)
// - Emergent place queries (HandlePlaces, HandlePlace)
// - Encounter ingest (HandleEncounters)

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/choragraph/chora/derive"
	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/internal/version"
	"github.com/choragraph/chora/viz"
)

// HandleHealth serves the health check endpoint with version info and
// host memory stats.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	s.mu.RLock()
	clientCount := len(s.clients)
	s.mu.RUnlock()

	s.graphMu.RLock()
	nodeCount := s.g.NodeCount()
	edgeCount := s.g.EdgeCount()
	graphName := s.g.Name
	s.graphMu.RUnlock()

	health := map[string]interface{}{
		"status":     "ok",
		"version":    versionInfo.Version,
		"commit":     versionInfo.CommitHash,
		"build_time": versionInfo.BuildTime,
		"graph":      graphName,
		"nodes":      nodeCount,
		"edges":      edgeCount,
		"clients":    clientCount,
	}

	if v, err := mem.VirtualMemory(); err == nil {
		health["memory_total_bytes"] = v.Total
		health["memory_available_bytes"] = v.Available
	} else {
		s.logger.Debugw("Failed to read memory stats", "error", err)
	}

	writeJSON(w, http.StatusOK, health)
}

// HandleGraph serves the full graph as a D3 force-graph document.
func (s *Server) HandleGraph(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s.graphMu.RLock()
	doc := viz.BuildGraph(s.g, "platial graph")
	s.graphMu.RUnlock()

	writeJSON(w, http.StatusOK, doc)
}

// placeResponse is the external shape of an emergent place.
type placeResponse struct {
	ExtentID          string  `json:"extent_id"`
	Name              string  `json:"name,omitempty"`
	FamiliarityScore  float64 `json:"familiarity_score"`
	EncounterCount    int     `json:"encounter_count"`
	MeaningCount      int     `json:"meaning_count"`
	AffectValenceMean float64 `json:"affect_valence_mean"`
	Character         string  `json:"character"`
	Significant       bool    `json:"significant"`
}

func toPlaceResponse(p *derive.EmergentPlace) placeResponse {
	resp := placeResponse{
		ExtentID:          p.ExtentID,
		FamiliarityScore:  p.FamiliarityScore,
		EncounterCount:    p.EncounterCount,
		MeaningCount:      p.MeaningCount,
		AffectValenceMean: p.AffectValenceMean,
		Character:         p.Character(),
		Significant:       p.IsSignificant(),
	}
	if p.Extent != nil {
		resp.Name = p.Extent.Name
	}
	return resp
}

// HandlePlaces serves the emergent places for an agent.
// Query parameters:
//   - agent (required): agent node id
//   - min_encounters: minimum encounter count, default 1
func (s *Server) HandlePlaces(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	agentID := r.URL.Query().Get("agent")
	if agentID == "" {
		writeError(w, http.StatusBadRequest, "missing required query parameter: agent")
		return
	}

	minEncounters := 1
	if raw := r.URL.Query().Get("min_encounters"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "min_encounters must be a non-negative integer")
			return
		}
		minEncounters = parsed
	}

	s.graphMu.RLock()
	places, err := derive.FindEmergentPlaces(s.g, agentID, minEncounters)
	s.graphMu.RUnlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]placeResponse, 0, len(places))
	for _, p := range places {
		responses = append(responses, toPlaceResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"agent":  agentID,
		"places": responses,
	})
}

// HandlePlace serves one emergent place by extent id: /api/places/{id}.
func (s *Server) HandlePlace(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	parts := extractPathParts(r.URL.Path, "/api/places/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "missing extent id in path")
		return
	}
	extentID := parts[0]
	agentID := r.URL.Query().Get("agent")

	s.graphMu.RLock()
	_, nodeErr := s.g.Node(extentID)
	var place *derive.EmergentPlace
	var err error
	if nodeErr == nil {
		place, err = derive.ExtractPlace(s.g, extentID, agentID)
	}
	s.graphMu.RUnlock()

	if nodeErr != nil {
		writeError(w, http.StatusNotFound, "extent not found: "+extentID)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toPlaceResponse(place))
}

// encounterRequest is the ingest payload for POST /api/encounters.
type encounterRequest struct {
	AgentID   string     `json:"agent_id"`
	ExtentID  string     `json:"extent_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Activity  string     `json:"activity,omitempty"`
}

// HandleEncounters ingests a new encounter, updates familiarity, persists
// the graph, and broadcasts the refreshed graph to WebSocket clients.
// Ingest is rate-limited per the configured requests-per-second budget.
func (s *Server) HandleEncounters(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "ingest rate limit exceeded")
		return
	}

	var req encounterRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if req.AgentID == "" || req.ExtentID == "" {
		writeError(w, http.StatusBadRequest, "agent_id and extent_id are required")
		return
	}
	if req.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, "start_time is required")
		return
	}

	enc, err := graph.NewEncounter(req.AgentID, req.ExtentID, req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	enc.Activity = req.Activity

	s.graphMu.Lock()
	fam, err := s.ingestEncounter(enc)
	s.graphMu.Unlock()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.graphMu.RLock()
	saveErr := s.adapter.SaveGraph(r.Context(), s.g)
	s.graphMu.RUnlock()
	if saveErr != nil {
		s.logger.Errorw("Failed to persist graph after ingest",
			"encounter_id", enc.ID(),
			"error", saveErr,
		)
		writeError(w, http.StatusInternalServerError, "failed to persist graph")
		return
	}

	s.broadcastGraph()

	s.logger.Infow("Encounter ingested",
		"encounter_id", enc.ID(),
		"agent", req.AgentID,
		"extent", req.ExtentID,
		"familiarity", fam.Value,
	)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"encounter_id":      enc.ID(),
		"familiarity_id":    fam.ID(),
		"familiarity_value": fam.Value,
		"encounter_count":   fam.EncounterCount,
	})
}

// ingestEncounter adds the encounter with its structural edges and folds it
// into familiarity. Caller holds the graph write lock.
func (s *Server) ingestEncounter(enc *graph.Encounter) (*graph.Familiarity, error) {
	// Unknown agents and extents are created on first sight so a bare
	// ingest feed can bootstrap a graph. The caller's ids become node ids.
	if !s.g.HasNode(enc.AgentID) {
		agent := graph.NewAgent(enc.AgentID)
		agent.NodeID = enc.AgentID
		if err := s.g.AddNode(agent); err != nil {
			return nil, err
		}
	}
	if !s.g.HasNode(enc.ExtentID) {
		extent := graph.NewSpatialExtent(enc.ExtentID, nil)
		extent.NodeID = enc.ExtentID
		if err := s.g.AddNode(extent); err != nil {
			return nil, err
		}
	}

	if err := s.g.AddNode(enc); err != nil {
		return nil, err
	}
	if err := s.g.AddEdge(graph.ParticipatesIn(enc.AgentID, enc.ID())); err != nil {
		return nil, err
	}
	if err := s.g.AddEdge(graph.OccursAt(enc.ID(), enc.ExtentID)); err != nil {
		return nil, err
	}

	fam, err := derive.UpdateFamiliarity(s.g, enc)
	if err != nil {
		return nil, err
	}
	if err := s.g.AddEdge(graph.Reinforces(enc.ID(), fam.ID())); err != nil {
		return nil, err
	}
	return fam, nil
}
