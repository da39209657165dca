// Package server exposes the platial graph over HTTP and WebSocket: read
// endpoints for the graph and its emergent places, a rate-limited encounter
// ingest endpoint, and live graph broadcasts to connected clients.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/choragraph/chora/adapters"
	"github.com/choragraph/chora/config"
	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
	"github.com/choragraph/chora/logger"
	"github.com/choragraph/chora/viz"
)

// MaxClients caps concurrent WebSocket connections.
const MaxClients = 64

// Server serves one platial graph. All access to the graph goes through
// s.graphMu: the graph itself is single-writer and does no locking.
type Server struct {
	cfg     *config.Config
	adapter adapters.Adapter

	graphMu sync.RWMutex
	g       *graph.Graph

	clients    map[*Client]bool
	broadcast  chan *viz.Graph
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex // protects clients and lastGraph
	lastGraph  *viz.Graph   // cache for reconnecting clients

	limiter *rate.Limiter

	logger *zap.SugaredLogger

	httpServer *http.Server

	// Lifecycle management
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	broadcastDrops atomic.Int64
}

// New creates a server for the graph named in cfg.Server.GraphName, loading
// it from the adapter. A graph that does not exist yet starts empty and is
// created on first ingest.
func New(cfg *config.Config, adapter adapters.Adapter) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is nil")
	}
	if adapter == nil {
		return nil, errors.New("server adapter is nil")
	}

	name := cfg.Server.GraphName
	if name == "" {
		name = "default"
	}

	g, err := adapter.LoadGraph(context.Background(), name)
	if err != nil {
		if !errors.Is(err, errors.ErrGraphNotFound) {
			return nil, errors.Wrapf(err, "failed to load graph %q", name)
		}
		g = graph.New(name)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Zero requests per second means no ingest throttling.
	limit := rate.Inf
	burst := 0
	if cfg.Ingest.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Ingest.RequestsPerSecond)
		burst = cfg.Ingest.Burst
		if burst < 1 {
			burst = 1
		}
	}

	return &Server{
		cfg:        cfg,
		adapter:    adapter,
		g:          g,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *viz.Graph, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.Logger.Named("server"),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Run starts the client hub event loop.
func (s *Server) Run() {
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debugw("Server hub stopping due to context cancellation")
			return
		case client := <-s.register:
			s.handleClientRegister(client)
		case client := <-s.unregister:
			s.handleClientUnregister(client)
		case g := <-s.broadcast:
			s.handleBroadcast(g)
		}
	}
}

func (s *Server) handleClientRegister(client *Client) {
	s.mu.Lock()
	if len(s.clients) >= MaxClients {
		s.mu.Unlock()
		s.logger.Warnw("Max clients reached, rejecting connection",
			"client_id", client.id,
			"max_clients", MaxClients,
		)
		client.close()
		return
	}
	s.clients[client] = true
	totalClients := len(s.clients)
	cachedGraph := s.lastGraph
	s.mu.Unlock()

	s.logger.Infow("Client connected",
		"client_id", client.id,
		"total_clients", totalClients,
	)

	// Send cached graph so a reconnecting client renders immediately
	if cachedGraph != nil {
		select {
		case client.send <- cachedGraph:
		default:
			s.logger.Warnw("Client send channel full, skipping cached graph",
				"client_id", client.id,
			)
		}
	}
}

func (s *Server) handleClientUnregister(client *Client) {
	s.mu.Lock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		totalClients := len(s.clients)
		s.mu.Unlock()

		client.close()
		s.logger.Infow("Client disconnected",
			"client_id", client.id,
			"total_clients", totalClients,
		)
	} else {
		s.mu.Unlock()
	}
}

// handleBroadcast sends a graph update to all connected clients. Clients
// that cannot keep up have the update dropped rather than blocking the hub.
func (s *Server) handleBroadcast(g *viz.Graph) {
	s.mu.Lock()
	s.lastGraph = g
	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.Unlock()

	for _, client := range clients {
		select {
		case client.send <- g:
		default:
			s.broadcastDrops.Add(1)
			s.logger.Warnw("Client send channel full, dropping graph update",
				"client_id", client.id,
				"total_drops", s.broadcastDrops.Load(),
			)
		}
	}
}

// broadcastGraph rebuilds the D3 document from the current graph and queues
// it for all clients. Safe to call from any goroutine.
func (s *Server) broadcastGraph() {
	s.graphMu.RLock()
	doc := viz.BuildGraph(s.g, "live platial graph")
	s.graphMu.RUnlock()

	select {
	case s.broadcast <- doc:
	case <-s.ctx.Done():
	default:
		s.logger.Warnw("Broadcast queue full, dropping graph update")
	}
}

// Start runs the HTTP server on the configured port and blocks until it
// stops. The hub loop is started alongside it.
func (s *Server) Start() error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	port := s.cfg.Server.Port
	if port == 0 {
		port = config.DefaultServerPort
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Infow("Server ready",
		"url", fmt.Sprintf("http://localhost:%d", port),
		"port", port,
		"graph", s.g.Name,
	)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server and disconnects all clients.
func (s *Server) Stop() error {
	s.logger.Infow("Initiating server shutdown")

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnw("HTTP server shutdown error", "error", err)
		}
	}

	s.cancel()

	s.mu.Lock()
	for client := range s.clients {
		client.close()
		delete(s.clients, client)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Infow("Server shutdown complete")
	return nil
}

// Graph runs fn against the served graph under the read lock.
func (s *Server) Graph(fn func(g *graph.Graph)) {
	s.graphMu.RLock()
	defer s.graphMu.RUnlock()
	fn(s.g)
}
