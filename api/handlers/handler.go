package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jusunglee/railmap-go/internal/aggregate"
	"github.com/jusunglee/railmap-go/internal/logging"
	"github.com/jusunglee/railmap-go/internal/models"
	"github.com/jusunglee/railmap-go/internal/render"
	"github.com/jusunglee/railmap-go/internal/validation"
	"github.com/jusunglee/railmap-go/pkg/railmap"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeProtobuf = "application/x-protobuf"
	contentTypeDOT      = "text/vnd.graphviz"
	contentTypeSVG      = "image/svg+xml"

	// maxHoverBody bounds hover request bodies
	maxHoverBody = 64 << 10
)

// Handler handles HTTP requests
type Handler struct {
	client  railmap.Client
	started time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(client railmap.Client) *Handler {
	return &Handler{client: client, started: time.Now()}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/filters", h.handleFilters).Methods("GET")
	r.HandleFunc("/routes", h.handleRoutes).Methods("GET")
	r.HandleFunc("/elements", h.handleElements).Methods("GET")
	r.HandleFunc("/stylesheet", h.handleStylesheet).Methods("GET")
	r.HandleFunc("/stations", h.handleStations).Methods("GET")
	r.HandleFunc("/hover/node", h.handleNodeHover).Methods("POST")
	r.HandleFunc("/hover/edge", h.handleEdgeHover).Methods("POST")
	r.HandleFunc("/map.dot", h.handleDOT).Methods("GET")
	r.HandleFunc("/map.svg", h.handleSVG).Methods("GET")
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HoverResponse carries the tooltip text for the hovered element
type HoverResponse struct {
	Text string `json:"text"`
}

// HealthResponse reports liveness and what was loaded
type HealthResponse struct {
	Status  string          `json:"status"`
	Uptime  string          `json:"uptime"`
	Dataset railmap.Summary `json:"dataset"`
}

// filterQuery is the route filter accepted by the map endpoints
type filterQuery struct {
	Top string `validate:"omitempty,oneof=10 30 all"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"title":   "Railway Route Map",
		"filters": railmap.FilterOptions(),
		"summary": h.client.Summary(),
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleFilters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, railmap.FilterOptions())
}

func (h *Handler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	limit := railmap.DefaultLimit
	if top := r.URL.Query().Get("top"); top != "" {
		var err error
		if limit, err = aggregate.ParseLimit(top); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	routes, err := h.client.Routes(limit)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, h.wrap(routes))
}

func (h *Handler) handleElements(w http.ResponseWriter, r *http.Request) {
	e, ok := h.elements(w, r)
	if !ok {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), contentTypeProtobuf) {
		h.writeProtobuf(w, r, e)
		return
	}
	h.writeJSON(w, h.wrap(e))
}

func (h *Handler) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.wrap(h.client.Stylesheet()))
}

func (h *Handler) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.client.Stations()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, h.wrap(stations))
}

func (h *Handler) handleNodeHover(w http.ResponseWriter, r *http.Request) {
	var node *models.NodeData
	if !h.decodeHover(w, r, &node) {
		return
	}
	h.writeJSON(w, HoverResponse{Text: h.client.NodeHover(node)})
}

func (h *Handler) handleEdgeHover(w http.ResponseWriter, r *http.Request) {
	var edge *models.EdgeData
	if !h.decodeHover(w, r, &edge) {
		return
	}
	h.writeJSON(w, HoverResponse{Text: h.client.EdgeHover(edge)})
}

func (h *Handler) handleDOT(w http.ResponseWriter, r *http.Request) {
	e, ok := h.elements(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", contentTypeDOT)
	_, _ = io.WriteString(w, render.ToDOT(e, h.renderOptions()))
}

func (h *Handler) handleSVG(w http.ResponseWriter, r *http.Request) {
	e, ok := h.elements(w, r)
	if !ok {
		return
	}

	svg, err := render.RenderSVG(r.Context(), render.ToDOT(e, h.renderOptions()))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render map")
		h.writeError(w, "Failed to render map", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeSVG)
	_, _ = w.Write(svg)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Dataset: h.client.Summary(),
	})
}

// elements resolves the top filter and returns the matching element set. It
// writes the error response itself and reports false on failure.
func (h *Handler) elements(w http.ResponseWriter, r *http.Request) (models.Elements, bool) {
	q := filterQuery{Top: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("top")))}
	if err := validation.ValidateStruct(q); err != nil {
		h.writeError(w, "top must be one of 10, 30, all", http.StatusBadRequest)
		return models.Elements{}, false
	}

	limit := railmap.DefaultLimit
	if q.Top != "" {
		var err error
		if limit, err = aggregate.ParseLimit(q.Top); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return models.Elements{}, false
		}
	}

	e, err := h.client.Elements(limit)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return models.Elements{}, false
	}
	return e, true
}

// decodeHover reads a hover payload into dst. An empty body or a JSON null
// leaves dst nil, meaning nothing is hovered.
func (h *Handler) decodeHover(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxHoverBody))
	if err != nil {
		h.writeError(w, "Failed to read request body", http.StatusBadRequest)
		return false
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.writeError(w, "Invalid hover payload", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) renderOptions() render.Options {
	opts := render.Options{Labels: map[string]string{}, ShowTickets: true}
	stations, err := h.client.Stations()
	if err != nil {
		return opts
	}
	for _, s := range stations {
		if s.Label != nil {
			opts.Labels[s.Name] = s.Label.Label
		}
	}
	return opts
}

func (h *Handler) wrap(data interface{}) Response {
	response := Response{Data: data}
	if last := h.client.LastLoad(); !last.IsZero() {
		response.Updated = last.UTC().Format(time.RFC3339)
	}
	return response
}

func (h *Handler) writeProtobuf(w http.ResponseWriter, r *http.Request, e models.Elements) {
	b, err := encodeElements(e)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode elements as protobuf")
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeProtobuf)
	_, _ = w.Write(b)
}

// encodeElements converts elements to a google.protobuf.Struct with the same
// shape as the JSON body and marshals it deterministically.
func encodeElements(e models.Elements) ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(s)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	b, err := json.Marshal(data)
	if err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	_, _ = w.Write(append(b, '\n'))
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
