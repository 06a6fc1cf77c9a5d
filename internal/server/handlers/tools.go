package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/wooshiiltd/semrush-mcp/internal/errors"
	"github.com/wooshiiltd/semrush-mcp/internal/tools"
)

// maxToolRequestBytes bounds tool call bodies; argument maps are tiny.
const maxToolRequestBytes = 64 * 1024

// ToolDescriptor is the wire form of one registered tool.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolListResponse lists the registered tools in registration order.
type ToolListResponse struct {
	Tools []ToolDescriptor `json:"tools"`
}

// ToolCallRequest carries the argument map for one tool invocation.
type ToolCallRequest struct {
	Arguments tools.Arguments `json:"arguments"`
}

// ToolCallResponse wraps the raw report payload of a successful call.
type ToolCallResponse struct {
	Result any `json:"result"`
}

// ToolsHandler serves the tool catalog and tool invocations.
type ToolsHandler struct {
	registry *tools.Registry
}

// NewToolsHandler creates a handler backed by the given registry.
func NewToolsHandler(registry *tools.Registry) *ToolsHandler {
	return &ToolsHandler{registry: registry}
}

// ListHandler handles GET /tools.
func (h *ToolsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	listed := h.registry.List()

	response := ToolListResponse{Tools: make([]ToolDescriptor, 0, len(listed))}
	for _, tool := range listed {
		response.Tools = append(response.Tools, ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// CallHandler handles POST /tools/{tool}. The body is optional; a missing
// or empty body invokes the tool with no arguments.
func (h *ToolsHandler) CallHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")

	var request ToolCallRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxToolRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, r, apperrors.NewInvalidInputError("request body too large"))
			return
		}
		respondWithError(w, r, apperrors.NewInvalidInputError("unable to read request body"))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			respondWithError(w, r, apperrors.NewInvalidInputError("request body must be a JSON object with an arguments member"))
			return
		}
	}

	result, err := h.registry.Execute(r.Context(), name, request.Arguments)
	if err != nil {
		apperrors.RespondWithToolError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ToolCallResponse{Result: result})
}
