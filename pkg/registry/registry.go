// pkg/registry/registry.go
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/metrics"
	"notch-chatbot/internal/common/validation"
)

// Handler runs a tool on raw JSON arguments that already passed the input schema.
type Handler func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Tool is a named, schema-described function the agent may call.
type Tool struct {
	Name         string
	DisplayName  string
	Description  string
	Category     string
	Tags         []string
	InputSchema  validation.JSONSchema
	OutputSchema *validation.JSONSchema
	ErrorCodes   []string
	Handler      Handler
}

// Typed adapts a function over a request struct into a Handler.
func Typed[In any, Out any](fn func(ctx context.Context, in In) (Out, error)) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var in In
		if len(bytes.TrimSpace(args)) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("decode arguments: %w", err)
			}
		}
		return fn(ctx, in)
	}
}

type entry struct {
	tool   Tool
	input  *validation.Validator
	output *validation.Validator
}

// Registry holds tools checked at registration time. Register and Invoke
// are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]*entry
	order   []string
	version string
	logger  logger.Logger
}

func New(version string, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Registry{
		tools:   make(map[string]*entry),
		version: version,
		logger:  log,
	}
}

// Register validates t and adds it. Every problem is reported as
// TOOL_REGISTRATION_FAILED.
func (r *Registry) Register(t Tool) error {
	if err := validation.ValidateToolName(t.Name); err != nil {
		return apperrors.NewToolRegistrationFailedError(t.Name, err.Error())
	}
	if strings.TrimSpace(t.Description) == "" {
		return apperrors.NewToolRegistrationFailedError(t.Name, "description is required")
	}
	if t.Handler == nil {
		return apperrors.NewToolRegistrationFailedError(t.Name, "handler is required")
	}
	if t.InputSchema.Type != "object" {
		return apperrors.NewToolRegistrationFailedError(t.Name, fmt.Sprintf("input schema must be an object, got %q", t.InputSchema.Type))
	}

	input, err := validation.Compile(t.InputSchema)
	if err != nil {
		return apperrors.NewToolRegistrationFailedError(t.Name, "input schema: "+err.Error())
	}
	e := &entry{tool: t, input: input}
	if t.OutputSchema != nil {
		if e.output, err = validation.Compile(*t.OutputSchema); err != nil {
			return apperrors.NewToolRegistrationFailedError(t.Name, "output schema: "+err.Error())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return apperrors.NewToolRegistrationFailedError(t.Name, "already registered")
	}
	r.tools[t.Name] = e
	r.order = append(r.order, t.Name)

	r.logger.Debug("Tool registered", map[string]interface{}{"tool": t.Name, "category": t.Category})
	return nil
}

// MustRegister panics on registration errors. For wiring built-in tools.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Invoke validates args, runs the tool and returns its JSON result.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	r.mu.RLock()
	e, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		metrics.ToolInvocations.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		return nil, apperrors.NewToolNotFoundError(name)
	}

	if len(bytes.TrimSpace(args)) == 0 || string(bytes.TrimSpace(args)) == "null" {
		args = json.RawMessage("{}")
	}

	if res := e.input.ValidateJSON(args); !res.Valid {
		metrics.ToolInvocations.WithLabelValues(name, metrics.OutcomeInvalid).Inc()
		return nil, apperrors.NewToolArgumentsInvalidError(name, res.GetErrorMessages())
	}

	start := time.Now()
	result, err := e.tool.Handler(ctx, args)
	metrics.ToolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ToolInvocations.WithLabelValues(name, metrics.OutcomeError).Inc()
		if apperrors.HasCode(err, apperrors.ErrCodeToolArgumentsInvalid) {
			return nil, err
		}
		return nil, apperrors.NewToolExecutionFailedError(name, err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		metrics.ToolInvocations.WithLabelValues(name, metrics.OutcomeError).Inc()
		return nil, apperrors.NewToolExecutionFailedError(name, fmt.Errorf("encode result: %w", err))
	}
	if e.output != nil {
		if res := e.output.ValidateJSON(out); !res.Valid {
			metrics.ToolInvocations.WithLabelValues(name, metrics.OutcomeError).Inc()
			return nil, apperrors.NewToolExecutionFailedError(name,
				fmt.Errorf("result does not match output schema: %s", strings.Join(res.GetErrorMessages(), "; ")))
		}
	}

	metrics.ToolInvocations.WithLabelValues(name, metrics.OutcomeSuccess).Inc()
	r.logger.Debug("Tool invoked", map[string]interface{}{
		"tool":       name,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return out, nil
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Definitions returns descriptors in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, definitionOf(r.tools[name]))
	}
	return defs
}

// Catalog exports every tool, sorted by category then name.
func (r *Registry) Catalog() Catalog {
	defs := r.Definitions()
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].Category != defs[j].Category {
			return defs[i].Category < defs[j].Category
		}
		return defs[i].Name < defs[j].Name
	})
	return Catalog{
		Version:     r.version,
		LastUpdated: time.Now().UTC().Format("2006-01-02"),
		Tools:       defs,
	}
}

func definitionOf(e *entry) Definition {
	in, _ := json.Marshal(e.tool.InputSchema)
	def := Definition{
		Name:        e.tool.Name,
		DisplayName: e.tool.DisplayName,
		Description: e.tool.Description,
		Category:    e.tool.Category,
		InputSchema: in,
		ErrorCodes:  append([]string(nil), e.tool.ErrorCodes...),
		Tags:        append([]string(nil), e.tool.Tags...),
	}
	if e.tool.OutputSchema != nil {
		def.OutputSchema, _ = json.Marshal(*e.tool.OutputSchema)
	}
	return def
}

// LoadCatalog reads a catalog previously written with WriteCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// WriteCatalog writes c as indented JSON.
func WriteCatalog(path string, c Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Diff lists tools added, removed or changed between two catalogs.
func Diff(old, current Catalog) []string {
	oldByName := make(map[string]Definition, len(old.Tools))
	for _, d := range old.Tools {
		oldByName[d.Name] = d
	}

	var changes []string
	seen := make(map[string]bool, len(current.Tools))
	for _, d := range current.Tools {
		seen[d.Name] = true
		prev, ok := oldByName[d.Name]
		switch {
		case !ok:
			changes = append(changes, "added "+d.Name)
		case prev.Description != d.Description || !jsonEqual(prev.InputSchema, d.InputSchema) || !jsonEqual(prev.OutputSchema, d.OutputSchema):
			changes = append(changes, "changed "+d.Name)
		}
	}
	for _, d := range old.Tools {
		if !seen[d.Name] {
			changes = append(changes, "removed "+d.Name)
		}
	}
	return changes
}

func jsonEqual(a, b json.RawMessage) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	var va, vb interface{}
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return bytes.Equal(a, b)
	}
	ca, _ := json.Marshal(va)
	cb, _ := json.Marshal(vb)
	return bytes.Equal(ca, cb)
}
