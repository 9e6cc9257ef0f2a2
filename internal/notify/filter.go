package notify

import (
	"encoding/json"
	"strings"

	"github.com/google/cel-go/cel"
)

// Filter wraps a compiled CEL program evaluated against event payloads.
// The zero value (or an empty expression) matches everything.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles expr into a Filter. Event fields are exposed as typed
// variables plus the full payload as "json", e.g.:
//
//	orderType == "delivery" && total > 5000
//	type == "new_order" && customerName.startsWith("A")
func NewFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("type", cel.StringType),
		cel.Variable("status", cel.StringType),
		cel.Variable("orderType", cel.StringType),
		cel.Variable("customerName", cel.StringType),
		cel.Variable("contactNumber", cel.StringType),
		cel.Variable("dailyOrderId", cel.IntType),
		cel.Variable("total", cel.IntType),
		cel.Variable("json", cel.DynType),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	prog, err := env.Program(ast)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Enabled reports whether the filter holds a compiled expression.
func (f Filter) Enabled() bool { return f.enabled }

// Match evaluates the filter against one serialized event. Evaluation
// errors count as non-matches.
func (f Filter) Match(data []byte) bool {
	if !f.enabled {
		return true
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}
	out, _, err := f.prog.Eval(map[string]any{
		"type":          str(obj, "type"),
		"status":        str(obj, "status"),
		"orderType":     str(obj, "orderType"),
		"customerName":  str(obj, "customerName"),
		"contactNumber": str(obj, "contactNumber"),
		"dailyOrderId":  num(obj, "dailyOrderId"),
		"total":         num(obj, "total"),
		"json":          obj,
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

func str(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func num(obj map[string]any, key string) int64 {
	if f, ok := obj[key].(float64); ok {
		return int64(f)
	}
	return 0
}

// filterSink applies a Filter in front of another sink, dropping frames
// whose payload doesn't match. Drops are local to this subscriber.
type filterSink struct {
	inner  Sink
	filter Filter
}

// NewFilterSink wraps inner so only matching frames are forwarded.
func NewFilterSink(inner Sink, filter Filter) Sink {
	if !filter.enabled {
		return inner
	}
	return &filterSink{inner: inner, filter: filter}
}

func (s *filterSink) Send(f Frame) error {
	if !s.filter.Match(f.Data) {
		return nil
	}
	return s.inner.Send(f)
}
