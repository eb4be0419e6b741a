package contexts

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contexts/layering"
)

// ErrNoEvaluator indicates that a View could not produce an evaluator.
var ErrNoEvaluator = errors.New("contexts: evaluator not configured")

// View is a flat, precedence-resolved snapshot of a string-keyed stack,
// suitable for expression evaluation or template rendering. Resolving does
// not consume or alias the source stack; later stack mutation leaves the
// View unchanged.
type View struct {
	id  string
	env map[string]any
	cfg viewConfig
}

// Resolve snapshots stack into a View. Every key maps to the value Get would
// return; nested values are taken wholesale from the winning context.
func Resolve[V any](stack *Stack[string, V], opts ...ViewOption) *View {
	env := map[string]any{}
	if stack == nil {
		return newView(env, opts)
	}
	// Internal order is root-first, so shallower contexts overwrite last.
	for _, ctx := range stack.layers {
		ctx.Range(func(key string, value V) bool {
			env[key] = layering.Clone(value)
			return true
		})
	}
	return newView(env, opts)
}

// ResolveDeep snapshots stack into a View merging nested maps and structs
// field by field across contexts, front layers winning, via
// layering.MergeLayers. Use it for configuration overlays whose values are
// themselves structured.
func ResolveDeep[V any](stack *Stack[string, V], opts ...ViewOption) *View {
	snapshots := make([]map[string]any, 0, stack.Len())
	// MergeLayers wants strongest first.
	for i := 0; i < stack.Len(); i++ {
		snapshot := map[string]any{}
		stack.at(i).Range(func(key string, value V) bool {
			snapshot[key] = value
			return true
		})
		snapshots = append(snapshots, snapshot)
	}
	env := layering.MergeLayers(snapshots...)
	if env == nil {
		env = map[string]any{}
	}
	return newView(env, opts)
}

// NewView wraps an already-resolved environment. The map is taken by
// ownership.
func NewView(env map[string]any, opts ...ViewOption) *View {
	if env == nil {
		env = map[string]any{}
	}
	return newView(env, opts)
}

func newView(env map[string]any, opts []ViewOption) *View {
	return &View{
		id:  uuid.NewString(),
		env: env,
		cfg: applyViewOptions(opts),
	}
}

// ID returns the snapshot identifier assigned at resolution time.
func (v *View) ID() string {
	if v == nil {
		return ""
	}
	return v.id
}

// Env returns a copy of the resolved environment.
func (v *View) Env() map[string]any {
	if v == nil {
		return nil
	}
	out := make(map[string]any, len(v.env))
	for key, value := range v.env {
		out[key] = value
	}
	return out
}

// Get returns the resolved value for key.
func (v *View) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	value, ok := v.env[key]
	return value, ok
}

// Evaluate executes expr against the resolved environment using the
// configured evaluator, defaulting to the expr engine.
func (v *View) Evaluate(expr string) (any, error) {
	return v.EvaluateWith(EvalContext{}, expr)
}

// EvaluateWith executes expr using ctx, falling back to the resolved
// environment when ctx.Env is nil.
func (v *View) EvaluateWith(ctx EvalContext, expr string) (any, error) {
	if expr == "" {
		return nil, fmt.Errorf("contexts: expression must not be empty")
	}
	evaluator, err := v.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	if ctx.Env == nil {
		ctx.Env = v.env
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError("", expr, v.id, evalErr)
	v.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:     engine,
		Expr:       expr,
		SnapshotID: v.id,
		Duration:   duration,
		Err:        evalErr,
	})
	if evalErr != nil {
		return nil, evalErr
	}
	return value, nil
}

func (v *View) resolveEvaluator() (Evaluator, error) {
	if v.cfg.evaluator != nil {
		return v.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := v.cfg.programCache; cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := v.cfg.functions; registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	v.cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func (v *View) evaluatorLogger() EvaluatorLogger {
	if v.cfg.logger != nil {
		return v.cfg.logger
	}
	return noopEvaluatorLogger{}
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*contexts.exprEvaluator":
		return "expr"
	case "*contexts.celEvaluator":
		return "cel"
	case "*contexts.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
