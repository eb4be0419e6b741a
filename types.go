package contexts

import "time"

// EvalContext carries inputs needed when evaluating an expression against a
// resolved view.
type EvalContext struct {
	Env      map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx EvalContext) withDefaultNow() EvalContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx EvalContext) withDefaultMaps() EvalContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) withDefaults() EvalContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// Evaluator executes expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// ViewOption configures a resolved View.
type ViewOption func(*viewConfig)

type viewConfig struct {
	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       EvaluatorLogger
}

func applyViewOptions(opts []ViewOption) viewConfig {
	cfg := viewConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures the evaluator used by a View.
func WithEvaluator(e Evaluator) ViewOption {
	return func(cfg *viewConfig) {
		cfg.evaluator = e
	}
}
