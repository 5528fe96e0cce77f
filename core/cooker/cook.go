// ABOUTME: Recipe validation, query execution, node population and callback delivery
// ABOUTME: Population completes before delivery so an error is reported exactly once

package cooker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"recipe-cook-api/core/datapath"
	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
	"recipe-cook-api/core/translation"
	"recipe-cook-api/core/workers"
)

// Query result shapes accepted by the queryResultType tag.
const (
	ResultTypeList   = "[]$"
	ResultTypeObject = "{}"
)

// ValidateRecipe checks that every required tag is present and non-empty.
// Referenced translators and models are resolved at cook time.
func (e *Engine) ValidateRecipe(r *recipe.Recipe) (bool, error) {
	if r == nil || r.Len() == 0 {
		return false, &errors.InvalidParserRecipeError{Reason: "recipe cannot be nil or empty"}
	}
	for _, tag := range recipe.RequiredTags {
		if tag == recipe.TagMatchList {
			if r.GetStringList(tag) == nil {
				return false, &errors.InvalidParserRecipeError{Reason: "recipe is missing field " + tag}
			}
			continue
		}
		if r.GetString(tag) == "" {
			return false, &errors.InvalidParserRecipeError{Reason: "recipe is missing field " + tag}
		}
	}
	switch r.GetString(recipe.TagModelType) {
	case recipe.ModelTypeSingle, recipe.ModelTypeArray:
	default:
		return false, &errors.InvalidParserRecipeError{
			Reason: fmt.Sprintf("modelType must be %q or %q, got %q", recipe.ModelTypeSingle, recipe.ModelTypeArray, r.GetString(recipe.TagModelType)),
		}
	}
	return true, nil
}

// CookRecipe runs r against data and reports through cb. A nil callback or an
// invalid recipe is returned as an error; an invalid recipe is also reported
// once through OnRecipeError. Every other failure goes to OnRecipeError only.
//
// In async mode the cook is queued on the worker pool and CookRecipe returns
// immediately.
func (e *Engine) CookRecipe(r *recipe.Recipe, data string, cb Callbacks, extras map[string]interface{}, params []string) error {
	if cb == nil {
		return &errors.IllegalArgumentError{Argument: "callbacks", Message: "callbacks cannot be nil"}
	}
	if _, err := e.ValidateRecipe(r); err != nil {
		cb.OnRecipeError(r, err, err.Error())
		return err
	}

	m := e.snapshot()
	if !m.async {
		e.cook(context.Background(), r, data, params, extras, m, cb, func(fn func()) bool {
			fn()
			return true
		})
		return nil
	}

	pool, err := e.workerPool()
	if err != nil {
		cb.OnRecipeError(r, err, "async cooking is unavailable")
		return nil
	}

	t := e.tasks.add()
	job := &workers.Job{
		Context: t.ctx,
		Run: func(ctx context.Context) {
			defer e.tasks.remove(t)
			e.cook(ctx, r, data, params, extras, m, cb, t.deliver)
		},
	}
	if err := pool.Submit(job); err != nil {
		e.tasks.remove(t)
		e.logger.Error("Failed to queue recipe cook", map[string]interface{}{
			"task":  t.id,
			"error": err.Error(),
		})
		cb.OnRecipeError(r, err, "async cooking queue rejected the recipe")
	}
	return nil
}

// cook produces the models and hands the callback sequence to deliver. A
// cancelled context suppresses delivery.
func (e *Engine) cook(ctx context.Context, r *recipe.Recipe, data string, params []string, extras map[string]interface{}, m mode, cb Callbacks, deliver func(func()) bool) {
	start := time.Now()
	format := r.GetString(recipe.TagFormat)
	defer func() {
		cookDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	}()

	models, err := e.Produce(ctx, r, data, params, m.multithread)
	if ctx.Err() != nil {
		cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
		return
	}
	if err != nil {
		cooksTotal.WithLabelValues(format, outcomeError).Inc()
		e.logger.Warn("Recipe cook failed", map[string]interface{}{
			"format": format,
			"model":  r.GetString(recipe.TagModel),
			"kind":   errors.Kind(err),
			"error":  err.Error(),
		})
		deliver(func() { cb.OnRecipeError(r, err, errorMessage(err)) })
		return
	}

	if !deliver(func() { cb.OnPreRecipeCook(r, nil, extras) }) {
		cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
		return
	}

	switch {
	case m.batch:
		if !deliver(func() { cb.OnRecipeCooked(r, models, extras, true) }) {
			cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
			return
		}
	case len(models) == 0:
		if !deliver(func() { cb.OnRecipeCooked(r, nil, extras, true) }) {
			cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
			return
		}
	default:
		for i, model := range models {
			done := i == len(models)-1
			if !deliver(func() { cb.OnRecipeCooked(r, model, extras, done) }) {
				cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
				return
			}
		}
	}

	if !deliver(func() { cb.OnPostRecipeCooked(r, models, extras) }) {
		cooksTotal.WithLabelValues(format, outcomeCancelled).Inc()
		return
	}

	modelsProduced.Add(float64(len(models)))
	cooksTotal.WithLabelValues(format, outcomeSuccess).Inc()
	e.logger.Debug("Recipe cooked", map[string]interface{}{
		"format":   format,
		"model":    r.GetString(recipe.TagModel),
		"models":   len(models),
		"duration": time.Since(start).String(),
	})
}

// Produce runs a recipe to completion without callbacks and returns the
// models in query order. Models rejected by translator validation are left
// out.
func (e *Engine) Produce(ctx context.Context, r *recipe.Recipe, data string, params []string, multithread bool) ([]interface{}, error) {
	job, err := e.prepare(r, data, params)
	if err != nil {
		return nil, err
	}
	if multithread && len(job.nodes) > 1 {
		return e.populateParallel(ctx, job)
	}

	models := make([]interface{}, 0, len(job.nodes))
	for i, node := range job.nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		model, err := job.populator.Populate(node, job.plan)
		if err != nil {
			return nil, err
		}
		if model == nil {
			e.dropped(r, i)
			continue
		}
		models = append(models, model)
	}
	return models, nil
}

func (e *Engine) populateParallel(ctx context.Context, job *cookJob) ([]interface{}, error) {
	results := make([]interface{}, len(job.nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, node := range job.nodes {
		i, node := i, node
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			model, err := job.populator.Populate(node, job.plan)
			if err != nil {
				return err
			}
			results[i] = model
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	models := make([]interface{}, 0, len(results))
	for i, model := range results {
		if model == nil {
			e.dropped(job.recipe, i)
			continue
		}
		models = append(models, model)
	}
	return models, nil
}

func (e *Engine) dropped(r *recipe.Recipe, index int) {
	modelsDropped.Inc()
	e.logger.Warn("Model failed validation and was dropped", map[string]interface{}{
		"translator": r.GetString(recipe.TagTranslator),
		"node":       index,
	})
}

// cookJob is everything resolved before population starts.
type cookJob struct {
	recipe    *recipe.Recipe
	nodes     []*domain.Node
	plan      *translation.Plan
	populator translation.ModelPopulator
}

// prepare validates the recipe, runs the query and resolves the population
// strategy, in that order.
func (e *Engine) prepare(r *recipe.Recipe, data string, params []string) (*cookJob, error) {
	if _, err := e.ValidateRecipe(r); err != nil {
		return nil, err
	}
	if cooker := r.GetString(recipe.TagCooker); cooker != Name {
		return nil, &errors.InvalidParserRecipeError{
			Reason: fmt.Sprintf("cooker %q does not match %s", cooker, Name),
		}
	}

	format := r.GetString(recipe.TagFormat)
	parser, err := e.GetParserImpl(format)
	if err != nil {
		return nil, err
	}

	query := r.GetString(recipe.TagQuery)
	if datapath.HasInjectionTokens(query) {
		query, err = datapath.InjectParameters(query, params)
		if err != nil {
			return nil, err
		}
	}

	nodes, err := parser.ParseWithQuery(data, query)
	if err != nil {
		return nil, err
	}
	if err := checkResultType(r.GetString(recipe.TagQueryResultType), format, query, nodes); err != nil {
		return nil, err
	}
	nodes = NormalizeResults(nodes)

	populator, err := translation.NewPopulator(r.GetString(recipe.TagTranslator), e.translators, e.models)
	if err != nil {
		return nil, err
	}
	plan, err := translation.NewPlan(r)
	if err != nil {
		return nil, err
	}
	if _, reflective := populator.(*translation.ReflectivePopulator); reflective {
		if _, err := e.models.Lookup(plan.Model); err != nil {
			return nil, err
		}
	}

	return &cookJob{recipe: r, nodes: nodes, plan: plan, populator: populator}, nil
}

func checkResultType(hint, format, query string, nodes []*domain.Node) error {
	switch hint {
	case "", ResultTypeList, "[]", "list":
		return nil
	case ResultTypeObject, "map", "object":
		if len(nodes) != 1 || !nodes[0].IsMap() {
			return &errors.InvalidQueryError{
				Format: format,
				Query:  query,
				Cause:  fmt.Errorf("expected a single object, query returned %d nodes", len(nodes)),
			}
		}
		return nil
	}
	return &errors.InvalidParserRecipeError{Reason: fmt.Sprintf("unknown queryResultType %q", hint)}
}

// NormalizeResults turns query results into the map nodes population works
// on. Lists are flattened one level, scalars are wrapped as
// {"<Type>Key": value} and repeated maps are dropped.
func NormalizeResults(nodes []*domain.Node) []*domain.Node {
	flat := make([]*domain.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsList() {
			flat = append(flat, n.Items()...)
			continue
		}
		flat = append(flat, n)
	}

	out := make([]*domain.Node, 0, len(flat))
	seen := make(map[string][]*domain.Node)
	for _, n := range flat {
		if !n.IsMap() {
			wrapped := domain.NewMap()
			wrapped.Set(wrapKey(n), n)
			out = append(out, wrapped)
			continue
		}
		key := fingerprint(n)
		duplicate := false
		for _, prev := range seen[key] {
			if prev.Equal(n) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen[key] = append(seen[key], n)
		out = append(out, n)
	}
	return out
}

func wrapKey(n *domain.Node) string {
	if n.IsList() {
		return "ListKey"
	}
	return n.ScalarType() + "Key"
}

// fingerprint is order-insensitive: encoding/json sorts map keys.
func fingerprint(n *domain.Node) string {
	b, err := json.Marshal(n.Interface())
	if err != nil {
		return n.String()
	}
	return string(b)
}

// errorMessage is the human readable message passed to OnRecipeError.
func errorMessage(err error) string {
	switch errors.Kind(err) {
	case "invalid_recipe":
		return "Recipe is not valid: " + err.Error()
	case "parser_not_found":
		return "No parser registered for the recipe format: " + err.Error()
	case "translator_not_found":
		return "Translator not registered with the cooker: " + err.Error()
	case "value_not_found":
		return "Could not find value by following path: " + err.Error()
	case "no_such_field":
		return "Could not find specified field while creating object: " + err.Error()
	case "class_not_found":
		return "Could not find expected model class: " + err.Error()
	case "translation":
		return "Error translating objects: " + err.Error()
	case "invalid_data", "invalid_query":
		return "Error parsing input: " + err.Error()
	case "malformed_injection":
		return "Query parameters do not match the recipe: " + err.Error()
	}
	return err.Error()
}
