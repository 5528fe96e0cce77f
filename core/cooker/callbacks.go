package cooker

import "recipe-cook-api/core/recipe"

// Callbacks receives the outcome of a cook. For one CookRecipe call either the
// success sequence (OnPreRecipeCook, OnRecipeCooked..., OnPostRecipeCooked)
// or a single OnRecipeError fires, never both.
//
// In async mode callbacks run on a pool goroutine. Calling
// CancelTranslationTasks from inside a callback is not supported.
type Callbacks interface {
	OnPreRecipeCook(r *recipe.Recipe, output interface{}, extras map[string]interface{})
	OnRecipeCooked(r *recipe.Recipe, output interface{}, extras map[string]interface{}, done bool)
	OnPostRecipeCooked(r *recipe.Recipe, output interface{}, extras map[string]interface{})
	OnRecipeError(r *recipe.Recipe, err error, msg string)
}

// CallbackFuncs adapts plain functions to Callbacks. Nil fields are skipped.
type CallbackFuncs struct {
	PreCook  func(r *recipe.Recipe, output interface{}, extras map[string]interface{})
	Cooked   func(r *recipe.Recipe, output interface{}, extras map[string]interface{}, done bool)
	PostCook func(r *recipe.Recipe, output interface{}, extras map[string]interface{})
	Error    func(r *recipe.Recipe, err error, msg string)
}

func (f CallbackFuncs) OnPreRecipeCook(r *recipe.Recipe, output interface{}, extras map[string]interface{}) {
	if f.PreCook != nil {
		f.PreCook(r, output, extras)
	}
}

func (f CallbackFuncs) OnRecipeCooked(r *recipe.Recipe, output interface{}, extras map[string]interface{}, done bool) {
	if f.Cooked != nil {
		f.Cooked(r, output, extras, done)
	}
}

func (f CallbackFuncs) OnPostRecipeCooked(r *recipe.Recipe, output interface{}, extras map[string]interface{}) {
	if f.PostCook != nil {
		f.PostCook(r, output, extras)
	}
}

func (f CallbackFuncs) OnRecipeError(r *recipe.Recipe, err error, msg string) {
	if f.Error != nil {
		f.Error(r, err, msg)
	}
}
