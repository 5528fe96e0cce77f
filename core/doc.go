// Package core contains the recipe cooking engine and the services built on
// it. Nothing under core depends on the HTTP layer.
//
// - recipe: recipe documents, tags and parsing from JSON or YAML
// - parsers: json, xml and optional rss, html and gjson document parsers
// - datapath: match-list paths, value lookup and query parameter injection
// - translation: translator and reflection based model population
// - cooker: the DynamicParser engine, its modes and callbacks
// - content: the Content and ContentContainer models and their translators
// - cook: request/response cooking with named recipes and result caching
// - workers: the bounded pool behind async cooks
// - errors: the error taxonomy and Kind labels
// - interfaces: contracts for cache, HTTP, logging and recipe storage
//
// # Usage Example
//
//	engine := cooker.New(cooker.WithWorkers(4))
//	defer engine.Close()
//	content.Register(engine)
//
//	r, err := recipe.Parse(recipeJSON)
//	if err != nil {
//	    return err
//	}
//	models, err := engine.Produce(ctx, r, document, nil, false)
package core
