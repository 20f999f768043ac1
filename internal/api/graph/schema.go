// Package graph holds the GraphQL schema and its resolvers.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

//go:embed schema.graphql
var schemaSDL string

const defaultMaxDepth = 12

// NewSchema parses the schema and binds it to r. Query depth is capped at
// maxDepth (defaultMaxDepth when not positive).
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	s, err := graphql.ParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxDepth),
		graphql.Logger(panicLogger{log: r.log}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return s, nil
}

// panicLogger routes resolver panics into zerolog.
type panicLogger struct {
	log zerolog.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error().Interface("panic", value).Msg("graphql resolver panic")
}
