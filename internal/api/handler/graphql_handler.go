package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/api/graph"
	"github.com/ventascrm/sales-api/internal/api/metrics"
)

// HeaderIdempotencyKey lets a caller retry nuevoPedido without placing the
// order twice.
const HeaderIdempotencyKey = "Idempotency-Key"

// Executor runs a GraphQL document. *graphql.Schema satisfies it.
type Executor interface {
	Exec(ctx context.Context, query string, operationName string, variables map[string]interface{}) *graphql.Response
}

type GraphQLHandler struct {
	exec Executor
	log  zerolog.Logger
}

func NewGraphQLHandler(exec Executor, log zerolog.Logger) *GraphQLHandler {
	return &GraphQLHandler{exec: exec, log: log}
}

type graphqlRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve handles GET and POST /graphql. The status is always 200; failures
// are reported in the "errors" list of the body.
func (h *GraphQLHandler) Serve(c echo.Context) error {
	var req graphqlRequest
	if c.Request().Method == http.MethodGet {
		req.Query = c.QueryParam("query")
		req.OperationName = c.QueryParam("operationName")
		if vars := c.QueryParam("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return h.reject(c, "variables must be a JSON object")
			}
		}
	} else if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return h.reject(c, "request body must be a JSON object with a query")
	}
	if err := c.Validate(&req); err != nil {
		return h.reject(c, err.Error())
	}

	op := req.OperationName
	if op == "" {
		op = "anonymous"
	}

	ctx := graph.WithIdempotencyKey(c.Request().Context(), c.Request().Header.Get(HeaderIdempotencyKey))

	start := time.Now()
	resp := h.exec.Exec(ctx, req.Query, req.OperationName, req.Variables)
	metrics.GraphQLRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := "ok"
	if len(resp.Errors) > 0 {
		result = "error"
	}
	metrics.GraphQLRequestsTotal.WithLabelValues(op, result).Inc()

	return c.JSON(http.StatusOK, resp)
}

func (h *GraphQLHandler) reject(c echo.Context, msg string) error {
	metrics.GraphQLRequestsTotal.WithLabelValues("invalid", "error").Inc()
	h.log.Debug().Str("reason", msg).Msg("malformed graphql request")
	return c.JSON(http.StatusOK, &graphql.Response{
		Errors: []*gqlerrors.QueryError{{
			Message:    msg,
			Extensions: map[string]interface{}{"code": graph.CodeValidation},
		}},
	})
}
