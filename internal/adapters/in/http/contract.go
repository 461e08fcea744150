package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var contractYAML []byte

// Contract is the parsed API description shared by request validation and
// the swagger UI.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

// LoadContract parses and validates the embedded openapi.yaml.
func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contractYAML)
	if err != nil {
		return nil, fmt.Errorf("load api contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate api contract: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build contract router: %w", err)
	}

	return &Contract{doc: doc, router: router}, nil
}

// ValidateRequests rejects requests that do not match the contract with 400.
// Routes the contract does not describe (/metrics, /swagger) pass through.
// Authentication is left to the key auth middleware.
func (c *Contract) ValidateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := c.router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return &apiError{Status: http.StatusBadRequest, Detail: validationDetail(err), Cause: err}
			}

			return next(ctx)
		}
	}
}

func validationDetail(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			return fmt.Sprintf("invalid parameter %s: %s", reqErr.Parameter.Name, firstLine(reqErr.Err))
		case reqErr.RequestBody != nil:
			return "invalid request body: " + firstLine(reqErr.Err)
		}
	}
	return "invalid request: " + firstLine(err)
}

func firstLine(err error) string {
	if err == nil {
		return "malformed"
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

var registerDocsOnce sync.Once

type contractDoc struct {
	json string
}

func (d contractDoc) ReadDoc() string {
	return d.json
}

// RegisterDocs publishes the contract to swag so echo-swagger serves it as
// doc.json. Only the first call registers.
func (c *Contract) RegisterDocs() error {
	raw, err := c.doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal api contract: %w", err)
	}

	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, contractDoc{json: string(raw)})
	})
	return nil
}
