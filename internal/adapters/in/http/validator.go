package http

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match doc before they reach
// a handler. Paths the document does not describe pass through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         false,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return writeError(c, http.StatusInternalServerError, kindStore, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return writeError(c, http.StatusBadRequest, kindValidation, validationMessage(validationErr))
			}

			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Error()
	}
	return err.Error()
}
