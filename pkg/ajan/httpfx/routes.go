package httpfx

import (
	"net/http"
)

type RouteSpecResponse struct {
	Model      any
	StatusCode int
	HasModel   bool
}

type RouteSpec struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string

	Responses  []RouteSpecResponse
	Deprecated bool
}

type Route struct {
	Pattern        string
	Handlers       []Handler
	MuxHandlerFunc func(http.ResponseWriter, *http.Request)

	Spec RouteSpec
}

func (r *Route) HasOperationID(operationID string) *Route {
	r.Spec.OperationID = operationID

	return r
}

func (r *Route) HasSummary(summary string) *Route {
	r.Spec.Summary = summary

	return r
}

func (r *Route) HasDescription(description string) *Route {
	r.Spec.Description = description

	return r
}

func (r *Route) HasTags(tags ...string) *Route {
	r.Spec.Tags = tags

	return r
}

func (r *Route) IsDeprecated() *Route {
	r.Spec.Deprecated = true

	return r
}

func (r *Route) HasResponse(statusCode int) *Route {
	r.Spec.Responses = append(r.Spec.Responses, RouteSpecResponse{
		StatusCode: statusCode,
		HasModel:   false,
		Model:      nil,
	})

	return r
}

func (r *Route) HasResponseModel(statusCode int, model any) *Route {
	r.Spec.Responses = append(r.Spec.Responses, RouteSpecResponse{
		StatusCode: statusCode,
		HasModel:   true,
		Model:      model,
	})

	return r
}
