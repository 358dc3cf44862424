// Package graph exposes a read-only GraphQL view of the catalog for
// storefront clients that want to shape their own queries.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/repositories"
	"github.com/shashiranjanraj/drivehub/pkg/response"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var carType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Car",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int},
		"title":        &graphql.Field{Type: graphql.String},
		"brand":        &graphql.Field{Type: graphql.String},
		"model": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if car, ok := p.Source.(models.Car); ok {
					return car.CarModel, nil
				}
				return nil, nil
			},
		},
		"year":         &graphql.Field{Type: graphql.Int},
		"fuel":         &graphql.Field{Type: graphql.String},
		"mileage":      &graphql.Field{Type: graphql.Int},
		"transmission": &graphql.Field{Type: graphql.String},
		"image":        &graphql.Field{Type: graphql.String},
		"images":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"salePrice":    &graphql.Field{Type: graphql.Float},
		"rentPrice":    &graphql.Field{Type: graphql.Float},
		"status":       &graphql.Field{Type: graphql.String},
		"withDriver":   &graphql.Field{Type: graphql.Boolean},
		"category": &graphql.Field{
			Type: categoryType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if car, ok := p.Source.(models.Car); ok && car.Category != nil {
					return *car.Category, nil
				}
				return nil, nil
			},
		},
	},
})

// NewSchema builds the catalog query schema.
func NewSchema() (graphql.Schema, error) {
	cars := repositories.NewCarRepository()
	categories := repositories.NewCategoryRepository()

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"cars": &graphql.Field{
				Type: graphql.NewList(carType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
					"status":   &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 12},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.CarFilter{
						Page:  p.Args["page"].(int),
						Limit: p.Args["limit"].(int),
					}
					if v, ok := p.Args["category"].(int); ok {
						filter.CategoryID = uint(v)
					}
					if v, ok := p.Args["status"].(string); ok {
						filter.Status = v
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					if v, ok := p.Args["sort"].(string); ok {
						filter.Sort = v
					}
					list, _, err := cars.Filter(filter)
					return list, err
				},
			},
			"car": &graphql.Field{
				Type: carType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return cars.FindByID(uint(p.Args["id"].(int)))
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categories.All()
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler serves POSTed GraphQL queries against the catalog schema.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid GraphQL request")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
