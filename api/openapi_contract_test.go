package api

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.cscs.ch/openchami/chamicore-catalog/pkg/types"
)

func TestOpenAPIContract_ParsesAndHasRequiredPaths(t *testing.T) {
	doc := decodeOpenAPI(t)
	assert.Equal(t, "3.0.3", asString(doc["openapi"]))

	paths := mapAt(t, doc, "paths")
	for _, path := range []string{
		"/health",
		"/readiness",
		"/version",
		"/metrics",
		"/api/openapi.yaml",
		"/login",
		"/fetch",
		"/api/books",
		"/api/books/search",
		"/api/books/{id}",
		"/api/students",
		"/api/students/major/{major}",
		"/api/students/filter",
		"/api/students/{id}",
		"/api/menu",
		"/api/menu/category/{category}",
		"/api/menu/available",
		"/api/menu/search",
		"/api/menu/{id}",
		"/api/menu/{id}/availability",
		"/api/products",
		"/api/products/category/{category}",
		"/api/products/brand/{brand}",
		"/api/products/search",
		"/api/products/price-range",
		"/api/products/in-stock",
		"/api/products/{id}",
		"/api/products/{id}/stock",
		"/api/tasks",
		"/api/tasks/status",
		"/api/tasks/priority/{priority}",
		"/api/tasks/{id}",
		"/api/tasks/{id}/complete",
		"/api/users",
		"/api/users/search/username/{username}",
		"/api/users/search/country/{country}",
		"/api/users/search/age-range",
		"/api/users/active",
		"/api/users/inactive",
		"/api/users/{id}",
		"/api/users/{id}/activate",
		"/api/users/{id}/deactivate",
	} {
		assert.Containsf(t, paths, path, "missing path %s", path)
	}
}

func TestOpenAPIContract_MethodsMatchRoutes(t *testing.T) {
	doc := decodeOpenAPI(t)
	paths := mapAt(t, doc, "paths")

	expected := map[string][]string{
		"/api/books/{id}":             {"get", "delete"},
		"/api/students/{id}":          {"get", "put", "delete"},
		"/api/menu/{id}":              {"get", "delete"},
		"/api/menu/{id}/availability": {"put"},
		"/api/products/{id}":          {"get", "put", "delete"},
		"/api/products/{id}/stock":    {"patch"},
		"/api/tasks/{id}/complete":    {"patch"},
		"/api/users/{id}":             {"get", "put", "delete"},
		"/fetch":                      {"get", "post"},
	}
	for path, methods := range expected {
		item := mapValue(t, paths[path], path)
		var got []string
		for key := range item {
			if key != "parameters" {
				got = append(got, key)
			}
		}
		assert.ElementsMatchf(t, methods, got, "methods on %s", path)
	}
}

func TestOpenAPIContract_SchemasMatchWireTypes(t *testing.T) {
	doc := decodeOpenAPI(t)
	schemas := mapAt(t, mapAt(t, doc, "components"), "schemas")

	for name, v := range map[string]any{
		"Book":        types.Book{},
		"Student":     types.Student{},
		"MenuItem":    types.MenuItem{},
		"Product":     types.Product{},
		"Task":        types.Task{},
		"UserProfile": types.UserProfile{},
	} {
		t.Run(name, func(t *testing.T) {
			props := mapAt(t, mapAt(t, schemas, name), "properties")
			var got []string
			for key := range props {
				got = append(got, key)
			}
			assert.ElementsMatch(t, jsonFields(v), got)
		})
	}
}

func TestOpenAPIContract_EnvelopeFields(t *testing.T) {
	doc := decodeOpenAPI(t)
	schemas := mapAt(t, mapAt(t, doc, "components"), "schemas")

	want := jsonFields(types.APIResponse[any]{})
	for _, name := range []string{"UserEnvelope", "UserListEnvelope"} {
		assert.ElementsMatch(t, want, stringSliceAt(t, mapAt(t, schemas, name), "required"), name)
	}
}

func jsonFields(v any) []string {
	rt := reflect.TypeOf(v)
	out := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			out = append(out, name)
		}
	}
	return out
}

func decodeOpenAPI(t *testing.T) map[string]any {
	t.Helper()

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(OpenAPISpec, &doc))
	require.NotEmpty(t, doc)
	return doc
}

func mapAt(t *testing.T, parent map[string]any, key string) map[string]any {
	t.Helper()
	value, ok := parent[key]
	require.Truef(t, ok, "missing key %q", key)
	return mapValue(t, value, key)
}

func mapValue(t *testing.T, value any, name string) map[string]any {
	t.Helper()
	out, ok := value.(map[string]any)
	require.Truef(t, ok, "%s must be an object", name)
	return out
}

func stringSliceAt(t *testing.T, parent map[string]any, key string) []string {
	t.Helper()
	value, ok := parent[key]
	require.Truef(t, ok, "missing key %q", key)
	raw, ok := value.([]any)
	require.True(t, ok, "value must be an array")
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, asString(item))
	}
	return out
}

func asString(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	return ""
}
