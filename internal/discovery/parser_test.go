package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersDocument() map[string]any {
	return map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":   "Users API",
			"version": "2.3.0",
		},
		"servers": []any{
			map[string]any{"url": "https://api.example.com"},
		},
		"paths": map[string]any{
			"/users": map[string]any{
				"get": map[string]any{
					"summary": "List users",
					"tags":    []any{"users"},
					"parameters": []any{
						map[string]any{
							"name":        "limit",
							"in":          "query",
							"description": "Max results",
							"schema":      map[string]any{"type": "integer", "format": "int32"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type":  "array",
										"items": map[string]any{"$ref": "#/components/schemas/User"},
									},
								},
							},
						},
					},
				},
				"post": map[string]any{
					"summary": "Create a user",
					"tags":    []any{"users"},
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/NewUser"},
							},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/User"},
								},
							},
						},
					},
				},
			},
			"/users/{id}": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":     "id",
							"in":       "path",
							"required": true,
							"schema":   map[string]any{"type": "string"},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "OK"},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"User": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":   map[string]any{"type": "integer"},
						"name": map[string]any{"type": "string"},
					},
				},
				"NewUser": map[string]any{
					"type":     "object",
					"required": []any{"email", "name"},
					"properties": map[string]any{
						"name":  map[string]any{"type": "string", "description": "Display name"},
						"email": map[string]any{"type": "string", "format": "email"},
						"role":  map[string]any{"type": "string", "enum": []any{"admin", "member"}},
					},
				},
			},
		},
	}
}

func TestParseDocumentOpenAPI3(t *testing.T) {
	spec := ParseDocument(usersDocument(), DialectOpenAPI30, "")

	assert.Equal(t, "Users API", spec.Title)
	assert.Equal(t, "2.3.0", spec.Version)
	assert.Equal(t, "https://api.example.com", spec.BaseURL)
	require.Len(t, spec.Tools, 3)

	getUsers, ok := spec.Tool("getUsers")
	require.True(t, ok)
	assert.Equal(t, "GET", getUsers.Method)
	assert.Equal(t, "/users", getUsers.Path)
	assert.Equal(t, "List users", getUsers.Description)
	assert.Equal(t, []string{"users"}, getUsers.Tags)

	limit, ok := getUsers.Param("limit")
	require.True(t, ok)
	assert.Equal(t, LocationQuery, limit.Location)
	assert.Equal(t, "integer", limit.Type)
	assert.Equal(t, "int32", limit.Format)
	assert.False(t, limit.Required)

	// The response schema is resolved: the array items carry the User
	// properties, not a $ref.
	response, ok := getUsers.ResponseSchema.(map[string]any)
	require.True(t, ok)
	items := response["items"].(map[string]any)
	assert.NotContains(t, items, "$ref")
	assert.Contains(t, items["properties"], "name")

	getUsersID, ok := spec.Tool("getUsersId")
	require.True(t, ok)
	assert.Equal(t, "GET /users/{id}", getUsersID.Description)
	id, ok := getUsersID.Param("id")
	require.True(t, ok)
	assert.True(t, id.Required)
	assert.Equal(t, LocationPath, id.Location)
}

func TestParseDocumentBodyFields(t *testing.T) {
	spec := ParseDocument(usersDocument(), DialectOpenAPI30, "")

	postUsers, ok := spec.Tool("postUsers")
	require.True(t, ok)

	// Body fields are appended in sorted property order.
	var bodyNames []string
	for _, p := range postUsers.Parameters {
		require.Equal(t, LocationBody, p.Location)
		bodyNames = append(bodyNames, p.Name)
	}
	assert.Equal(t, []string{"email", "name", "role"}, bodyNames)

	email, _ := postUsers.Param("email")
	assert.True(t, email.Required)
	assert.Equal(t, "email", email.Format)

	name, _ := postUsers.Param("name")
	assert.True(t, name.Required)
	assert.Equal(t, "Display name", name.Description)

	role, _ := postUsers.Param("role")
	assert.False(t, role.Required)
	assert.Equal(t, []any{"admin", "member"}, role.Enum)
}

func TestParseDocumentOperationIDWins(t *testing.T) {
	doc := map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths": map[string]any{
			"/meta": map[string]any{
				"get": map[string]any{
					"operationId": "meta/root",
					"responses":   map[string]any{},
				},
			},
			"/apps/{app_slug}/approve": map[string]any{
				"post": map[string]any{
					"operationId": "admin_apps_approve",
					"responses":   map[string]any{},
				},
			},
		},
	}

	spec := ParseDocument(doc, DialectOpenAPI30, "")
	require.Len(t, spec.Tools, 2)

	_, ok := spec.Tool("metaRoot")
	assert.True(t, ok)
	_, ok = spec.Tool("adminAppsApprove")
	assert.True(t, ok)
}

func TestParseDocumentFallbackName(t *testing.T) {
	doc := map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths": map[string]any{
			"/2010-04-01/Accounts/{Sid}.json": map[string]any{
				"get": map[string]any{"responses": map[string]any{}},
			},
		},
	}

	spec := ParseDocument(doc, DialectOpenAPI30, "")
	require.Len(t, spec.Tools, 1)

	// Path braces are stripped and separators collapse into camelCase.
	tool := spec.Tools[0]
	assert.Equal(t, "get2010", tool.Name[:7])
	assert.True(t, IsValidName(tool.Name))
}

func TestParseDocumentDuplicateNamesFirstWins(t *testing.T) {
	doc := map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths": map[string]any{
			"/users": map[string]any{
				"get": map[string]any{
					"summary":   "first",
					"responses": map[string]any{},
				},
			},
			"/users/": map[string]any{
				"get": map[string]any{
					"summary":   "second",
					"responses": map[string]any{},
				},
			},
		},
	}

	spec := ParseDocument(doc, DialectOpenAPI30, "")
	require.Len(t, spec.Tools, 1)
	assert.Equal(t, "getUsers", spec.Tools[0].Name)
	assert.Equal(t, "first", spec.Tools[0].Description)
}

func TestParseDocumentDefaults(t *testing.T) {
	spec := ParseDocument(map[string]any{"openapi": "3.0.0"}, DialectOpenAPI30, "")

	assert.Equal(t, DefaultAPITitle, spec.Title)
	assert.Equal(t, DefaultAPIVersion, spec.Version)
	assert.Equal(t, "", spec.BaseURL)
	assert.Empty(t, spec.Tools)
}

func TestParseDocumentBaseURLOverride(t *testing.T) {
	spec := ParseDocument(usersDocument(), DialectOpenAPI30, "https://override.example.com")
	assert.Equal(t, "https://override.example.com", spec.BaseURL)
}

func TestParseDocumentIgnoresUnsupportedMethods(t *testing.T) {
	doc := map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths": map[string]any{
			"/users": map[string]any{
				"options":    map[string]any{"responses": map[string]any{}},
				"head":       map[string]any{"responses": map[string]any{}},
				"parameters": []any{map[string]any{"name": "x", "in": "query"}},
				"delete":     map[string]any{"responses": map[string]any{}},
			},
		},
	}

	spec := ParseDocument(doc, DialectOpenAPI30, "")
	require.Len(t, spec.Tools, 1)
	assert.Equal(t, "DELETE", spec.Tools[0].Method)
}

func TestParseDocumentSwagger2(t *testing.T) {
	doc := map[string]any{
		"swagger":  "2.0",
		"info":     map[string]any{"title": "Pets", "version": "1.0"},
		"host":     "api.example.com",
		"basePath": "/v1",
		"paths": map[string]any{
			"/pets": map[string]any{
				"post": map[string]any{
					"operationId": "createPet",
					"parameters": []any{
						map[string]any{
							"name":     "verbose",
							"in":       "query",
							"type":     "boolean",
							"required": true,
						},
						map[string]any{
							"name": "pet",
							"in":   "body",
							"schema": map[string]any{
								"type":     "object",
								"required": []any{"name"},
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
								},
							},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"schema": map[string]any{"type": "object"},
						},
					},
				},
			},
		},
	}

	spec := ParseDocument(doc, DialectSwagger2, "")
	assert.Equal(t, "https://api.example.com/v1", spec.BaseURL)
	require.Len(t, spec.Tools, 1)

	tool := spec.Tools[0]
	assert.Equal(t, "createPet", tool.Name)

	// The body entry is flattened into fields, never surfaced as a
	// parameter named "pet".
	_, ok := tool.Param("pet")
	assert.False(t, ok)

	verbose, ok := tool.Param("verbose")
	require.True(t, ok)
	assert.Equal(t, "boolean", verbose.Type)
	assert.True(t, verbose.Required)

	name, ok := tool.Param("name")
	require.True(t, ok)
	assert.Equal(t, LocationBody, name.Location)
	assert.True(t, name.Required)

	assert.Equal(t, map[string]any{"type": "object"}, tool.ResponseSchema)
}

func TestParseDocumentPolymorphicResponsePreserved(t *testing.T) {
	anyOf := []any{
		map[string]any{"$ref": "#/components/schemas/Cat"},
		map[string]any{"$ref": "#/components/schemas/Dog"},
	}
	doc := map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths": map[string]any{
			"/pets/{id}": map[string]any{
				"get": map[string]any{
					"operationId": "getPet",
					"responses": map[string]any{
						"200": map[string]any{
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"anyOf": anyOf},
								},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Cat": map[string]any{"type": "object"},
				"Dog": map[string]any{"type": "object"},
			},
		},
	}

	spec := ParseDocument(doc, DialectOpenAPI30, "")
	tool, ok := spec.Tool("getPet")
	require.True(t, ok)

	response, ok := tool.ResponseSchema.(map[string]any)
	require.True(t, ok)
	if diff := cmp.Diff(anyOf, response["anyOf"]); diff != "" {
		t.Errorf("anyOf variants mismatch (-want +got):\n%s", diff)
	}
}

func TestPickResponseSchemaLowestSuccess(t *testing.T) {
	operation := map[string]any{
		"responses": map[string]any{
			"404": map[string]any{
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"type": "string"},
					},
				},
			},
			"201": map[string]any{
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"type": "object"},
					},
				},
			},
			"200": map[string]any{"description": "no schema"},
		},
	}

	schema, ok := pickResponseSchema(operation, DialectOpenAPI30)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "object"}, schema)
}

func TestToolDocumentation(t *testing.T) {
	tool := Tool{
		Name:        "getUsers",
		Description: "List users",
		Method:      "GET",
		Path:        "/users",
		Parameters: []Parameter{
			{Name: "limit", Description: "Max results", Location: LocationQuery, Type: "integer"},
			{Name: "id", Required: true, Location: LocationPath, Type: "string"},
		},
		Tags: []string{"users", "admin"},
	}

	docs := ToolDocumentation(tool)
	assert.Contains(t, docs, "## getUsers")
	assert.Contains(t, docs, "**Method:** GET")
	assert.Contains(t, docs, "**Path:** /users")
	assert.Contains(t, docs, "- **limit** (optional) [query]: Max results")
	assert.Contains(t, docs, "- **id** (required) [path]: ")
	assert.Contains(t, docs, "**Tags:** users, admin")
}
