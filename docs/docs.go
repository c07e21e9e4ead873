// Package docs registers the OpenAPI description served under /api/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/projects": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "List projects",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"tags": [
					"projects"
				],
				"summary": "Create a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Project data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/projects/{id}": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "Get a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"projects"
				],
				"summary": "Update a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"projects"
				],
				"summary": "Delete a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/components": {
			"get": {
				"tags": [
					"components"
				],
				"summary": "List components",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Project ID",
						"name": "project_id",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Include deactivated components",
						"name": "include_inactive",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"components"
				],
				"summary": "Create a component",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Component data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/components/{id}": {
			"get": {
				"tags": [
					"components"
				],
				"summary": "Get a component",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Component ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"components"
				],
				"summary": "Update a component",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Component ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"components"
				],
				"summary": "Delete a component",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Component ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/complexities": {
			"get": {
				"tags": [
					"complexities"
				],
				"summary": "List complexities",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "boolean",
						"description": "Include deactivated levels",
						"name": "include_inactive",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"complexities"
				],
				"summary": "Create a complexity level",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Complexity level data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/complexities/{id}": {
			"get": {
				"tags": [
					"complexities"
				],
				"summary": "Get a complexity level",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Complexity level ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"complexities"
				],
				"summary": "Update a complexity level",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Complexity level ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"complexities"
				],
				"summary": "Delete a complexity level",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Complexity level ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/relations": {
			"get": {
				"tags": [
					"relations"
				],
				"summary": "List relations",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Component ID",
						"name": "component_id",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Complexity ID",
						"name": "complexity_id",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"relations"
				],
				"summary": "Create a relation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Relation data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"put": {
				"tags": [
					"relations"
				],
				"summary": "Create or update the hours of a pair",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Pair and hours",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/relations/{id}": {
			"get": {
				"tags": [
					"relations"
				],
				"summary": "Get a relation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Relation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"relations"
				],
				"summary": "Update a relation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Relation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"relations"
				],
				"summary": "Delete a relation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Relation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/evaluations": {
			"get": {
				"tags": [
					"evaluations"
				],
				"summary": "List evaluations",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Project ID",
						"name": "project_id",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"evaluations"
				],
				"summary": "Create a evaluation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Evaluation data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/evaluations/{id}": {
			"get": {
				"tags": [
					"evaluations"
				],
				"summary": "Get a evaluation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Evaluation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"evaluations"
				],
				"summary": "Update a evaluation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Evaluation ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Updated data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"evaluations"
				],
				"summary": "Delete a evaluation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Evaluation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/projects/{id}/components": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "List the components of a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/projects/{id}/evaluations": {
			"get": {
				"tags": [
					"projects"
				],
				"summary": "List the evaluations of a project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Project ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/relations/lookup": {
			"get": {
				"tags": [
					"relations"
				],
				"summary": "Look up the relation of a pair",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Component ID",
						"name": "component_id",
						"in": "query",
						"required": true
					},
					{
						"type": "string",
						"description": "Complexity ID",
						"name": "complexity_id",
						"in": "query",
						"required": true
					}
				]
			}
		},
		"/evaluations/preview": {
			"post": {
				"tags": [
					"evaluations"
				],
				"summary": "Preview an evaluation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"description": "Evaluation data",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"type": "object"
						}
					}
				]
			}
		},
		"/evaluations/{id}/report": {
			"get": {
				"tags": [
					"evaluations"
				],
				"summary": "Download the evaluation report",
				"produces": [
					"application/pdf"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Evaluation ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/evaluations/export": {
			"get": {
				"tags": [
					"evaluations"
				],
				"summary": "Export evaluation reports",
				"produces": [
					"application/zip"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Project ID",
						"name": "project_id",
						"in": "query"
					}
				]
			}
		},
		"/catalog/import": {
			"post": {
				"tags": [
					"catalog"
				],
				"summary": "Import a catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"type": "file",
						"description": "Catalog (.yaml, .yml, .zip, .tar, .tar.gz)",
						"name": "file",
						"in": "formData",
						"required": true
					}
				]
			}
		},
		"/catalog/seed": {
			"post": {
				"tags": [
					"catalog"
				],
				"summary": "Apply the built-in catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/cache/stats": {
			"get": {
				"tags": [
					"cache"
				],
				"summary": "Get cache statistics",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/cache": {
			"delete": {
				"tags": [
					"cache"
				],
				"summary": "Clear the catalog cache",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/health": {
			"get": {
				"tags": [
					"diagnostics"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/__routes": {
			"get": {
				"tags": [
					"diagnostics"
				],
				"summary": "List registered routes",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Septjunto Estimation API",
	Description:      "Effort estimation for software projects: catalog of components and complexity levels, evaluations and PDF reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
