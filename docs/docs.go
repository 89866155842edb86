// Package docs registers the OpenAPI description of the todo API with swag.
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
        "/simple/todos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Simple Todos"],
                "summary": "List todos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.TodoSummary"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Simple Todos"],
                "summary": "Create a todo",
                "parameters": [
                    {"description": "Todo to create", "name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateTodoCommand"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.CreateTodoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            }
        },
        "/simple/todos/{todoId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Simple Todos"],
                "summary": "Get a todo",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Todo ID", "name": "todoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TodoDetails"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["Simple Todos"],
                "summary": "Update an open todo",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Todo ID", "name": "todoId", "in": "path", "required": true},
                    {"description": "New title and description", "name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateTodoCommand"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ProblemDetails"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            },
            "delete": {
                "tags": ["Simple Todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Todo ID", "name": "todoId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            }
        },
        "/simple/todos/{todoId}/complete": {
            "post": {
                "tags": ["Simple Todos"],
                "summary": "Complete a todo",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Todo ID", "name": "todoId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "api.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"}
            }
        },
        "service.CreateTodoCommand": {
            "type": "object",
            "required": ["description", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 20, "minLength": 5},
                "description": {"type": "string", "maxLength": 100}
            }
        },
        "service.UpdateTodoCommand": {
            "type": "object",
            "required": ["description", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 20, "minLength": 5},
                "description": {"type": "string", "maxLength": 100}
            }
        },
        "service.CreateTodoResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"}
            }
        },
        "service.TodoSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "isCompleted": {"type": "boolean"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "service.TodoDetails": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "isCompleted": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CQRS Todo API",
	Description:      "Todo endpoints built on a Result/Error outcome model. The explicit style mirrors the simple routes under /explicit/todos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
