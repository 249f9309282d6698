// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/errors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["errors"],
                "summary": "List error events",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "boolean", "description": "Filter by resolution state", "name": "resolved", "in": "query"},
                    {"type": "string", "description": "Filter by category (all = no filter)", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Maximum number of events (default 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ErrorEvent"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["errors"],
                "summary": "Report an error event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Error event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.eventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["errors"],
                "summary": "Delete every error event",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deleteResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/errors/{id}/resolve": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["errors"],
                "summary": "Resolve an error event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Event id", "name": "id", "in": "path", "required": true},
                    {"description": "Resolution", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resolveEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.eventResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/errors/{id}/unresolve": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["errors"],
                "summary": "Reopen an error event",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Event id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.eventResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Event counts grouped by category, severity and resolution",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.GroupCount"}}}
                }
            }
        },
        "/api/stats/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Dashboard statistics",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Summary"}}
                }
            }
        },
        "/api/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["stats"],
                "summary": "Category catalog",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Category"}}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "domain.Category": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "color": {"type": "string"}}
        },
        "domain.CategoryStats": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "total": {"type": "integer"}, "unresolved": {"type": "integer"}}
        },
        "domain.ErrorEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "message": {"type": "string"},
                "severity": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "stack": {"type": "string"},
                "url": {"type": "string"},
                "user_agent": {"type": "string"},
                "resolved": {"type": "boolean"},
                "resolved_at": {"type": "string"},
                "resolve_comment": {"type": "string"},
                "resolved_by": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.GroupCount": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "severity": {"type": "string"}, "resolved": {"type": "boolean"}, "count": {"type": "integer"}}
        },
        "domain.Summary": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "unresolved": {"type": "integer"},
                "recent": {"type": "integer"},
                "status": {"type": "string"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryStats"}}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "role": {"type": "string"}}
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "token": {"type": "string"}, "user": {"$ref": "#/definitions/domain.User"}}
        },
        "handler.createEventRequest": {
            "type": "object",
            "required": ["message", "severity", "category"],
            "properties": {
                "message": {"type": "string"},
                "severity": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "stack": {"type": "string"},
                "url": {"type": "string"},
                "userAgent": {"type": "string"}
            }
        },
        "handler.deleteResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "deletedCount": {"type": "integer"}}
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "details": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.eventResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "error": {"$ref": "#/definitions/domain.ErrorEvent"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "firstName", "lastName"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}}
        },
        "handler.resolveEventRequest": {
            "type": "object",
            "properties": {"resolveComment": {"type": "string"}, "resolvedBy": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/domain.User"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Error Monitor API",
	Description:      "Authenticated error event tracking: report, list, resolve and summarize application errors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
