// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/server/main.go -o docs` after changing
// handler annotations.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "List of users", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handler.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {"200": {"description": "Current user", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "User details", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "User deleted", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Admin account", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/inventory": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "List catalog items",
                "responses": {"200": {"description": "Catalog page", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Add a catalog item",
                "responses": {"201": {"description": "Item created", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/inventory/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Get a catalog item",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Item", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Update a catalog item",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Item updated", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["inventory"],
                "summary": "Delete a catalog item",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Item deleted", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/quotations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "List quotations",
                "responses": {"200": {"description": "Quotations; status NO_DATA when empty", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Create a quotation",
                "responses": {
                    "201": {"description": "Quotation created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "409": {"description": "Number could not be reserved", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations/pdf": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Render an unsaved quotation",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "PDF", "schema": {"type": "file"}}}
            }
        },
        "/quotations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Get a quotation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Quotation", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Quotation not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Update a quotation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Quotation updated", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Delete a quotation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Quotation deleted", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/quotations/{id}/convert": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["quotations"],
                "summary": "Convert a quotation into an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Invoice created", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/quotations/{id}/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Render a quotation",
                "produces": ["application/pdf"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "info_page", "in": "query", "default": true}
                ],
                "responses": {"200": {"description": "PDF", "schema": {"type": "file"}}}
            }
        },
        "/quotations/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Email a quotation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Sent", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "503": {"description": "Email delivery not configured", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["invoices"],
                "summary": "List invoices",
                "responses": {"200": {"description": "Invoices; status NO_DATA when empty", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["invoices"],
                "summary": "Create an invoice",
                "responses": {"201": {"description": "Invoice created", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices/pdf": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Render an unsaved invoice",
                "produces": ["application/pdf"],
                "responses": {"200": {"description": "PDF", "schema": {"type": "file"}}}
            }
        },
        "/invoices/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["invoices"],
                "summary": "Get an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Invoice", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["invoices"],
                "summary": "Update an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Invoice updated", "schema": {"$ref": "#/definitions/handler.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["invoices"],
                "summary": "Delete an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Invoice deleted", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/invoices/{id}/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Render an invoice",
                "produces": ["application/pdf"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "info_page", "in": "query", "default": false}
                ],
                "responses": {"200": {"description": "PDF", "schema": {"type": "file"}}}
            }
        },
        "/invoices/{id}/send": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["documents"],
                "summary": "Email an invoice",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Sent", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/dashboard/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Collection and pipeline summary",
                "responses": {"200": {"description": "Summary", "schema": {"$ref": "#/definitions/handler.Response"}}}
            }
        },
        "/ai/quotation-draft": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ai"],
                "summary": "Draft a quotation from free text",
                "responses": {
                    "200": {"description": "Proposed quotation", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "429": {"description": "AI provider rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "503": {"description": "AI drafting not configured", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/exports/quotations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["exports"],
                "summary": "Download the quotation register",
                "parameters": [{"type": "string", "name": "format", "in": "query", "enum": ["csv", "xlsx"], "default": "csv"}],
                "responses": {"200": {"description": "Register", "schema": {"type": "file"}}}
            }
        },
        "/exports/invoices": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["exports"],
                "summary": "Download the invoice register",
                "parameters": [{"type": "string", "name": "format", "in": "query", "enum": ["csv", "xlsx"], "default": "csv"}],
                "responses": {"200": {"description": "Register", "schema": {"type": "file"}}}
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "status": {"type": "string", "enum": ["SUCCESS", "NO_DATA"], "example": "SUCCESS"},
                "message": {"type": "string"},
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "status": {"type": "string", "enum": ["ERROR", "NO_DATA"], "example": "ERROR"},
                "message": {"type": "string"},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "owner@brightsecurity.in"},
                "password": {"type": "string", "example": "securepassword123"}
            }
        },
        "handler.CreateUserRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"},
                "business_name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Quotely API",
	Description:      "Quotations, invoices and catalog for small service businesses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
