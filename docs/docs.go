// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/iss-spotter/main.go
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
        "/v1/lookups": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List recent pipeline runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum items (1-100, default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listLookupsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/lookups/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Get one pipeline run",
                "parameters": [
                    {"type": "string", "description": "Lookup id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.lookupResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/passes": {
            "get": {
                "description": "Resolves the server's public IP, geolocates it and returns the next passes.",
                "produces": ["application/json"],
                "tags": ["passes"],
                "summary": "Upcoming ISS passes over this server's location",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.passesResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/passes/coordinates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["passes"],
                "summary": "Upcoming ISS passes over a point",
                "parameters": [
                    {"type": "number", "description": "Latitude in degrees", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude in degrees", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.passesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/passes/ip/{ip}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["passes"],
                "summary": "Upcoming ISS passes over an IP address",
                "parameters": [
                    {"type": "string", "description": "IPv4 or IPv6 address", "name": "ip", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.passesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.coordinatesResponse": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Status fail when fetching coordinates. Response: invalid query"}
            }
        },
        "handler.listLookupsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.lookupResponse"}},
                "limit": {"type": "integer"}
            }
        },
        "handler.lookupResponse": {
            "type": "object",
            "properties": {
                "coordinates": {"$ref": "#/definitions/handler.coordinatesResponse"},
                "duration_ms": {"type": "integer"},
                "error": {"type": "string"},
                "failed_step": {"type": "string"},
                "finished_at": {"type": "string"},
                "id": {"type": "string"},
                "ip": {"type": "string"},
                "mode": {"type": "string"},
                "passes": {"type": "array", "items": {"$ref": "#/definitions/handler.passResponse"}},
                "started_at": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "handler.passResponse": {
            "type": "object",
            "properties": {
                "duration": {"type": "integer", "example": 540},
                "risetime": {"type": "integer", "example": 1700000000}
            }
        },
        "handler.passesResponse": {
            "type": "object",
            "properties": {
                "passes": {"type": "array", "items": {"$ref": "#/definitions/handler.passResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ISS Spotter API",
	Description:      "Upcoming International Space Station passes for an IP address or a point on Earth.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
