// Package docs registers the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Database health check",
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/healthz": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/metrics": {
            "get": {
                "tags": ["system"],
                "summary": "Prometheus metrics",
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a trader or logistics partner",
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in and obtain a bearer token",
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/partners/me/profile": {
            "get": {
                "tags": ["partners"],
                "summary": "Get own partner profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "put": {
                "tags": ["partners"],
                "summary": "Create or replace own partner profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes": {
            "post": {
                "tags": ["quotes"],
                "summary": "Create a freight quote request",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "get": {
                "tags": ["quotes"],
                "summary": "List visible quotes",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes/{id}": {
            "get": {
                "tags": ["quotes"],
                "summary": "Get a quote with its countdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes/{id}/cancel": {
            "post": {
                "tags": ["quotes"],
                "summary": "Cancel an open quote",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes/{id}/offers": {
            "get": {
                "tags": ["offers"],
                "summary": "List offers on a quote",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "post": {
                "tags": ["offers"],
                "summary": "Submit an offer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes/{id}/matches": {
            "get": {
                "tags": ["quotes"],
                "summary": "List matching partners",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/quotes/{id}/lead-cost": {
            "get": {
                "tags": ["quotes"],
                "summary": "Preview the lead cost",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/offers": {
            "get": {
                "tags": ["offers"],
                "summary": "List own offers",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/offers/{id}/withdraw": {
            "post": {
                "tags": ["offers"],
                "summary": "Withdraw a pending offer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/offers/{id}/select": {
            "post": {
                "tags": ["offers"],
                "summary": "Select an offer and book the shipment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/shipments": {
            "get": {
                "tags": ["shipments"],
                "summary": "List shipments",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/shipments/{id}": {
            "get": {
                "tags": ["shipments"],
                "summary": "Get a shipment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/shipments/{id}/events": {
            "post": {
                "tags": ["shipments"],
                "summary": "Record a shipment status update",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/shipments/{id}/confirmation": {
            "get": {
                "tags": ["shipments"],
                "summary": "Download the booking confirmation PDF",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/track/{tracking}": {
            "get": {
                "tags": ["shipments"],
                "summary": "Track a shipment by tracking number",
                "parameters": [{"type": "string", "name": "tracking", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/wallet": {
            "get": {
                "tags": ["wallet"],
                "summary": "Get the lead wallet",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/wallet/transactions": {
            "get": {
                "tags": ["wallet"],
                "summary": "List wallet transactions",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/wallet/payment-requests": {
            "post": {
                "tags": ["wallet"],
                "summary": "Request a wallet top-up",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "get": {
                "tags": ["wallet"],
                "summary": "List own top-up requests",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/documents": {
            "post": {
                "tags": ["documents"],
                "summary": "Upload a document",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "get": {
                "tags": ["documents"],
                "summary": "List documents",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/documents/{id}": {
            "get": {
                "tags": ["documents"],
                "summary": "Get document metadata",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            },
            "delete": {
                "tags": ["documents"],
                "summary": "Delete a document",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/documents/{id}/download": {
            "get": {
                "tags": ["documents"],
                "summary": "Download document content",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "List notifications",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/notifications/{id}/read": {
            "post": {
                "tags": ["notifications"],
                "summary": "Mark a notification read",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/notifications/read-all": {
            "post": {
                "tags": ["notifications"],
                "summary": "Mark all notifications read",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/users": {
            "get": {
                "tags": ["admin"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/users/{id}/verify": {
            "post": {
                "tags": ["admin"],
                "summary": "Verify a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/payment-requests": {
            "get": {
                "tags": ["admin"],
                "summary": "List top-up requests",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/payment-requests/{id}/approve": {
            "post": {
                "tags": ["admin"],
                "summary": "Approve a top-up",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/payment-requests/{id}/reject": {
            "post": {
                "tags": ["admin"],
                "summary": "Reject a top-up",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "tags": ["admin"],
                "summary": "Platform statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        },
        "/api/admin/quotes/expire": {
            "post": {
                "tags": ["admin"],
                "summary": "Expire due quotes now",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}, "default": {"description": "Error envelope", "schema": {"$ref": "#/definitions/handler.errorPayload"}}}
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {"$ref": "#/definitions/handler.errorEnvelope"}
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
	Title:            "BidChemz Logistics API",
	Description:      "Reverse-auction freight marketplace for hazardous chemical cargo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
