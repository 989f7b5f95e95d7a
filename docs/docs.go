// Package docs serves the OpenAPI description of the API. Regenerate it
// with `swag init -g cmd/api/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/registrations/single": {"post": {"tags": ["registrations"], "summary": "Register a solo contestant", "responses": {"201": {"description": "Registration created"}, "400": {"description": "Validation failed"}, "403": {"description": "Registration is closed"}, "409": {"description": "Contestant already registered"}}}},
        "/registrations/group": {"post": {"tags": ["registrations"], "summary": "Register a group", "responses": {"201": {"description": "Registration created"}, "400": {"description": "Validation failed"}, "409": {"description": "Group already registered for this school"}}}},
        "/registrations/guest": {"post": {"tags": ["registrations"], "summary": "Register a guest", "responses": {"201": {"description": "Registration created"}, "409": {"description": "Guest already registered"}}}},
        "/uploads": {"post": {"tags": ["registrations"], "summary": "Upload a requirement document", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "File stored"}, "413": {"description": "File too large"}, "415": {"description": "Unsupported file type"}}}},
        "/passes/{code}": {"get": {"tags": ["passes"], "summary": "Verify a pass", "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}], "responses": {"200": {"description": "Pass found"}, "404": {"description": "Unknown pass"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Dashboard login", "responses": {"200": {"description": "Login successful"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Dashboard logout", "responses": {"200": {"description": "Logged out"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "Current user"}}}},
        "/admin/contestants": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List contestants", "responses": {"200": {"description": "Contestants"}}}},
        "/admin/contestants/{studentId}": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Get contestant", "responses": {"200": {"description": "Contestant"}, "404": {"description": "Contestant not found"}}}},
        "/admin/groups": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List groups", "responses": {"200": {"description": "Groups"}}}},
        "/admin/groups/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Get group", "responses": {"200": {"description": "Group"}}}},
        "/admin/guests": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "List guests", "responses": {"200": {"description": "Guests"}}}},
        "/admin/guests/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Get guest", "responses": {"200": {"description": "Guest"}}}},
        "/admin/{kind}/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Update registrant status", "responses": {"200": {"description": "Status updated"}}}},
        "/admin/{kind}/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Delete registrant", "responses": {"200": {"description": "Deleted"}}}},
        "/admin/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Dashboard statistics", "responses": {"200": {"description": "Summary"}}}},
        "/admin/checkin": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Check in a pass", "responses": {"200": {"description": "Checked in"}, "409": {"description": "Already checked in"}}}},
        "/admin/passes/{code}/resend": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Resend a pass email", "responses": {"200": {"description": "Resend attempted"}}}},
        "/admin/export/contestants": {"get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Export contestants", "produces": ["text/csv", "application/pdf"], "responses": {"200": {"description": "Export file"}}}},
        "/admin/export/groups": {"get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Export groups", "produces": ["text/csv", "application/pdf"], "responses": {"200": {"description": "Export file"}}}},
        "/admin/export/guests": {"get": {"security": [{"BearerAuth": []}], "tags": ["exports"], "summary": "Export guests", "produces": ["text/csv", "application/pdf"], "responses": {"200": {"description": "Export file"}}}},
        "/admin/realtime": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Dashboard event stream", "responses": {"101": {"description": "Switching protocols"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Maritime Talent Quest API",
	Description:      "Registration, QR pass and dashboard API for the Maritime Talent Quest",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
