// Package careteam provides the Swagger specification for the CareTeam
// coordination service API, served at /swagger/.
package careteam

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "CareTeam Maintainers",
            "url": "https://github.com/careteamhq/careteam"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/careteamsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Probe",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/careteamsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/careteamsdk.HealthResponse"}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Account Registration Endpoint",
                "parameters": [
                    {"description": "Registration request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "access_token, token_type, expires_in, user", "schema": {"$ref": "#/definitions/careteamsdk.AuthResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "409": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login Endpoint",
                "parameters": [
                    {"description": "Login request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "access_token, token_type, expires_in, user", "schema": {"$ref": "#/definitions/careteamsdk.AuthResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Send Caregiver Invitation",
                "parameters": [
                    {"description": "Invitation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.InvitationRequest"}}
                ],
                "responses": {
                    "201": {"description": "invitation record", "schema": {"$ref": "#/definitions/careteamsdk.InvitationResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/validate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Validate Invitation Token",
                "parameters": [
                    {"type": "string", "description": "Invitation token", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "invitation summary", "schema": {"$ref": "#/definitions/careteamsdk.ValidateInvitationResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "410": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Accept Invitation",
                "parameters": [
                    {"description": "Accept request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.AcceptInvitationRequest"}}
                ],
                "responses": {
                    "200": {"description": "resulting care-team relationship", "schema": {"$ref": "#/definitions/careteamsdk.RelationshipResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "410": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/{id}/decline": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Invitations"],
                "summary": "Decline Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "no content"},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "409": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Invitations"],
                "summary": "Cancel Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "no content"},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "409": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invitations/{id}/resend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Resend Invitation",
                "parameters": [
                    {"type": "string", "description": "Invitation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "re-issued invitation", "schema": {"$ref": "#/definitions/careteamsdk.InvitationResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "409": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/clients": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Create Client",
                "parameters": [
                    {"description": "Client request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.ClientRequest"}}
                ],
                "responses": {
                    "201": {"description": "client record", "schema": {"$ref": "#/definitions/careteamsdk.ClientResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/clients/{id}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Client Access Flags",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "capability flags", "schema": {"$ref": "#/definitions/careteamsdk.AccessResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/clients/{id}/caregivers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List Care Team",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "active relationships", "schema": {"type": "array", "items": {"$ref": "#/definitions/careteamsdk.RelationshipResponse"}}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/clients/{id}/invitations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List Client Invitations",
                "parameters": [
                    {"type": "string", "description": "Client ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "invitations", "schema": {"type": "array", "items": {"$ref": "#/definitions/careteamsdk.InvitationResponse"}}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/relationships/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Relationships"],
                "summary": "Update Relationship",
                "parameters": [
                    {"type": "string", "description": "Relationship ID", "name": "id", "in": "path", "required": true},
                    {"description": "Update request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.UpdateRelationshipRequest"}}
                ],
                "responses": {
                    "200": {"description": "updated relationship", "schema": {"$ref": "#/definitions/careteamsdk.RelationshipResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Relationships"],
                "summary": "Remove Relationship",
                "parameters": [
                    {"type": "string", "description": "Relationship ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "no content"},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/users/{id}/access": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Assign User Access",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Access assignment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.AssignAccessRequest"}}
                ],
                "responses": {
                    "200": {"description": "updated user", "schema": {"$ref": "#/definitions/careteamsdk.UserInfo"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/users/{id}/active": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Set User Active",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Active flag", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/careteamsdk.SetUserActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "updated user", "schema": {"$ref": "#/definitions/careteamsdk.UserInfo"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/careteamsdk.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "careteamsdk.AssignAccessRequest": {
            "type": "object",
            "properties": {
                "roles": {"type": "array", "items": {"type": "string"}},
                "custom_permissions": {"type": "array", "items": {"type": "string"}},
                "restrictions": {"type": "array", "items": {"$ref": "#/definitions/careteamsdk.AccessRestrictionSpec"}}
            }
        },
        "careteamsdk.AccessRestrictionSpec": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "start_hour": {"type": "integer"},
                "end_hour": {"type": "integer"},
                "allowed_origins": {"type": "array", "items": {"type": "string"}},
                "allowed_resources": {"type": "array", "items": {"type": "string"}},
                "allowed_actions": {"type": "array", "items": {"type": "string"}},
                "expires_at": {"type": "string"}
            }
        },
        "careteamsdk.SetUserActiveRequest": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"}
            }
        },
        "careteamsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "display_name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "careteamsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "careteamsdk.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/careteamsdk.UserInfo"}
            }
        },
        "careteamsdk.UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "display_name": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}}
            }
        },
        "careteamsdk.InvitationRequest": {
            "type": "object",
            "properties": {
                "client_id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "personal_message": {"type": "string"}
            }
        },
        "careteamsdk.InvitationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "client_id": {"type": "string"},
                "invited_by": {"type": "string"},
                "invited_email": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "personal_message": {"type": "string"},
                "status": {"type": "string"},
                "expires_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "careteamsdk.ValidateInvitationResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "client_id": {"type": "string"},
                "client_name": {"type": "string"},
                "inviter_name": {"type": "string"},
                "invited_email": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "expires_at": {"type": "string"}
            }
        },
        "careteamsdk.AcceptInvitationRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "careteamsdk.RelationshipResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "client_id": {"type": "string"},
                "caregiver_id": {"type": "string"},
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "is_active": {"type": "boolean"},
                "added_by": {"type": "string"},
                "added_at": {"type": "string"}
            }
        },
        "careteamsdk.UpdateRelationshipRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}}
            }
        },
        "careteamsdk.ClientRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "careteamsdk.ClientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "created_by": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "careteamsdk.AccessResponse": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "permissions": {"type": "array", "items": {"type": "string"}},
                "can_view": {"type": "boolean"},
                "can_edit": {"type": "boolean"},
                "can_manage_medications": {"type": "boolean"},
                "can_manage_appointments": {"type": "boolean"},
                "can_send_messages": {"type": "boolean"},
                "can_invite_caregivers": {"type": "boolean"},
                "can_administer": {"type": "boolean"},
                "no_relationship": {"type": "boolean"}
            }
        },
        "careteamsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "careteamsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT access token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "CareTeam Coordination Service API",
	Description:      "Caregiver coordination service: secure care-team invitations, role-based permissions and per-client capability flags.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
