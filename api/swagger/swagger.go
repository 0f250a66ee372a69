package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "The AI Who Taught Me API",
        "description": "Backend for the podcast site: episodes, story submissions, interview scheduling",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduling", "description": "Interview availability and booking"},
        {"name": "Stories", "description": "Teacher story submissions"},
        {"name": "Episodes", "description": "Podcast feed"},
        {"name": "Places", "description": "School autocomplete"},
        {"name": "Admin", "description": "Basic-auth gated views"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/availability": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "List open interview slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityResponse"}},
                    "500": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/booking": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Book an interview slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BookingResponse"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "504": {"description": "Provider timeout", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/stories/submit": {
            "post": {
                "tags": ["Stories"],
                "summary": "Submit a teacher story (multi-step form)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitStoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SubmitStoryResponse"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/submit-story": {
            "post": {
                "tags": ["Stories"],
                "summary": "Submit a teacher story (single-page form)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LegacySubmitStoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SubmitStoryResponse"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/stories/{id}": {
            "get": {
                "tags": ["Stories"],
                "summary": "Fetch a single story",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/stories": {
            "get": {
                "tags": ["Admin"],
                "summary": "List all stories",
                "security": [{"BasicAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/places/autocomplete": {
            "get": {
                "tags": ["Places"],
                "summary": "Autocomplete school names",
                "parameters": [
                    {"name": "input", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuggestionsResponse"}}
                }
            }
        },
        "/api/episodes": {
            "get": {
                "tags": ["Episodes"],
                "summary": "List podcast episodes",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/feed.xml": {
            "get": {
                "tags": ["Episodes"],
                "summary": "Proxied RSS feed",
                "produces": ["application/xml"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {
            "type": "basic"
        }
    },
    "definitions": {
        "TimeSlot": {
            "type": "object",
            "properties": {
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "invitees_remaining": {"type": "integer"}
            }
        },
        "AvailabilityResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TimeSlot"}
                },
                "mock": {"type": "boolean"}
            }
        },
        "BookingRequest": {
            "type": "object",
            "required": ["start_time", "end_time", "name"],
            "properties": {
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "school": {"type": "string"},
                "grades": {"type": "string"},
                "role": {"type": "string"},
                "aiUsage": {"type": "string"}
            }
        },
        "Booking": {
            "type": "object",
            "properties": {
                "uri": {"type": "string"},
                "status": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "invitee_name": {"type": "string"},
                "invitee_email": {"type": "string"}
            }
        },
        "BookingResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "booking": {"$ref": "#/definitions/Booking"}
            }
        },
        "SubmitStoryRequest": {
            "type": "object",
            "required": ["name", "aiUsage"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "school": {"type": "string"},
                "grades": {"type": "string"},
                "role": {"type": "string"},
                "aiUsage": {"type": "string"}
            }
        },
        "LegacySubmitStoryRequest": {
            "type": "object",
            "required": ["story", "name"],
            "properties": {
                "story": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "school": {"type": "string"}
            }
        },
        "SubmitStoryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "id": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "PlaceSuggestion": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "fullAddress": {"type": "string"}
            }
        },
        "SuggestionsResponse": {
            "type": "object",
            "properties": {
                "suggestions": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/PlaceSuggestion"}
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
