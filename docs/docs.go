// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/akozadaev/budaya_nusantara"
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
        "/chatbot": {
            "post": {
                "description": "Streams data: {\"text\": \"...\"} frames and finishes with data: [DONE]. A failure mid-stream is sent as data: {\"error\": \"...\"}.",
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["chatbot"],
                "summary": "Chat with the cultural assistant",
                "parameters": [
                    {
                        "description": "Message and history",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "event stream", "schema": {"type": "string"}},
                    "400": {"description": "Empty message", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Model not configured", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/daerah": {
            "get": {
                "description": "Regions with both coordinates set. Served from the offline dataset when the database is not configured.",
                "produces": ["application/json"],
                "tags": ["daerah"],
                "summary": "List regions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DaerahListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/daerah/{id}": {
            "get": {
                "description": "Full region record including artifact descriptions and virtual tour links.",
                "produces": ["application/json"],
                "tags": ["daerah"],
                "summary": "Get region",
                "parameters": [
                    {"type": "string", "description": "Region ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DaerahDetailResponse"}},
                    "404": {"description": "Region not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/search": {
            "get": {
                "description": "Direct substring match first, then semantic matching by the language model. Falls back to the offline dataset when the database is unavailable.",
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search regions by text",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SearchResponse"}},
                    "400": {"description": "Missing query", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Search failed", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/search/image": {
            "post": {
                "description": "The language model describes the uploaded image and picks up to three matching regions with a confidence tier.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search regions by image",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ImageSearchResponse"}},
                    "400": {"description": "Missing or non-image file", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "413": {"description": "Upload exceeds the size limit", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Search failed", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ChatMessage": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "models.ChatRequest": {
            "type": "object",
            "properties": {
                "history": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}},
                "message": {"type": "string"}
            }
        },
        "models.Daerah": {
            "type": "object",
            "properties": {
                "backgroundImg": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "kebudayaans": {"type": "array", "items": {"$ref": "#/definitions/models.Kebudayaan"}},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "nama": {"type": "string"}
            }
        },
        "models.DaerahDetailResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/models.Daerah"},
                "fallback": {"type": "boolean"},
                "success": {"type": "boolean"}
            }
        },
        "models.DaerahListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Daerah"}},
                "fallback": {"type": "boolean"},
                "success": {"type": "boolean"}
            }
        },
        "models.DaerahResult": {
            "type": "object",
            "properties": {
                "aiConfidence": {"type": "string", "enum": ["high", "medium", "low"], "x-nullable": true},
                "aiExplanation": {"type": "string", "x-nullable": true},
                "backgroundImg": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "kebudayaans": {"type": "array", "items": {"$ref": "#/definitions/models.Kebudayaan"}},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "nama": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "models.ImageSearchResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.DaerahResult"}},
                "fallback": {"type": "boolean"},
                "imageDescription": {"type": "string"},
                "matchedBy": {"type": "string"},
                "searchId": {"type": "string"},
                "success": {"type": "boolean"},
                "summary": {"type": "string"}
            }
        },
        "models.Kebudayaan": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "jenis": {"type": "string", "enum": ["SUKU_ADAT", "RUMAH_ADAT", "MAKANAN_KHAS", "KESENIAN_DAERAH"]},
                "nama": {"type": "string"},
                "virtualTour": {"type": "string"}
            }
        },
        "models.SearchResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.DaerahResult"}},
                "fallback": {"type": "boolean"},
                "matchedBy": {"type": "string"},
                "success": {"type": "boolean"},
                "summary": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Budaya Nusantara API",
	Description:      "Search Indonesian regions and their cultural heritage by text or image, and chat with a cultural assistant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
