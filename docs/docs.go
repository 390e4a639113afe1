// Package docs registers the OpenAPI description served at /docs and /swagger.
// Regenerate with: swag init -g cmd/s2t/main.go -o docs
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
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/upload-audio": {
            "post": {
                "description": "Stores a processing record, sends the audio to the speech-to-text vendor and returns the finished transcript.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Transcription"],
                "summary": "Upload and transcribe an audio file",
                "parameters": [
                    {"type": "file", "description": "Audio file (content type must start with audio/)", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Missing file or non-audio content type", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Database or vendor failure", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/transcript/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transcription"],
                "summary": "Get a transcript",
                "parameters": [
                    {"type": "integer", "description": "Transcript ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TranscriptResponse"}},
                    "400": {"description": "ID is not an integer", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "404": {"description": "Transcript not found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Failed to fetch transcript", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Transcripts"],
                "summary": "Delete a transcript",
                "parameters": [
                    {"type": "integer", "description": "Transcript ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "ID is not an integer", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "404": {"description": "Transcript not found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Failed to delete transcript", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/transcripts": {
            "get": {
                "description": "Returns every transcript, newest first. Backend failures yield an empty list.",
                "produces": ["application/json"],
                "tags": ["Transcripts"],
                "summary": "List transcripts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TranscriptResponse"}}}
                }
            }
        },
        "/transcripts/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["Transcripts"],
                "summary": "Export transcripts as xlsx",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "500": {"description": "Failed to export transcripts", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Speech-to-Text API is running"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Transcript deleted successfully"}
            }
        },
        "dto.TranscriptResponse": {
            "type": "object",
            "properties": {
                "audio_url": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer", "example": 42},
                "status": {"type": "string", "enum": ["processing", "completed", "error"], "example": "completed"},
                "text": {"type": "string", "example": "Hello and welcome to the show."}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Transcription completed successfully"},
                "status": {"type": "string", "example": "completed"},
                "text": {"type": "string", "example": "Hello and welcome to the show."},
                "transcript_id": {"type": "integer", "example": 42}
            }
        },
        "errors.APIError": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "kind": {"type": "string"},
                "request_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Speech-to-Text API",
	Description:      "File-based speech-to-text transcription API. Upload audio, transcribe it with Deepgram and keep the transcripts in Supabase.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
