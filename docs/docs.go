// Package docs holds the OpenAPI description served by Swagger UI at /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports whether the sentiment service is configured, plus rate limiter state",
                "produces": ["application/json"],
                "tags": ["operations"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/http.HealthResponse"}
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {"$ref": "#/definitions/http.HealthResponse"}
                    }
                }
            }
        },
        "/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["operations"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/sentimentAnalyzer": {
            "get": {
                "description": "Classifies the sentiment of the given text and returns an HTML fragment with label and score (0-100)",
                "produces": ["text/html"],
                "tags": ["sentiment"],
                "summary": "Analyze sentiment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Text to analyze",
                        "name": "textToAnalyze",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "The given text has been identified as <strong>positive</strong> with a score of <strong>91.24</strong> out of 100.",
                        "schema": {"type": "string"}
                    },
                    "400": {
                        "description": "Invalid input! Try again.",
                        "schema": {"type": "string"}
                    },
                    "429": {
                        "description": "Too many requests",
                        "schema": {"type": "string"}
                    },
                    "500": {
                        "description": "Invalid input! Try again.",
                        "schema": {"type": "string"}
                    }
                }
            }
        }
    },
    "definitions": {
        "http.CheckStatus": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {}},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/http.CheckStatus"}
                },
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Sentiment Analyzer API",
	Description:      "Forwards text to IBM Watson Natural Language Understanding and renders the document sentiment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
