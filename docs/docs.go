// Package docs Swagger описание REST API сервиса оценки заказов
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
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Создать сеанс",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Session"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Состояние сеанса",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Session"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/sessions/{id}/ingest": {
            "post": {
                "produces": ["application/json"],
                "tags": ["scoring"],
                "summary": "Оценить следующий заказ из очереди сеанса",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Verdict"}},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/sessions/{id}/orders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scoring"],
                "summary": "Оценить переданный заказ",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true},
                    {"description": "Заказ", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Order"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Verdict"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/sessions/{id}/verdicts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scoring"],
                "summary": "Последние вердикты сеанса",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Количество", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/sessions/{id}/verdicts/{order_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Вердикт по заказу",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Номер заказа", "name": "order_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Verdict"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/sessions/{id}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Статистика сеанса",
                "parameters": [
                    {"type": "string", "description": "ID сеанса", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/verdicts": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Очистить вердикты",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/verdicts/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Статистика сервиса",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/model": {
            "get": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Описание обученной модели",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ModelSummary"}}
                }
            }
        },
        "/orders/generate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Сгенерировать входящие заказы",
                "parameters": [
                    {"type": "integer", "description": "Количество", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/orders/publish": {
            "post": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Сгенерировать заказы и опубликовать их в Kafka",
                "parameters": [
                    {"type": "integer", "description": "Количество", "name": "count", "in": "query"}
                ],
                "responses": {
                    "202": {"description": "Accepted"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    },
    "definitions": {
        "models.Order": {
            "type": "object",
            "required": ["order_id", "billing_address", "shipping_address", "email", "phone", "ip_address", "amount"],
            "properties": {
                "order_id": {"type": "integer"},
                "billing_address": {"type": "string"},
                "shipping_address": {"type": "string"},
                "billing_pin": {"type": "integer"},
                "shipping_pin": {"type": "integer"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "ip_address": {"type": "string"},
                "amount": {"type": "number"}
            }
        },
        "models.Verdict": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "order_id": {"type": "integer"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "billing_address": {"type": "string"},
                "shipping_address": {"type": "string"},
                "ip_address": {"type": "string"},
                "amount": {"type": "number"},
                "risk_percent": {"type": "number"},
                "flagged": {"type": "boolean"},
                "alerts": {"type": "array", "items": {"type": "string"}},
                "flags": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "scored_at": {"type": "string"}
            }
        },
        "models.Session": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "created_at": {"type": "string"},
                "pending": {"type": "integer"},
                "processed": {"type": "integer"},
                "flagged_count": {"type": "integer"}
            }
        },
        "models.ModelSummary": {
            "type": "object",
            "properties": {
                "features": {"type": "array", "items": {"type": "string"}},
                "coefficients": {"type": "array", "items": {"type": "number"}},
                "intercept": {"type": "number"},
                "iterations": {"type": "integer"},
                "training_rows": {"type": "integer"},
                "training_accuracy": {"type": "number"},
                "trained_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo метаданные API
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "COD Fraud Scoring API",
	Description:      "Оценка риска мошенничества для заказов с оплатой при получении",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
