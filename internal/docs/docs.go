// Package docs содержит swagger-документ API, который отдается по /docs.
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
        "/auth/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Текущий пользователь",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/premium/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Billing"],
                "summary": "Статус премиум-доступа",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/billing/subscription": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Billing"],
                "summary": "Оформить подписку",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/billing/webhook": {
            "post": {
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Billing"],
                "summary": "Вебхук Stripe",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/sessions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Последние сессии",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Создать сессию",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/sessions/range": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Сессии за интервал дат",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/sessions/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Обновить сессию",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Состояние отсчета",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Запустить отсчет",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live/pause": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Поставить отсчет на паузу",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live/resume": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Продолжить отсчет",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Сбросить отсчет",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/timer/live/switch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Timer"],
                "summary": "Сменить тип сессии",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/user/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Настройки пользователя",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Сохранить настройки",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/user/streaks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Streaks"],
                "summary": "История дней",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/user/streak/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Streaks"],
                "summary": "Текущая и лучшая серия",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/user/streak": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Streaks"],
                "summary": "Записать итоги дня",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/analytics/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Сводка по завершенным сессиям",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/quotes/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Quotes"],
                "summary": "Случайная цитата",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Задачи пользователя",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Создать задачу",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/tasks/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Задача по ID",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Обновить задачу",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Удалить задачу",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/game/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Игровой профиль",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/game/xp": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Начислить опыт",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/chat": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Сообщение коучу",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/ai/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "История диалога",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/screen-usage": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "produces": ["application/json"],
                "tags": ["ScreenUsage"],
                "summary": "Записать использование экрана",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/screen-usage/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["ScreenUsage"],
                "summary": "Статистика отвлечений",
                "parameters": [{"type": "string", "description": "ID сессии", "name": "session_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/challenges": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Challenges"],
                "summary": "Активные челленджи",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/challenges/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Challenges"],
                "summary": "Прогресс в челленджах",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/challenges/{id}/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "produces": ["application/json"],
                "tags": ["Challenges"],
                "summary": "Вступить в челлендж",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Проверка живости",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "error": {"type": "string"},
                "code": {"type": "string", "example": "PREMIUM_REQUIRED"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the identity provider token.",
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
	Schemes:          []string{},
	Title:            "FocusZen API",
	Description:      "Бэкенд помодоро-таймера: сессии, серии, задачи, игровые механики, ИИ-коуч и подписка.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
