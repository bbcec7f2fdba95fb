// Package docs registra la especificación OpenAPI que sirve /swagger.
// Mantenido a mano junto con las anotaciones de los handlers.
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
        "/visits": {
            "get": {
                "tags": ["visits"],
                "summary": "Listar visitas",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "name", "in": "query", "type": "string", "description": "Filtro por nombre (substring, case-insensitive)"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "completed"]},
                    {"name": "limit", "in": "query", "type": "integer", "description": "Máx 200, default 50"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "tags": ["visits"],
                "summary": "Registrar visita",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createVisitRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "invalid_input | invalid_reference"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/visits/office": {
            "get": {
                "tags": ["visits"],
                "summary": "Cola de la oficina del caller (destino desde el token)",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "completed"]},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/visits/{visitID}": {
            "get": {
                "tags": ["visits"],
                "summary": "Detalle de visita con historial ordenado",
                "produces": ["application/json"],
                "parameters": [{"name": "visitID", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/visits/{visitID}/receive": {
            "patch": {
                "tags": ["visits"],
                "summary": "Recibir visita: completar o redirigir",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "visitID", "in": "path", "type": "string", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/receiveVisitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "invalid_input | invalid_reference"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "invalid_state: la visita ya estaba completada"}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["stats"],
                "summary": "Conteos del día (total/pending/completed)",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/stats/office": {
            "get": {
                "tags": ["stats"],
                "summary": "Conteos del día por oficina",
                "produces": ["application/json"],
                "parameters": [{"name": "destination_id", "in": "query", "type": "integer", "description": "Solo admin"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}
            }
        },
        "/destinations": {
            "get": {
                "tags": ["destinations"],
                "summary": "Catálogo de destinos ordenado por nombre",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "createVisitRequest": {
            "type": "object",
            "required": ["name", "purpose", "telephone"],
            "properties": {
                "name": {"type": "string", "minLength": 2},
                "purpose": {"type": "string", "minLength": 2},
                "telephone": {"type": "string", "description": "Solo dígitos, largo 5..32"},
                "initial_destination": {"type": "integer", "x-nullable": true}
            }
        },
        "receiveVisitRequest": {
            "type": "object",
            "required": ["received_by"],
            "properties": {
                "received_by": {"type": "string", "minLength": 2, "description": "Nombre del operador, texto libre"},
                "next_destination": {"type": "integer", "x-nullable": true, "description": "Omitir para completar"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "front-desk API",
	Description:      "Registro y ruteo de visitas y correo interno entre departamentos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
