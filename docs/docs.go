// Package docs registra la documentación OpenAPI servida en /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "sesión y perfil"}, "400": {"description": "credenciales inválidas"}, "401": {"description": "perfil inexistente o inactivo"}, "503": {"description": "sin identity provider"}}
            }
        },
        "/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Registro", "responses": {"201": {"description": "cuenta creada"}, "401": {"description": "email sin plan"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "sesión descartada"}}}
        },
        "/webhooks/billing": {
            "post": {"tags": ["billing"], "summary": "Webhook de compras (Kiwify/Hotmart)", "responses": {"200": {"description": "perfil aprovisionado"}, "401": {"description": "secreto inválido"}}}
        },
        "/me": {
            "get": {"tags": ["account"], "summary": "Perfil y uso del plan", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "perfil"}}}
        },
        "/dashboard": {
            "get": {"tags": ["account"], "summary": "Tarjetas de mascotas con estado de salud", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "dashboard"}}}
        },
        "/data": {
            "delete": {"tags": ["account"], "summary": "Borrar todos los datos de la cuenta", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "dashboard vacío"}}}
        },
        "/pets": {
            "get": {"tags": ["pets"], "summary": "Listar mascotas", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "mascotas"}}},
            "post": {"tags": ["pets"], "summary": "Registrar mascota", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "creada"}, "403": {"description": "cupo del plan alcanzado"}}}
        },
        "/pets/{petID}": {
            "get": {"tags": ["pets"], "summary": "Ver mascota", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "mascota"}, "404": {"description": "no existe"}}},
            "delete": {"tags": ["pets"], "summary": "Borrar mascota en cascada", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "dashboard recargado"}}}
        },
        "/pets/{petID}/status": {
            "get": {"tags": ["pets"], "summary": "Semáforo de salud", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}], "responses": {"200": {"description": "green/yellow/red"}}}
        },
        "/vaccines": {
            "get": {"tags": ["care"], "summary": "Listar vacunas", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "vacunas"}}},
            "post": {"tags": ["care"], "summary": "Registrar vacuna", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "creada"}}}
        },
        "/medications": {
            "get": {"tags": ["medications"], "summary": "Tratamientos activos y terminados", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "overview"}}},
            "post": {"tags": ["medications"], "summary": "Crear tratamiento", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "curso con tomas"}}}
        },
        "/medications/{id}/doses": {
            "get": {"tags": ["medications"], "summary": "Progreso de tomas", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "progreso"}}}
        },
        "/doses/{id}": {
            "patch": {"tags": ["medications"], "summary": "Marcar toma", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "ok"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PetControl API",
	Description:      "Registro de salud de mascotas: vacunas, antiparasitarios, alimentación, visitas, tratamientos y peso.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
