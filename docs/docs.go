// Package docs registra la especificación OpenAPI del API en swag.
// Se regenera con: swag init -g cmd/api/main.go -o docs
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
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar empresa y usuario administrador"}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión"}},
        "/api/users": {
            "get": {"tags": ["users"], "summary": "Listar usuarios de la empresa (admin)", "security": [{"Bearer": []}]},
            "post": {"tags": ["users"], "summary": "Crear usuario en la empresa (admin)", "security": [{"Bearer": []}]}
        },
        "/api/users/me": {
            "get": {"tags": ["users"], "summary": "Perfil del usuario autenticado", "security": [{"Bearer": []}]},
            "put": {"tags": ["users"], "summary": "Actualizar el propio perfil", "security": [{"Bearer": []}]}
        },
        "/api/companies": {
            "get": {"tags": ["companies"], "summary": "Obtener la empresa del token", "security": [{"Bearer": []}]},
            "put": {"tags": ["companies"], "summary": "Actualizar datos de la empresa (admin)", "security": [{"Bearer": []}]}
        },
        "/api/companies/logo": {"post": {"tags": ["companies"], "summary": "Cambiar el logo de la empresa (admin)", "security": [{"Bearer": []}]}},
        "/api/customers": {
            "get": {"tags": ["customers"], "summary": "Listar clientes", "security": [{"Bearer": []}]},
            "post": {"tags": ["customers"], "summary": "Crear cliente", "security": [{"Bearer": []}]}
        },
        "/api/customers/{id}": {
            "get": {"tags": ["customers"], "summary": "Obtener cliente", "security": [{"Bearer": []}]},
            "put": {"tags": ["customers"], "summary": "Reemplazar datos del cliente", "security": [{"Bearer": []}]},
            "delete": {"tags": ["customers"], "summary": "Eliminar cliente (409 si tiene facturas)", "security": [{"Bearer": []}]}
        },
        "/api/invoices": {
            "get": {"tags": ["invoices"], "summary": "Listar facturas", "security": [{"Bearer": []}]},
            "post": {"tags": ["invoices"], "summary": "Crear factura con sus líneas", "security": [{"Bearer": []}]}
        },
        "/api/invoices/stats/overview": {"get": {"tags": ["invoices"], "summary": "Resumen de facturación de la empresa", "security": [{"Bearer": []}]}},
        "/api/invoices/{id}": {
            "get": {"tags": ["invoices"], "summary": "Detalle de factura con cliente y líneas", "security": [{"Bearer": []}]},
            "put": {"tags": ["invoices"], "summary": "Reemplazar cabecera y líneas de una factura", "security": [{"Bearer": []}]},
            "delete": {"tags": ["invoices"], "summary": "Eliminar factura y sus líneas", "security": [{"Bearer": []}]}
        },
        "/api/invoices/{id}/pdf": {"get": {"tags": ["invoices"], "summary": "Descargar la factura en PDF", "security": [{"Bearer": []}]}}
    }
}`

// SwaggerInfo datos de cabecera de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Facturación API",
	Description:      "API multiempresa de clientes y facturas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
