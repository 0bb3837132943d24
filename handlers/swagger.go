package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the OpenAPI document and a Swagger UI page.
// - GET /swagger/index.html  -> UI that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>FarmConnect API — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "FarmConnect API", "version": "1.0.0" },
  "components": {
    "schemas": {
      "Created": { "type": "object", "properties": { "id": { "type": "string" } } },
      "Listing": {
        "type": "object",
        "required": ["title", "price", "unit", "category", "seller_name"],
        "properties": {
          "title": { "type": "string" },
          "description": { "type": "string" },
          "price": { "type": "number", "minimum": 0 },
          "unit": { "type": "string" },
          "category": { "type": "string", "enum": ["produce", "compost"] },
          "seller_name": { "type": "string" },
          "image_url": { "type": "string", "format": "uri" },
          "location": { "type": "string" },
          "in_stock": { "type": "boolean", "default": true }
        }
      },
      "Tutorial": {
        "type": "object",
        "required": ["title", "author"],
        "properties": {
          "title": { "type": "string" },
          "description": { "type": "string" },
          "author": { "type": "string" },
          "video_url": { "type": "string", "format": "uri" },
          "thumbnail_url": { "type": "string", "format": "uri" },
          "duration_seconds": { "type": "integer", "minimum": 0 }
        }
      },
      "Message": {
        "type": "object",
        "required": ["name", "text"],
        "properties": {
          "name": { "type": "string" },
          "text": { "type": "string", "minLength": 1, "maxLength": 1000 },
          "room": { "type": "string", "default": "general" }
        }
      }
    }
  },
  "paths": {
    "/": { "get": { "summary": "Banner", "responses": { "200": { "description": "running" } } } },
    "/test": { "get": { "summary": "Database diagnostic", "responses": { "200": { "description": "status report" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/api/products": {
      "get": {
        "summary": "List marketplace listings",
        "parameters": [{ "name": "limit", "in": "query", "schema": { "type": "integer", "default": 50, "maximum": 100 } }],
        "responses": { "200": { "description": "listings" }, "500": { "description": "database not configured" } }
      },
      "post": {
        "summary": "Create a listing",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Listing" } } } },
        "responses": { "201": { "description": "created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Created" } } } }, "422": { "description": "validation failed" } }
      }
    },
    "/api/tutorials": {
      "get": {
        "summary": "List tutorials",
        "parameters": [{ "name": "limit", "in": "query", "schema": { "type": "integer", "default": 50, "maximum": 100 } }],
        "responses": { "200": { "description": "tutorials" } }
      },
      "post": {
        "summary": "Create a tutorial",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Tutorial" } } } },
        "responses": { "201": { "description": "created" }, "422": { "description": "validation failed" } }
      }
    },
    "/api/messages": {
      "get": {
        "summary": "List chat messages in a room",
        "parameters": [
          { "name": "room", "in": "query", "schema": { "type": "string", "default": "general" } },
          { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 50, "maximum": 200 } }
        ],
        "responses": { "200": { "description": "messages" } }
      },
      "post": {
        "summary": "Post a chat message",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } },
        "responses": { "201": { "description": "created" }, "422": { "description": "validation failed" } }
      }
    },
    "/api/media": {
      "post": {
        "summary": "Upload an image or video",
        "requestBody": { "content": { "multipart/form-data": { "schema": { "type": "object", "properties": { "file": { "type": "string", "format": "binary" } } } } } },
        "responses": { "201": { "description": "stored; returns key and presigned url" }, "503": { "description": "media storage not configured" } }
      }
    }
  }
}`
