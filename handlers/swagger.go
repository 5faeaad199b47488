package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRoutes, apiPrefix string) {
	doc := strings.ReplaceAll(swaggerJSON, "{{prefix}}", strings.TrimRight(apiPrefix, "/"))

	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>nexfolio API - Swagger</title>
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
  "info": { "title": "nexfolio-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": {
      "apiKey": { "type": "apiKey", "in": "header", "name": "x-api-key" },
      "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" }
    },
    "schemas": {
      "Blog": { "type": "object", "required": ["title","content","author","category","slug"], "properties": { "title": {"type":"string"}, "content": {"type":"string"}, "author": {"type":"string"}, "category": {"type":"string"}, "tags": {"type":"array","items":{"type":"string"}}, "image_Url": {"type":"string"}, "metaTitle": {"type":"string"}, "metaDescription": {"type":"string"}, "slug": {"type":"string"}, "keywords": {"type":"array","items":{"type":"string"}}, "canonicalUrl": {"type":"string"} } },
      "Comment": { "type": "object", "required": ["name","blogTitle","phone","email","message"], "properties": { "name": {"type":"string"}, "blogId": {"type":"string"}, "blogTitle": {"type":"string"}, "phone": {"type":"string"}, "email": {"type":"string"}, "message": {"type":"string"} } },
      "Feedback": { "type": "object", "required": ["name","phone","email","subject","message"], "properties": { "name": {"type":"string"}, "phone": {"type":"string"}, "email": {"type":"string"}, "subject": {"type":"string"}, "message": {"type":"string"} } },
      "User": { "type": "object", "required": ["name","email","password"], "properties": { "name": {"type":"string"}, "email": {"type":"string"}, "password": {"type":"string","writeOnly":true} } },
      "Error": { "type": "object", "properties": { "error": {"type":"string"} } }
    }
  },
  "security": [ { "apiKey": [] } ],
  "paths": {
    "{{prefix}}/blogs": {
      "get": { "summary": "List blogs", "responses": { "200": { "description": "blogs" } } },
      "post": { "summary": "Create blog", "security": [ { "apiKey": [], "bearer": [] } ], "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Blog" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "missing fields or duplicate slug" } } }
    },
    "{{prefix}}/blogs/{slugOrId}": {
      "get": { "summary": "Get blog by slug or id", "responses": { "200": { "description": "blog" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace blog", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "updated" }, "400": { "description": "invalid" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete blog and its image", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "{{prefix}}/comments": {
      "get": { "summary": "List comments", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "comments" } } },
      "post": { "summary": "Create comment", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Comment" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "invalid" } } }
    },
    "{{prefix}}/comments/{id}": {
      "get": { "summary": "Get comment", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "comment" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update comment", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete comment", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "deleted" } } }
    },
    "{{prefix}}/feedbacks": {
      "get": { "summary": "List feedbacks", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "feedbacks" } } },
      "post": { "summary": "Submit feedback", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Feedback" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "invalid" } } }
    },
    "{{prefix}}/feedbacks/{id}": {
      "get": { "summary": "Get feedback", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "feedback" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update feedback", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete feedback", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "deleted" } } }
    },
    "{{prefix}}/users": {
      "get": { "summary": "List users", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "users without password" } } },
      "post": { "summary": "Create user", "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } }, "responses": { "201": { "description": "created" }, "400": { "description": "missing fields or email in use" } } }
    },
    "{{prefix}}/users/{id}": {
      "get": { "summary": "Get user", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "user" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update user, password optional", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "updated" } } },
      "delete": { "summary": "Delete user", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "deleted" } } }
    },
    "{{prefix}}/login": {
      "post": { "summary": "Exchange email and password for a token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}} } } }, "responses": { "200": { "description": "{id,name,email,token}" }, "401": { "description": "Invalid email or password" } } }
    },
    "{{prefix}}/upload": {
      "post": { "summary": "Upload an image (multipart field file)", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "201": { "description": "stored image reference" }, "400": { "description": "missing, too large or not an image" } } }
    },
    "{{prefix}}/upload/{folder}/{publicId}": {
      "delete": { "summary": "Delete an uploaded image", "security": [ { "apiKey": [], "bearer": [] } ], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found on image host" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
