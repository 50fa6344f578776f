// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in and obtain a bearer token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/admin/users": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Create a user (ADMIN only)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createUserRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/admin/users/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Rename a user or reset its password (ADMIN only; admin accounts and the caller are refused)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/user"}}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a user and its memberships (ADMIN only)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List every account except the caller",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/user"}}}}
            }
        },
        "/v1/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "List the caller's projects",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/projectResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Create a project; the caller becomes MANAGER",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createProjectRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/projectResponse"}}}
            }
        },
        "/v1/projects/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Get a project (members and admins)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/projectResponse"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Update title and description; a member_ids list replaces the member set (MANAGER or ADMIN)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateProjectRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/projectResponse"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Delete a project with its tasks and memberships",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/projects/{id}/role/self": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "The caller's capability on the project",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/roleResponse"}}, "403": {"description": "Forbidden"}}
            }
        },
        "/v1/projects/{id}/comments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "List comments split into pinned and unpinned, newest first",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/commentThreadResponse"}}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Comment on a project (members and admins)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createCommentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/commentResponse"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/v1/projects/{id}/comments/{comment_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Delete a comment (author or ADMIN)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "path", "name": "comment_id", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/projects/{id}/comments/{comment_id}/pin": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["comments"],
                "summary": "Toggle the pin of a comment (MANAGER or ADMIN)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "path", "name": "comment_id", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/commentResponse"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/projects/{id}/members": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "List project members",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/memberResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Add a member (MANAGER or ADMIN)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/addMemberRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/memberResponse"}}, "409": {"description": "Conflict"}}
            }
        },
        "/v1/projects/{id}/members/{user_id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Remove a member (MANAGER or ADMIN)",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "path", "name": "user_id", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "List a project board, or the caller's assigned tasks",
                "parameters": [{"in": "query", "name": "project_id", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/taskResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Create a task at the tail of its status bucket",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createTaskRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/v1/tasks/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Get a task",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/taskResponse"}}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Update, move or reorder a task",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/updateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/taskResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tasks"],
                "summary": "Delete a task (MANAGER or ADMIN)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "createUserRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string", "enum": ["USER", "ADMIN"]}}},
        "authResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}}}}},
        "createProjectRequest": {"type": "object", "required": ["title"], "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "member_ids": {"type": "array", "items": {"type": "string"}}}},
        "updateProjectRequest": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "member_ids": {"type": "array", "items": {"type": "string"}}}},
        "roleResponse": {"type": "object", "properties": {"role": {"type": "string", "enum": ["MEMBER", "MANAGER", "ADMIN"]}}},
        "createCommentRequest": {"type": "object", "required": ["content"], "properties": {"content": {"type": "string"}}},
        "commentResponse": {"type": "object", "properties": {"id": {"type": "string"}, "project_id": {"type": "string"}, "author_id": {"type": "string"}, "author_username": {"type": "string"}, "content": {"type": "string"}, "pinned": {"type": "boolean"}, "created_at": {"type": "string"}}},
        "commentThreadResponse": {"type": "object", "properties": {"pinned": {"type": "array", "items": {"$ref": "#/definitions/commentResponse"}}, "unpinned": {"type": "array", "items": {"$ref": "#/definitions/commentResponse"}}}},
        "updateUserRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string", "minLength": 6}}},
        "user": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "addMemberRequest": {"type": "object", "required": ["user_id"], "properties": {"user_id": {"type": "string"}}},
        "projectResponse": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "memberResponse": {"type": "object", "properties": {"user_id": {"type": "string"}, "username": {"type": "string"}, "role": {"type": "string"}, "joined_at": {"type": "string"}}},
        "createTaskRequest": {"type": "object", "required": ["project_id", "title", "status", "assignee_id"], "properties": {"project_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "tags": {"type": "string"}, "deadline": {"type": "string"}, "status": {"type": "string", "enum": ["TO_DO", "IN_PROGRESS", "DONE"]}, "assignee_id": {"type": "string"}}},
        "updateTaskRequest": {"type": "object", "required": ["status"], "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "tags": {"type": "string"}, "deadline": {"type": "string"}, "status": {"type": "string", "enum": ["TO_DO", "IN_PROGRESS", "DONE"]}, "assignee_id": {"type": "string"}, "position": {"type": "integer", "minimum": 0}}},
        "taskResponse": {"type": "object", "properties": {"id": {"type": "string"}, "project_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "tags": {"type": "string"}, "deadline": {"type": "string"}, "status": {"type": "string"}, "position": {"type": "integer"}, "assignee_id": {"type": "string"}, "assignee_display_name": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Taskboard API",
	Description:      "Multi-project Kanban board with per-project roles and a WIP limit.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
