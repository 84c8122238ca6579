// Package docs holds the swagger document served at /swagger.
// Regenerate with: swag init -g cmd/hrms_ledger/main.go -o cmd/docs
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
        "/accounting/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists transactions newest first with their entries, optionally filtered by date range and status",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "Inclusive start date (YYYY-MM-DD)", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive end date (YYYY-MM-DD)", "name": "endDate", "in": "query"},
                    {"type": "string", "description": "draft or posted", "name": "status", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}},
                    "400": {"description": "Invalid query parameters", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Persistence failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates a balanced set of entries and records the transaction with them",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Post a ledger transaction",
                "parameters": [
                    {"description": "Transaction with entries", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateTransactionResponse"}},
                    "400": {"description": "Invalid entry or unbalanced transaction", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Persistence failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accounting/transactions/{transactionID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retrieves one transaction with its entries",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction by ID",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accounting/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Aggregates posted transactions for a calendar month with per-category totals",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly summary",
                "parameters": [
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "query", "required": true},
                    {"type": "integer", "description": "Four digit year", "name": "year", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.MonthlySummary"}},
                    "400": {"description": "Invalid period", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accounting/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List active accounts",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Account"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Account"}},
                    "409": {"description": "Account code already exists", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/accounting/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List active categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Category"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "Category details", "name": "category", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCategoryRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Category"}}}
            }
        },
        "/accounting/vendors": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List active vendors",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Vendor"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Create a vendor",
                "parameters": [
                    {"description": "Vendor details", "name": "vendor", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateVendorRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Vendor"}}}
            }
        }
    },
    "definitions": {
        "domain.Account": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "code": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["asset", "liability", "equity", "revenue", "expense"]},
                "parentId": {"type": "integer"},
                "balance": {"type": "number"},
                "isActive": {"type": "boolean"}
            }
        },
        "domain.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "domain.Vendor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "domain.CategoryTotal": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "domain.MonthlySummary": {
            "type": "object",
            "properties": {
                "month": {"type": "integer"},
                "year": {"type": "integer"},
                "totalTransactions": {"type": "integer"},
                "totalAmount": {"type": "number"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryTotal"}},
                "topCategories": {"type": "array", "items": {"$ref": "#/definitions/domain.CategoryTotal"}}
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["code", "name", "type"],
            "properties": {
                "code": {"type": "string", "maxLength": 32},
                "name": {"type": "string", "maxLength": 255},
                "type": {"type": "string", "example": "expense"},
                "parentId": {"type": "integer"}
            }
        },
        "dto.CreateCategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "description": {"type": "string", "maxLength": 1000}
            }
        },
        "dto.CreateVendorRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "email": {"type": "string"},
                "phone": {"type": "string", "maxLength": 32}
            }
        },
        "dto.CreateEntryRequest": {
            "type": "object",
            "required": ["accountId"],
            "properties": {
                "accountId": {"type": "integer"},
                "categoryId": {"type": "integer"},
                "vendorId": {"type": "integer"},
                "description": {"type": "string", "maxLength": 500},
                "debit": {"type": "number"},
                "credit": {"type": "number"}
            }
        },
        "dto.CreateTransactionRequest": {
            "type": "object",
            "required": ["date", "entries"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-15"},
                "description": {"type": "string", "maxLength": 1000},
                "reference": {"type": "string", "maxLength": 255},
                "status": {"type": "string", "example": "draft"},
                "entries": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/dto.CreateEntryRequest"}}
            }
        },
        "dto.CreateTransactionResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "transactionId": {"type": "integer"},
                "number": {"type": "string"}
            }
        },
        "dto.EntryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "accountId": {"type": "integer"},
                "categoryId": {"type": "integer"},
                "vendorId": {"type": "integer"},
                "description": {"type": "string"},
                "debit": {"type": "number"},
                "credit": {"type": "number"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "number": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "reference": {"type": "string"},
                "status": {"type": "string"},
                "totalAmount": {"type": "number"},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/dto.EntryResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Title:            "HRMS Ledger API",
	Description:      "Double-entry accounting ledger for the HRMS: posting, listing and monthly summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
