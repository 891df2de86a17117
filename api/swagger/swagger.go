package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IHS Front Desk API",
        "description": "Entry logging for the Institute of Health Sciences front desk",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Admin login and account management"},
        {"name": "Students", "description": "Student directory and entry scans"},
        {"name": "Visitors", "description": "Visitor check-in and check-out"},
        {"name": "Fines", "description": "Disciplinary fine ledger"},
        {"name": "Reports", "description": "Daily statistics and chart series"},
        {"name": "Exports", "description": "CSV and PDF downloads"},
        {"name": "Theme", "description": "Pass and card rendering configuration"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password for the current user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "Password changed"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student with an auto-generated ID",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/students/bulk": {
            "post": {
                "tags": ["Students"],
                "summary": "Bulk import students",
                "responses": {
                    "200": {"description": "Import result with skipped rows", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/scan": {
            "post": {
                "tags": ["Students"],
                "summary": "Record a student scan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Entry recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not registered"},
                    "409": {"description": "Already scanned today; prior entry in data"}
                }
            }
        },
        "/students/logs": {
            "get": {
                "tags": ["Students"],
                "summary": "List entry logs",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "studentId", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/departments": {
            "get": {
                "tags": ["Students"],
                "summary": "List departments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/visitors": {
            "get": {
                "tags": ["Visitors"],
                "summary": "List visitors",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/visitors/check-in": {
            "post": {
                "tags": ["Visitors"],
                "summary": "Check in a visitor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckInRequest"}}
                ],
                "responses": {
                    "201": {"description": "Checked in with pass, QR, and token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Visitor already inside"}
                }
            }
        },
        "/visitors/active": {
            "get": {
                "tags": ["Visitors"],
                "summary": "List active visitors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/visitors/types": {
            "get": {
                "tags": ["Visitors"],
                "summary": "List visitor types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/visitors/{id}/check-out": {
            "post": {
                "tags": ["Visitors"],
                "summary": "Check out a visitor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Checked out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"},
                    "409": {"description": "Already checked out"}
                }
            }
        },
        "/visitors/{id}": {
            "put": {
                "tags": ["Visitors"],
                "summary": "Update a visit record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Visitors"],
                "summary": "Delete a visit record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/fines": {
            "get": {
                "tags": ["Fines"],
                "summary": "List fines",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "studentId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Fines"],
                "summary": "Add a fine",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid fine type or amount"}
                }
            }
        },
        "/fines/scan": {
            "post": {
                "tags": ["Fines"],
                "summary": "Add a fine from a scanned code",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not registered"}
                }
            }
        },
        "/fines/types": {
            "get": {
                "tags": ["Fines"],
                "summary": "List fine types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/today": {
            "get": {
                "tags": ["Reports"],
                "summary": "Today's dashboard snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/daily": {
            "get": {
                "tags": ["Reports"],
                "summary": "Daily report",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/chart": {
            "get": {
                "tags": ["Reports"],
                "summary": "Entry chart series, oldest first",
                "parameters": [
                    {"name": "days", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/visitors": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export visitors as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/exports/fines": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export fines as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/exports/daily-report": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the daily report as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/theme": {
            "get": {
                "tags": ["Theme"],
                "summary": "Get card theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Theme"],
                "summary": "Update card theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin role required"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["old_password", "new_password"],
            "properties": {
                "old_password": {"type": "string"},
                "new_password": {"type": "string", "minLength": 8}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["name", "department"],
            "properties": {
                "name": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "ScanRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string"}
            }
        },
        "CheckInRequest": {
            "type": "object",
            "required": ["name", "cnic", "purpose"],
            "properties": {
                "name": {"type": "string"},
                "cnic": {"type": "string"},
                "phone": {"type": "string"},
                "purpose": {"type": "string"},
                "personToMeet": {"type": "string"},
                "visitorType": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
