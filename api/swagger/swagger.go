package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campuskit Timetable API",
        "description": "Timetable generation and conflict engine for section grids",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Generator", "description": "Proposal generation, validation and save"},
        {"name": "Timetables", "description": "Committed timetable versions"},
        {"name": "Faculty", "description": "Roster anchoring requirement faculty ids"}
    ],
    "paths": {
        "/timetables/generate": {
            "post": {
                "tags": ["Generator"],
                "summary": "Generate a conflict-free timetable proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Proposal built", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Infeasible, over capacity or insufficient stations"},
                    "503": {"description": "Search aborted before proving infeasibility"}
                }
            }
        },
        "/timetables/generate/async": {
            "post": {
                "tags": ["Generator"],
                "summary": "Enqueue a generation run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "202": {"description": "Job accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Queue full"}
                }
            }
        },
        "/timetables/generate/jobs/{jobId}": {
            "get": {
                "tags": ["Generator"],
                "summary": "Poll an asynchronous generation job",
                "parameters": [
                    {"name": "jobId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Job not found or expired"}
                }
            }
        },
        "/timetables/save": {
            "post": {
                "tags": ["Generator"],
                "summary": "Persist a proposal as new timetable versions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Saved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired"}
                }
            }
        },
        "/timetables/validate": {
            "post": {
                "tags": ["Generator"],
                "summary": "Validate hand-edited or stored grids",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Verdict with conflict list", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables": {
            "get": {
                "tags": ["Timetables"],
                "summary": "List timetable versions",
                "parameters": [
                    {"name": "academicYear", "in": "query", "type": "string"},
                    {"name": "branch", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["DRAFT", "PUBLISHED", "ARCHIVED"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/{id}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get one timetable with its full grid",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Timetables"],
                "summary": "Delete a timetable version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/timetables/{id}/status": {
            "patch": {
                "tags": ["Timetables"],
                "summary": "Move a version between lifecycle states",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTimetableStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/{id}/faculty/{facultyId}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Cross-section weekly view for one faculty member",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "facultyId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty": {
            "get": {
                "tags": ["Faculty"],
                "summary": "List roster entries",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Faculty"],
                "summary": "Register a roster entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/{facultyId}": {
            "get": {
                "tags": ["Faculty"],
                "summary": "Get one roster entry",
                "parameters": [
                    {"name": "facultyId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Faculty"],
                "summary": "Rewrite a roster entry",
                "parameters": [
                    {"name": "facultyId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateFacultyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/timetables/{id}/export": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Export a timetable grid as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        }
    },
    "definitions": {
        "RequirementRequest": {
            "type": "object",
            "required": ["subjectName", "facultyId", "weeklyHours"],
            "properties": {
                "subjectName": {"type": "string"},
                "facultyId": {"type": "string"},
                "weeklyHours": {"type": "integer"},
                "isLab": {"type": "boolean"},
                "batchCount": {"type": "integer"},
                "stationCount": {"type": "integer"}
            }
        },
        "SectionRequest": {
            "type": "object",
            "required": ["academicYear", "year", "branch", "courseName", "semester", "requirements"],
            "properties": {
                "academicYear": {"type": "string"},
                "year": {"type": "integer"},
                "branch": {"type": "string"},
                "courseName": {"type": "string"},
                "semester": {"type": "integer"},
                "roomNumber": {"type": "string"},
                "requirements": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/RequirementRequest"}
                }
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "required": ["sections"],
            "properties": {
                "days": {"type": "integer"},
                "periodsPerDay": {"type": "integer"},
                "breakPeriods": {"type": "array", "items": {"type": "integer"}},
                "lunchPeriod": {"type": "integer"},
                "sections": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SectionRequest"}
                },
                "meta": {"type": "object"}
            }
        },
        "SaveTimetableRequest": {
            "type": "object",
            "required": ["proposalId"],
            "properties": {
                "proposalId": {"type": "string"},
                "publish": {"type": "boolean"}
            }
        },
        "ValidateTimetableRequest": {
            "type": "object",
            "required": ["sections"],
            "properties": {
                "days": {"type": "integer"},
                "periodsPerDay": {"type": "integer"},
                "breakPeriods": {"type": "array", "items": {"type": "integer"}},
                "lunchPeriod": {"type": "integer"},
                "sections": {"type": "array", "items": {"type": "object"}}
            }
        },
        "UpdateTimetableStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["DRAFT", "PUBLISHED", "ARCHIVED"]}
            }
        },
        "CreateFacultyRequest": {
            "type": "object",
            "required": ["id", "fullName", "email"],
            "properties": {
                "id": {"type": "string"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"}
            }
        },
        "UpdateFacultyRequest": {
            "type": "object",
            "required": ["fullName", "email", "active"],
            "properties": {
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "department": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_page": {"type": "integer"},
                "total": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
