// Package docs registers the OpenAPI description served at /swagger.
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
        "/documents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List stored documents",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DocumentListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Stores the PDF and generates questions from it",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a syllabus PDF",
                "parameters": [
                    {"type": "file", "description": "PDF document", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/questions": {
            "get": {
                "description": "Newest first, optionally filtered by source document and difficulty",
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "List questions",
                "parameters": [
                    {"type": "string", "description": "Source document", "name": "source_pdf", "in": "query"},
                    {"type": "string", "description": "Expert, Master, Champion or Easy, Medium, Hard", "name": "difficulty", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of questions", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuestionListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}}
                }
            }
        },
        "/questions/count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Count stored questions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CountResponse"}}
                }
            }
        },
        "/questions/test-sets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["questions"],
                "summary": "Build practice test sets",
                "parameters": [
                    {"type": "string", "description": "Source document", "name": "source_pdf", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TestSets"}}
                }
            }
        },
        "/exams": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exams"],
                "summary": "Start a practice exam",
                "parameters": [
                    {"description": "Question count, 60 when omitted", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/dto.StartExamRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.StartExamResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/exams/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exams"],
                "summary": "Get an exam session",
                "parameters": [
                    {"type": "string", "description": "Exam id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ExamSession"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/exams/{id}/answers": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exams"],
                "summary": "Record an answer",
                "parameters": [
                    {"type": "string", "description": "Exam id", "name": "id", "in": "path", "required": true},
                    {"description": "Answer, -1 clears it", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ExamSession"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/exams/{id}/finish": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["exams"],
                "summary": "Finish and grade an exam",
                "parameters": [
                    {"type": "string", "description": "Exam id", "name": "id", "in": "path", "required": true},
                    {"description": "Seconds spent", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.FinishExamRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FinishExamResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exams"],
                "summary": "Practice statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserStats"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Question": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correct_answer": {"type": "integer"},
                "explanation": {"type": "string"},
                "hint": {"type": "string"},
                "category": {"type": "string"},
                "difficulty": {"type": "string", "enum": ["Expert", "Master", "Champion"]},
                "reasoning": {"type": "string"},
                "complexity_score": {"type": "integer"},
                "source_pdf": {"type": "string"}
            }
        },
        "domain.StoredQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correct_answer": {"type": "integer"},
                "difficulty": {"type": "string"},
                "source_pdf": {"type": "string"}
            }
        },
        "domain.TestSets": {
            "type": "object",
            "properties": {
                "expert": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "master": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "champion": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "ultimate": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}}
            }
        },
        "domain.ProcessingSummary": {
            "type": "object",
            "properties": {
                "total_questions": {"type": "integer"},
                "expert_count": {"type": "integer"},
                "master_count": {"type": "integer"},
                "champion_count": {"type": "integer"},
                "topics_covered": {"type": "array", "items": {"type": "string"}},
                "estimated_exam_time": {"type": "integer"},
                "recommended_pass_score": {"type": "integer"},
                "average_complexity": {"type": "number"},
                "fallback_used": {"type": "boolean"}
            }
        },
        "domain.ExamSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question_ids": {"type": "array", "items": {"type": "string"}},
                "answers": {"type": "array", "items": {"type": "integer"}},
                "score": {"type": "integer"},
                "time_spent": {"type": "integer"},
                "total_time": {"type": "integer"},
                "completed": {"type": "boolean"},
                "started_at": {"type": "string"},
                "completed_at": {"type": "string"}
            }
        },
        "domain.UserStats": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "total_questions": {"type": "integer"},
                "correct_answers": {"type": "integer"},
                "total_points": {"type": "integer"},
                "current_streak": {"type": "integer"},
                "best_streak": {"type": "integer"},
                "average_time": {"type": "integer"},
                "exams_taken": {"type": "integer"},
                "last_exam_date": {"type": "string"}
            }
        },
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {}
            }
        },
        "dto.UploadResponse": {
            "type": "object",
            "properties": {
                "document": {"type": "string"},
                "strategy": {"type": "string"},
                "generated": {"type": "integer"},
                "inserted": {"type": "integer"},
                "notice": {"type": "string"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.Question"}},
                "summary": {"$ref": "#/definitions/domain.ProcessingSummary"},
                "test_sets": {"$ref": "#/definitions/domain.TestSets"}
            }
        },
        "dto.DocumentListResponse": {
            "type": "object",
            "properties": {
                "documents": {"type": "array", "items": {"type": "string"}},
                "count": {"type": "integer"}
            }
        },
        "dto.QuestionListResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"$ref": "#/definitions/domain.StoredQuestion"}},
                "count": {"type": "integer"}
            }
        },
        "dto.CountResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "dto.StartExamRequest": {
            "type": "object",
            "properties": {"question_count": {"type": "integer"}}
        },
        "dto.ExamQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string"},
                "difficulty": {"type": "string"},
                "hint": {"type": "string"}
            }
        },
        "dto.StartExamResponse": {
            "type": "object",
            "properties": {
                "exam": {"$ref": "#/definitions/domain.ExamSession"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.ExamQuestion"}}
            }
        },
        "dto.SubmitAnswerRequest": {
            "type": "object",
            "properties": {
                "question_index": {"type": "integer"},
                "answer": {"type": "integer"}
            }
        },
        "dto.FinishExamRequest": {
            "type": "object",
            "properties": {"time_spent": {"type": "integer"}}
        },
        "dto.FinishExamResponse": {
            "type": "object",
            "properties": {
                "exam": {"$ref": "#/definitions/domain.ExamSession"},
                "percentage": {"type": "number"},
                "passed": {"type": "boolean"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "ISTQB Quiz API",
	Description:      "Upload ISTQB syllabus PDFs, browse generated questions and take practice exams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
