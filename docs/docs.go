// Package docs provides the generated swagger specification.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a new account",
                "responses": {
                    "201": {"description": "Account created"},
                    "400": {"description": "Malformed input or email already taken"},
                    "404": {"description": "Company not found"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "responses": {
                    "200": {"description": "Login successful"},
                    "401": {"description": "Email or password is incorrect"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current account",
                "responses": {
                    "200": {"description": "The authenticated user"},
                    "401": {"description": "Invalid token"}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "List all users",
                "responses": {
                    "200": {"description": "users"},
                    "403": {"description": "Not an admin"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Create a user",
                "responses": {
                    "201": {"description": "message and user"},
                    "400": {"description": "Malformed input or duplicate email"}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Get user by ID",
                "responses": {
                    "200": {"description": "user"},
                    "404": {"description": "User not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Update a user",
                "responses": {
                    "200": {"description": "message and user"},
                    "404": {"description": "User not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Delete a user",
                "responses": {
                    "200": {"description": "User deleted successfully"},
                    "400": {"description": "Cannot delete the last admin user"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/users/stats/overview": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "User statistics overview",
                "responses": {
                    "200": {"description": "totals by role"}
                }
            }
        },
        "/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "List all companies",
                "responses": {
                    "200": {"description": "companies"},
                    "403": {"description": "Not an admin"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Create a company",
                "responses": {
                    "201": {"description": "message and company"},
                    "400": {"description": "Malformed input or duplicate name"}
                }
            }
        },
        "/companies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Get company by ID",
                "responses": {
                    "200": {"description": "company"},
                    "404": {"description": "Company not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Update a company",
                "responses": {
                    "200": {"description": "message and company"},
                    "404": {"description": "Company not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Delete a company",
                "responses": {
                    "200": {"description": "Company deleted successfully"},
                    "400": {"description": "Company has associated jobs"},
                    "404": {"description": "Company not found"}
                }
            }
        },
        "/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "Search jobs",
                "responses": {
                    "200": {"description": "jobs and pagination"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "Create a job",
                "responses": {
                    "201": {"description": "message and job"},
                    "403": {"description": "Job belongs to another company"},
                    "404": {"description": "Company not found"}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "Get job by ID",
                "responses": {
                    "200": {"description": "job"},
                    "404": {"description": "Job not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "Update a job",
                "responses": {
                    "200": {"description": "message and job"},
                    "403": {"description": "Job belongs to another company"},
                    "404": {"description": "Job or company not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "Delete a job",
                "responses": {
                    "200": {"description": "Job deleted successfully"},
                    "400": {"description": "Job has applications"},
                    "403": {"description": "Job belongs to another company"},
                    "404": {"description": "Job not found"}
                }
            }
        },
        "/jobs/company/my-jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Job"],
                "summary": "List jobs of the authenticated company",
                "responses": {
                    "200": {"description": "jobs and pagination"},
                    "403": {"description": "Company account without company"}
                }
            }
        },
        "/applications/jobs/{jobId}/apply": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Application"],
                "summary": "Apply to a job",
                "responses": {
                    "201": {"description": "message and application"},
                    "400": {"description": "Missing or invalid CV, or already applied"},
                    "404": {"description": "Job not found"}
                }
            }
        },
        "/applications/my-applications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Application"],
                "summary": "List own applications",
                "responses": {
                    "200": {"description": "applications and pagination"}
                }
            }
        },
        "/applications/job/{jobId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Application"],
                "summary": "List applications for a job",
                "responses": {
                    "200": {"description": "applications and pagination"},
                    "403": {"description": "Job belongs to another company"},
                    "404": {"description": "Job not found"}
                }
            }
        },
        "/applications/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Application"],
                "summary": "Update application status",
                "responses": {
                    "200": {"description": "message and application"},
                    "403": {"description": "Job belongs to another company"},
                    "404": {"description": "Application not found"}
                }
            }
        },
        "/applications/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Application"],
                "summary": "Delete an application",
                "responses": {
                    "200": {"description": "Application deleted successfully"},
                    "403": {"description": "Not allowed to delete this application"},
                    "404": {"description": "Application not found"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "database status"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Job Board API",
	Description:      "REST backend for the job board: accounts, companies, jobs and applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
