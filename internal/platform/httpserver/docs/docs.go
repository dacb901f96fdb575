// Package docs provides the generated OpenAPI document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/registry/v1/voters": {
            "post": {
                "summary": "Register the calling principal as a voter",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/registry/v1/voters/{voter_id}": {
            "get": {
                "summary": "Fetch a voter record",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/engine/v1/elections": {
            "post": {
                "summary": "Configure an election window",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/engine/v1/votes": {
            "post": {
                "summary": "Cast a direct vote",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/engine/v1/elections/{election_id}/results": {
            "get": {
                "summary": "Aggregate per-option tallies for an election",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Electra Voting Ledger API",
	Description:      "Voter identity registry and election ledger operations.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
