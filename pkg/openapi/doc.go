// Package openapi derives field configuration from OpenAPI 3 component
// schemas. Objects become groups, arrays become lists and the schema
// constraints become validation rules.
package openapi
