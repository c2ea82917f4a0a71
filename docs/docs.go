// Package docs registra el documento OpenAPI de la API en swag.
// swagger.json se regenera con: swag init -g cmd/api/main.go -o docs
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var doc string

type document struct{}

func (document) ReadDoc() string { return doc }

func init() {
	swag.Register(swag.Name, document{})
}
