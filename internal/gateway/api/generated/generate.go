// Пакет generated — серверный код и модели, сгенерированные oapi-codegen
// из OpenAPI-контракта Gateway (api/gateway.yaml).
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=config.yaml ../../../../api/gateway.yaml
