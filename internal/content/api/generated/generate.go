// Пакет generated — серверный код и модели, сгенерированные oapi-codegen
// из OpenAPI-контракта Content Service (api/content-service.yaml).
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --config=config.yaml ../../../../api/content-service.yaml
