// openapi.go — раздача OpenAPI-контракта панели на /openapi.json.
// Документ собирается и проверяется один раз при старте.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/bigkaa/adminpanel/internal/api/openapi"
)

// OpenAPIHandler — обработчик GET /openapi.json.
type OpenAPIHandler struct {
	payload []byte
}

// NewOpenAPIHandler собирает, валидирует и сериализует OpenAPI-документ.
func NewOpenAPIHandler() (*OpenAPIHandler, error) {
	doc := openapi.Document()
	if err := openapi.Validate(doc); err != nil {
		return nil, fmt.Errorf("валидация OpenAPI-документа: %w", err)
	}

	payload, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("сериализация OpenAPI-документа: %w", err)
	}

	return &OpenAPIHandler{payload: payload}, nil
}

// Serve отдаёт сериализованный документ.
func (h *OpenAPIHandler) Serve(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.payload)
}
