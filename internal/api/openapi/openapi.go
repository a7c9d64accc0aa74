// Пакет openapi — программно собираемый OpenAPI 3.0 контракт HTTP API панели.
// Документ отдаётся на GET /openapi.json и проверяется на корректность в тестах.
package openapi

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document собирает OpenAPI-описание всех endpoints панели администрирования.
func Document() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Admin Panel API",
			Description: "HTTP API панели администрирования: аутентификация и управление учётными записями администраторов.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			{URL: "/"},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	// Session token принимается из cookie adminToken либо из Bearer-заголовка.
	doc.Components.SecuritySchemes["cookieAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type: "apiKey",
			In:   "cookie",
			Name: "adminToken",
		},
	}
	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Components.Schemas["Error"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"error": stringSchema(),
			},
			Required: []string{"error"},
		},
	}

	doc.Components.Schemas["AdminSummary"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:        &openapi3.Types{"object"},
			Description: "Учётная запись администратора без чувствительных полей.",
			Properties: openapi3.Schemas{
				"id":        stringSchema(),
				"username":  stringSchema(),
				"email":     stringSchema(),
				"role":      enumSchema("admin", "superadmin"),
				"isActive":  &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}},
				"lastLogin": dateTimeSchema(),
				"createdAt": dateTimeSchema(),
			},
			Required: []string{"id", "username", "email", "role", "isActive", "createdAt"},
		},
	}

	doc.Paths = openapi3.NewPaths()

	addAuthPaths(doc)
	addAdminPaths(doc)
	addHealthPaths(doc)

	return doc
}

// Validate проверяет собранный документ средствами kin-openapi.
func Validate(doc *openapi3.T) error {
	loader := openapi3.NewLoader()
	// Документ собран программно, поэтому внутренние $ref нужно явно
	// разрешить перед валидацией.
	if err := loader.ResolveRefsIn(doc, nil); err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

func addAuthPaths(doc *openapi3.T) {
	loginBody := objectSchema(map[string]*openapi3.SchemaRef{
		"email":    stringSchema(),
		"password": stringSchema(),
	}, "email", "password")

	doc.Paths.Set("/api/auth/login", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "login",
			Summary:     "Вход по email и паролю",
			Tags:        []string{"auth"},
			Security:    &openapi3.SecurityRequirements{},
			RequestBody: jsonRequestBody(loginBody),
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Вход выполнен, session cookie установлен",
					objectSchema(map[string]*openapi3.SchemaRef{
						"message": stringSchema(),
						"token":   stringSchema(),
						"admin":   schemaRef("AdminSummary"),
					}, "message", "token", "admin")),
				400: errorResponse("Пустые email или пароль"),
				401: errorResponse("Неверные учётные данные"),
			}),
		},
	})

	doc.Paths.Set("/api/auth/logout", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "logout",
			Summary:     "Выход: удаление session cookie",
			Tags:        []string{"auth"},
			Security:    &openapi3.SecurityRequirements{},
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Выход выполнен", messageSchema()),
			}),
		},
	})

	doc.Paths.Set("/api/auth/me", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "me",
			Summary:     "Текущая учётная запись",
			Tags:        []string{"auth"},
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Актуальные данные учётной записи",
					objectSchema(map[string]*openapi3.SchemaRef{
						"admin": schemaRef("AdminSummary"),
					}, "admin")),
				401: errorResponse("Токен отсутствует, невалиден или запись деактивирована"),
			}),
		},
	})
}

func addAdminPaths(doc *openapi3.T) {
	createBody := objectSchema(map[string]*openapi3.SchemaRef{
		"username": stringSchema(),
		"email":    stringSchema(),
		"password": stringSchema(),
		"role":     enumSchema("admin", "superadmin"),
	}, "username", "email", "password")

	doc.Paths.Set("/api/admin/create", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "createAdmin",
			Summary:     "Создание учётной записи администратора",
			Tags:        []string{"admin"},
			RequestBody: jsonRequestBody(createBody),
			Responses: responses(map[int]*openapi3.Response{
				201: jsonResponse("Учётная запись создана",
					objectSchema(map[string]*openapi3.SchemaRef{
						"admin": schemaRef("AdminSummary"),
					}, "admin")),
				400: errorResponse("Ошибка валидации или занятые username/email"),
				403: errorResponse("Требуется роль superadmin"),
			}),
		},
	})

	doc.Paths.Set("/api/admin/list", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listAdmins",
			Summary:     "Список учётных записей (новые первыми)",
			Tags:        []string{"admin"},
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Список учётных записей",
					objectSchema(map[string]*openapi3.SchemaRef{
						"admins": arraySchema(schemaRef("AdminSummary")),
					}, "admins")),
				401: errorResponse("Требуется аутентификация"),
			}),
		},
	})

	updateBody := objectSchema(map[string]*openapi3.SchemaRef{
		"id":       stringSchema(),
		"username": stringSchema(),
		"email":    stringSchema(),
	}, "id")

	doc.Paths.Set("/api/admin/update", &openapi3.PathItem{
		Put: &openapi3.Operation{
			OperationID: "updateAdmin",
			Summary:     "Обновление username и/или email",
			Tags:        []string{"admin"},
			RequestBody: jsonRequestBody(updateBody),
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Учётная запись обновлена",
					objectSchema(map[string]*openapi3.SchemaRef{
						"admin": schemaRef("AdminSummary"),
					}, "admin")),
				400: errorResponse("Ошибка валидации или занятые username/email"),
				403: errorResponse("Требуется роль superadmin"),
				404: errorResponse("Учётная запись не найдена"),
			}),
		},
	})

	doc.Paths.Set("/api/admin/toggle-status", &openapi3.PathItem{
		Put: &openapi3.Operation{
			OperationID: "toggleAdminStatus",
			Summary:     "Переключение активности учётной записи",
			Tags:        []string{"admin"},
			RequestBody: jsonRequestBody(objectSchema(map[string]*openapi3.SchemaRef{
				"id": stringSchema(),
			}, "id")),
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Активность переключена",
					objectSchema(map[string]*openapi3.SchemaRef{
						"message": stringSchema(),
						"admin":   schemaRef("AdminSummary"),
					}, "message", "admin")),
				403: errorResponse("Требуется роль superadmin либо запись защищена"),
				404: errorResponse("Учётная запись не найдена"),
			}),
		},
	})

	doc.Paths.Set("/api/admin/delete", &openapi3.PathItem{
		Delete: &openapi3.Operation{
			OperationID: "deleteAdmin",
			Summary:     "Удаление учётной записи",
			Tags:        []string{"admin"},
			Parameters: openapi3.Parameters{
				{
					Value: &openapi3.Parameter{
						Name:     "id",
						In:       "query",
						Required: true,
						Schema:   stringSchema(),
					},
				},
			},
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Учётная запись удалена", messageSchema()),
				400: errorResponse("Не указан параметр id"),
				403: errorResponse("Требуется роль superadmin, запись защищена или удаляется собственная запись"),
				404: errorResponse("Учётная запись не найдена"),
			}),
		},
	})
}

func addHealthPaths(doc *openapi3.T) {
	healthBody := objectSchema(map[string]*openapi3.SchemaRef{
		"status":    stringSchema(),
		"timestamp": dateTimeSchema(),
		"version":   stringSchema(),
		"service":   stringSchema(),
	}, "status", "timestamp", "version", "service")

	doc.Paths.Set("/api/health", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "apiHealth",
			Summary:     "Проверка доступности API",
			Tags:        []string{"health"},
			Security:    &openapi3.SecurityRequirements{},
			Responses: responses(map[int]*openapi3.Response{
				200: jsonResponse("Сервис жив", healthBody),
			}),
		},
	})
}

// --- Вспомогательные конструкторы ---

func stringSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
}

func dateTimeSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"}}
}

func enumSchema(values ...string) *openapi3.SchemaRef {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Enum: enum}}
}

func objectSchema(props map[string]*openapi3.SchemaRef, required ...string) *openapi3.SchemaRef {
	schemas := openapi3.Schemas{}
	for name, ref := range props {
		schemas[name] = ref
	}
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type:       &openapi3.Types{"object"},
			Properties: schemas,
			Required:   required,
		},
	}
}

func arraySchema(items *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"array"}, Items: items}}
}

func schemaRef(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Ref: "#/components/schemas/" + name}
}

func messageSchema() *openapi3.SchemaRef {
	return objectSchema(map[string]*openapi3.SchemaRef{
		"message": stringSchema(),
	}, "message")
}

func jsonRequestBody(schema *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(schema),
	}
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(schema)
}

func errorResponse(description string) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(schemaRef("Error"))
}

func responses(byStatus map[int]*openapi3.Response) *openapi3.Responses {
	out := openapi3.NewResponses()
	for status, resp := range byStatus {
		out.Set(strconv.Itoa(status), &openapi3.ResponseRef{Value: resp})
	}
	return out
}
