// Package docs registra o documento Swagger servido em /swagger/.
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
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Navega pelo catálogo",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "brand", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "number", "name": "rating", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.BrowseResult"}},
                    "400": {"description": "Parâmetro inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "502": {"description": "Catálogo indisponível", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Obtém um produto por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProductDetail"}},
                    "404": {"description": "Produto não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/products/{id}/related": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Lista produtos relacionados",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Product"}}}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Lista as categorias",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Category"}}}
                }
            }
        },
        "/promocodes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promocodes"],
                "summary": "Lista os códigos disponíveis",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PromoHints"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["promocodes"],
                "summary": "Valida um código promocional",
                "parameters": [{"name": "promo", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.PromoValidationRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PromoResult"}},
                    "400": {"description": "Promo code is required", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/session": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Inicia uma sessão de comprador",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Session"}}}
            }
        },
        "/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Obtém o carrinho",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Esvazia o carrinho",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            }
        },
        "/cart/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Adiciona um produto ao carrinho",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AddToCartRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Altera a quantidade de uma linha",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.UpdateQuantityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove uma linha do carrinho",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RemoveFromCartRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            }
        },
        "/cart/promo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Aplica um código promocional",
                "parameters": [{"name": "promo", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ApplyPromoRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ApplyPromoResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove o código promocional",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CartView"}}}
            }
        },
        "/wishlist": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Obtém a lista de desejos",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WishlistView"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Esvazia a lista de desejos",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WishlistView"}}}
            }
        },
        "/wishlist/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Adiciona um produto à lista",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.WishlistRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WishlistView"}}}
            }
        },
        "/wishlist/items/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Remove um produto da lista",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WishlistView"}}}
            }
        },
        "/wishlist/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wishlist"],
                "summary": "Alterna um produto na lista",
                "parameters": [{"name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.WishlistRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ToggleResult"}}}
            }
        },
        "/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Confirma o pedido",
                "parameters": [{"name": "form", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CheckoutForm"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Order"}},
                    "400": {"description": "Formulário inválido ou carrinho vazio", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}},
                    "409": {"description": "Carrinho esvaziado durante o checkout", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "category": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string", "example": "Promo code is required"}
            }
        },
        "domain.Product": {"type": "object"},
        "domain.ProductDetail": {"type": "object"},
        "domain.Category": {"type": "object"},
        "domain.BrowseResult": {"type": "object"},
        "domain.PromoHints": {"type": "object"},
        "domain.PromoValidationRequest": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "subtotal": {"type": "number"}}
        },
        "domain.PromoResult": {
            "type": "object",
            "properties": {"valid": {"type": "boolean"}, "discount": {"type": "number"}, "message": {"type": "string"}}
        },
        "domain.Session": {"type": "object"},
        "domain.CartView": {"type": "object"},
        "domain.AddToCartRequest": {"type": "object"},
        "domain.UpdateQuantityRequest": {"type": "object"},
        "domain.RemoveFromCartRequest": {"type": "object"},
        "domain.ApplyPromoRequest": {"type": "object", "properties": {"code": {"type": "string"}}},
        "domain.ApplyPromoResponse": {"type": "object"},
        "domain.WishlistView": {"type": "object"},
        "domain.WishlistRequest": {"type": "object", "properties": {"productId": {"type": "integer"}}},
        "domain.ToggleResult": {"type": "object"},
        "domain.CheckoutForm": {"type": "object"},
        "domain.Order": {"type": "object"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo contém as informações exportadas do documento.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "GoStore API",
	Description:      "Vitrine: catálogo, carrinho, lista de desejos, códigos promocionais e checkout simulado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
