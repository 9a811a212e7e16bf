package api

import (
	"blog-service/internal/jwt"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, tokens *jwt.TokenService, authHandler *AuthHandler, postHandler *PostHandler) {
	v1 := app.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	users := v1.Group("/users", AuthMiddleware(tokens))
	users.Get("/me", authHandler.Me)

	posts := v1.Group("/posts", AuthMiddleware(tokens))
	posts.Get("/", postHandler.List)
	posts.Get("/:id", postHandler.Get)
	posts.Post("/", postHandler.Create)
	posts.Put("/:id", postHandler.Update)
	posts.Delete("/:id", postHandler.Delete)
}
