package api

import (
	"errors"
	"log/slog"
	"strconv"

	"blog-service/internal/access"
	"blog-service/internal/model"
	"blog-service/internal/service"
	"blog-service/internal/view"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService service.PostService
	projector   *view.Projector
}

func NewPostHandler(postService service.PostService, projector *view.Projector) *PostHandler {
	return &PostHandler{
		postService: postService,
		projector:   projector,
	}
}

func parsePostID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func statusMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": status, "message": message})
}

// postError maps service errors onto HTTP responses.
func postError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError

	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      "Validation failed",
			"violations": vErr.Violations,
		})
	case errors.Is(err, service.ErrPostNotFound):
		return statusMessage(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, access.ErrDenied):
		return statusMessage(c, fiber.StatusForbidden, err.Error())
	default:
		slog.ErrorContext(c.UserContext(), "Post request failed", slog.String("path", c.Path()), slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	principal, err := GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	posts, err := h.postService.List(c.UserContext(), principal)
	if err != nil {
		return postError(c, err)
	}

	items := make([]*model.Post, len(posts))
	for i := range posts {
		items[i] = &posts[i]
	}

	return c.Status(fiber.StatusOK).JSON(view.ProjectAll(h.projector, items, view.PostRead))
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	principal, err := GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := parsePostID(c)
	if err != nil {
		return statusMessage(c, fiber.StatusBadRequest, "Invalid post ID format")
	}

	post, err := h.postService.Get(c.UserContext(), principal, id)
	if err != nil {
		return postError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(h.projector.Project(post, view.PostRead))
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	principal, err := GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var input model.PostInput
	if err := c.BodyParser(&input); err != nil {
		return statusMessage(c, fiber.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.UserContext(), principal, input)
	if err != nil {
		return postError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.projector.Project(post, view.PostRead))
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	principal, err := GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := parsePostID(c)
	if err != nil {
		return statusMessage(c, fiber.StatusBadRequest, "Invalid post ID format")
	}

	var input model.PostInput
	if err := c.BodyParser(&input); err != nil {
		return statusMessage(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.postService.Update(c.UserContext(), principal, id, input); err != nil {
		return postError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	principal, err := GetPrincipal(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := parsePostID(c)
	if err != nil {
		return statusMessage(c, fiber.StatusBadRequest, "Invalid post ID format")
	}

	if err := h.postService.Delete(c.UserContext(), principal, id); err != nil {
		return postError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
