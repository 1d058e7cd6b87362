package handlers

import (
	"context"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/salesgame/salesgame-api/internal/middleware"
	"github.com/salesgame/salesgame-api/internal/models"
	"github.com/salesgame/salesgame-api/pkg/dto"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.Create(context.Background(), actor, req.Username, req.Name, req.Password, models.Role(req.Role), req.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, userResponse(user))
}

func (h *UserHandler) List(c *drift.Context) {
	actor := middleware.Principal(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	users, err := h.userService.List(context.Background(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = userResponse(&users[i])
	}
	_ = c.JSON(200, response)
}

func (h *UserHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	_ = c.JSON(200, userResponse(user))
}
