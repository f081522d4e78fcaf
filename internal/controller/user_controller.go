package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skycart-api/internal/dto"
	"skycart-api/internal/model"
	"skycart-api/internal/service"
)

type UserController struct {
	users           *service.UserService
	auth            *service.AuthService
	defaultPageSize int
	maxPageSize     int
}

func NewUserController(users *service.UserService, auth *service.AuthService, defaultPageSize, maxPageSize int) *UserController {
	return &UserController{
		users:           users,
		auth:            auth,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GET /api/v1/users/me
func (ctl *UserController) Me(c *gin.Context) {
	user, err := ctl.users.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// PUT /api/v1/users/me
func (ctl *UserController) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdateProfile(c.Request.Context(), c.GetString("userID"), req.Name, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// PUT /api/v1/users/me/password
func (ctl *UserController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.auth.ChangePassword(c.Request.Context(), c.GetString("userID"), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}

// GET /api/v1/admin/users
func (ctl *UserController) List(c *gin.Context) {
	page, limit := pageParams(c, ctl.defaultPageSize, ctl.maxPageSize)

	users, total, err := ctl.users.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users, total, page, limit))
}

// PUT /api/v1/admin/users/:userId/role
func (ctl *UserController) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdateRole(c.Request.Context(), c.Param("userId"), model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DELETE /api/v1/admin/users/:userId
func (ctl *UserController) Delete(c *gin.Context) {
	if err := ctl.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user deleted"})
}
