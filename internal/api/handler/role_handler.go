package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/core/ports"
)

type RoleHandler struct {
	roles ports.RoleService
}

func NewRoleHandler(roles ports.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List returns every role with its permission flags. Requires read_roles_permission.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RoleWithAccess
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	roles, err := h.roles.ListRoles(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// GetPermissions returns the flags of one role. Requires read_roles_permission.
//
// @Summary      Get role permissions
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  domain.RoleAccess
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /roles/{id} [get]
func (h *RoleHandler) GetPermissions(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	roleID, err := roleIDParam(c)
	if err != nil {
		return err
	}

	access, err := h.roles.GetRolePermissions(c.Request().Context(), actor, roleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, access)
}

// UpdatePermissions overwrites all six flags of one role. Requires update_roles_permission.
//
// @Summary      Update role permissions
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Role ID"
// @Param        body  body      roleAccessRequest  true  "Permission flags"
// @Success      200   {object}  domain.RoleAccess
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /roles/{id} [put]
func (h *RoleHandler) UpdatePermissions(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	roleID, err := roleIDParam(c)
	if err != nil {
		return err
	}

	var req roleAccessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	access, err := h.roles.UpdateRolePermissions(c.Request().Context(), actor, roleID, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, access)
}

func roleIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid role id")
	}
	return id, nil
}
