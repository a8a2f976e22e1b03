package handler

import "github.com/usermgmt/user-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username"  validate:"required"`
	Password string `json:"password"  validate:"required,maxbytes=72"`
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
}

func (r registerRequest) toDomain() domain.Registration {
	return domain.Registration{
		Username: r.Username,
		Password: r.Password,
		Email:    r.Email,
		FullName: r.FullName,
	}
}

// roleAccessRequest uses pointers so that an explicit false passes "required".
type roleAccessRequest struct {
	AddUser     *bool `json:"add_user_permission"     validate:"required"`
	ReadUsers   *bool `json:"read_users_permission"   validate:"required"`
	UpdateUsers *bool `json:"update_users_permission" validate:"required"`
	DeleteUsers *bool `json:"delete_users_permission" validate:"required"`
	ReadRoles   *bool `json:"read_roles_permission"   validate:"required"`
	UpdateRoles *bool `json:"update_roles_permission" validate:"required"`
}

func (r roleAccessRequest) toDomain() domain.RoleAccess {
	return domain.RoleAccess{
		AddUser:     *r.AddUser,
		ReadUsers:   *r.ReadUsers,
		UpdateUsers: *r.UpdateUsers,
		DeleteUsers: *r.DeleteUsers,
		ReadRoles:   *r.ReadRoles,
		UpdateRoles: *r.UpdateRoles,
	}
}
