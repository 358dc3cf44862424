package controllers

import (
	"github.com/shashiranjanraj/drivehub/app/services"
	"github.com/shashiranjanraj/drivehub/pkg/ctx"
	"github.com/shashiranjanraj/drivehub/pkg/middleware"
)

type UserController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewUserController() *UserController {
	return &UserController{
		auth:  services.NewAuthService(),
		users: services.NewUserService(),
	}
}

// Register creates an account. The password is generated server-side
// and emailed, so the request carries no password field.
func (uc *UserController) Register(c *ctx.Context) {
	var input struct {
		Name  string `json:"name" validate:"required,min=2,max=100"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"nullable,min=5,max=20"`
	}
	if !c.BindJSON(&input) {
		return
	}

	user, err := uc.auth.Register(input.Name, input.Email, input.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}

func (uc *UserController) Login(c *ctx.Context) {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	token, user, err := uc.auth.Login(input.Email, input.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (uc *UserController) Profile(c *ctx.Context) {
	user, err := uc.auth.Profile(middleware.UserID(c.Context()))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

func (uc *UserController) UpdateProfile(c *ctx.Context) {
	var input struct {
		Name  string `json:"name" validate:"nullable,min=2,max=100"`
		Phone string `json:"phone" validate:"nullable,min=5,max=20"`
	}
	if !c.BindJSON(&input) {
		return
	}

	user, err := uc.auth.UpdateProfile(middleware.UserID(c.Context()), input.Name, input.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

func (uc *UserController) ChangePassword(c *ctx.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	}
	if !c.BindJSON(&input) {
		return
	}

	if err := uc.auth.ChangePassword(middleware.UserID(c.Context()),
		input.CurrentPassword, input.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("Password changed successfully", nil)
}

// ─── Admin ────────────────────────────────────────────────────────────────────

// Index lists users with optional search and isAdmin filter.
func (uc *UserController) Index(c *ctx.Context) {
	var isAdmin *bool
	switch c.Query("isAdmin") {
	case "true":
		v := true
		isAdmin = &v
	case "false":
		v := false
		isAdmin = &v
	}

	users, pagination, err := uc.users.List(
		c.Query("search"),
		isAdmin,
		c.QueryInt("page", 1),
		c.QueryInt("limit", 10),
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.Paginated(users, pagination)
}

func (uc *UserController) Update(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid user id")
		return
	}

	var input struct {
		Name    *string `json:"name"`
		Email   *string `json:"email" validate:"nullable,email"`
		Phone   *string `json:"phone"`
		IsAdmin *bool   `json:"isAdmin"`
	}
	if !c.BindJSON(&input) {
		return
	}

	user, err := uc.users.Update(id, services.UserUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		IsAdmin: input.IsAdmin,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

func (uc *UserController) Destroy(c *ctx.Context) {
	id, err := c.ParamUint("id")
	if err != nil {
		c.Error(400, "Invalid user id")
		return
	}

	if err := uc.users.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.SuccessMessage("User deleted successfully", nil)
}
