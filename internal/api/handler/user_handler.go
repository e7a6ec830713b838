package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderplan/travel-api/internal/api/metrics"
	"github.com/wanderplan/travel-api/internal/core/domain"
	"github.com/wanderplan/travel-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required,numeric"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	OTP         string `json:"otp" validate:"required,numeric"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// userResponse is the envelope every account route answers with. Every
// response carries at least success and message.
type userResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Token   string         `json:"token,omitempty"`
	User    *domain.User   `json:"user,omitempty"`
	Users   []*domain.User `json:"users,omitempty"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  userResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	req, err := bindAndValidate[registerRequest](c)
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusCreated, userResponse{
		Success: true,
		Message: "registration successful",
		User:    user,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  userResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	req, err := bindAndValidate[loginRequest](c)
	if err != nil {
		return err
	}

	token, user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// List returns all accounts, password and OTP fields excluded.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "users retrieved",
		Users:   users,
	})
}

// Info returns the authenticated user's account.
//
// @Summary      Current user info
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  userResponse
// @Router       /users/info [get]
func (h *UserHandler) Info(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "user retrieved",
		User:    user,
	})
}

// Update changes the authenticated user's name and email.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "New profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  userResponse
// @Failure      404   {object}  userResponse
// @Router       /users/update [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindAndValidate[updateProfileRequest](c)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "profile updated",
		User:    user,
	})
}

// ChangePassword replaces the authenticated user's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  userResponse
// @Router       /users/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}
	req, err := bindAndValidate[changePasswordRequest](c)
	if err != nil {
		return err
	}

	user, err := h.users.ChangePassword(c.Request().Context(), id, req.OldPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "password updated",
		User:    user,
	})
}

// ForgotPassword generates an OTP and emails it to the account holder.
//
// @Summary      Request a password-reset OTP
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  userResponse
// @Router       /users/forgot-password [post]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	req, err := bindAndValidate[forgotPasswordRequest](c)
	if err != nil {
		return err
	}

	if err := h.users.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		metrics.OTPEmailsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.OTPEmailsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "otp sent to your email",
	})
}

// VerifyOTP checks a reset code without consuming it.
//
// @Summary      Verify a password-reset OTP
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and OTP"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  userResponse
// @Router       /users/verify-otp [post]
func (h *UserHandler) VerifyOTP(c echo.Context) error {
	req, err := bindAndValidate[verifyOTPRequest](c)
	if err != nil {
		return err
	}
	otp, err := parseOTP(req.OTP)
	if err != nil {
		return err
	}

	if err := h.users.VerifyOTP(c.Request().Context(), req.Email, otp); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "otp is valid",
	})
}

// ResetPassword completes the OTP flow with a new password.
//
// @Summary      Reset password with an OTP
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, OTP and new password"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  userResponse
// @Failure      404   {object}  userResponse
// @Router       /users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	req, err := bindAndValidate[resetPasswordRequest](c)
	if err != nil {
		return err
	}
	otp, err := parseOTP(req.OTP)
	if err != nil {
		return err
	}

	if err := h.users.ResetPassword(c.Request().Context(), req.Email, otp, req.NewPassword); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.PasswordResetsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "password has been reset",
	})
}

// bindAndValidate decodes the JSON body and runs the struct tags through the
// echo validator.
func bindAndValidate[T any](c echo.Context) (*T, error) {
	var req T
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

// parseOTP converts the submitted code for numeric comparison against the
// stored one. Clients send it as a string.
func parseOTP(s string) (int, error) {
	otp, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrInvalidOTP
	}
	return otp, nil
}
