package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

func (r *V1) loginPage(ctx *fiber.Ctx) error {
	return ctx.Render("login", fiber.Map{})
}

// @Summary  	Login
// @Description Exchanges a credential pair for a session cookie
// @Tags 		auth
// @Accept 		x-www-form-urlencoded
// @Param 		username formData string true "Username"
// @Param 		password formData string true "Password"
// @Success 	302
// @Router 		/login [post]
func (r *V1) login(ctx *fiber.Ctx) error {
	username := ctx.FormValue("username")
	password := ctx.FormValue("password")

	token, err := r.auth.Login(ctx.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return ctx.Render("login", fiber.Map{"Error": "Invalid credentials"})
		}
		r.logger.Error(err, "restapi - v1 - login")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(r.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return ctx.Redirect("/", http.StatusFound)
}

// @Summary  	Logout
// @Description Clears the session cookie, the token itself stays valid until expiry
// @Tags 		auth
// @Success 	302
// @Router 		/logout [post]
func (r *V1) logout(ctx *fiber.Ctx) error {
	r.clearSessionCookie(ctx)

	return ctx.Redirect("/login", http.StatusFound)
}

func (r *V1) clearSessionCookie(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
