package v1

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionCookie = "token"
	subjectKey    = "subject"
)

// requireSession gates every resource operation. A missing, expired or
// tampered token sends the caller back to the login flow before any
// lifecycle call is made - never a 500.
func (r *V1) requireSession(ctx *fiber.Ctx) error {
	token := ctx.Cookies(sessionCookie)
	if token == "" {
		return ctx.Redirect("/login", http.StatusFound)
	}

	subject, err := r.sessions.Verify(token)
	if err != nil {
		r.clearSessionCookie(ctx)

		return ctx.Redirect("/login", http.StatusFound)
	}

	ctx.Locals(subjectKey, subject)

	return ctx.Next()
}
