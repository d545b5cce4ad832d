package main

import (
	"fmt"
	"net/http"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
)

func (app *application) render(w http.ResponseWriter, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		err := fmt.Errorf("the template %s does not exist", page)
		app.serverError(w, err)
		return
	}

	w.WriteHeader(status)

	err := ts.ExecuteTemplate(w, "base", data)
	if err != nil {
		app.serverError(w, err)
	}
}

func (app *application) isAuthenticated(r *http.Request) bool {
	isAuthenticated, ok := r.Context().Value(isAuthenticatedContextKey).(bool)
	return ok && isAuthenticated
}

func (app *application) sessionRole(r *http.Request) string {
	role, _ := r.Context().Value(roleContextKey).(string)
	return role
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	td := &templateData{
		IsAuthenticated: app.isAuthenticated(r),
		Role:            app.sessionRole(r),
		FlashInfo:       app.session.PopString(r.Context(), "flash_info"),
		FlashError:      app.session.PopString(r.Context(), "flash_error"),
	}

	user, ok := r.Context().Value(userContextKey).(*data.User)
	if ok {
		td.User = user
	}

	return td
}

func (app *application) flashInfo(r *http.Request, msg string) {
	app.session.Put(r.Context(), "flash_info", msg)
}

func (app *application) flashError(r *http.Request, msg string) {
	app.session.Put(r.Context(), "flash_error", msg)
}

// loginSession rotates the session token and binds it to the user. Token
// renewal on privilege change prevents session fixation.
func (app *application) loginSession(r *http.Request, user *data.User) error {
	err := app.session.RenewToken(r.Context())
	if err != nil {
		return err
	}

	app.session.Put(r.Context(), "authenticatedUserID", user.ID)
	app.session.Put(r.Context(), "userRole", user.Role)
	return nil
}

// homeFor maps a role to its landing page after login.
func homeFor(role string) string {
	if role == data.RoleAdmin {
		return "/admin"
	}
	return "/student"
}
