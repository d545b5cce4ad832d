package main

import (
	"net/http"

	"github.com/0xrinful/rush"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
	"github.com/thanushri8950/BookHivewebapp/ui"
)

func (app *application) routes() http.Handler {
	r := rush.New()
	r.NotFound = http.HandlerFunc(app.notFound)

	fileServer := http.FileServer(http.FS(ui.Files))
	r.Handle("/static/*", fileServer, "GET")

	r.Get("/", app.home)

	r.Get("/login/{role}", app.login)
	r.Post("/login/{role}", app.loginPost)
	r.Get("/signup", app.signup)
	r.Post("/signup", app.signupPost)
	r.Get("/logout", app.logout)

	r.Get("/search", app.search)

	r.Get("/student", app.requireRole(data.RoleStudent, app.studentHome))

	r.Get("/admin", app.requireRole(data.RoleAdmin, app.adminDashboard))
	r.Get("/admin/add", app.requireRole(data.RoleAdmin, app.addBook))
	r.Post("/admin/add", app.requireRole(data.RoleAdmin, app.addBookPost))
	r.Get("/admin/issue", app.requireRole(data.RoleAdmin, app.issueBook))
	r.Post("/admin/issue", app.requireRole(data.RoleAdmin, app.issueBookPost))
	r.Get("/admin/return", app.requireRole(data.RoleAdmin, app.returnBook))
	r.Post("/admin/return", app.requireRole(data.RoleAdmin, app.returnBookPost))
	r.Get("/admin/delete", app.requireRole(data.RoleAdmin, app.deleteBook))
	r.Post("/admin/delete", app.requireRole(data.RoleAdmin, app.deleteBookPost))

	return app.recoverPanic(app.session.LoadAndSave(app.authenticate(r)))
}
