package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/thanushri8950/BookHivewebapp/internal/data"
	"github.com/thanushri8950/BookHivewebapp/internal/validator"
)

// home is the role-selection entry point. A request that already carries a
// session skips straight to its landing page.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if role := app.sessionRole(r); role != "" {
		http.Redirect(w, r, homeFor(role), http.StatusSeeOther)
		return
	}

	data := app.newTemplateData(r)
	app.render(w, 200, "role_select.html", data)
}

type userLoginForm struct {
	Username string
	Password string
	validator.Validator
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	if !validator.PermittedValue(role, data.RoleAdmin, data.RoleStudent) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := app.newTemplateData(r)
	data.LoginRole = role
	data.Form = userLoginForm{}
	app.render(w, 200, "login.html", data)
}

func (app *application) loginPost(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	if !validator.PermittedValue(role, data.RoleAdmin, data.RoleStudent) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := userLoginForm{
		Username:  r.FormValue("username"),
		Password:  r.FormValue("password"),
		Validator: *validator.New(),
	}

	form.Check(validator.NotBlank(form.Username), "username", "must be provided")
	form.Check(validator.NotBlank(form.Password), "password", "must be provided")

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.LoginRole = role
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "login.html", data)
		return
	}

	user, err := app.models.Users.Authenticate(form.Username, form.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidCredentials):
			// One generic message regardless of which field was wrong.
			form.AddError("generic", "Invalid username or password")
			data := app.newTemplateData(r)
			data.LoginRole = role
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "login.html", data)
		default:
			app.serverError(w, err)
		}
		return
	}

	err = app.loginSession(r, user)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.logger.PrintInfo("user " + user.Username + " logged in as " + user.Role)
	http.Redirect(w, r, homeFor(user.Role), http.StatusSeeOther)
}

type userSignupForm struct {
	Username string
	Password string
	validator.Validator
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = userSignupForm{}
	app.render(w, 200, "signup.html", data)
}

func (app *application) signupPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := userSignupForm{
		Username:  r.FormValue("username"),
		Password:  r.FormValue("password"),
		Validator: *validator.New(),
	}

	data.ValidateUsername(&form.Validator, form.Username)
	data.ValidatePasswordPlaintext(&form.Validator, form.Password)

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "signup.html", data)
		return
	}

	// Signup only ever creates student accounts.
	user := &data.User{
		Username: form.Username,
		Role:     data.RoleStudent,
	}

	err = user.Password.Set(form.Password)
	if err != nil {
		app.serverError(w, err)
		return
	}

	err = app.models.Users.Insert(user)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateUsername):
			form.AddError("username", "Username already exists")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "signup.html", data)
		default:
			app.serverError(w, err)
		}
		return
	}

	err = app.loginSession(r, user)
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/student", http.StatusSeeOther)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	err := app.session.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.session.Remove(r.Context(), "authenticatedUserID")
	app.session.Remove(r.Context(), "userRole")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) adminDashboard(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)

	total, available, err := app.models.Books.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}
	data.TotalBooks = total
	data.AvailableBooks = available
	data.IssuedBooks = total - available

	members, err := app.models.Users.Count()
	if err != nil {
		app.serverError(w, err)
		return
	}
	data.TotalMembers = members

	books, err := app.models.Books.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}
	data.Books = books

	app.render(w, 200, "admin.html", data)
}

func (app *application) studentHome(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)

	books, err := app.models.Books.GetAll()
	if err != nil {
		app.serverError(w, err)
		return
	}
	data.Books = books

	app.render(w, 200, "student.html", data)
}

type bookForm struct {
	BookID   string
	Title    string
	Author   string
	Category string
	validator.Validator
}

func (app *application) addBook(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = bookForm{}
	app.render(w, 200, "add_book.html", data)
}

func (app *application) addBookPost(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := bookForm{
		BookID:    r.FormValue("book_id"),
		Title:     r.FormValue("title"),
		Author:    r.FormValue("author"),
		Category:  r.FormValue("category"),
		Validator: *validator.New(),
	}

	id, convErr := strconv.ParseInt(form.BookID, 10, 64)
	form.Check(convErr == nil && id >= 1, "book_id", "must be a positive integer")
	form.Check(validator.NotBlank(form.Title), "title", "must be provided")
	form.Check(validator.NotBlank(form.Author), "author", "must be provided")
	form.Check(validator.NotBlank(form.Category), "category", "must be provided")

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "add_book.html", data)
		return
	}

	book := &data.Book{
		ID:       id,
		Title:    form.Title,
		Author:   form.Author,
		Category: form.Category,
	}

	err = app.models.Books.Insert(book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateID):
			form.AddError("book_id", "A book with this id already exists")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "add_book.html", data)
		default:
			app.serverError(w, err)
		}
		return
	}

	app.flashInfo(r, "Book added successfully")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	books, err := app.models.Books.Search(query)
	if err != nil {
		app.serverError(w, err)
		return
	}

	data := app.newTemplateData(r)
	data.Books = books
	data.SearchQuery = query

	app.render(w, 200, "search.html", data)
}

type bookIDForm struct {
	BookID string
	validator.Validator
}

// renderBookAction shows one of the issue/return/delete forms, optionally
// with the outcome message of the action just performed.
func (app *application) renderBookAction(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page, message string,
	form bookIDForm,
) {
	data := app.newTemplateData(r)
	data.Form = form
	data.Message = message
	app.render(w, status, page, data)
}

func (app *application) issueBook(w http.ResponseWriter, r *http.Request) {
	app.renderBookAction(w, r, 200, "issue_book.html", "", bookIDForm{})
}

func (app *application) issueBookPost(w http.ResponseWriter, r *http.Request) {
	app.bookAction(w, r, "issue_book.html", app.models.Books.Issue, map[error]string{
		nil:                  "Book issued successfully",
		data.ErrNotAvailable: "Book not found or already issued",
	})
}

func (app *application) returnBook(w http.ResponseWriter, r *http.Request) {
	app.renderBookAction(w, r, 200, "return_book.html", "", bookIDForm{})
}

func (app *application) returnBookPost(w http.ResponseWriter, r *http.Request) {
	app.bookAction(w, r, "return_book.html", app.models.Books.Return, map[error]string{
		nil:               "Book returned successfully",
		data.ErrNotIssued: "Book not found or not issued",
	})
}

func (app *application) deleteBook(w http.ResponseWriter, r *http.Request) {
	app.renderBookAction(w, r, 200, "delete_book.html", "", bookIDForm{})
}

func (app *application) deleteBookPost(w http.ResponseWriter, r *http.Request) {
	app.bookAction(w, r, "delete_book.html", app.models.Books.Delete, map[error]string{
		nil:                    "Book deleted successfully",
		data.ErrRecordNotFound: "Book not found",
	})
}

// bookAction runs one state transition (issue, return, or delete) and
// re-renders the same form with the outcome message. messages maps the
// transition's expected results to user-facing text; anything else is a
// server error.
func (app *application) bookAction(
	w http.ResponseWriter,
	r *http.Request,
	page string,
	transition func(id int64) error,
	messages map[error]string,
) {
	err := r.ParseForm()
	if err != nil {
		app.badRequest(w, r)
		return
	}

	form := bookIDForm{
		BookID:    r.FormValue("book_id"),
		Validator: *validator.New(),
	}

	id, convErr := strconv.ParseInt(form.BookID, 10, 64)
	form.Check(convErr == nil && id >= 1, "book_id", "must be a positive integer")

	if !form.Valid() {
		app.renderBookAction(w, r, http.StatusUnprocessableEntity, page, "", form)
		return
	}

	err = transition(id)
	if err == nil {
		app.renderBookAction(w, r, 200, page, messages[nil], form)
		return
	}

	for sentinel, message := range messages {
		if sentinel != nil && errors.Is(err, sentinel) {
			app.renderBookAction(w, r, 200, page, message, form)
			return
		}
	}

	app.serverError(w, err)
}
