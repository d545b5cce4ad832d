package main

import (
	"context"
	"fmt"
	"net/http"
)

// authorized is the access decision for role-gated routes: allow only when
// the session carries exactly the required role. An empty sessionRole is an
// anonymous request and is always denied here.
func authorized(sessionRole, requiredRole string) bool {
	return sessionRole != "" && sessionRole == requiredRole
}

// authenticate resolves the session into request context for every
// downstream handler. A session pointing at a user that no longer exists is
// cleared silently.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := app.session.GetInt64(ctx, "authenticatedUserID")
		if userID == 0 {
			ctx = context.WithValue(ctx, isAuthenticatedContextKey, false)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		user, err := app.models.Users.Get(userID)
		if err != nil {
			app.session.Remove(ctx, "authenticatedUserID")
			app.session.Remove(ctx, "userRole")
			ctx = context.WithValue(ctx, isAuthenticatedContextKey, false)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
		ctx = context.WithValue(ctx, userContextKey, user)
		ctx = context.WithValue(ctx, roleContextKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole denies any request whose session role does not match exactly,
// redirecting it to the role-selection entry point. A deny is never a
// silent no-op.
func (app *application) requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionRole, _ := r.Context().Value(roleContextKey).(string)
		if !authorized(sessionRole, role) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
