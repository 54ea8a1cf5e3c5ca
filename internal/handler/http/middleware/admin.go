package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/auth"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/user"
	"github.com/shancon-hr/attendance-backend-go/internal/handler/http/response"
)

// AdminOnly restricts a route to accounts with the admin role. HR accounts
// can read everything but may not approve devices or deactivate employees.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
