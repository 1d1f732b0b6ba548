package middlewares

import (
	"net/http"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
)

// AdminAuthMiddleware expects CurrentUser to have run first.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := helpers.LoggerFrom(r.Context())

		user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
		if !ok || user == nil {
			log.Info("AdminAuthMiddleware: no user in context, redirecting home")
			helpers.RedirectWithMessage(w, r, "/", "error", "Bạn cần đăng nhập để truy cập trang quản trị.")
			return
		}

		if !user.IsAdmin() {
			log.Warnf("AdminAuthMiddleware: user %s (%s) attempted to access admin panel without admin role", user.ID, user.Email)
			helpers.RedirectWithMessage(w, r, "/", "error", "Bạn không có quyền truy cập trang này.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
