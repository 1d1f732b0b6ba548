package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/helpers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/sessions"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger puts a logger tagged with a request id on the context and
// logs every request once it completes.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.WithFields(logrus.Fields{
				"request_id": uuid.New().String(),
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(helpers.WithLogger(r.Context(), reqLog)))

			reqLog.WithFields(logrus.Fields{
				"status":  rec.status,
				"elapsed": time.Since(start).String(),
			}).Debug("request complete")
		})
	}
}

// CurrentUser resolves the user ID stored in the session by the identity
// layer. Unknown IDs are treated as anonymous.
func CurrentUser(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := store.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				helpers.LoggerFrom(r.Context()).Warnf("CurrentUser: session user %s not resolved: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware never fails the request: any session or cart error
// leaves the badge at 0.
func CartCountMiddleware(store sessions.SessionStore, cartSvc *services.CartService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count := 0
			visitorID, err := store.VisitorID(w, r)
			if err != nil {
				helpers.LoggerFrom(r.Context()).Warnf("CartCountMiddleware: Error getting visitor id: %v", err)
			} else if count, err = cartSvc.ItemCount(r, visitorID); err != nil {
				helpers.LoggerFrom(r.Context()).Warnf("CartCountMiddleware: Error getting cart item count for %s: %v", visitorID, err)
				count = 0
			}

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
