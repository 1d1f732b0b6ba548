package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models/other"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/breadcrumb"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	ContextKeyLogger contextKey = "logger"
	CartCountKey     contextKey = "cart_count"

	DefaultTitle = "Bloomie"
)

var fallbackLogger = logrus.New()

// LoggerFrom returns the request-scoped logger set by the request logger
// middleware, or a bare logger outside a request.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(ContextKeyLogger).(logrus.FieldLogger); ok && log != nil {
		return log
	}
	return fallbackLogger
}

func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, log)
}

func CartCountFrom(ctx context.Context) int {
	if count, ok := ctx.Value(CartCountKey).(int); ok {
		return count
	}
	return 0
}

func UserFrom(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ContextKeyUser).(*models.User); ok {
		return user
	}
	return nil
}

// PopulateBaseData fills the fields shared by every page from the request:
// flash message from the query string, csrf field, cart count and user.
func PopulateBaseData(r *http.Request, base *other.BasePageData) {
	if base.Title == "" {
		base.Title = DefaultTitle
	}
	if base.Breadcrumbs == nil {
		base.Breadcrumbs = []breadcrumb.Breadcrumb{}
	}

	query := r.URL.Query()
	base.Query = query
	base.CurrentPath = r.URL.Path
	if base.MessageStatus == "" {
		base.MessageStatus = query.Get("status")
	}
	if base.Message == "" {
		base.Message = query.Get("message")
	}

	base.CSRFField = csrf.TemplateField(r)
	base.CartCount = CartCountFrom(r.Context())

	if user := UserFrom(r.Context()); user != nil {
		base.User = &other.UserForTemplate{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
		}
		base.IsLoggedIn = true
		base.UserID = user.ID
	}
}

// RedirectWithMessage sends the browser to target with the flash message in
// the status/message query parameters read back by PopulateBaseData.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, target, status, message string) {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("status", status)
	q.Set("message", message)
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s là bắt buộc.", err.Field())
		case "numeric":
			errorMessages[field] = fmt.Sprintf("%s phải là số.", err.Field())
		case "min":
			errorMessages[field] = fmt.Sprintf("%s tối thiểu là %s.", err.Field(), err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s tối đa là %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("Trường %s không hợp lệ (%s).", err.Field(), err.Tag())
		}
	}
	return errorMessages
}

// FirstValidationError flattens FormatValidationErrors for pages that show a
// single message.
func FirstValidationError(errs validator.ValidationErrors) string {
	for _, err := range errs {
		return FormatValidationErrors(validator.ValidationErrors{err})[strings.ToLower(err.Field())]
	}
	return ""
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}
