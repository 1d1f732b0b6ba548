package routes

import (
	"net/http"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/handlers"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/handlers/admin"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/middlewares"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/repositories"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/services"
	"github.com/QuangMinh02052004/DACN-Bloomie/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	Log       logrus.FieldLogger
	Sessions  sessions.SessionStore
	UserRepo  repositories.UserRepositoryImpl
	CartSvc   *services.CartService
	StaticDir string
	CSRFKey   []byte
	Secure    bool

	Home        *handlers.HomeHandler
	Products    *handlers.ProductHandler
	Cart        *handlers.CartHandler
	ImageSearch *handlers.ImageSearchHandler
	Admin       *admin.AdminHandler
}

func NewRouter(d Dependencies) http.Handler {
	router := mux.NewRouter()

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))

	// JSON endpoints are called from scripts without a csrf token.
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/image-search", d.ImageSearch.SearchAPI).Methods(http.MethodPost)
	api.HandleFunc("/image-search/recognize", d.ImageSearch.RecognizeAPI).Methods(http.MethodPost)

	web := router.PathPrefix("/").Subrouter()
	web.Use(csrf.Protect(d.CSRFKey, csrf.Secure(d.Secure), csrf.Path("/")))
	web.Use(middlewares.CurrentUser(d.Sessions, d.UserRepo))
	web.Use(middlewares.CartCountMiddleware(d.Sessions, d.CartSvc))

	web.HandleFunc("/", d.Home.Home).Methods(http.MethodGet)

	web.HandleFunc("/products", d.Products.Products).Methods(http.MethodGet)
	web.HandleFunc("/products/{slug}", d.Products.ProductDetail).Methods(http.MethodGet)
	web.HandleFunc("/products/{slug}/ratings", d.Products.AddRating).Methods(http.MethodPost)

	web.HandleFunc("/cart", d.Cart.GetCart).Methods(http.MethodGet)
	web.HandleFunc("/cart/add", d.Cart.AddToCart).Methods(http.MethodPost)
	web.HandleFunc("/cart/remove", d.Cart.RemoveFromCart).Methods(http.MethodPost, http.MethodDelete)

	web.HandleFunc("/image-search", d.ImageSearch.Index).Methods(http.MethodGet)
	web.HandleFunc("/image-search", d.ImageSearch.Search).Methods(http.MethodPost)

	adminRouter := web.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware)
	adminRouter.HandleFunc("/image-search", d.Admin.GetImageIndexPage).Methods(http.MethodGet)
	adminRouter.HandleFunc("/image-search/extract", d.Admin.ExtractFeatures).Methods(http.MethodPost)

	return middlewares.RequestLogger(d.Log)(middlewares.MethodOverrideMiddleware(router))
}
