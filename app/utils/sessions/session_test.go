package sessions

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *CookieSessionStore {
	return NewCookieSessionStore(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
}

// carryCookies copies the cookies set on rec into a fresh request.
func carryCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "Cart_42", CartKey("42"))
}

func TestGetCart_EmptySessionReturnsEmptyCart(t *testing.T) {
	store := newTestStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	cart, err := store.GetCart(req, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Equal(t, 0, cart.TotalItems())
}

func TestSaveCart_RoundTripsThroughCookie(t *testing.T) {
	store := newTestStore()

	cart := models.NewShoppingCart("u1")
	cart.Add(models.CartLine{ProductID: "p1", Name: "Hoa hồng đỏ", Price: decimal.NewFromInt(120000), Quantity: 2})
	cart.Add(models.CartLine{ProductID: "p2", Name: "Hoa ly", Price: decimal.NewFromInt(90000), Quantity: 1})
	cart.Add(models.CartLine{ProductID: "p1", Name: "Hoa hồng đỏ", Price: decimal.NewFromInt(120000), Quantity: 1})

	rec := httptest.NewRecorder()
	require.NoError(t, store.SaveCart(rec, httptest.NewRequest(http.MethodPost, "/", nil), cart))

	loaded, err := store.GetCart(carryCookies(rec), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.TotalItems())
	assert.Len(t, loaded.Items, 2)

	other, err := store.GetCart(carryCookies(rec), "u2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.TotalItems(), "carts are keyed per visitor")
}

func TestVisitorID(t *testing.T) {
	store := newTestStore()

	rec := httptest.NewRecorder()
	guest, err := store.VisitorID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(guest, "guest-"))

	again, err := store.VisitorID(httptest.NewRecorder(), carryCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, guest, again)

	rec = httptest.NewRecorder()
	require.NoError(t, store.SetUserID(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-7"))
	id, err := store.VisitorID(httptest.NewRecorder(), carryCookies(rec))
	require.NoError(t, err)
	assert.Equal(t, "user-7", id)
}
