package sessions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "bloomie-session"

	userIDSessionKey  = "userID"
	guestIDSessionKey = "guestID"

	cartKeyPrefix = "Cart_"
	guestPrefix   = "guest-"
)

// CartKey is the session key holding the cart of the given visitor.
func CartKey(userID string) string {
	return cartKeyPrefix + userID
}

type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	ClearUserID(w http.ResponseWriter, r *http.Request) error

	// VisitorID returns the signed-in user ID or a guest ID persisted in the
	// session, creating one when missing.
	VisitorID(w http.ResponseWriter, r *http.Request) (string, error)

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CartStore interface {
	GetCart(r *http.Request, userID string) (*models.ShoppingCart, error)
	SaveCart(w http.ResponseWriter, r *http.Request, cart *models.ShoppingCart) error
}

type CookieSessionStore struct {
	store sessions.Store
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) (*sessions.Session, error) {
	// a tampered or stale cookie still yields a fresh session alongside the error
	session, err := c.store.Get(r, sessionCookieName)
	if session == nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session, err := c.getSession(r)
	if err != nil {
		return ""
	}
	userID, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := c.getSession(r)
	if err != nil {
		return err
	}
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil {
		return err
	}
	delete(session.Values, userIDSessionKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) VisitorID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := c.getSession(r)
	if err != nil {
		return "", err
	}
	if userID, ok := session.Values[userIDSessionKey].(string); ok && userID != "" {
		return userID, nil
	}
	if guestID, ok := session.Values[guestIDSessionKey].(string); ok && guestID != "" {
		return guestID, nil
	}

	guestID := guestPrefix + uuid.New().String()
	session.Values[guestIDSessionKey] = guestID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return guestID, nil
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := c.getSession(r)
	if err != nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// GetCart never returns a nil cart on success; an absent key yields an
// empty cart for userID.
func (c *CookieSessionStore) GetCart(r *http.Request, userID string) (*models.ShoppingCart, error) {
	session, err := c.getSession(r)
	if err != nil {
		return nil, err
	}

	raw, ok := session.Values[CartKey(userID)].(string)
	if !ok || raw == "" {
		return models.NewShoppingCart(userID), nil
	}

	var cart models.ShoppingCart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", CartKey(userID), err)
	}
	cart.UserID = userID
	return &cart, nil
}

func (c *CookieSessionStore) SaveCart(w http.ResponseWriter, r *http.Request, cart *models.ShoppingCart) error {
	session, err := c.getSession(r)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", CartKey(cart.UserID), err)
	}
	session.Values[CartKey(cart.UserID)] = string(payload)
	return session.Save(r, w)
}
