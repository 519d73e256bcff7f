package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resort-concierge/auth"
	"resort-concierge/guest-svc/internal/cart"
	"resort-concierge/guest-svc/internal/domain"
	"resort-concierge/guest-svc/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ProfileResolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*auth.Profile, error)
	Lookup(ctx context.Context, identity *auth.Identity) (*auth.Profile, error)
}

type Handler struct {
	Catalog       service.CatalogServiceInterface
	Orders        service.OrderServiceInterface
	Notifications service.NotificationServiceInterface
	Carts         cart.ServiceInterface
	Profiles      ProfileResolver
	Logger        *log.Entry
}

func NewHandler(
	catalog service.CatalogServiceInterface,
	orders service.OrderServiceInterface,
	notifications service.NotificationServiceInterface,
	carts cart.ServiceInterface,
	profiles ProfileResolver,
	logger *log.Entry,
) *Handler {
	return &Handler{
		Catalog:       catalog,
		Orders:        orders,
		Notifications: notifications,
		Carts:         carts,
		Profiles:      profiles,
		Logger:        logger,
	}
}

// RegisterRoutes mounts the authenticated API. Every route expects an
// identity in the request context.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/profile", h.getProfile).Methods("GET")

	r.HandleFunc("/api/venues", h.listVenues).Methods("GET")
	r.HandleFunc("/api/venues/{id}", h.getVenue).Methods("GET")
	r.HandleFunc("/api/venues/{id}/menu", h.getVenueMenu).Methods("GET")
	r.HandleFunc("/api/menu-items/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/service-categories", h.listServiceCategories).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{orderNumber}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{orderNumber}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/notifications", h.listNotifications).Methods("GET")
	r.HandleFunc("/api/notifications/unread-count", h.unreadCount).Methods("GET")
	r.HandleFunc("/api/notifications/read-all", h.markAllRead).Methods("POST")
	r.HandleFunc("/api/notifications/{id}/read", h.markRead).Methods("PATCH")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{menuItemId}", h.updateCartItem).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{menuItemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/cart/checkout", h.checkout).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "guest-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case domain.IsValidation(err), errors.Is(err, domain.ErrUnavailableItems):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrVenueNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, auth.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the caller-safe form of err. Internal failures are
// logged and reported without detail.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		message = ve.Error()
	}
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		message = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) identity(r *http.Request) (*auth.Identity, error) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, auth.ErrUnauthenticated
	}
	return identity, nil
}

// resolveProfile creates the profile on first use. Only write paths call it.
func (h *Handler) resolveProfile(r *http.Request) (*auth.Profile, error) {
	identity, err := h.identity(r)
	if err != nil {
		return nil, err
	}
	return h.Profiles.Resolve(r.Context(), identity)
}

// lookupProfile returns nil, nil for a caller who has no profile yet.
func (h *Handler) lookupProfile(r *http.Request) (*auth.Profile, error) {
	identity, err := h.identity(r)
	if err != nil {
		return nil, err
	}
	profile, err := h.Profiles.Lookup(r.Context(), identity)
	if errors.Is(err, auth.ErrProfileNotFound) {
		return nil, nil
	}
	return profile, err
}

func uuidVar(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.resolveProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) listVenues(w http.ResponseWriter, r *http.Request) {
	filter := domain.VenueFilter{Type: domain.VenueType(strings.ToUpper(r.URL.Query().Get("type")))}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.respondError(w, r, domain.NewValidationError("category_id", "must be a valid UUID"))
			return
		}
		filter.CategoryID = &id
	}

	venues, err := h.Catalog.ListVenues(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (h *Handler) getVenue(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	venue, err := h.Catalog.GetVenue(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (h *Handler) getVenueMenu(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	items, err := h.Catalog.ListMenuItems(r.Context(), domain.MenuItemFilter{
		VenueID:  &id,
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.Catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) listServiceCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListServiceCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := service.ValidateOrderRequest(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	profile, err := h.resolveProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.Orders.Create(r.Context(), profile.ID, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusOK, []domain.Order{})
		return
	}

	status := domain.OrderStatus(strings.ToUpper(r.URL.Query().Get("status")))
	orders, err := h.Orders.List(r.Context(), profile.ID, status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if profile == nil {
		h.respondError(w, r, domain.ErrOrderNotFound)
		return
	}

	order, err := h.Orders.Get(r.Context(), profile.ID, mux.Vars(r)["orderNumber"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if profile == nil {
		h.respondError(w, r, domain.ErrOrderNotFound)
		return
	}

	png, err := h.Orders.QRCode(r.Context(), profile.ID, mux.Vars(r)["orderNumber"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusOK, []domain.Notification{})
		return
	}

	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notifications, err := h.Notifications.List(r.Context(), profile.ID, unreadOnly, limit)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	count := 0
	if profile != nil {
		if count, err = h.Notifications.UnreadCount(r.Context(), profile.ID); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuidVar(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if profile == nil {
		h.respondError(w, r, domain.ErrNotificationNotFound)
		return
	}

	if err := h.Notifications.MarkRead(r.Context(), profile.ID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lookupProfile(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var updated int64
	if profile != nil {
		if updated, err = h.Notifications.MarkAllRead(r.Context(), profile.ID); err != nil {
			h.respondError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

type cartView struct {
	Items              []cart.Item       `json:"items"`
	Groups             []cart.VenueGroup `json:"groups"`
	TotalItems         int               `json:"total_items"`
	TotalPriceEstimate decimal.Decimal   `json:"total_price_estimate"`
}

func newCartView(c *cart.Cart) cartView {
	groups := c.ItemsByVenue()
	if groups == nil {
		groups = []cart.VenueGroup{}
	}
	return cartView{
		Items:              c.Items,
		Groups:             groups,
		TotalItems:         c.TotalItems(),
		TotalPriceEstimate: c.TotalPrice(),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	c, err := h.Carts.Get(r.Context(), identity.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var body struct {
		MenuItemID uuid.UUID `json:"menu_item_id"`
		Quantity   int       `json:"quantity"`
		Notes      string    `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Carts.AddItem(r.Context(), identity.ID, body.MenuItemID, body.Quantity, body.Notes)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	menuItemID, err := uuidVar(r, "menuItemId")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &body); err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Carts.UpdateQuantity(r.Context(), identity.ID, menuItemID, body.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	menuItemID, err := uuidVar(r, "menuItemId")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	c, err := h.Carts.RemoveItem(r.Context(), identity.ID, menuItemID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartView(c))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.Carts.Clear(r.Context(), identity.ID); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkout answers 201 when every venue group was ordered, 207 when only some
// were, and the first failure's status when none were.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	identity, err := h.identity(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var req cart.CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	// An empty cart must not create the caller's profile.
	current, err := h.Carts.Get(r.Context(), identity.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(current.Items) == 0 {
		h.respondError(w, r, domain.NewValidationError("items", "cart is empty"))
		return
	}

	profile, err := h.Profiles.Resolve(r.Context(), identity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.Carts.Checkout(r.Context(), identity.ID, profile.ID, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	status := http.StatusCreated
	switch {
	case result.Partial():
		status = http.StatusMultiStatus
	case len(result.Orders) == 0 && len(result.Failed) > 0:
		status = statusFor(result.Failed[0].Err)
	}
	writeJSON(w, status, result)
}
