package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/homefront-community/homefront/internal/config"
	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/internal/resolver"
	"github.com/homefront-community/homefront/models"
)

type httpGateway struct {
	client   *resty.Client
	resolver *resolver.Resolver
	log      *logger.Logger

	setBase sync.Once

	mu          sync.RWMutex
	tokenSource func() string
}

// NewHTTPGateway constructs an HTTP/REST implementation of [Gateway].
// The backend base URL is deliberately not set here: it is obtained from the
// resolver on the first outbound request, so construction never blocks on
// the runtime-configuration fetch.
func NewHTTPGateway(adapterCfg config.ClientAdapter, res *resolver.Resolver, log *logger.Logger) Gateway {
	client := resty.New().SetTimeout(adapterCfg.RequestTimeout)

	return &httpGateway{client: client, resolver: res, log: log}
}

// SetTokenSource implements [Gateway].
func (h *httpGateway) SetTokenSource(source func() string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokenSource = source
}

func (h *httpGateway) token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.tokenSource == nil {
		return ""
	}
	return h.tokenSource()
}

// request builds an outbound request after making sure the base URL has been
// resolved. Every request carries a fresh X-Request-Id for correlation with
// backend logs.
func (h *httpGateway) request(ctx context.Context) *resty.Request {
	baseURL := h.resolver.Ensure(ctx)
	h.setBase.Do(func() {
		h.client.SetBaseURL(baseURL)
	})

	return h.client.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", newRequestID())
}

func (h *httpGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// Login implements [Gateway]. The token endpoint is OAuth2-password shaped
// and accepts only form-urlencoded bodies; SetFormData produces exactly that.
func (h *httpGateway) Login(ctx context.Context, email, password string) (models.Token, error) {
	var token models.Token

	resp, err := h.request(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&token).
		Post("/auth/token")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	if subject, expiry, ok := token.Claims(); ok {
		h.log.Debug().Str("sub", subject).Time("exp", expiry).Msg("bearer token issued")
	}

	return token, nil
}

// Register implements [Gateway].
func (h *httpGateway) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/auth/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

// CurrentUser implements [Gateway]. With bustCache set the request carries
// no-cache headers and a timestamp query parameter so intermediary caches
// cannot replay a stale body.
func (h *httpGateway) CurrentUser(ctx context.Context, bustCache bool) (models.UserPayload, error) {
	var payload models.UserPayload

	req := h.authedRequest(ctx).SetResult(&payload)
	if bustCache {
		req.SetHeader("Cache-Control", "no-cache").
			SetHeader("Pragma", "no-cache").
			SetQueryParam("_", strconv.FormatInt(time.Now().UnixMilli(), 10))
	}

	resp, err := req.Get("/users/me")
	if err != nil {
		return models.UserPayload{}, fmt.Errorf("current user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPayload{}, err
	}

	return payload, nil
}

// UpdateProfile implements [Gateway].
func (h *httpGateway) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.UserPayload, error) {
	var payload models.UserPayload

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&payload).
		Put("/users/me")
	if err != nil {
		return models.UserPayload{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserPayload{}, err
	}

	return payload, nil
}

// ChangePassword implements [Gateway].
func (h *httpGateway) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(change).
		Post("/users/me/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

// Listings implements [Gateway]. Older backend deploys answer a bare array,
// newer ones an {"apartments": [...]} envelope; decodeListings accepts both.
func (h *httpGateway) Listings(ctx context.Context) ([]models.Listing, error) {
	resp, err := h.request(ctx).Get("/apartments")
	if err != nil {
		return nil, fmt.Errorf("listings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeListings(resp.Body())
}

func decodeListings(body []byte) ([]models.Listing, error) {
	var items []models.Listing
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var envelope struct {
		Listings []models.Listing `json:"apartments"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Listings == nil {
		return nil, fmt.Errorf("unexpected listings response shape")
	}

	return envelope.Listings, nil
}

// Listing implements [Gateway].
func (h *httpGateway) Listing(ctx context.Context, id int64) (models.Listing, error) {
	var item models.Listing

	resp, err := h.request(ctx).
		SetResult(&item).
		Get("/apartments/" + strconv.FormatInt(id, 10))
	if err != nil {
		return models.Listing{}, fmt.Errorf("listing request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Listing{}, err
	}

	return item, nil
}

// CreateListing implements [Gateway].
func (h *httpGateway) CreateListing(ctx context.Context, req models.ListingCreate) (models.Listing, error) {
	var item models.Listing

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&item).
		Post("/apartments")
	if err != nil {
		return models.Listing{}, fmt.Errorf("create listing request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Listing{}, err
	}

	return item, nil
}

// Apply implements [Gateway].
func (h *httpGateway) Apply(ctx context.Context, listingID int64, message string) (models.Application, error) {
	var application models.Application

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"message": message}).
		SetResult(&application).
		Post("/apartments/" + strconv.FormatInt(listingID, 10) + "/apply")
	if err != nil {
		return models.Application{}, fmt.Errorf("apply request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return application, nil
}

// Applied implements [Gateway].
func (h *httpGateway) Applied(ctx context.Context, listingID int64) (bool, error) {
	var result struct {
		Applied bool `json:"applied"`
	}

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/apartments/" + strconv.FormatInt(listingID, 10) + "/applied")
	if err != nil {
		return false, fmt.Errorf("applied request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return result.Applied, nil
}

// OwnerApplications implements [Gateway].
func (h *httpGateway) OwnerApplications(ctx context.Context) ([]models.Application, error) {
	var items []models.Application

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/owner/applications")
	if err != nil {
		return nil, fmt.Errorf("owner applications request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// AcceptApplication implements [Gateway].
func (h *httpGateway) AcceptApplication(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Post("/applications/" + strconv.FormatInt(id, 10) + "/accept")
	if err != nil {
		return fmt.Errorf("accept application request: %w", err)
	}

	return mapHTTPError(resp)
}

// Notifications implements [Gateway].
func (h *httpGateway) Notifications(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/notifications")
	if err != nil {
		return nil, fmt.Errorf("notifications request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// MarkNotificationRead implements [Gateway].
func (h *httpGateway) MarkNotificationRead(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Post("/notifications/" + strconv.FormatInt(id, 10) + "/read")
	if err != nil {
		return fmt.Errorf("mark notification read request: %w", err)
	}

	return mapHTTPError(resp)
}

// AdminUsers implements [Gateway].
func (h *httpGateway) AdminUsers(ctx context.Context) ([]models.UserPayload, error) {
	var items []models.UserPayload

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/admin/users")
	if err != nil {
		return nil, fmt.Errorf("admin users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteAdminUser implements [Gateway].
func (h *httpGateway) DeleteAdminUser(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/admin/users/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete admin user request: %w", err)
	}

	return mapHTTPError(resp)
}

// AdminListings implements [Gateway].
func (h *httpGateway) AdminListings(ctx context.Context) ([]models.Listing, error) {
	resp, err := h.authedRequest(ctx).Get("/admin/apartments")
	if err != nil {
		return nil, fmt.Errorf("admin listings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return decodeListings(resp.Body())
}

// DeleteAdminListing implements [Gateway].
func (h *httpGateway) DeleteAdminListing(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/admin/apartments/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete admin listing request: %w", err)
	}

	return mapHTTPError(resp)
}

// AdminApplications implements [Gateway].
func (h *httpGateway) AdminApplications(ctx context.Context) ([]models.Application, error) {
	var items []models.Application

	resp, err := h.authedRequest(ctx).
		SetResult(&items).
		Get("/admin/applications")
	if err != nil {
		return nil, fmt.Errorf("admin applications request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteAdminApplication implements [Gateway].
func (h *httpGateway) DeleteAdminApplication(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete("/admin/applications/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete admin application request: %w", err)
	}

	return mapHTTPError(resp)
}

func newRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
