package shipfunk

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

// accountURLVariables differ from the order-scoped ones only by the
// missing trailing slash; account operations never append an order id.
const accountURLVariables = "/true/json/json"

// AccountClient is the account-scoped Shipfunk client. It shares the
// identity fields and the dispatcher with Client but carries no order,
// product or address state; it exists for the user administration
// operations under the owning account.
type AccountClient struct {
	session
}

// NewAccountClient creates an account-scoped client. OrderID in cfg is
// ignored.
func NewAccountClient(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *AccountClient {
	return &AccountClient{
		session: newSession(cfg, logger, tracer),
	}
}

// call dispatches one account operation.
func (a *AccountClient) call(ctx context.Context, operation string, content map[string]any) (any, error) {
	reqURL := a.endpoint + operation + accountURLVariables
	return a.transport.send(ctx, operation, reqURL, a.apikey, content)
}

// CreateUser creates a new user account under the owning account. The
// user document carries email, eshop_name, business_id and the contact
// person fields; locale, customs_id, web_address and
// customer_contact_info are optional.
func (a *AccountClient) CreateUser(ctx context.Context, user map[string]any) (any, error) {
	if len(user) == 0 {
		return nil, fmt.Errorf("user: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"user": user,
		},
	}

	return a.call(ctx, "create_user", map[string]any{"sf_create_user": data})
}

// GetUser returns the user attached to the account.
func (a *AccountClient) GetUser(ctx context.Context, email string) (any, error) {
	if email == "" {
		return nil, fmt.Errorf("email: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"user": map[string]any{
				"email": email,
			},
		},
	}

	return a.call(ctx, "get_user", map[string]any{"sf_get_user": data})
}

// EditUser modifies an existing user. The document layout matches
// CreateUser.
func (a *AccountClient) EditUser(ctx context.Context, user map[string]any) (any, error) {
	if len(user) == 0 {
		return nil, fmt.Errorf("user: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"user": user,
		},
	}

	return a.call(ctx, "edit_user", map[string]any{"sf_edit_user": data})
}

// DetachUser detaches the user from the owning account.
func (a *AccountClient) DetachUser(ctx context.Context, email string) (any, error) {
	if email == "" {
		return nil, fmt.Errorf("email: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"user": map[string]any{
				"email": email,
			},
		},
	}

	return a.call(ctx, "delete_user", map[string]any{"sf_delete_user": data})
}

// CreateInvitation invites an existing user to attach itself under the
// owning account, for the case where CreateUser found the user taken.
func (a *AccountClient) CreateInvitation(ctx context.Context, email string) (any, error) {
	if email == "" {
		return nil, fmt.Errorf("email: %w", ErrEmptyValue)
	}

	data := map[string]any{
		"query": map[string]any{
			"user": map[string]any{
				"email": email,
			},
		},
	}

	return a.call(ctx, "create_invitation", map[string]any{"sf_create_invitation": data})
}
