package shipfunk_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/shipfunk/pkg/shipfunk"
)

func newAccountTestClient(server *httptest.Server) *shipfunk.AccountClient {
	return shipfunk.NewAccountClient(shipfunk.Config{
		APIKey:   "k",
		OrderID:  "ignored",
		Endpoint: server.URL + "/api/1.2/",
	}, nil, nil)
}

func TestAccountClient_SharesIdentityValidation(t *testing.T) {
	account := shipfunk.NewAccountClient(shipfunk.Config{APIKey: "k", Language: "suomi"}, nil, nil)

	assert.Equal(t, "FI", account.Language())
	assert.ErrorIs(t, account.SetLanguage("f3"), shipfunk.ErrNotAlpha)
	assert.ErrorIs(t, account.SetAPIKey(""), shipfunk.ErrEmptyValue)
	require.NoError(t, account.SetCurrency("usd"))
	assert.Equal(t, "USD", account.Currency())
}

func TestCreateUser(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	user := map[string]any{
		"email":      "shop@example.fi",
		"eshop_name": "Example Shop",
	}
	_, err := account.CreateUser(context.Background(), user)
	require.NoError(t, err)

	// No trailing slash and no order id, ever.
	assert.Equal(t, "/api/1.2/create_user/true/json/json", rec.path)
	assert.Equal(t, "k", rec.auth)

	doc := document(t, rec, "sf_create_user")
	assert.Equal(t, user, doc["query"].(map[string]any)["user"])
}

func TestCreateUser_Empty(t *testing.T) {
	server, _ := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	_, err := account.CreateUser(context.Background(), nil)
	assert.ErrorIs(t, err, shipfunk.ErrEmptyValue)
}

func TestGetUser(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	_, err := account.GetUser(context.Background(), "shop@example.fi")
	require.NoError(t, err)

	assert.Equal(t, "/api/1.2/get_user/true/json/json", rec.path)
	doc := document(t, rec, "sf_get_user")
	assert.Equal(t, map[string]any{"email": "shop@example.fi"}, doc["query"].(map[string]any)["user"])
}

func TestEditUser(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	_, err := account.EditUser(context.Background(), map[string]any{"email": "shop@example.fi", "eshop_name": "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "/api/1.2/edit_user/true/json/json", rec.path)
	assert.NotEmpty(t, rec.form.Get("sf_edit_user"))
}

func TestDetachUser_UsesDeleteTag(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	_, err := account.DetachUser(context.Background(), "shop@example.fi")
	require.NoError(t, err)

	assert.Equal(t, "/api/1.2/delete_user/true/json/json", rec.path)
	doc := document(t, rec, "sf_delete_user")
	assert.Equal(t, map[string]any{"email": "shop@example.fi"}, doc["query"].(map[string]any)["user"])
}

func TestCreateInvitation(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	_, err := account.CreateInvitation(context.Background(), "shop@example.fi")
	require.NoError(t, err)

	assert.Equal(t, "/api/1.2/create_invitation/true/json/json", rec.path)
	assert.NotEmpty(t, rec.form.Get("sf_create_invitation"))
}

func TestAccountClient_EmptyEmailRejected(t *testing.T) {
	server, rec := newTestServer(t, okReply)
	account := newAccountTestClient(server)

	ctx := context.Background()
	_, err := account.GetUser(ctx, "")
	assert.ErrorIs(t, err, shipfunk.ErrEmptyValue)
	_, err = account.DetachUser(ctx, "")
	assert.ErrorIs(t, err, shipfunk.ErrEmptyValue)
	_, err = account.CreateInvitation(ctx, "")
	assert.ErrorIs(t, err, shipfunk.ErrEmptyValue)

	assert.Empty(t, rec.path)
}
