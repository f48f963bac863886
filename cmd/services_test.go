package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/acoruss/acoruss.github.io/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdmin(t *testing.T) (*serviceAdmin, *store.ServiceStore, *bytes.Buffer) {
	db := testutil.NewDB(t)
	services := store.NewServiceStore(db)
	out := &bytes.Buffer{}
	return &serviceAdmin{services: services, out: out}, services, out
}

func TestServiceAdmin_CreateIssuesCredentials(t *testing.T) {
	admin, services, out := newAdmin(t)
	ctx := context.Background()

	svc, err := admin.create(ctx, newService{
		Slug:       "shop",
		WebhookURL: "https://shop.example.com/hooks",
		Currencies: []string{"kes", " usd"},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^ak_[0-9a-f]{48}$`, svc.APIKey)
	assert.Contains(t, out.String(), svc.APISecret)

	stored, err := services.GetByAPIKey(ctx, svc.APIKey)
	require.NoError(t, err)
	assert.Equal(t, "shop", stored.Name)
	assert.True(t, stored.Enabled)
	assert.Equal(t, []string{"KES", "USD"}, []string(stored.AllowedCurrencies))
}

func TestServiceAdmin_CreateRejectsDuplicatesAndBadCurrencies(t *testing.T) {
	admin, _, _ := newAdmin(t)
	ctx := context.Background()

	_, err := admin.create(ctx, newService{Slug: "shop", Currencies: []string{"EUR"}})
	assert.ErrorContains(t, err, "unsupported currency")

	_, err = admin.create(ctx, newService{Slug: "shop"})
	require.NoError(t, err)
	_, err = admin.create(ctx, newService{Slug: "shop"})
	assert.ErrorContains(t, err, "already exists")
}

func TestServiceAdmin_DisableAndRotate(t *testing.T) {
	admin, services, out := newAdmin(t)
	ctx := context.Background()

	svc, err := admin.create(ctx, newService{Slug: "shop"})
	require.NoError(t, err)

	require.NoError(t, admin.setEnabled(ctx, "shop", false))
	stored, err := services.GetBySlug(ctx, "shop")
	require.NoError(t, err)
	assert.False(t, stored.Enabled)

	rotated, err := admin.rotate(ctx, "shop")
	require.NoError(t, err)
	assert.NotEqual(t, svc.APIKey, rotated.APIKey)
	_, err = services.GetByAPIKey(ctx, svc.APIKey)
	assert.ErrorIs(t, err, models.ErrNotFound)

	out.Reset()
	require.NoError(t, admin.list(ctx))
	assert.Contains(t, out.String(), rotated.APIKey)
	assert.Contains(t, out.String(), "false")

	assert.ErrorIs(t, admin.setEnabled(ctx, "missing", true), models.ErrNotFound)
}
