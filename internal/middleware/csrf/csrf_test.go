package csrf

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/shop2give/payment-service/internal/middleware/auth"
)

func TestService_GenerateAndValidate(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	token, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, token, 64)

	valid, err := svc.Validate(ctx, "user-1", token)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestService_Validate_WrongToken(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	valid, err := svc.Validate(ctx, "user-1", "0000000000000000000000000000000000000000000000000000000000000000")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_Validate_EmptyToken(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())

	valid, err := svc.Validate(context.Background(), "user-1", "")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_Validate_OtherUsersToken(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	token, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	valid, err := svc.Validate(ctx, "user-2", token)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestService_Generate_ReplacesPreviousToken(t *testing.T) {
	svc := NewService(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)
	second, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	valid, err := svc.Validate(ctx, "user-1", first)
	assert.NoError(t, err)
	assert.False(t, valid)

	valid, err = svc.Validate(ctx, "user-1", second)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "user-1", "token", -time.Second)
	assert.NoError(t, err)

	token, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "user-1", "token", time.Hour)
	assert.NoError(t, err)
	err = store.Delete(ctx, "user-1")
	assert.NoError(t, err)

	token, err := store.Get(ctx, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestMiddleware(t *testing.T) {
	userID := "10000000-0000-0000-0000-000000000001"
	svc := NewService(NewMemoryStore(), zap.NewNop())
	token, err := svc.Generate(context.Background(), userID)
	assert.NoError(t, err)

	tests := []struct {
		name          string
		method        string
		token         string
		authenticated bool
		wantStatus    int
	}{
		{
			name:          "GET passes without token",
			method:        http.MethodGet,
			authenticated: false,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "POST with valid token passes",
			method:        http.MethodPost,
			token:         token,
			authenticated: true,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "POST without token rejected",
			method:        http.MethodPost,
			authenticated: true,
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "POST with wrong token rejected",
			method:        http.MethodPost,
			token:         "not-the-token",
			authenticated: true,
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "POST without authenticated user rejected",
			method:        http.MethodPost,
			token:         token,
			authenticated: false,
			wantStatus:    http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/stripe-products", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			if tt.authenticated {
				req = req.WithContext(authTestContext(req.Context(), userID))
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Middleware(svc, zap.NewNop())(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func authTestContext(ctx context.Context, userID string) context.Context {
	return auth.ContextWithUser(ctx, &auth.AuthUser{
		UserID: uuid.MustParse(userID),
		Email:  "user@example.com",
		Role:   auth.RoleUser,
	})
}
