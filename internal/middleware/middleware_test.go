package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/pantryledger/pantry/internal/auth"
	"github.com/pantryledger/pantry/internal/models"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def", "abc.def", nil},
		{"missing", "", "", auth.ErrMissingToken},
		{"wrong scheme", "Basic abc", "", auth.ErrInvalidToken},
		{"no token", "Bearer ", "", auth.ErrInvalidToken},
		{"extra parts", "Bearer a b", "", auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("bearerToken(%q) error = %v, want %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var seen string
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetUserID(ctx)
		return nil, nil
	})
	handler := RequireAuth(jwtManager)(next)

	req := connect.NewRequest(&struct{}{})
	req.Header().Set("Authorization", "Bearer "+token)
	if _, err := handler(context.Background(), req); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if seen != "user-1" {
		t.Errorf("user id = %q, want user-1", seen)
	}

	anon := connect.NewRequest(&struct{}{})
	_, err = handler(context.Background(), anon)
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}

	forged := connect.NewRequest(&struct{}{})
	other := auth.NewJWTManager("other-secret", time.Hour)
	bad, _ := other.Generate(&models.User{ID: "user-2"})
	forged.Header().Set("Authorization", "Bearer "+bad)
	_, err = handler(context.Background(), forged)
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated for foreign token, got %v", err)
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	var seen string
	handler := OptionalAuth(jwtManager)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetUserID(ctx)
		return nil, nil
	})

	req := connect.NewRequest(&struct{}{})
	req.Header().Set("Authorization", "Bearer garbage")
	if _, err := handler(context.Background(), req); err != nil {
		t.Fatalf("optional auth must not fail: %v", err)
	}
	if seen != "" {
		t.Errorf("expected anonymous context, got %q", seen)
	}
}
