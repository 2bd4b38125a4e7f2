package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	tokenStr, err := GenerateToken(42, true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := ValidateToken(tokenStr)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected token to be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if got := uint(claims["user_id"].(float64)); got != 42 {
		t.Errorf("user_id = %d, want 42", got)
	}
	if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
		t.Error("expected is_admin to be true")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestSecretReadAtCallTime(t *testing.T) {
	// The secret must be resolved per call, not at package init, so a
	// value loaded from .env after startup is honored.
	t.Setenv("JWT_SECRET", "late-loaded-secret")

	tokenStr, err := GenerateToken(1, false)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte("late-loaded-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token not signed with env secret: %v", err)
	}
}

func adminTestRouter(handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/sync", RequireAdmin(), func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, gin.H{"message": "sweep started"})
	})
	return r
}

func TestRequireAdminBlocksNonAdminBeforeHandler(t *testing.T) {
	handlerRan := false
	r := adminTestRouter(&handlerRan)

	token, err := GenerateToken(7, false)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("handler executed for non-admin caller")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	handlerRan := false
	r := adminTestRouter(&handlerRan)

	token, err := GenerateToken(7, true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !handlerRan {
		t.Fatal("handler did not execute for admin caller")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	handlerRan := false
	r := adminTestRouter(&handlerRan)

	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if handlerRan {
		t.Fatal("handler executed without a token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
