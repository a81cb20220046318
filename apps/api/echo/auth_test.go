package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

func newContext(t *testing.T) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func authenticate(t *testing.T, ctx echo.Context, usr user.User) {
	t.Helper()
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	ctx.Set(appJWTConfig.ContextKey, jwt.NewWithClaims(method, GetUserClaims(usr)))
}

func TestGenerateToken(t *testing.T) {
	usr := user.User{ID: 7, Name: "Admin Ann", Email: "ann@test.cd", Role: user.RoleAdmin}

	claims := GetUserClaims(usr)
	assert.Equal(t, core.Conf.AppName, claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("GetUserClaims() token must expire after issuance")
	}

	ss, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	// the signed string round-trips to the same claims
	token, err := jwt.ParseWithClaims(ss, new(Claims), func(*jwt.Token) (interface{}, error) {
		return core.Conf.SecretKey, nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims() failed: %v", err)
	}
	if !token.Valid {
		t.Fatal("ParseWithClaims() token is not valid")
	}
	parsed, ok := token.Claims.(*Claims)
	if !ok {
		t.Fatalf("ParseWithClaims() claims = %T, want *Claims", token.Claims)
	}
	assert.Equal(t, claims, parsed)
}

func Test_getPrincipal(t *testing.T) {
	usr := user.User{ID: 7, Name: "Teacher Tess", Email: "tess@test.cd", Role: user.RoleTeacher}

	// no token
	ctx := newContext(t)
	assert.Equal(t, core.Anonymous, getPrincipal(ctx))

	// malformed subject
	ctx = newContext(t)
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	claims := GetUserClaims(usr)
	claims.Subject = "not-an-id"
	ctx.Set(appJWTConfig.ContextKey, jwt.NewWithClaims(method, claims))
	assert.Equal(t, core.Anonymous, getPrincipal(ctx))

	// valid claims
	ctx = newContext(t)
	authenticate(t, ctx, usr)
	assert.Equal(t, core.Principal{ID: 7, Role: user.RoleTeacher}, getPrincipal(ctx))
}

func Test_roleMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		usr       user.User // zero value: anonymous request
		role      string
		wantAllow bool
	}{
		{name: "anonymous", role: user.RoleAdmin},
		{name: "wrong role", usr: user.User{ID: 7, Role: user.RoleTeacher}, role: user.RoleAdmin},
		{
			name:      "required role",
			usr:       user.User{ID: 7, Role: user.RoleAdmin},
			role:      user.RoleAdmin,
			wantAllow: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newContext(t)
			if tt.usr.ID != 0 {
				authenticate(t, ctx, tt.usr)
			}

			var called bool
			next := func(ctx echo.Context) error {
				called = true
				return ctx.NoContent(http.StatusOK)
			}
			err := roleMiddleware(tt.role)(next)(ctx)

			if tt.wantAllow {
				if err != nil {
					t.Fatalf("middleware error = %v, want nil", err)
				}
				if !called {
					t.Error("middleware did not call the handler")
				}
			} else {
				if err != errHttpForbidden {
					t.Errorf("middleware error = %v, want %v", err, errHttpForbidden)
				}
				if called {
					t.Error("middleware called the handler for a denied request")
				}
			}
		})
	}
}
