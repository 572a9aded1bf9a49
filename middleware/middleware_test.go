package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phillip/autoclub-go/auth"
	"github.com/phillip/autoclub-go/models"
)

const cookieName = "autoclub_session"

func init() {
	gin.SetMode(gin.TestMode)
}

func issue(t *testing.T, sm *auth.SessionManager, role string) string {
	t.Helper()
	token, _, err := sm.Issue(&models.User{ID: primitive.NewObjectID(), Name: "N", Role: role})
	require.NoError(t, err)
	return token
}

func newRouter(sm *auth.SessionManager) *gin.Engine {
	r := gin.New()
	r.Use(Session(sm, cookieName))
	r.GET("/open", func(c *gin.Context) {
		s := auth.SessionFromContext(c.Request.Context())
		if s == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, s.Role)
	})
	r.GET("/member", RequireSession(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionFromCookieAndBearer(t *testing.T) {
	sm := auth.NewSessionManager("0123456789abcdef0123456789abcdef", time.Hour)
	r := newRouter(sm)

	w := do(r, "/open", nil)
	assert.Equal(t, "anonymous", w.Body.String())

	userToken := issue(t, sm, models.RoleUser)
	w = do(r, "/open", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: userToken})
	})
	assert.Equal(t, "user", w.Body.String())

	adminToken := issue(t, sm, models.RoleAdmin)
	w = do(r, "/open", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	})
	assert.Equal(t, "admin", w.Body.String())

	w = do(r, "/open", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestGuards(t *testing.T) {
	sm := auth.NewSessionManager("0123456789abcdef0123456789abcdef", time.Hour)
	r := newRouter(sm)
	userToken := issue(t, sm, models.RoleUser)
	adminToken := issue(t, sm, models.RoleAdmin)
	bearer := func(tok string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+tok) }
	}

	tests := []struct {
		path   string
		mutate func(*http.Request)
		want   int
	}{
		{"/member", nil, http.StatusUnauthorized},
		{"/member", bearer(userToken), http.StatusNoContent},
		{"/admin", nil, http.StatusUnauthorized},
		{"/admin", bearer(userToken), http.StatusUnauthorized},
		{"/admin", bearer(adminToken), http.StatusNoContent},
	}
	for _, tt := range tests {
		w := do(r, tt.path, tt.mutate)
		assert.Equal(t, tt.want, w.Code, tt.path)
		if tt.want == http.StatusUnauthorized {
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		}
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}

func TestLoggerLevelsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Logger(slog.New(slog.NewTextHandler(&buf, nil))))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := do(r, "/ok", func(req *http.Request) { req.Header.Set("X-Request-ID", "req-1") })
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "request_id=req-1")

	buf.Reset()
	w = do(r, "/boom", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "path=/boom")
	assert.NotContains(t, buf.String(), "user_id=")
}

func TestLoggerRecordsSessionUser(t *testing.T) {
	var buf bytes.Buffer
	sm := auth.NewSessionManager("0123456789abcdef0123456789abcdef", time.Hour)
	uid := primitive.NewObjectID()
	token, _, err := sm.Issue(&models.User{ID: uid, Name: "N", Role: models.RoleUser})
	require.NoError(t, err)

	r := gin.New()
	r.Use(Logger(slog.New(slog.NewTextHandler(&buf, nil))), Session(sm, cookieName))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, "/ok", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) })
	assert.Contains(t, buf.String(), "user_id="+uid.Hex())
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "/x", func(req *http.Request) {
		req.Method = http.MethodOptions
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
	})
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
