package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mblog/controllers"
	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/models"
	"github.com/akinalp/mblog/pkg"
	"github.com/akinalp/mblog/pkg/cache"
	"github.com/akinalp/mblog/pkg/ratelimit"
	"github.com/akinalp/mblog/repository"
	"github.com/akinalp/mblog/services"
	"github.com/akinalp/mblog/ws"
)

type nopPublisher struct{}

func (nopPublisher) BroadcastToUser(int64, ws.Event) {}

type testServer struct {
	mux   *http.ServeMux
	users repository.UserRepository
	atMe  *controllers.AtMeController
}

// asUser, auth middleware yerine kullanıcıyı doğrudan context'e koyar.
// X-Test-User header'ı yoksa kullanıcı eklenmez.
func (s *testServer) asUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("X-Test-User")
		if name != "" {
			if u, err := s.users.GetByUserName(r.Context(), name); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, u))
			}
		}
		next(w, r)
	}
}

func newTestServer(t *testing.T, loginAttempts int) *testServer {
	t.Helper()

	db := database.OpenTest(t)
	log, _ := test.NewNullLogger()
	counts := cache.New[int64, int](time.Minute, 0)
	t.Cleanup(counts.Close)
	limiter := ratelimit.NewLoginLimiter(loginAttempts, time.Minute)
	t.Cleanup(limiter.Close)

	users := repository.NewSQLiteUserRepo(db.Conn)
	blogs := repository.NewSQLiteBlogRepo(db.Conn)
	rels := repository.NewSQLiteAtRelationRepo(db.Conn)

	at := services.NewAtRelationService(rels, counts, nopPublisher{}, time.Second, log)
	auth := services.NewAuthService(users, "test-secret", 60)

	atMe := controllers.NewAtMeController(at, log)
	userH := NewUserHandler(controllers.NewUserController(auth, services.NewUserService(users, at), log), limiter)
	blogH := NewBlogHandler(controllers.NewBlogController(services.NewBlogService(blogs, users, at, log), log))
	atMeH := NewAtMeHandler(atMe)

	s := &testServer{mux: http.NewServeMux(), users: users, atMe: atMe}
	s.mux.HandleFunc("POST /api/user/isExist", userH.IsExist)
	s.mux.HandleFunc("POST /api/user/register", userH.Register)
	s.mux.HandleFunc("POST /api/user/login", userH.Login)
	s.mux.HandleFunc("POST /api/user/delete", s.asUser(userH.DeleteCurUser))
	s.mux.HandleFunc("PATCH /api/user/changeInfo", s.asUser(userH.ChangeInfo))
	s.mux.HandleFunc("PATCH /api/user/changePassword", s.asUser(userH.ChangePassword))
	s.mux.HandleFunc("POST /api/blog/create", s.asUser(blogH.Create))
	s.mux.HandleFunc("GET /api/atMe/count", s.asUser(atMeH.Count))
	s.mux.HandleFunc("GET /api/atMe/list/{pageIndex}", s.asUser(atMeH.List))
	s.mux.HandleFunc("POST /api/atMe/read", s.asUser(atMeH.MarkAsRead))
	s.mux.HandleFunc("GET /api/health", NewHealthHandler(onlineIDs{3, 7}).Health)
	return s
}

type onlineIDs []int64

func (o onlineIDs) GetOnlineUserIDs() []int64 { return o }

type envelope struct {
	Errno   int             `json:"errno"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (s *testServer) do(t *testing.T, method, path, user string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t, 10)

	code, env := s.do(t, http.MethodPost, "/api/user/isExist", "", map[string]string{"userName": "alice"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, pkg.RegisterUserNameNotExistInfo.Errno, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/user/register", "", map[string]any{"userName": "alice", "password": "pw123", "gender": 2})
	require.Zero(t, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/user/register", "", map[string]any{"userName": "alice", "password": "pw123"})
	require.Equal(t, pkg.RegisterUserNameExistInfo.Errno, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/user/login", "", map[string]string{"userName": "alice", "password": "pw123"})
	require.Zero(t, env.Errno)
	var login struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, "alice", login.User["userName"])
	require.NotContains(t, login.User, "password")
	require.NotContains(t, login.User, "PasswordHash")

	_, env = s.do(t, http.MethodPatch, "/api/user/changeInfo", "alice", map[string]string{"nickName": "Al", "city": "Izmir"})
	require.Zero(t, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/user/isExist", "", map[string]string{"userName": "alice"})
	require.Zero(t, env.Errno)
	var pub models.PublicUser
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	require.Equal(t, "Al", pub.NickName)

	_, env = s.do(t, http.MethodPatch, "/api/user/changePassword", "alice", map[string]string{"password": "pw123", "newPassword": "pw456"})
	require.Zero(t, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/user/delete", "alice", nil)
	require.Zero(t, env.Errno)

	code, env = s.do(t, http.MethodPost, "/api/user/delete", "alice", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, pkg.LoginCheckFailInfo.Errno, env.Errno)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 5)

	status, env := s.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Zero(t, env.Errno)
	require.JSONEq(t, `{"status":"ok","service":"mblog","onlineUsers":2}`, string(env.Data))
}

func TestInvalidBody(t *testing.T) {
	s := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, 2)
	creds := map[string]string{"userName": "ghost", "password": "x"}

	for i := 0; i < 2; i++ {
		code, env := s.do(t, http.MethodPost, "/api/user/login", "", creds)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, pkg.LoginFailInfo.Errno, env.Errno)
	}

	code, env := s.do(t, http.MethodPost, "/api/user/login", "", creds)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.Equal(t, pkg.LoginRateLimitInfo.Errno, env.Errno)
}

func TestAtMeEndpoints(t *testing.T) {
	s := newTestServer(t, 10)
	ctx := context.Background()
	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, s.users.Create(ctx, &models.User{UserName: name, PasswordHash: "h", Gender: models.GenderSecret}))
	}

	for i := 0; i < 6; i++ {
		_, env := s.do(t, http.MethodPost, "/api/blog/create", "alice", map[string]string{"content": "post " + strconv.Itoa(i) + " @bob"})
		require.Zero(t, env.Errno)
	}

	_, env := s.do(t, http.MethodGet, "/api/atMe/count", "bob", nil)
	require.Zero(t, env.Errno)
	require.JSONEq(t, `{"count":6}`, string(env.Data))

	_, env = s.do(t, http.MethodGet, "/api/atMe/list/0", "bob", nil)
	require.Zero(t, env.Errno)
	var page controllers.AtMeBlogListData
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.False(t, page.IsEmpty)
	require.Len(t, page.BlogList, models.PageSize)
	require.Equal(t, 6, page.Count)
	require.Equal(t, "post 5 @bob", page.BlogList[0].Content)
	require.Contains(t, page.BlogList[0].ContentFormat, `href="/profile/bob"`)

	_, env = s.do(t, http.MethodGet, "/api/atMe/list/1", "bob", nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.BlogList, 1)
	require.Equal(t, 1, page.PageIndex)

	code, _ := s.do(t, http.MethodGet, "/api/atMe/list/abc", "bob", nil)
	require.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodGet, "/api/atMe/list/-1", "bob", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, pkg.ErrnoUnhandled, env.Errno)

	_, env = s.do(t, http.MethodPost, "/api/atMe/read", "bob", nil)
	require.Zero(t, env.Errno)
	s.atMe.Wait()

	_, env = s.do(t, http.MethodGet, "/api/atMe/count", "bob", nil)
	require.JSONEq(t, `{"count":0}`, string(env.Data))

	code, env = s.do(t, http.MethodGet, "/api/atMe/count", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, pkg.LoginCheckFailInfo.Errno, env.Errno)
}
