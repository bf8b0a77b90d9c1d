package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-admin-panel/internal/application"
	"github.com/oksasatya/go-admin-panel/internal/domain/entity"
	repo "github.com/oksasatya/go-admin-panel/internal/domain/repository"
	handlers "github.com/oksasatya/go-admin-panel/internal/interface/http"
	"github.com/oksasatya/go-admin-panel/internal/interface/middleware"
	"github.com/oksasatya/go-admin-panel/internal/router"
	"github.com/oksasatya/go-admin-panel/internal/router/modules"
	"github.com/oksasatya/go-admin-panel/internal/session"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
	"github.com/oksasatya/go-admin-panel/pkg/validation"
)

const cookieName = "admin_session"

// fakeRepo is an in-memory UserRepository for handler tests.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (f *fakeRepo) List(ctx context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		c := *u
		c.PasswordHash = ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *u
	c.PasswordHash = ""
	return &c, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	c := *u
	f.users[u.ID] = &c
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, name, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Email == email {
			return repo.ErrDuplicateEmail
		}
	}
	u.Name, u.Email = name, email
	return nil
}

func (f *fakeRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) hashOf(id int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u.PasswordHash
	}
	return ""
}

var _ repo.UserRepository = (*fakeRepo)(nil)

// fakeSessions mirrors the Redis store semantics in memory.
type fakeSessions struct {
	mu   sync.Mutex
	data map[string]*session.Data
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[string]*session.Data)}
}

func (f *fakeSessions) Get(ctx context.Context, sid string) (*session.Data, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.data[sid]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (f *fakeSessions) Token(ctx context.Context, sid string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.data[sid]; ok && d.CSRFToken != "" {
		return d.CSRFToken, sid, nil
	}
	token, err := session.GenerateToken()
	if err != nil {
		return "", "", err
	}
	if sid == "" {
		sid = uuid.NewString()
	}
	if d, ok := f.data[sid]; ok {
		d.CSRFToken = token
	} else {
		f.data[sid] = &session.Data{CSRFToken: token}
	}
	return token, sid, nil
}

func (f *fakeSessions) VerifyToken(ctx context.Context, sid, submitted string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.data[sid]
	if !ok {
		return false
	}
	return session.TokenEqual(d.CSRFToken, submitted)
}

func (f *fakeSessions) Login(ctx context.Context, oldSID string, userID int64, userName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var token string
	if d, ok := f.data[oldSID]; ok {
		token = d.CSRFToken
		delete(f.data, oldSID)
	}
	if token == "" {
		var err error
		if token, err = session.GenerateToken(); err != nil {
			return "", err
		}
	}
	sid := uuid.NewString()
	f.data[sid] = &session.Data{UserID: userID, UserName: userName, LoggedIn: true, CSRFToken: token}
	return sid, nil
}

func (f *fakeSessions) Destroy(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, sid)
	return nil
}

func (f *fakeSessions) has(sid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[sid]
	return ok
}

var _ session.Store = (*fakeSessions)(nil)

// testApp is a fully wired application over in-memory fakes.
type testApp struct {
	handler  http.Handler
	repo     *fakeRepo
	sessions *fakeSessions
	svc      *application.Service
	adminID  int64
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repoFake := newFakeRepo()
	svc := application.NewService(repoFake, logger)
	sessions := newFakeSessions()
	cookies := helpers.NewCookie(cookieName, "", false, time.Hour)

	engine := gin.New()
	engine.LoadHTMLGlob("../../../web/templates/*.html")
	engine.Use(middleware.Session(sessions, cookies))

	reg := router.NewRegistry(engine, "")
	guard := middleware.RequireLogin("", logger)
	reg.Add(modules.NewHomeModule(handlers.NewHomeHandler("")))
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, sessions, cookies, logger, "")))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(svc, sessions, cookies, logger, ""), guard))
	reg.RegisterAll()

	admin, err := svc.Create(context.Background(), "Admin User", "admin@example.com", "admin-password")
	require.NoError(t, err)

	return &testApp{
		handler:  middleware.MethodOverride(engine, logger),
		repo:     repoFake,
		sessions: sessions,
		svc:      svc,
		adminID:  admin.ID,
	}
}

// loginAs seeds an authenticated session directly in the store and returns
// its id and anti-forgery token.
func (a *testApp) loginAs(t *testing.T, userID int64, name string) (sid, token string) {
	t.Helper()
	token, err := session.GenerateToken()
	require.NoError(t, err)
	sid = uuid.NewString()
	a.sessions.mu.Lock()
	a.sessions.data[sid] = &session.Data{UserID: userID, UserName: name, LoggedIn: true, CSRFToken: token}
	a.sessions.mu.Unlock()
	return sid, token
}

func (a *testApp) get(path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(path, sid string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}
