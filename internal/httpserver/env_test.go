package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/packnbake/storefront/internal/db"
	"github.com/packnbake/storefront/internal/idgen"
	authmw "github.com/packnbake/storefront/internal/middleware/auth"
	"github.com/packnbake/storefront/internal/models"
	"github.com/packnbake/storefront/internal/repo"
	"github.com/packnbake/storefront/internal/service"
	"github.com/packnbake/storefront/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Repo   *repo.GormRepo
	IDs    *idgen.Sequential
	Events *recordingProducer
}

// recordingProducer keeps published events in memory so tests can assert on
// what the handlers announce.
type recordingProducer struct {
	published []recordedEvent
}

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

func (p *recordingProducer) PublishEvent(_ context.Context, topic, key string, event any) error {
	fields, _ := event.(map[string]any)
	p.published = append(p.published, recordedEvent{Topic: topic, Key: key, Event: fields})
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) byTopic(topic string) []recordedEvent {
	var out []recordedEvent
	for _, e := range p.published {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(gdb))

	ids := &idgen.Sequential{Prefix: "t"}
	require.NoError(t, appdb.Seed(gdb, ids))

	r := repo.New(gdb, ids)

	authSvc := &service.AuthService{
		Repo:          r,
		IDs:           ids,
		JWTSecret:     testSecret,
		RefreshSecret: []byte("test-refresh-secret"),
	}
	recorder := &recordingProducer{}
	deps := &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc, Producer: recorder},
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: r}, Producer: recorder},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r, IDs: ids}, Producer: recorder},
		Tokens:         &authmw.TokenMiddleware{JWTSecret: testSecret},
		IDs:            ids,
	}

	e := echo.New()
	Register(e, deps)

	return &testEnv{T: t, E: e, DB: gdb, Repo: r, IDs: ids, Events: recorder}
}

func (env *testEnv) doJSON(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) accessCookieFor(email string) *http.Cookie {
	env.T.Helper()

	var user models.User
	require.NoError(env.T, env.DB.Where("email = ?", email).First(&user).Error)

	token, err := tokens.SignAccessToken(user.ID, user.Role, testSecret)
	require.NoError(env.T, err)
	return &http.Cookie{Name: authmw.AccessCookie, Value: token, Path: "/"}
}

func (env *testEnv) firstProduct(category string) models.Product {
	env.T.Helper()
	var p models.Product
	require.NoError(env.T, env.DB.Where("category = ?", category).Order("position ASC").First(&p).Error)
	return p
}
