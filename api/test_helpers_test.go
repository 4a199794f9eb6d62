package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"storekit/commerce-api/config"
	"storekit/commerce-api/db"
	"storekit/commerce-api/model"
	"storekit/commerce-api/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// reqSeq hands every request a distinct client IP so the per-IP rate
// limiter on the credential routes never throttles unrelated tests.
var reqSeq int64

func nextRemoteAddr() string {
	n := atomic.AddInt64(&reqSeq, 1)
	return fmt.Sprintf("10.%d.%d.7:1234", (n>>8)&255, n&255)
}

// stubUploader mimics the media host contract: it removes the temp
// file on both success and failure and remembers every key it saw.
type stubUploader struct {
	fail bool
	keys []string
}

func (s *stubUploader) Upload(_ context.Context, localPath, key, _ string) (string, error) {
	os.Remove(localPath)

	if s.fail {
		return "", errors.New("stub upload failure")
	}

	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

type stubMailer struct {
	fail     bool
	sent     []string
	lastCode string
}

func (s *stubMailer) SendVerificationCode(sendTo, code string) error {
	if s.fail {
		return errors.New("stub mail failure")
	}

	s.sent = append(s.sent, sendTo)
	s.lastCode = code
	return nil
}

func newTestAPI(t *testing.T) (*API, *stubUploader, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:commerce_%d?mode=memory&cache=shared", seq)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		Env:           "development",
		Port:          8080,
		CORSOrigin:    "http://localhost:5173",
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 720 * time.Hour,
		MaxUploadSize: 10 << 20,
	}

	up := &stubUploader{}
	mail := &stubMailer{}

	a := &API{
		DB:      gdb,
		Cfg:     cfg,
		Argon:   security.NewArgon(),
		Tokens:  security.NewTokenIssuer(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessExpiry, cfg.RefreshExpiry),
		Uploads: up,
		Mail:    mail,
	}
	a.mountRoutes()

	return a, up, mail
}

type userOpts struct {
	username string
	email    string
	password string
	verified bool
	admin    bool
}

func seedUser(t *testing.T, a *API, o userOpts) *model.User {
	t.Helper()

	if o.username == "" {
		o.username = "alice"
	}
	if o.email == "" {
		o.email = o.username + "@example.com"
	}
	if o.password == "" {
		o.password = "secret1"
	}

	hash, err := a.Argon.GenerateFromPassword(o.password)
	require.NoError(t, err)

	id, err := newID()
	require.NoError(t, err)

	u := &model.User{
		ID:           id,
		Username:     o.username,
		Email:        o.email,
		FullName:     "Test User",
		PasswordHash: hash,
		Avatar:       "https://cdn.test/avatars/seed.png",
		IsVerified:   o.verified,
		IsAdmin:      o.admin,
	}
	require.NoError(t, a.DB.Create(u).Error)

	return u
}

func seedCategory(t *testing.T, a *API, name, parentID string) *model.Category {
	t.Helper()

	id, err := newID()
	require.NoError(t, err)

	cat := &model.Category{
		ID:          id,
		Name:        name,
		Description: name + " things",
		Image:       "https://cdn.test/categories/seed.png",
		ParentID:    parentID,
	}
	require.NoError(t, a.DB.Create(cat).Error)

	return cat
}

func seedProduct(t *testing.T, a *API, name, categoryID string) *model.Product {
	t.Helper()

	id, err := newID()
	require.NoError(t, err)

	p := &model.Product{
		ID:          id,
		Name:        name,
		Description: "A " + name,
		Price:       9.99,
		Stock:       5,
		Images:      model.StringSlice{"https://cdn.test/products/seed.png"},
		IsActive:    true,
		CategoryID:  categoryID,
	}
	require.NoError(t, a.DB.Create(p).Error)

	return p
}

func bearerFor(t *testing.T, a *API, u *model.User) string {
	t.Helper()

	token, err := a.Tokens.MakeAccessToken(u)
	require.NoError(t, err)

	return "Bearer " + token
}

func doJSON(a *API, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.RemoteAddr = nextRemoteAddr()
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// doMultipart builds a multipart request. Every file part is written
// as a small PNG-named image with an image/png content type so the
// image validator accepts it.
func doMultipart(a *API, method, path string, fields map[string]string, files map[string][]string, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		mw.WriteField(k, v)
	}

	for field, names := range files {
		for _, name := range names {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
			h.Set("Content-Type", "image/png")

			part, _ := mw.CreatePart(h)
			part.Write([]byte("not-really-a-png"))
		}
	}

	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = nextRemoteAddr()
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}
