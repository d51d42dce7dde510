package e2e

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snippetlog/internal/db"
	"github.com/snippetlog/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type e2eSuite struct {
	handler http.Handler
	public  *localClient
	admin   *localClient
	baseURL string
}

// localClient 直接驱动路由器，模拟带 CookieJar 的 HTTP 客户端
type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(handler http.Handler, withJar bool) *localClient {
	var jar http.CookieJar
	if withJar {
		if j, err := cookiejar.New(nil); err == nil {
			jar = j
		}
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) Do(req *http.Request) (*http.Response, error) {
	if c.jar != nil {
		for _, cookie := range c.jar.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	resp := w.Result()
	if c.jar != nil {
		c.jar.SetCookies(req.URL, resp.Cookies())
	}
	return resp, nil
}

func newE2ESuite(t *testing.T) *e2eSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Snippet{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	if err := gdb.Create(&db.User{Username: "admin", Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	r := router.SetupRouter("e2e-secret", "")

	return &e2eSuite{
		handler: r,
		public:  newLocalClient(r, false),
		admin:   newLocalClient(r, true),
		baseURL: "http://snippetlog.test",
	}
}

func (s *e2eSuite) login(t *testing.T) {
	t.Helper()

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "admin123")

	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d", resp.StatusCode)
	}
}

func (s *e2eSuite) createSnippet(t *testing.T, title, body string) map[string]interface{} {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"title": title, "body": body})
	req, _ := http.NewRequest(http.MethodPost, s.baseURL+"/admin/api/snippets", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.admin.Do(req)
	if err != nil {
		t.Fatalf("create snippet request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status 201, got %d: %s", resp.StatusCode, raw)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return result
}

func (s *e2eSuite) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	req, _ := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	resp, err := s.public.Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp, string(raw)
}

func TestE2E_SitemapFlow(t *testing.T) {
	suite := newE2ESuite(t)
	suite.login(t)

	// 创建两条片段，slug 由标题派生
	first := suite.createSnippet(t, "t1", "<h1></h1>")
	if first["slug"] != "t1" {
		t.Fatalf("expected slug 't1', got %v", first["slug"])
	}
	second := suite.createSnippet(t, "t2", "second body")
	if second["slug"] != "t2" {
		t.Fatalf("expected slug 't2', got %v", second["slug"])
	}

	// 公共端点
	resp, body := suite.get(t, "/about/")
	if resp.StatusCode != http.StatusOK || body != "about page" {
		t.Fatalf("unexpected about response: %d %q", resp.StatusCode, body)
	}

	resp, body = suite.get(t, "/t1/")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "t1") {
		t.Fatalf("unexpected detail response: %d %q", resp.StatusCode, body)
	}

	resp, _ = suite.get(t, "/missing-slug/")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", resp.StatusCode)
	}

	// sitemap 汇总静态视图与全部片段
	resp, body = suite.get(t, "/sitemap.xml")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from sitemap, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("expected application/xml, got %q", ct)
	}

	var doc struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("failed to parse sitemap: %v", err)
	}

	expected := []string{"/about/", "/t1", "/t2"}
	if len(doc.URLs) != len(expected) {
		t.Fatalf("expected %d locations, got %d", len(expected), len(doc.URLs))
	}
	for i, want := range expected {
		if doc.URLs[i].Loc != want {
			t.Fatalf("location %d: expected %q, got %q", i, want, doc.URLs[i].Loc)
		}
	}
}
