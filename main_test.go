package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogem/personal-site/authenticator"
	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/controllers"
	"github.com/blogem/personal-site/database"
	"github.com/blogem/personal-site/mailer"
	mailmocks "github.com/blogem/personal-site/mailer/mocks"
	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/repositories"
	"github.com/blogem/personal-site/repositories/mocks"
	"github.com/blogem/personal-site/services"
)

// fakeSender records outgoing mail and fails when err is set
type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []mailer.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

type testApp struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	repo   repositories.ContactMessageRepository
	sender *fakeSender
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Mail: config.MailConfig{
			Username:   "site@example.com",
			SenderName: "Personal Website",
			Owner:      "owner@example.com",
		},
		Admin: config.AdminConfig{
			Username: "admin",
			Password: "password123",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	db, err := database.InitializeDatabase(filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	auth, err := authenticator.NewAuthenticator(cfg.Admin)
	require.NoError(t, err)

	logger := zerolog.Nop()
	sender := &fakeSender{}
	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, sender, cfg, logger)
	ctrl := controllers.NewControllers(srvs, auth, cfg, logger)

	r, err := setupRouter(cfg, ctrl, db, logger)
	require.NoError(t, err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		t:      t,
		server: server,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		repo:   repos.ContactMessages,
		sender: sender,
	}
}

func (a *testApp) get(path string) (*http.Response, string) {
	a.t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func (a *testApp) post(path string, form url.Values) (*http.Response, string) {
	a.t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, form)
	require.NoError(a.t, err)
	return resp, readBody(a.t, resp)
}

func (a *testApp) count() int {
	a.t.Helper()
	n, err := a.repo.Count(context.Background())
	require.NoError(a.t, err)
	return n
}

func (a *testApp) login(username, password string) *http.Response {
	a.t.Helper()
	resp, _ := a.post("/login", url.Values{"username": {username}, "password": {password}})
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func validSubmission() url.Values {
	return url.Values{
		"name":    {"Jane"},
		"email":   {"jane@example.com"},
		"subject": {"Hi"},
		"message": {"Hello"},
	}
}

func TestStaticPagesAreIdempotent(t *testing.T) {
	app := newTestApp(t, testConfig())

	pages := map[string]string{
		"/":          "Welcome",
		"/about":     "About",
		"/education": "Education",
		"/projects":  "Projects",
	}

	for path, heading := range pages {
		resp, first := app.get(path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, first, "<h1>"+heading+"</h1>", path)

		_, second := app.get(path)
		assert.Equal(t, first, second, "repeated GET of %s changed the page", path)
	}

	assert.Equal(t, 0, app.count())
}

func TestContactPageRendersEmptyForm(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, body := app.get("/contact")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="name"`)
	assert.Contains(t, body, `name="message"`)
	assert.Contains(t, body, "owner@example.com")
	assert.NotContains(t, body, "This field is required.")
}

func TestContactRequiresEveryField(t *testing.T) {
	app := newTestApp(t, testConfig())

	for _, field := range []string{"name", "email", "subject", "message"} {
		form := validSubmission()
		form.Set(field, "")

		resp, body := app.post("/contact", form)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Contains(t, body, "This field is required.", field)
		assert.Contains(t, body, `<form method="post" action="/contact"`, field)
	}

	assert.Equal(t, 0, app.count())
	assert.Empty(t, app.sender.sent)
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	app := newTestApp(t, testConfig())

	form := validSubmission()
	form.Set("email", "not-an-email")
	resp, body := app.post("/contact", form)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Invalid email address.")
	// Submitted values are kept for correction
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Equal(t, 0, app.count())
}

func TestContactValidSubmission(t *testing.T) {
	app := newTestApp(t, testConfig())
	start := time.Now().UTC()

	resp, _ := app.post("/contact", validSubmission())

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/contact", resp.Header.Get("Location"))

	messages, err := app.repo.GetAllNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Jane", messages[0].Name)
	assert.Equal(t, "jane@example.com", messages[0].Email)
	assert.Equal(t, "Hi", messages[0].Subject)
	assert.Equal(t, "Hello", messages[0].Message)
	assert.False(t, messages[0].Timestamp.Before(start))

	require.Len(t, app.sender.sent, 1)
	assert.Equal(t, "New Contact Form Submission: Hi", app.sender.sent[0].Subject)
	assert.Equal(t, []string{"owner@example.com"}, app.sender.sent[0].To)

	_, body := app.get("/contact")
	assert.Contains(t, body, "Your message has been sent successfully!")

	// The flash is shown only once
	_, body = app.get("/contact")
	assert.NotContains(t, body, "Your message has been sent successfully!")
}

func TestContactEmailFailureKeepsMessage(t *testing.T) {
	app := newTestApp(t, testConfig())
	app.sender.err = errors.New("dial tcp: connection refused")

	resp, _ := app.post("/contact", validSubmission())
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.Equal(t, 1, app.count())

	_, body := app.get("/contact")
	assert.Contains(t, body, "There was an issue sending the email: dial tcp: connection refused")
	assert.Contains(t, body, "alert-danger")
	assert.NotContains(t, body, "Your message has been sent successfully!")
}

func TestContactRejectsBlankFields(t *testing.T) {
	app := newTestApp(t, testConfig())

	for _, field := range []string{"name", "email", "subject", "message"} {
		form := validSubmission()
		form.Set(field, " \t\n ")

		resp, body := app.post("/contact", form)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Contains(t, body, "This field is required.", field)
	}

	assert.Equal(t, 0, app.count())
	assert.Empty(t, app.sender.sent)
}

func TestContactStoreFailure(t *testing.T) {
	cfg := testConfig()
	repo := mocks.NewMockContactMessageRepository(t)
	sender := mailmocks.NewMockSender(t)

	repo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*models.ContactMessage")).
		Return(errors.New("database is locked"))

	auth, err := authenticator.NewAuthenticator(cfg.Admin)
	require.NoError(t, err)

	logger := zerolog.Nop()
	srvs := services.NewServices(&repositories.Repositories{ContactMessages: repo}, sender, cfg, logger)
	ctrl := controllers.NewControllers(srvs, auth, cfg, logger)
	r, err := setupRouter(cfg, ctrl, okPinger{}, logger)
	require.NoError(t, err)

	server := httptest.NewServer(r)
	defer server.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.PostForm(server.URL+"/contact", validSubmission())
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Contains(t, body, "Internal Server Error")
	assert.NotContains(t, body, "database is locked")
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContactRejectsOversizedBody(t *testing.T) {
	app := newTestApp(t, testConfig())

	form := validSubmission()
	form.Set("message", strings.Repeat("x", maxRequestBody+1))
	resp, _ := app.post("/contact", form)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Equal(t, 0, app.count())
	assert.Empty(t, app.sender.sent)
}

func TestAdminMessagesRequiresLogin(t *testing.T) {
	app := newTestApp(t, testConfig())
	ctx := context.Background()

	base := time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)
	for _, m := range []struct {
		subject string
		offset  time.Duration
	}{
		{"Oldest subject", 0},
		{"Newest subject", 2 * time.Hour},
		{"Middle subject", time.Hour},
	} {
		require.NoError(t, app.repo.Create(ctx, &models.ContactMessage{
			Name: "Sender", Email: "sender@example.com", Subject: m.subject, Message: "Body", Timestamp: base.Add(m.offset),
		}))
	}

	// Anonymous access is redirected to the login page
	resp, body := app.get("/admin/messages")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "/login"), location)
	assert.NotContains(t, body, "Newest subject")

	_, body = app.get(location)
	assert.Contains(t, body, "Please log in to access this page.")
	assert.Contains(t, body, `name="next" value="/admin/messages"`)

	// Log in with the configured credentials
	resp, _ = app.post("/login", url.Values{
		"username": {"admin"},
		"password": {"password123"},
		"next":     {"/admin/messages"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/messages", resp.Header.Get("Location"))

	resp, body = app.get("/admin/messages")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "You have successfully logged in!")
	assert.Contains(t, body, "3 messages")

	newest := strings.Index(body, "Newest subject")
	middle := strings.Index(body, "Middle subject")
	oldest := strings.Index(body, "Oldest subject")
	assert.True(t, newest >= 0 && newest < middle && middle < oldest, "messages not newest first")
}

func TestLoginRedirectsToListingByDefault(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp := app.login("admin", "password123")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/messages", resp.Header.Get("Location"))
}

func TestLoginIgnoresOffsiteNext(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, _ := app.post("/login", url.Values{
		"username": {"admin"},
		"password": {"password123"},
		"next":     {"//evil.example.com/"},
	})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/messages", resp.Header.Get("Location"))
}

func TestLoginWithWrongCredentials(t *testing.T) {
	app := newTestApp(t, testConfig())

	for _, creds := range [][2]string{{"admin", "wrong"}, {"Admin", "password123"}, {"", ""}} {
		resp, body := app.post("/login", url.Values{"username": {creds[0]}, "password": {creds[1]}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Invalid credentials. Please try again.")
	}

	resp, _ := app.get("/admin/messages")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, testConfig())

	require.Equal(t, http.StatusSeeOther, app.login("admin", "password123").StatusCode)
	resp, _ := app.get("/admin/messages")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.get("/logout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, body := app.get("/")
	assert.Contains(t, body, "You have successfully logged out.")

	resp, _ = app.get("/admin/messages")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestCSRFProtectsForms(t *testing.T) {
	cfg := testConfig()
	cfg.SecretKey = "test-secret"
	app := newTestApp(t, cfg)

	resp, body := app.get("/contact")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="csrf_token"`)

	resp, _ = app.post("/contact", validSubmission())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, app.count())
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, _ := app.get("/admin")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.post("/about", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = app.post("/logout", url.Values{})
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t, testConfig())

	resp, body := app.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "healthy")

	resp, body = app.get("/static/style.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".alert-danger")

	app.get("/about")
	resp, body = app.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "site_http_requests_total")
}
