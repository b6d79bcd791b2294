package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/factory"
	"github.com/mcoot/rockquest-admin/internal/testutil"
	"github.com/mcoot/rockquest-admin/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	backend *testutil.FakeBackend
	cookies *cookieJar
}

// newWebTestServer creates a dashboard over a fake backend. seed runs before
// the backend starts serving.
func newWebTestServer(t *testing.T, seed func(b *testutil.FakeBackend)) *webTestServer {
	t.Helper()

	fake := testutil.NewFakeBackend(t)
	if seed != nil {
		seed(fake)
	}

	app, err := factory.NewTestApp(fake.URL())
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:      testutil.NopLogger(),
		AuthService: app.AuthService,
		Client:      app.Client,
		Clock:       app.MockClock,
		StaticDir:   "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		backend: fake,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// getHTMX makes a GET request as an HTMX request
func (ts *webTestServer) getHTMX(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, true)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// login signs in as the fake backend's administrator
func (ts *webTestServer) login() {
	ts.t.Helper()
	form := url.Values{"email": {testutil.AdminEmail}, "password": {testutil.AdminPassword}}
	rr := ts.post("/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// page logs in if needed, fetches path and parses it
func (ts *webTestServer) page(path string) *goquery.Document {
	ts.t.Helper()
	if !ts.cookies.hasSession() {
		ts.login()
	}
	rr := ts.get(path)
	require.Equal(ts.t, http.StatusOK, rr.Code, "Expected %s to render", path)
	return parseHTML(rr.Body)
}

// submit posts a form and follows the redirect back to the screen
func (ts *webTestServer) submit(path string, form url.Values) *goquery.Document {
	ts.t.Helper()
	rr := ts.post(path, form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after posting %s", path)
	rr = ts.followRedirect(rr)
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// followRedirect follows a redirect and returns the response
// Works with both traditional Location headers and HTMX HX-Redirect headers
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

// rowIDs returns the data-id attributes of the elements matching selector
func rowIDs(doc *goquery.Document, selector string) []string {
	var ids []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-id", ""))
	})
	return ids
}
