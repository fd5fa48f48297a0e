package integration

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"
)

// TestNotesAppLifecycle walks the whole surface against a running instance:
// register, duplicate-register conflict, login, category CRUD, note creation
// with a photo upload, filtering, pagination, the cross-user 401 and the
// missing/malformed-id 404.
func TestNotesAppLifecycle(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	alice := newClient(t)
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("alice_%d@example.com", suffix)
	password := "secret1"

	// 1. Register
	status, body := postForm(t, alice, baseURL+"/register", url.Values{
		"name":             {"alice"},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
		"i_am_human":       {"yes"},
	})
	if status != http.StatusOK {
		t.Fatalf("register failed: status=%d", status)
	}
	if !strings.Contains(body, "Now you can login") {
		t.Fatalf("register flash missing from landing page")
	}

	// 2. Duplicate email must conflict, not crash
	status, _ = postForm(t, alice, baseURL+"/register", url.Values{
		"name":             {"alice2"},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
		"i_am_human":       {"yes"},
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: status=%d, want %d", status, http.StatusConflict)
	}

	// 3. Login
	status, body = postForm(t, alice, baseURL+"/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if status != http.StatusOK || !strings.Contains(body, "Welcome") {
		t.Fatalf("login failed: status=%d", status)
	}

	// 4. Add a category and find its id on the listing page
	status, _ = postForm(t, alice, baseURL+"/add_category", url.Values{
		"description": {"Books"},
	})
	if status != http.StatusOK {
		t.Fatalf("add category failed: status=%d", status)
	}
	status, body = get(t, alice, baseURL+"/categories")
	if status != http.StatusOK || !strings.Contains(body, "Books") {
		t.Fatalf("category missing from listing: status=%d", status)
	}
	m := regexp.MustCompile(`/edit_category/(\d+)`).FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no category id found on listing page")
	}
	categoryID := m[1]

	// 5. Add a note with a photo
	status, _ = postNoteForm(t, alice, baseURL+"/add_notes", categoryID)
	if status != http.StatusOK {
		t.Fatalf("add note failed: status=%d", status)
	}
	status, body = get(t, alice, baseURL+"/notes")
	if status != http.StatusOK || !strings.Contains(body, "Review") {
		t.Fatalf("note missing from listing: status=%d", status)
	}
	if !regexp.MustCompile(`/static/images/[0-9a-f]{16}\.png`).MatchString(body) {
		t.Fatalf("stored photo filename missing from listing")
	}

	// 6. Filter by category
	status, body = get(t, alice, baseURL+"/notes?category="+categoryID)
	if status != http.StatusOK || !strings.Contains(body, "Review") {
		t.Fatalf("category filter lost the note: status=%d", status)
	}

	// 7. Pages beyond the end are empty, not errors
	status, body = get(t, alice, baseURL+"/notes?page=99")
	if status != http.StatusOK {
		t.Fatalf("out-of-range page: status=%d", status)
	}
	if strings.Contains(body, "Review") {
		t.Fatalf("out-of-range page wrapped back to content")
	}

	// 8. A second user must not reach alice's category
	bob := newClient(t)
	bobEmail := fmt.Sprintf("bob_%d@example.com", suffix)
	status, _ = postForm(t, bob, baseURL+"/register", url.Values{
		"name":             {"bob"},
		"email":            {bobEmail},
		"password":         {password},
		"confirm_password": {password},
		"i_am_human":       {"yes"},
	})
	if status != http.StatusOK {
		t.Fatalf("bob register failed: status=%d", status)
	}
	status, _ = postForm(t, bob, baseURL+"/login", url.Values{
		"email":    {bobEmail},
		"password": {password},
	})
	if status != http.StatusOK {
		t.Fatalf("bob login failed: status=%d", status)
	}
	status, _ = get(t, bob, baseURL+"/edit_category/"+categoryID)
	if status != http.StatusUnauthorized {
		t.Fatalf("cross-user edit: status=%d, want %d", status, http.StatusUnauthorized)
	}

	// 9. Missing and malformed ids are 404, distinct from the 401 above
	status, _ = get(t, alice, baseURL+"/edit_category/999999999")
	if status != http.StatusNotFound {
		t.Fatalf("missing category id: status=%d, want %d", status, http.StatusNotFound)
	}
	status, _ = get(t, alice, baseURL+"/edit_note/abc")
	if status != http.StatusNotFound {
		t.Fatalf("malformed note id: status=%d, want %d", status, http.StatusNotFound)
	}

	// 10. Logout ends the session
	status, _ = get(t, alice, baseURL+"/logout")
	if status != http.StatusOK {
		t.Fatalf("logout failed: status=%d", status)
	}
	status, body = get(t, alice, baseURL+"/categories")
	if status != http.StatusOK || strings.Contains(body, "Books") {
		t.Fatalf("categories still reachable after logout")
	}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

func postForm(t *testing.T, client *http.Client, url string, values url.Values) (int, string) {
	t.Helper()
	resp, err := client.PostForm(url, values)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}

// postNoteForm submits the multipart note form with a small generated PNG.
func postNoteForm(t *testing.T, client *http.Client, url, categoryID string) (int, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("description", "Review")
	_ = w.WriteField("text", "A note about a book worth keeping.")
	_ = w.WriteField("category", categoryID)
	part, err := w.CreateFormFile("photo", "pic.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if err := png.Encode(part, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	_ = w.Close()

	resp, err := client.Post(url, w.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data)
}
