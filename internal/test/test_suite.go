// Command-line smoke test that simulates concurrent visitors working through
// the register / login / category / note flow and produces a CSV report.
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"regexp"
	"sync"
	"time"
)

const baseURL = "http://127.0.0.1:8080"

var categoryIDPattern = regexp.MustCompile(`/edit_category/(\d+)`)

// flowResult records one simulated visitor's run.
type flowResult struct {
	User      string
	Step      string // last step reached
	OK        bool
	Err       string
	Elapsed   time.Duration
	Timestamp time.Time
}

func newClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}, nil
}

func postForm(client *http.Client, path string, values url.Values) (int, string, error) {
	resp, err := client.PostForm(baseURL+path, values)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data), nil
}

func get(client *http.Client, path string) (int, string, error) {
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(data), nil
}

func postNote(client *http.Client, categoryID, description string) (int, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("description", description)
	_ = w.WriteField("text", "generated by the smoke test")
	_ = w.WriteField("category", categoryID)
	_ = w.Close()

	resp, err := client.Post(baseURL+"/add_notes", w.FormDataContentType(), &body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// runFlow drives one visitor through the whole surface.
func runFlow(idx int) flowResult {
	start := time.Now()
	res := flowResult{
		User:      fmt.Sprintf("smoke_%d_%d", idx, start.UnixNano()),
		Timestamp: start,
	}
	fail := func(step string, err error) flowResult {
		res.Step, res.OK, res.Err, res.Elapsed = step, false, err.Error(), time.Since(start)
		return res
	}

	client, err := newClient()
	if err != nil {
		return fail("client", err)
	}
	email := res.User + "@smoke.test"
	password := "Passw0rd!"

	status, _, err := postForm(client, "/register", url.Values{
		"name":             {res.User},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
		"i_am_human":       {"yes"},
	})
	if err != nil || status != http.StatusOK {
		return fail("register", fmt.Errorf("status=%d err=%v", status, err))
	}

	status, _, err = postForm(client, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if err != nil || status != http.StatusOK {
		return fail("login", fmt.Errorf("status=%d err=%v", status, err))
	}

	status, _, err = postForm(client, "/add_category", url.Values{
		"description": {"Smoke"},
	})
	if err != nil || status != http.StatusOK {
		return fail("add_category", fmt.Errorf("status=%d err=%v", status, err))
	}

	_, body, err := get(client, "/categories")
	if err != nil {
		return fail("categories", err)
	}
	m := categoryIDPattern.FindStringSubmatch(body)
	if m == nil {
		return fail("categories", fmt.Errorf("no category id on page"))
	}

	for i := 0; i < 5; i++ {
		status, err = postNote(client, m[1], fmt.Sprintf("note %d", i))
		if err != nil || status != http.StatusOK {
			return fail("add_note", fmt.Errorf("status=%d err=%v", status, err))
		}
	}

	status, _, err = get(client, "/notes?page=2")
	if err != nil || status != http.StatusOK {
		return fail("paginate", fmt.Errorf("status=%d err=%v", status, err))
	}

	status, _, err = get(client, "/logout")
	if err != nil || status != http.StatusOK {
		return fail("logout", fmt.Errorf("status=%d err=%v", status, err))
	}

	res.Step, res.OK, res.Elapsed = "done", true, time.Since(start)
	return res
}

func writeReport(results []flowResult) error {
	f, err := os.Create("smoke_report.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"user", "step", "ok", "error", "elapsed_ms", "started"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.User, r.Step, fmt.Sprintf("%t", r.OK), r.Err,
			fmt.Sprintf("%d", r.Elapsed.Milliseconds()),
			r.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	const visitors = 10

	var wg sync.WaitGroup
	results := make([]flowResult, visitors)
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = runFlow(idx)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, r := range results {
		if r.OK {
			ok++
		} else {
			log.Printf("visitor %s failed at %s: %s", r.User, r.Step, r.Err)
		}
	}
	if err := writeReport(results); err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("%d/%d visitors completed the flow; report in smoke_report.csv", ok, visitors)
}
