package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"inventory/internal/domain"
)

func TestBooksEmptyList(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	resp, body := do(t, app, http.MethodGet, "/api/books", "")
	expectStatus(t, resp, body, http.StatusOK)
	if string(body) != "[]" {
		t.Fatalf("empty table should be [], got %s", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: %s", ct)
	}
}

func TestBooksAddThenList(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	payloads := []string{
		`{"title":"Dune","author":"Frank Herbert","price":9.99,"stock":3}`,
		`{"title":"Emma","author":"Jane Austen","price":"4.50","stock":"0"}`,
	}
	for _, p := range payloads {
		resp, body := do(t, app, http.MethodPost, "/api/books", p)
		expectStatus(t, resp, body, http.StatusCreated)
		if string(body) != `{"message":"Book added"}` {
			t.Fatalf("unexpected body %s", body)
		}
	}

	resp, body := do(t, app, http.MethodGet, "/api/books", "")
	expectStatus(t, resp, body, http.StatusOK)
	var books []domain.Book
	decodeJSON(t, body, &books)
	if len(books) != 2 {
		t.Fatalf("want 2 books, got %d", len(books))
	}
	if books[0].ID == 0 || books[0].Title != "Dune" || books[0].Price != 9.99 || books[0].Stock != 3 {
		t.Fatalf("unexpected first book %+v", books[0])
	}
	if books[1].Price != 4.5 || books[1].Stock != 0 {
		t.Fatalf("string numbers not accepted: %+v", books[1])
	}

	resp, body = do(t, app, http.MethodGet, fmt.Sprintf("/api/books/%d", books[1].ID), "")
	expectStatus(t, resp, body, http.StatusOK)
	var one domain.Book
	decodeJSON(t, body, &one)
	if one != books[1] {
		t.Fatalf("get by id: want %+v got %+v", books[1], one)
	}
}

func TestBooksGetUnknownID(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	resp, body := do(t, app, http.MethodGet, "/api/books/999", "")
	expectStatus(t, resp, body, http.StatusNotFound)
	if string(body) != `{"error":"Book not found"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestBooksAddRejectsInvalidFields(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	cases := []struct {
		body  string
		field string
	}{
		{`{"title":"Dune","author":"Herbert","price":0,"stock":1}`, "price"},
		{`{"title":"Dune","author":"Herbert","price":-3,"stock":1}`, "price"},
		{`{"title":"Dune","author":"Herbert","price":2,"stock":-1}`, "stock"},
		{`{"author":"Herbert","price":2,"stock":1}`, "title"},
		{`{"title":"Dune","author":"Herbert","price":1e300,"stock":1}`, "price"},
	}
	for _, tc := range cases {
		resp, body := do(t, app, http.MethodPost, "/api/books", tc.body)
		expectStatus(t, resp, body, http.StatusBadRequest)
		var out struct {
			Error  string `json:"error"`
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		}
		decodeJSON(t, body, &out)
		if out.Error != "Missing required fields" || len(out.Fields) != 1 || out.Fields[0].Field != tc.field {
			t.Fatalf("%s: want field %s, got %s", tc.body, tc.field, body)
		}
	}

	resp, body := do(t, app, http.MethodGet, "/api/books", "")
	expectStatus(t, resp, body, http.StatusOK)
	if string(body) != "[]" {
		t.Fatalf("rejected payloads must not be stored: %s", body)
	}
}

func TestBooksMalformedBody(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	for _, b := range []string{`{"title":`, `not json`} {
		resp, body := do(t, app, http.MethodPost, "/api/books", b)
		expectStatus(t, resp, body, http.StatusBadRequest)
		if string(body) != `{"error":"invalid request body"}` {
			t.Fatalf("unexpected body %s", body)
		}
	}
	resp, body := do(t, app, http.MethodPost, "/api/books", "")
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func TestBooksUpdate(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	resp, body := do(t, app, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","price":9.99,"stock":3}`)
	expectStatus(t, resp, body, http.StatusCreated)

	var books []domain.Book
	_, body = do(t, app, http.MethodGet, "/api/books", "")
	decodeJSON(t, body, &books)
	id := books[0].ID

	// body id is ignored in favour of the URL
	upd := fmt.Sprintf(`{"id":%d,"title":"Dune Messiah","author":"Herbert","price":12,"stock":1}`, id+100)
	resp, body = do(t, app, http.MethodPut, fmt.Sprintf("/api/books/%d", id), upd)
	expectStatus(t, resp, body, http.StatusOK)
	if string(body) != `{"message":"Book updated"}` {
		t.Fatalf("unexpected body %s", body)
	}

	_, body = do(t, app, http.MethodGet, fmt.Sprintf("/api/books/%d", id), "")
	var got domain.Book
	decodeJSON(t, body, &got)
	want := domain.Book{ID: id, Title: "Dune Messiah", Author: "Herbert", Price: 12, Stock: 1}
	if got != want {
		t.Fatalf("want %+v got %+v", want, got)
	}
}

func TestBooksUpdateMissingOrUnknownID(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	payload := `{"title":"x","author":"y","price":1,"stock":1}`

	// id absent or unparsable: client error
	for _, path := range []string{"/api/books", "/api/books/", "/api/books/abc"} {
		resp, body := do(t, app, http.MethodPut, path, payload)
		expectStatus(t, resp, body, http.StatusBadRequest)
		if string(body) != `{"error":"Book ID missing in URL"}` {
			t.Fatalf("%s: unexpected body %s", path, body)
		}
	}

	// id present but unmatched: silent no-op
	resp, body := do(t, app, http.MethodPut, "/api/books/4242", payload)
	expectStatus(t, resp, body, http.StatusOK)
	_, body = do(t, app, http.MethodGet, "/api/books", "")
	if string(body) != "[]" {
		t.Fatalf("no-op update must not create rows: %s", body)
	}
}

func TestBooksDeleteIsIdempotent(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	do(t, app, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","price":9.99,"stock":3}`)
	var books []domain.Book
	_, body := do(t, app, http.MethodGet, "/api/books", "")
	decodeJSON(t, body, &books)
	path := fmt.Sprintf("/api/books/%d", books[0].ID)

	for i := 0; i < 2; i++ {
		resp, body := do(t, app, http.MethodDelete, path, "")
		expectStatus(t, resp, body, http.StatusOK)
		if string(body) != `{"message":"Book deleted"}` {
			t.Fatalf("delete #%d: unexpected body %s", i+1, body)
		}
	}
	_, body = do(t, app, http.MethodGet, "/api/books", "")
	if string(body) != "[]" {
		t.Fatalf("book still listed: %s", body)
	}

	resp, body := do(t, app, http.MethodDelete, "/api/books", "")
	expectStatus(t, resp, body, http.StatusBadRequest)
}

func TestBooksConcurrentAddsOnFileStore(t *testing.T) {
	cfg := testConfig()
	cfg.DB.URL = filepath.Join(t.TempDir(), "inventory.db")
	cfg.DB.MaxOpenConns = 10
	app, _ := newTestApp(t, cfg)

	const n = 64
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[int]int{}
		fail  string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"title":"Book %d","author":"A","price":1.5,"stock":%d}`, i, i)
			req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fail = err.Error()
				return
			}
			codes[resp.StatusCode]++
			if resp.StatusCode != http.StatusCreated && fail == "" {
				b, _ := io.ReadAll(resp.Body)
				fail = string(b)
			}
		}(i)
	}
	wg.Wait()
	if codes[http.StatusCreated] != n {
		t.Fatalf("want %d created, got %v (%s)", n, codes, fail)
	}

	var books []domain.Book
	_, body := do(t, app, http.MethodGet, "/api/books", "")
	decodeJSON(t, body, &books)
	if len(books) != n {
		t.Fatalf("want %d stored books, got %d", n, len(books))
	}
}
