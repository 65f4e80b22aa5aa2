package handlers_test

import (
	"net/http"
	"testing"
)

func TestClientPagination(t *testing.T) {
	app, _ := newTestApp(t)
	admin := adminToken(t, app)

	for i := 1; i <= 15; i++ {
		resp := doJSON(t, app, "POST", "/clients", admin, seedClientPayload(i))
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed client %d: status %d", i, resp.StatusCode)
		}
	}

	var out struct {
		Items []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
		Total    int `json:"total"`
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	}

	resp := doJSON(t, app, "GET", "/clients?page=2&page_size=10", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	decode(t, resp, &out)
	if len(out.Items) != 5 {
		t.Fatalf("page 2 of 15: got %d items, want 5", len(out.Items))
	}
	if out.Total != 15 {
		t.Fatalf("total = %d, want 15", out.Total)
	}
	if out.Page != 2 || out.PageSize != 10 {
		t.Fatalf("echoed paging = %d/%d, want 2/10", out.Page, out.PageSize)
	}
	if out.Items[0].Name != "Client 11" {
		t.Fatalf("page 2 starts at %q, want Client 11 (stable id order)", out.Items[0].Name)
	}

	// page_size is clamped to the configured maximum, not rejected
	resp = doJSON(t, app, "GET", "/clients?page=1&page_size=100000", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("oversized page_size: status %d, want 200", resp.StatusCode)
	}
	decode(t, resp, &out)
	if out.PageSize != 100 {
		t.Fatalf("page_size = %d, want clamp to 100", out.PageSize)
	}
	if len(out.Items) != 15 {
		t.Fatalf("got %d items, want all 15", len(out.Items))
	}

	// bad values fall back to defaults instead of erroring
	resp = doJSON(t, app, "GET", "/clients?page=banana&page_size=-3", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bad paging params: status %d, want 200", resp.StatusCode)
	}
	decode(t, resp, &out)
	if out.Page != 1 || out.PageSize != 20 {
		t.Fatalf("fallback paging = %d/%d, want 1/20", out.Page, out.PageSize)
	}

	// an empty page past the end returns an empty items list, not null
	resp = doJSON(t, app, "GET", "/clients?page=9&page_size=10", admin, nil)
	decode(t, resp, &out)
	if out.Items == nil || len(out.Items) != 0 {
		t.Fatalf("past-the-end page: got %v, want empty list", out.Items)
	}
}
