package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"receiptweb/internal/models"
	"receiptweb/internal/testutil"
)

func newTestClient(t *testing.T) (*Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	return New(&http.Client{Timeout: 5 * time.Second}, fb.URL+"/"), fb
}

func TestLoginSendsFormCredentials(t *testing.T) {
	c, fb := newTestClient(t)

	fb.Handle(http.MethodPost, "/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
			return
		}
		if r.PostForm.Get("username") != "a@example.com" || r.PostForm.Get("password") != "pw" {
			testutil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
			return
		}
		testutil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": "tok",
			"token_type":   "bearer",
			"user_email":   "a@example.com",
			"is_admin":     true,
		})
	})

	res, err := c.Login(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken != "tok" || !res.IsAdmin || res.UserEmail != "a@example.com" {
		t.Errorf("unexpected login result: %+v", res)
	}

	calls := fb.Calls()
	if len(calls) != 1 || !strings.HasPrefix(calls[0].ContentType, "application/x-www-form-urlencoded") {
		t.Errorf("expected one form-encoded call, got %+v", calls)
	}
	if calls[0].Authorization != "" {
		t.Errorf("login must not send a bearer token, got %q", calls[0].Authorization)
	}

	_, err = c.Login(context.Background(), "a@example.com", "wrong")
	if StatusCode(err) != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
	if got := Detail(err, "fallback"); got != "Incorrect username or password" {
		t.Errorf("Detail = %q", got)
	}
}

func TestAuthorizedCallsSendBearerToken(t *testing.T) {
	c, fb := newTestClient(t)
	fb.JSON(http.MethodGet, "/api/receipts/all", http.StatusOK, []map[string]interface{}{
		{
			"id":           1,
			"seller_name":  "Lawson",
			"category":     "Groceries",
			"receipt_date": "2024-05-01T00:00:00",
			"upload_date":  "2024-05-02T10:11:12.345678",
			"total_amount": 1234.5,
			"tax_amount":   nil,
			"owner_id":     7,
			"owner":        map[string]interface{}{"id": 7, "email": "o@example.com", "is_admin": false},
		},
	})

	receipts, err := c.AllReceipts(context.Background(), "secret")
	if err != nil {
		t.Fatalf("AllReceipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(receipts))
	}
	r := receipts[0]
	if r.SellerName != "Lawson" || r.TotalAmount.StringFixed(2) != "1234.50" {
		t.Errorf("unexpected receipt: %+v", r)
	}
	if r.UploadDate.Day() != 2 || r.ReceiptDate.Month() != time.May {
		t.Errorf("timestamps not parsed: %v %v", r.ReceiptDate, r.UploadDate)
	}
	if r.TaxAmount != nil {
		t.Errorf("expected nil tax, got %v", r.TaxAmount)
	}
	if r.OwnerLabel() != "o@example.com" {
		t.Errorf("OwnerLabel = %q", r.OwnerLabel())
	}

	if auth := fb.Calls()[0].Authorization; auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestDateRangeForwardedOnlyWhenComplete(t *testing.T) {
	c, fb := newTestClient(t)
	fb.JSON(http.MethodGet, "/api/dashboard/kpis", http.StatusOK, map[string]interface{}{
		"total_spend": 100, "total_tax": 8, "total_bills": 3,
	})

	tests := []struct {
		name  string
		dr    models.DateRange
		query string
	}{
		{"none", models.ParseDateRange("", ""), ""},
		{"start-only", models.ParseDateRange("2024-01-01", ""), ""},
		{"both", models.ParseDateRange("2024-01-01", "2024-03-31"), "end_date=2024-03-31&start_date=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb.ResetCalls()
			kpis, err := c.KPIs(context.Background(), "tok", tt.dr)
			if err != nil {
				t.Fatalf("KPIs: %v", err)
			}
			if kpis.TotalBills != 3 {
				t.Errorf("TotalBills = %d", kpis.TotalBills)
			}
			if q := fb.Calls()[0].RawQuery; q != tt.query {
				t.Errorf("query = %q, want %q", q, tt.query)
			}
		})
	}
}

func TestUploadReceiptIsMultipart(t *testing.T) {
	c, fb := newTestClient(t)
	fb.Handle(http.MethodPost, "/api/receipts/", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			testutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "r.png" || string(data) != "image-bytes" {
			testutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad upload"})
			return
		}
		testutil.WriteJSON(w, http.StatusOK, map[string]interface{}{"id": 9, "seller_name": "Aeon", "total_amount": "10.00"})
	})

	rec, err := c.UploadReceipt(context.Background(), "tok", "r.png", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("UploadReceipt: %v", err)
	}
	if rec.ID != 9 || rec.SellerName != "Aeon" {
		t.Errorf("unexpected receipt: %+v", rec)
	}
}

func TestDeleteErrorsCarryDetail(t *testing.T) {
	c, fb := newTestClient(t)
	fb.JSON(http.MethodDelete, "/api/admin/users/1", http.StatusBadRequest, map[string]string{"detail": "Admin cannot delete their own account."})
	fb.JSON(http.MethodDelete, "/api/admin/users/2", http.StatusInternalServerError, map[string]interface{}{"detail": []string{"x"}})
	fb.JSON(http.MethodDelete, "/api/admin/users/3", http.StatusOK, map[string]string{"ok": "true"})

	err := c.AdminDeleteUser(context.Background(), "tok", 1)
	if got := Detail(err, "fallback"); got != "Admin cannot delete their own account." {
		t.Errorf("Detail = %q", got)
	}

	err = c.AdminDeleteUser(context.Background(), "tok", 2)
	if got := Detail(err, "fallback"); got != "fallback" {
		t.Errorf("non-string detail should fall back, got %q", got)
	}

	if err := c.AdminDeleteUser(context.Background(), "tok", 3); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestForbiddenAndUnavailable(t *testing.T) {
	c, fb := newTestClient(t)
	fb.JSON(http.MethodGet, "/api/admin/users", http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})

	_, err := c.AdminUsers(context.Background(), "tok")
	if !IsForbidden(err) {
		t.Errorf("expected forbidden, got %v", err)
	}

	fb.Server.Close()
	_, err = c.AdminUsers(context.Background(), "tok")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

type recordingObserver struct {
	endpoints []string
	statuses  []int
}

func (o *recordingObserver) ObserveBackendCall(method, endpoint string, status int, elapsed time.Duration) {
	o.endpoints = append(o.endpoints, method+" "+endpoint)
	o.statuses = append(o.statuses, status)
}

func TestObserverSeesRouteTemplates(t *testing.T) {
	c, fb := newTestClient(t)
	obs := &recordingObserver{}
	c.WithObserver(obs)
	fb.JSON(http.MethodDelete, "/api/receipts/42", http.StatusNoContent, nil)

	if err := c.DeleteReceipt(context.Background(), "tok", 42); err != nil {
		t.Fatalf("DeleteReceipt: %v", err)
	}
	if len(obs.endpoints) != 1 || obs.endpoints[0] != "DELETE /api/receipts/{id}" || obs.statuses[0] != http.StatusNoContent {
		t.Errorf("observer got %v %v", obs.endpoints, obs.statuses)
	}
}
