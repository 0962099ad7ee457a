package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	forumservice "agora/contexts/community/forum-service"
	vitalityledger "agora/contexts/community/vitality-ledger"
	ledgermemory "agora/contexts/community/vitality-ledger/adapters/memory"
	ledgerentities "agora/contexts/community/vitality-ledger/domain/entities"
	vitalityhttp "agora/contexts/community/vitality-ledger/transport/http"
	accountservice "agora/contexts/identity/account-service"
	accounthttp "agora/contexts/identity/account-service/transport/http"
	adminservice "agora/contexts/moderation/admin-service"
	adminhttp "agora/contexts/moderation/admin-service/transport/http"
	ticketservice "agora/contexts/support/ticket-service"
)

const testAdminSecret = "test-secret"

func newTestServer() (*Server, *ledgermemory.Store) {
	vitality := vitalityledger.NewInMemoryModule(nil)
	forum := forumservice.NewInMemoryModule(vitality.Ledger, nil)
	accounts := accountservice.NewInMemoryModule(vitality.Store, nil)
	tickets := ticketservice.NewInMemoryModule(vitality.Ledger, nil)
	admin := adminservice.NewInMemoryModule(vitality.Store, forum.Store, nil)

	server := New(vitality, forum, accounts, tickets, admin, testAdminSecret, nil, ":0")
	return server, vitality.Store
}

func doJSON(t *testing.T, server *Server, method string, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func initProfile(t *testing.T, server *Server, accountID string, username string) {
	t.Helper()
	body := fmt.Sprintf(`{"account_id":%q,"username":%q}`, accountID, username)
	rr := doJSON(t, server, http.MethodPost, "/api/v1/profiles", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("profile init for %s: expected 201, got %d body=%s", accountID, rr.Code, rr.Body.String())
	}
}

func getVitality(t *testing.T, server *Server, accountID string) vitalityhttp.VitalityResponse {
	t.Helper()
	rr := doJSON(t, server, http.MethodGet, "/api/v1/vitality/"+accountID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get vitality for %s: expected 200, got %d body=%s", accountID, rr.Code, rr.Body.String())
	}
	var resp vitalityhttp.VitalityResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode vitality response: %v", err)
	}
	return resp
}

func TestFirstProfileBootstrapsExemptSuperAdmin(t *testing.T) {
	server, _ := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/profiles", `{"account_id":"acct-1","username":"alice"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created accounthttp.InitProfileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !created.Data.Bootstrapped {
		t.Fatalf("expected first account to bootstrap, got %+v", created.Data)
	}

	rr = doJSON(t, server, http.MethodGet, "/api/v1/profiles/acct-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var profile accounthttp.ProfileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if !profile.Data.Exempt || profile.Data.Vitality != nil {
		t.Fatalf("expected exempt profile with null vitality, got %+v", profile.Data)
	}
	if !profile.Data.IsAdmin || !profile.Data.IsSuperAdmin {
		t.Fatalf("expected admin flags on first account, got %+v", profile.Data)
	}

	initProfile(t, server, "acct-2", "bob")
	second := getVitality(t, server, "acct-2")
	if second.Data.Exempt || second.Data.Vitality == nil || *second.Data.Vitality != 0 {
		t.Fatalf("expected normal zero-score second account, got %+v", second.Data)
	}
}

func TestRepeatedProfileInitIsIdempotent(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/profiles", `{"account_id":"acct-1","username":"alice"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for repeated init, got %d body=%s", rr.Code, rr.Body.String())
	}
	var repeat accounthttp.InitProfileResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &repeat); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if repeat.Data.Created || repeat.Data.Bootstrapped {
		t.Fatalf("expected no-op for repeated init, got %+v", repeat.Data)
	}
}

func TestCreatePostRaisesAuthorVitality(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")
	initProfile(t, server, "acct-2", "bob")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/posts", `{"author":"acct-2","title":"hello","content":"first"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	vitality := getVitality(t, server, "acct-2")
	if vitality.Data.Vitality == nil || *vitality.Data.Vitality != 2 {
		t.Fatalf("expected vitality 2 after post, got %+v", vitality.Data)
	}
}

func TestDislikesClampAtZeroWithFullAudit(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")
	initProfile(t, server, "acct-2", "bob")
	initProfile(t, server, "acct-3", "carol")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/posts", `{"author":"acct-2","title":"spicy take"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data struct {
			PostID string `json:"post_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode post response: %v", err)
	}

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"author":"acct-3","target_type":"post","target_id":%q,"kind":"dislike"}`, created.Data.PostID)
		rr = doJSON(t, server, http.MethodPost, "/api/v1/react", body)
		if rr.Code != http.StatusOK {
			t.Fatalf("dislike %d: expected 200, got %d body=%s", i, rr.Code, rr.Body.String())
		}
	}

	vitality := getVitality(t, server, "acct-2")
	if vitality.Data.Vitality == nil || *vitality.Data.Vitality != 0 {
		t.Fatalf("expected clamped vitality 0, got %+v", vitality.Data)
	}

	rr = doJSON(t, server, http.MethodGet, "/api/v1/vitality/acct-2/history", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var history vitalityhttp.HistoryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Data.Entries) != 4 {
		t.Fatalf("expected 4 audit entries, got %d", len(history.Data.Entries))
	}
	for _, entry := range history.Data.Entries {
		if entry.Reason == "received_dislike" && entry.Delta != -2 {
			t.Fatalf("expected raw -2 dislike delta, got %+v", entry)
		}
	}
}

func TestReplyToMissingPostIsNotFound(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/replies", `{"author":"acct-1","post_id":"ghost","content":"hi"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRunWeeklyDecayRequiresSecret(t *testing.T) {
	server, grid := newTestServer()
	grid.SeedAccount("idle", ledgerentities.Normal(10), false, false, time.Now().UTC().Add(-10*24*time.Hour))
	grid.SeedAccount("fresh", ledgerentities.Normal(10), false, false, time.Now().UTC())

	rr := doJSON(t, server, http.MethodPost, "/api/v1/admin/run-weekly-decay", "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without secret, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/run-weekly-decay", nil)
	req.Header.Set("X-Admin-Secret", testAdminSecret)
	recorder := httptest.NewRecorder()
	server.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d body=%s", recorder.Code, recorder.Body.String())
	}
	var resp vitalityhttp.DecayResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode decay response: %v", err)
	}
	if resp.Data.Affected != 1 {
		t.Fatalf("expected one decayed account, got %+v", resp.Data)
	}

	idle := getVitality(t, server, "idle")
	if idle.Data.Vitality == nil || *idle.Data.Vitality != 9 {
		t.Fatalf("expected idle account decayed to 9, got %+v", idle.Data)
	}
	fresh := getVitality(t, server, "fresh")
	if fresh.Data.Vitality == nil || *fresh.Data.Vitality != 10 {
		t.Fatalf("expected fresh account untouched, got %+v", fresh.Data)
	}
}

func TestDecaySecretAcceptedAsQueryParameter(t *testing.T) {
	server, _ := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/api/v1/admin/run-weekly-decay?secret="+testAdminSecret, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with query secret, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminBanForcesExemptAndIgnoresFurtherDeltas(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")
	initProfile(t, server, "acct-2", "bob")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/actions",
		bytes.NewReader([]byte(`{"actor":"acct-1","action":"ban_user","target_id":"acct-2","note":"spam"}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin actor, got %d body=%s", rr.Code, rr.Body.String())
	}
	var action adminhttp.AdminActionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &action); err != nil {
		t.Fatalf("decode action response: %v", err)
	}
	if !action.Data.Affected {
		t.Fatalf("expected ban to affect the account, got %+v", action.Data)
	}

	banned := getVitality(t, server, "acct-2")
	if !banned.Data.Exempt || banned.Data.Vitality != nil {
		t.Fatalf("expected banned account exempt, got %+v", banned.Data)
	}

	// Posts by a banned account still land, but move no reputation.
	post := doJSON(t, server, http.MethodPost, "/api/v1/posts", `{"author":"acct-2","title":"still here"}`)
	if post.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", post.Code, post.Body.String())
	}
	after := getVitality(t, server, "acct-2")
	if !after.Data.Exempt {
		t.Fatalf("expected account to stay exempt, got %+v", after.Data)
	}
}

func TestAdminActionRejectedWithoutAuthority(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")
	initProfile(t, server, "acct-2", "bob")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/admin/actions",
		`{"actor":"acct-2","action":"ban_user","target_id":"acct-1"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin actor, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreateTicketTouchesActivity(t *testing.T) {
	server, grid := newTestServer()
	grid.SeedAccount("acct-1", ledgerentities.Normal(5), false, false, time.Now().UTC().Add(-30*24*time.Hour))

	rr := doJSON(t, server, http.MethodPost, "/api/v1/tickets", `{"author":"acct-1","title":"broken avatar"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The touch resets the activity clock, so a decay sweep right after
	// must not pick the account up.
	sweep := doJSON(t, server, http.MethodPost, "/api/v1/admin/run-weekly-decay?secret="+testAdminSecret, "")
	if sweep.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", sweep.Code, sweep.Body.String())
	}
	vitality := getVitality(t, server, "acct-1")
	if vitality.Data.Vitality == nil || *vitality.Data.Vitality != 5 {
		t.Fatalf("expected score unchanged after touch, got %+v", vitality.Data)
	}
}

func TestFollowEndpointsRoundTrip(t *testing.T) {
	server, _ := newTestServer()
	initProfile(t, server, "acct-1", "alice")
	initProfile(t, server, "acct-2", "bob")
	initProfile(t, server, "acct-3", "carol")

	rr := doJSON(t, server, http.MethodPost, "/api/v1/follow", `{"follower":"acct-3","followee":"acct-2","action":"follow"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	vitality := getVitality(t, server, "acct-2")
	if vitality.Data.Vitality == nil || *vitality.Data.Vitality != 5 {
		t.Fatalf("expected +5 for new follower, got %+v", vitality.Data)
	}

	rr = doJSON(t, server, http.MethodGet, "/api/v1/follow/list?account_id=acct-2&kind=followers", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list struct {
		Data struct {
			Accounts []string `json:"accounts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode follow list: %v", err)
	}
	if len(list.Data.Accounts) != 1 || list.Data.Accounts[0] != "acct-3" {
		t.Fatalf("expected acct-3 as follower, got %v", list.Data.Accounts)
	}

	rr = doJSON(t, server, http.MethodPost, "/api/v1/follow", `{"follower":"acct-3","followee":"acct-2","action":"unfollow"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	vitality = getVitality(t, server, "acct-2")
	if vitality.Data.Vitality == nil || *vitality.Data.Vitality != 0 {
		t.Fatalf("expected follow bonus revoked, got %+v", vitality.Data)
	}
}

func TestUnknownAccountVitalityIsNotFound(t *testing.T) {
	server, _ := newTestServer()

	rr := doJSON(t, server, http.MethodGet, "/api/v1/vitality/ghost", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
