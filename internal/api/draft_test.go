package api

import (
	"net/http"
	"slices"
	"testing"

	"github.com/bogo-app/bogo/internal/report"
)

func TestGetDraft_Empty(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.request(t, "GET", "/draft", nil)
	var draft report.Draft
	decodeBody(t, resp, &draft)
	if draft.Type != report.TypeDaily {
		t.Errorf("empty draft type = %q, want daily", draft.Type)
	}
	if draft.Title != "" || draft.Content != "" {
		t.Errorf("empty draft = %+v", draft)
	}
}

func TestPatchDraft_Merges(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.request(t, "PATCH", "/draft", map[string]any{"title": "출근 보고"})
	var draft report.Draft
	decodeBody(t, resp, &draft)
	if draft.Title != "출근 보고" {
		t.Errorf("Title = %q", draft.Title)
	}

	resp = ts.request(t, "PATCH", "/draft", map[string]any{"content": "오전 회의 준비 및 자료 정리"})
	decodeBody(t, resp, &draft)
	if draft.Title != "출근 보고" {
		t.Errorf("merge lost title: %+v", draft)
	}
	if draft.Content != "오전 회의 준비 및 자료 정리" {
		t.Errorf("Content = %q", draft.Content)
	}
}

func TestClearDraft(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(t, "PATCH", "/draft", map[string]any{"title": "버릴 제목"}).Body.Close()
	resp := ts.request(t, "DELETE", "/draft", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE /draft = %d", resp.StatusCode)
	}

	var draft report.Draft
	decodeBody(t, ts.request(t, "GET", "/draft", nil), &draft)
	if draft.Title != "" {
		t.Errorf("draft after clear = %+v", draft)
	}
}

func TestSubmit_FullFlow(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(t, "PATCH", "/draft", map[string]any{
		"title":   "출근 보고",
		"content": "오늘 버그 수정하고 배포 완료했습니다",
	}).Body.Close()

	resp := ts.request(t, "POST", "/submit", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /submit = %d, want 201", resp.StatusCode)
	}
	var created report.Report
	decodeBody(t, resp, &created)

	if created.Status != report.StatusSubmitted {
		t.Errorf("Status = %q, want submitted", created.Status)
	}
	// Draft carried no session; 09:30 falls in the AM slot.
	if created.Session != report.SessionAM {
		t.Errorf("Session = %q, want AM derived from clock", created.Session)
	}
	if len(created.Keywords) == 0 {
		t.Fatal("no keywords extracted")
	}
	if !slices.Contains(created.Keywords, "버그 수정") {
		t.Errorf("keywords %v missing trigger tag 버그 수정", created.Keywords)
	}
	if len(created.Keywords) > 7 {
		t.Errorf("got %d keywords, cap is 7", len(created.Keywords))
	}

	// Draft is cleared after a successful submit.
	var draft report.Draft
	decodeBody(t, ts.request(t, "GET", "/draft", nil), &draft)
	if draft.Title != "" || draft.Content != "" {
		t.Errorf("draft not cleared after submit: %+v", draft)
	}

	// The created record lands in the confirmation slot.
	var submitted report.Report
	decodeBody(t, ts.request(t, "GET", "/submitted", nil), &submitted)
	if submitted.ID != created.ID {
		t.Errorf("submitted slot = %q, want %q", submitted.ID, created.ID)
	}

	// And the record is listable.
	var list []report.Report
	decodeBody(t, ts.request(t, "GET", "/reports", nil), &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list after submit = %+v", list)
	}
}

func TestSubmit_KeepsExplicitSession(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(t, "PATCH", "/draft", map[string]any{
		"title":   "퇴근 보고",
		"content": "금일 배포 작업 마무리했습니다",
		"session": "PM",
	}).Body.Close()

	var created report.Report
	decodeBody(t, ts.request(t, "POST", "/submit", nil), &created)
	if created.Session != report.SessionPM {
		t.Errorf("Session = %q, explicit PM should win over the clock", created.Session)
	}
}

func TestSubmit_InvalidDraft(t *testing.T) {
	ts := newTestServer(t, "")

	// Empty draft: no title, no content.
	resp := ts.request(t, "POST", "/submit", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("submit empty draft = %d, want 400", resp.StatusCode)
	}

	// Nothing must have been written.
	var list []report.Report
	decodeBody(t, ts.request(t, "GET", "/reports", nil), &list)
	if len(list) != 0 {
		t.Errorf("invalid submit created a record: %+v", list)
	}

	// The draft survives a failed submit.
	ts.request(t, "PATCH", "/draft", map[string]any{"title": "제목만 있음"}).Body.Close()
	resp = ts.request(t, "POST", "/submit", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("submit without content = %d, want 400", resp.StatusCode)
	}
	var draft report.Draft
	decodeBody(t, ts.request(t, "GET", "/draft", nil), &draft)
	if draft.Title != "제목만 있음" {
		t.Errorf("draft lost after failed submit: %+v", draft)
	}
}

func TestSubmitted_EmptySlot(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.request(t, "GET", "/submitted", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /submitted empty = %d, want 404", resp.StatusCode)
	}
}

func TestClearSubmitted(t *testing.T) {
	ts := newTestServer(t, "")

	ts.request(t, "PATCH", "/draft", map[string]any{
		"title":   "출근 보고",
		"content": "오전 회의 준비 및 자료 정리",
	}).Body.Close()
	ts.request(t, "POST", "/submit", nil).Body.Close()

	resp := ts.request(t, "DELETE", "/submitted", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE /submitted = %d", resp.StatusCode)
	}

	resp = ts.request(t, "GET", "/submitted", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /submitted after clear = %d, want 404", resp.StatusCode)
	}
}
