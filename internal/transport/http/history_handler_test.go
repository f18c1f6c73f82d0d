package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-trainer/internal/domain"
	"quiz-trainer/internal/history"
	"quiz-trainer/internal/infra/memory"
)

func historyServer(t *testing.T) (*httptest.Server, *history.Store) {
	t.Helper()
	store := history.NewStore(memory.NewBlobStore())
	handler := NewHistoryHandler(store, []domain.QuestionBank{
		{Name: "azure-ai", DisplayName: "Azure AI Fundamentals", FileName: "azure-ai.json"},
	})
	mux := http.NewServeMux()
	handler.Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, store
}

func TestListBanks(t *testing.T) {
	server, _ := historyServer(t)
	resp, err := http.Get(server.URL + "/banks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	var banks []domain.QuestionBank
	if err := json.NewDecoder(resp.Body).Decode(&banks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(banks) != 1 || banks[0].Name != "azure-ai" {
		t.Fatalf("unexpected banks %+v", banks)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	server, store := historyServer(t)
	ctx := context.Background()
	attempt, err := store.Save(ctx, "azure-ai", "Azure AI Fundamentals", 10, 7, 70,
		[]domain.UserAnswer{{QuestionID: 1, Notes: "watch the wording"}}, 5)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := http.Get(server.URL + "/history")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	var h domain.QuizHistory
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()
	if h.TotalAttempts != 1 || h.Attempts[0].ID != attempt.ID {
		t.Fatalf("unexpected history %+v", h)
	}

	resp, err = http.Get(server.URL + "/history/" + attempt.ID)
	if err != nil {
		t.Fatalf("get attempt: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/banks/azure-ai/notes")
	if err != nil {
		t.Fatalf("get notes: %v", err)
	}
	var notes map[int]string
	if err := json.NewDecoder(resp.Body).Decode(&notes); err != nil {
		t.Fatalf("decode notes: %v", err)
	}
	resp.Body.Close()
	if notes[1] != "watch the wording" {
		t.Fatalf("unexpected notes %v", notes)
	}
}

func TestGetAttemptNotFound(t *testing.T) {
	server, _ := historyServer(t)
	resp, err := http.Get(server.URL + "/history/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteAttempt(t *testing.T) {
	server, store := historyServer(t)
	ctx := context.Background()
	attempt, err := store.Save(ctx, "azure-ai", "Azure AI Fundamentals", 5, 5, 100, nil, 1)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/history/"+attempt.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if h := store.Load(ctx); h.TotalAttempts != 0 {
		t.Fatalf("attempt should be gone, got %+v", h)
	}
}

func TestClearHistory(t *testing.T) {
	server, store := historyServer(t)
	ctx := context.Background()
	if _, err := store.Save(ctx, "azure-ai", "Azure AI Fundamentals", 5, 5, 100, nil, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/history", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if h := store.Load(ctx); h.TotalAttempts != 0 {
		t.Fatalf("history should be empty, got %+v", h)
	}
}
