package recordapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avigneron/dexterm/internal/domain"
)

func TestGetRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u1" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"username": "red", "email": "red@kanto.example", "role": "member", "capturedPokemon": [25], "currentFilter": "all"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	rec, err := c.GetRecord(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.UID != "u1" || rec.Username != "red" || rec.Role != domain.RoleMember {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.CapturedPokemon) != 1 || rec.CapturedPokemon[0] != 25 {
		t.Errorf("captured = %v, want [25]", rec.CapturedPokemon)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	if _, err := c.GetRecord(context.Background(), "ghost"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestAuthFailureNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad", nil)
	if _, err := c.GetRecord(context.Background(), "u1"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("error = %v, want ErrAuthFailed", err)
	}
	if calls.Load() != 1 {
		t.Errorf("auth failure retried %d times, must never retry", calls.Load())
	}
}

func TestServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"username": "red", "role": "member"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	rec, err := c.GetRecord(context.Background(), "u1")
	if err != nil {
		t.Fatalf("retry should recover from a transient 500: %v", err)
	}
	if rec.Username != "red" {
		t.Errorf("record = %+v", rec)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestSaveRecordSendsWholeDocument(t *testing.T) {
	var got domain.UserRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	rec := &domain.UserRecord{
		UID:             "u1",
		Username:        "red",
		Role:            domain.RoleAdmin,
		CapturedPokemon: []int{1, 2, 3},
		CurrentFilter:   "captured",
		LastSaved:       time.Now().UTC(),
	}
	if err := c.SaveRecord(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if got.Username != "red" || got.CurrentFilter != "captured" || len(got.CapturedPokemon) != 3 {
		t.Errorf("server received %+v", got)
	}
}

func TestMaintenanceFlagRoundTrip(t *testing.T) {
	var stored domain.MaintenanceFlag
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/system/maintenance" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&stored)
			w.WriteHeader(http.StatusOK)
		default:
			json.NewEncoder(w).Encode(stored)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	flag := domain.MaintenanceFlag{IsMaintenance: true, UpdatedBy: "admin-1", UpdatedAt: time.Now().UTC()}
	if err := c.SetMaintenance(context.Background(), flag); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetMaintenance(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsMaintenance || got.UpdatedBy != "admin-1" {
		t.Errorf("flag = %+v", got)
	}
}

func TestSetRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/u2/role" || r.Method != http.MethodPut {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["role"] != "tester" {
			t.Errorf("role payload = %v", payload)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	if err := c.SetRole(context.Background(), "u2", domain.RoleTester); err != nil {
		t.Fatal(err)
	}
}

func TestExportAll(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]domain.UserRecord{
			{UID: "u1", Username: "red", Role: domain.RoleMember, CapturedPokemon: []int{25}, CreatedAt: created},
			{UID: "u2", Username: "blue", Role: domain.RoleAdmin}, // never saved
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	path := filepath.Join(t.TempDir(), "export.json")
	n, err := c.ExportAll(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("exported %d users, want 2", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		ExportDate time.Time `json:"exportDate"`
		TotalUsers int       `json:"totalUsers"`
		Users      []struct {
			UID       string  `json:"uid"`
			LastSaved *string `json:"lastSaved"`
			CreatedAt *string `json:"createdAt"`
		} `json:"users"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.TotalUsers != 2 || len(doc.Users) != 2 {
		t.Fatalf("export doc = %+v", doc)
	}
	if doc.Users[0].CreatedAt == nil {
		t.Error("u1 createdAt should be an ISO string")
	}
	if doc.Users[1].LastSaved != nil || doc.Users[1].CreatedAt != nil {
		t.Error("unsaved user should export null timestamps")
	}
	if doc.ExportDate.IsZero() {
		t.Error("exportDate should be stamped")
	}
}

func TestServerOffline(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "tok", nil)
	if _, err := c.GetRecord(context.Background(), "u1"); !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("error = %v, want ErrServerOffline", err)
	}
}
