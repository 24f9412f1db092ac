package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
)

// ReportProvider is the minimal interface for the read-side statistics.
type ReportProvider interface {
	Summary(ctx context.Context) (app.Summary, error)
	RegistrationsPerEvent(ctx context.Context, limit int) ([]app.EventRegistrationCount, error)
	CategoryDistribution(ctx context.Context) ([]app.CategoryCount, error)
	MonthlyGrowth(ctx context.Context) ([]app.MonthlyCount, error)
}

type summaryResponse struct {
	TotalEvents         int    `json:"total_events"`
	TotalRegistrations  int    `json:"total_registrations"`
	PendingCount        int    `json:"pending_count"`
	ApprovedCount       int    `json:"approved_count"`
	OwnCollegeCount     int    `json:"our_college_count"`
	OtherCollegeCount   int    `json:"other_college_count"`
	MostRegisteredEvent string `json:"most_registered_event"`
}

func HandleStatistics(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		sum, err := svc.Summary(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summaryResponse{
			TotalEvents:         sum.TotalEvents,
			TotalRegistrations:  sum.TotalRegistrations,
			PendingCount:        sum.PendingCount,
			ApprovedCount:       sum.ApprovedCount,
			OwnCollegeCount:     sum.OwnCollegeEvents,
			OtherCollegeCount:   sum.OtherCollegeEvents,
			MostRegisteredEvent: sum.MostRegisteredEvent,
		})
	}
}

type eventCountResponse struct {
	EventID       string `json:"event_id"`
	Title         string `json:"title"`
	Registrations int    `json:"registrations"`
}

// HandleEventRegistrations returns per-event registration counts,
// descending, optionally limited (?limit=10).
func HandleEventRegistrations(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid limit")
				return
			}
			limit = n
		}

		counts, err := svc.RegistrationsPerEvent(r.Context(), limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]eventCountResponse, 0, len(counts))
		for _, c := range counts {
			resp = append(resp, eventCountResponse{EventID: c.EventID, Title: c.Title, Registrations: c.Registrations})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type categoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func HandleCategoryDistribution(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		counts, err := svc.CategoryDistribution(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]categoryCountResponse, 0, len(counts))
		for _, c := range counts {
			resp = append(resp, categoryCountResponse{Category: string(c.Category), Count: c.Count})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type monthlyCountResponse struct {
	Month         string `json:"month"`
	Registrations int    `json:"registrations"`
}

// HandleMonthlyGrowth returns up to twelve most recent monthly buckets
// in chronological order.
func HandleMonthlyGrowth(svc ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		buckets, err := svc.MonthlyGrowth(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]monthlyCountResponse, 0, len(buckets))
		for _, b := range buckets {
			resp = append(resp, monthlyCountResponse{Month: b.Label, Registrations: b.Registrations})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
