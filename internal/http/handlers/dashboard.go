package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restropos-services/internal/report"
	"restropos-services/pkg/response"
)

type dashboardMetricsPayload struct {
	Month          string                  `json:"month"`
	Store          string                  `json:"store"`
	Metrics        report.Metrics          `json:"metrics"`
	SlotBreakdown  []slotCountPayload      `json:"slotBreakdown"`
	PeakSlot       *report.PeakSlot        `json:"peakSlot"`
	TopSellers     report.TopSellersResult `json:"topSellers"`
	Underperformer *report.RankedItem      `json:"underperformer"`
}

type slotCountPayload struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// DashboardMetrics serves the top half of the admin dashboard: volume and
// revenue metrics, the slot breakdown with the resolved peak, and the item
// rankings for the selected month and store.
func (h *Handler) DashboardMetrics(w http.ResponseWriter, r *http.Request) {
	criteria := h.reportCriteria(r)

	key := cacheKey("metrics", criteria.Store, criteria.Month,
		fmt.Sprintf("w%d|s%s", criteria.Week, criteria.Search))
	if cached, ok := h.Cache.get(key); ok {
		response.Success(w, cached)
		return
	}

	all, err := h.loadOrders(r)
	if err != nil {
		h.Logger.Error("dashboard orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}

	filtered := report.Filter(all, criteria)
	metrics := report.ComputeMetrics(filtered, criteria.Month)

	breakdown := make([]slotCountPayload, len(report.Slots))
	for i, slot := range report.Slots {
		breakdown[i] = slotCountPayload{Label: slot.Label, Icon: slot.Icon, Count: metrics.SlotCounts[i]}
	}

	sellers := report.TopSellers(filtered, 3)
	payload := dashboardMetricsPayload{
		Month:          criteria.Month,
		Store:          criteria.Store,
		Metrics:        metrics,
		SlotBreakdown:  breakdown,
		PeakSlot:       report.ResolvePeakSlot(metrics.SlotCounts, all, criteria.Month, criteria.Store),
		TopSellers:     sellers,
		Underperformer: report.Underperformer(filtered, sellers.Top),
	}

	h.Cache.set(key, payload)
	response.Success(w, payload)
}

type weekSeriesPayload struct {
	Label string           `json:"label"`
	Days  []weekDayPayload `json:"days"`
}

type weekDayPayload struct {
	Date    string  `json:"date"`
	Weekday string  `json:"weekday"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DashboardWeekSeries serves the seven-day order trend for a week of the
// selected month. weekOffset shifts whole weeks from the week containing
// the 1st; days outside the month keep their data.
func (h *Handler) DashboardWeekSeries(w http.ResponseWriter, r *http.Request) {
	criteria := h.reportCriteria(r)

	weekOffset := 0
	if value := r.URL.Query().Get("weekOffset"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "weekOffset must be an integer")
			return
		}
		weekOffset = parsed
	}

	key := cacheKey("week-series", criteria.Store, criteria.Month, strconv.Itoa(weekOffset))
	if cached, ok := h.Cache.get(key); ok {
		response.Success(w, cached)
		return
	}

	all, err := h.loadOrders(r)
	if err != nil {
		h.Logger.Error("week series orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build week series")
		return
	}

	series := report.BuildWeekSeries(all, criteria.Month, weekOffset, criteria.Store)

	days := make([]weekDayPayload, len(series))
	for i, day := range series {
		days[i] = weekDayPayload{
			Date:    day.Date.Format("2006-01-02"),
			Weekday: day.Date.Weekday().String(),
			Count:   day.Count,
			Revenue: day.Revenue,
		}
	}

	payload := weekSeriesPayload{
		Label: report.WeekLabel(series[0].Date, time.Now().In(h.location())),
		Days:  days,
	}

	h.Cache.set(key, payload)
	response.Success(w, payload)
}

// DashboardCustomers serves the customer rollup for the selected month and
// store, optionally narrowed by a search term on name or mobile.
func (h *Handler) DashboardCustomers(w http.ResponseWriter, r *http.Request) {
	criteria := h.reportCriteria(r)

	all, err := h.loadOrders(r)
	if err != nil {
		h.Logger.Error("customers orders load failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build customer rollup")
		return
	}

	// Search applies post-rollup, so filter without it here.
	listCriteria := criteria
	listCriteria.Search = ""

	summaries := report.RollupCustomers(report.Filter(all, listCriteria))
	if criteria.Search != "" {
		summaries = report.SearchCustomers(summaries, criteria.Search)
	}

	response.Success(w, map[string]any{
		"month":     criteria.Month,
		"store":     criteria.Store,
		"customers": summaries,
	})
}
