// Package reports exposes typed helpers for the Umbrella reporting v2
// endpoints. Every method resolves its parameters, issues a single GET and
// returns the decoded JSON body exactly as the API produced it.
package reports

import (
	"context"
	"encoding/json"

	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/client"
)

// Reports issues requests against the fixed reporting endpoints.
type Reports struct {
	client client.ReportClient
}

// New creates a Reports helper on top of a ReportClient.
func New(c client.ReportClient) *Reports {
	return &Reports{client: c}
}

func (r *Reports) call(ctx context.Context, path string, p client.Params) (json.RawMessage, error) {
	query, err := r.client.BuildParams(p)
	if err != nil {
		return nil, err
	}
	return r.client.Get(ctx, path, query)
}

// Summary returns overall activity totals for the requested time range.
func (r *Reports) Summary(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/summary", p)
}

// SummaryByCategory returns activity totals broken down by category.
func (r *Reports) SummaryByCategory(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/summaries-by-category", p)
}

// SummaryByDestination returns activity totals broken down by destination.
func (r *Reports) SummaryByDestination(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/summaries-by-destination", p)
}

// SummaryByRule returns activity totals broken down by intrusion rule.
func (r *Reports) SummaryByRule(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/summaries-by-rule/intrusion", p)
}

// TopIdentities returns the identities generating the most traffic.
func (r *Reports) TopIdentities(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-identities", p)
}

// TopDestinations returns the most requested destinations.
func (r *Reports) TopDestinations(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-destinations", p)
}

// TopCategories returns the most active categories.
func (r *Reports) TopCategories(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-categories", p)
}

// TopEventTypes returns the most frequent security event types.
func (r *Reports) TopEventTypes(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-eventtypes", p)
}

// TopDNSQueryTypes returns the most frequent DNS query types.
func (r *Reports) TopDNSQueryTypes(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-dns-query-types", p)
}

// TopFiles returns the most frequently seen files.
func (r *Reports) TopFiles(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-files", p)
}

// TopThreats returns the most frequently seen threats.
func (r *Reports) TopThreats(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-threats", p)
}

// TopThreatTypes returns the most frequently seen threat types.
func (r *Reports) TopThreatTypes(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-threat-types", p)
}

// TopIPs returns the most active internal IP addresses.
func (r *Reports) TopIPs(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-ips", p)
}

// TopURLs returns the most requested URLs.
func (r *Reports) TopURLs(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/top-urls", p)
}

// Activity returns the raw activity log for the time range.
func (r *Reports) Activity(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/activity", p)
}

// IdentityDistribution returns request counts distributed across identities.
func (r *Reports) IdentityDistribution(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/identity-distribution", p)
}

// TotalRequests returns the total request count for the time range.
func (r *Reports) TotalRequests(ctx context.Context, p client.Params) (json.RawMessage, error) {
	return r.call(ctx, "/total-requests", p)
}
