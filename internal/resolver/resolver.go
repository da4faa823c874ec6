// Package resolver is the last-resort contact lookup: records still missing
// an email after snippet and page extraction are submitted, a few at a time,
// to Claude, which may know a published address the crawl missed. Every
// service failure degrades to "no answer"; this path never fails a run.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/directory-cli/internal/extract"
	"github.com/sells-group/directory-cli/internal/model"
	"github.com/sells-group/directory-cli/pkg/anthropic"
)

const systemPrompt = "You look up publicly listed contact emails for restaurants. " +
	"For each restaurant given, answer with exactly one line containing either " +
	"its contact email address or \"-\" if you do not know one. " +
	"Answer with the lines only, in the same order, no commentary."

// Resolver asks a generative model to propose emails for unresolved records.
type Resolver struct {
	client    anthropic.Client
	model     string
	batchSize int
}

// New creates a Resolver. batchSize caps how many records go into one
// request; values outside [1,3] are clamped to 3.
func New(client anthropic.Client, modelID string, batchSize int) *Resolver {
	if batchSize < 1 || batchSize > 3 {
		batchSize = 3
	}
	return &Resolver{client: client, model: modelID, batchSize: batchSize}
}

// ResolveEmails proposes emails for records still missing one, mutating them
// in place. Returns how many records were filled. Records the service cannot
// answer for are left untouched.
func (r *Resolver) ResolveEmails(ctx context.Context, records []*model.Record) int {
	filled := 0
	for start := 0; start < len(records); start += r.batchSize {
		end := min(start+r.batchSize, len(records))
		filled += r.resolveBatch(ctx, records[start:end])
	}
	return filled
}

func (r *Resolver) resolveBatch(ctx context.Context, batch []*model.Record) int {
	var b strings.Builder
	b.WriteString("Find the contact email for each restaurant:\n")
	for i, rec := range batch {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, rec.Name, rec.Website)
	}

	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     r.model,
		MaxTokens: 256,
		System:    systemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: b.String()}},
	})
	if err != nil {
		zap.L().Warn("fallback resolver request failed",
			zap.Int("batch_size", len(batch)), zap.Error(err))
		return 0
	}
	resp.Usage.LogCost(r.model, "fallback_resolver")

	emails := extract.Emails(resp.Text())
	if !extract.Found(emails) {
		return 0
	}

	// Zip answers onto records in submission order; records past the
	// returned count stay unresolved.
	filled := 0
	for i, rec := range batch {
		if i >= len(emails) {
			break
		}
		email := strings.ToLower(emails[i])
		if !extract.ValidateEmail(email) || email == model.Sentinel {
			continue
		}
		rec.Emails = []string{email}
		filled++
		zap.L().Info("fallback resolver found email",
			zap.String("name", rec.Name), zap.String("email", email))
	}
	return filled
}
