// Package normalize maps adapter-specific raw postings into the canonical
// NormalizedJob shape and applies the red-flag exclusion filter.
package normalize

import (
	"errors"
	"strings"

	"jobtrail/ingest-service/internal/model"
	"jobtrail/ingest-service/internal/source"
)

// ErrUnusable is returned for records missing both title and company — such
// a posting cannot be fingerprinted or usefully displayed.
var ErrUnusable = errors.New("posting has neither title nor company")

// Job converts one raw posting into the canonical shape. Pure: the same
// input always yields the same output. Missing fields map to documented
// defaults; only a record with no title and no company is rejected.
func Job(raw source.RawPosting, src string) (model.NormalizedJob, error) {
	title := strings.TrimSpace(raw.Title)
	company := strings.TrimSpace(raw.Company)
	if title == "" && company == "" {
		return model.NormalizedJob{}, ErrUnusable
	}

	min, max := ParseSalary(raw.SalaryText)
	if min != nil && max != nil && *min > *max {
		min, max = max, min
	}

	return model.NormalizedJob{
		Title:        title,
		Company:      company,
		Location:     strings.TrimSpace(raw.Location),
		Description:  strings.TrimSpace(raw.Description),
		Requirements: strings.TrimSpace(raw.Requirements),
		TechStack:    techStack(raw.Tags),
		SalaryMin:    min,
		SalaryMax:    max,
		JobType:      jobType(raw.JobTypeText),
		RemoteOption: remoteOption(raw.RemoteText, raw.Location),
		Source:       src,
		SourceURL:    strings.TrimSpace(raw.URL),
		PublishedAt:  raw.PublishedAt,
	}, nil
}

// techStack lower-cases, trims and deduplicates tags, preserving first-seen
// order.
func techStack(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// jobType maps the many contract vocabularies boards use onto one enum.
func jobType(text string) model.JobType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "intern"):
		return model.JobTypeInternship
	case strings.Contains(t, "freelance"):
		return model.JobTypeFreelance
	case strings.Contains(t, "contract") || strings.Contains(t, "temporary"):
		return model.JobTypeContract
	case strings.Contains(t, "part"):
		return model.JobTypePartTime
	case strings.Contains(t, "full") || strings.Contains(t, "permanent"):
		return model.JobTypeFullTime
	}
	return model.JobTypeUnknown
}

// remoteOption prefers the board's explicit remote field, falling back to
// scanning the location text.
func remoteOption(text, location string) model.RemoteOption {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "hybrid"):
		return model.RemoteOptionHybrid
	case strings.Contains(t, "remote"):
		return model.RemoteOptionRemote
	case strings.Contains(t, "onsite") || strings.Contains(t, "on-site") || strings.Contains(t, "office"):
		return model.RemoteOptionOnsite
	}
	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, "hybrid"):
		return model.RemoteOptionHybrid
	case strings.Contains(loc, "remote"):
		return model.RemoteOptionRemote
	}
	return model.RemoteOptionUnknown
}

// ContainsRedFlag returns true if any red flag term appears
// (case-insensitive) anywhere in the combined title + company + description
// text. Matching offers are discarded before deduplication.
func ContainsRedFlag(job model.NormalizedJob, redFlags []string) bool {
	if len(redFlags) == 0 {
		return false
	}
	combined := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
	for _, flag := range redFlags {
		if flag == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(flag)) {
			return true
		}
	}
	return false
}
