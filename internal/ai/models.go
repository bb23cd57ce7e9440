package ai

import "sort"

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ModelSpec maps a logical model id to a concrete upstream identifier.
type ModelSpec struct {
	Provider   string
	UpstreamID string
}

// catalog decouples the ids the API accepts from upstream model naming, so
// upstream renames never leak into clients.
var catalog = map[string]ModelSpec{
	"claude-sonnet-4":  {Provider: ProviderAnthropic, UpstreamID: "claude-sonnet-4-20250514"},
	"claude-haiku-3.5": {Provider: ProviderAnthropic, UpstreamID: "claude-3-5-haiku-20241022"},
	"gpt-4o":           {Provider: ProviderOpenAI, UpstreamID: "gpt-4o"},
	"gpt-4o-mini":      {Provider: ProviderOpenAI, UpstreamID: "gpt-4o-mini"},
}

// Resolve looks up a logical model id.
func Resolve(logical string) (ModelSpec, bool) {
	spec, ok := catalog[logical]
	return spec, ok
}

// SupportedModels returns the logical ids the API accepts, sorted.
func SupportedModels() []string {
	out := make([]string, 0, len(catalog))
	for id := range catalog {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
