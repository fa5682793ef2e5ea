package gemini

import "google.golang.org/genai"

// SourceURLs collects the citation URLs from a response's grounding
// metadata: one entry per grounding chunk with a web URI, deduplicated,
// insertion order preserved. A response with no grounding metadata yields
// no sources, not an error.
func SourceURLs(resp *genai.GenerateContentResponse) []string {
	urls := []string{}
	if resp == nil || len(resp.Candidates) == 0 {
		return urls
	}

	seen := make(map[string]bool)
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			if seen[chunk.Web.URI] {
				continue
			}
			seen[chunk.Web.URI] = true
			urls = append(urls, chunk.Web.URI)
		}
	}
	return urls
}
