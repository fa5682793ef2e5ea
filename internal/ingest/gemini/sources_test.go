package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func textResponse(text string, uris ...string) *genai.GenerateContentResponse {
	cand := &genai.Candidate{
		Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
	}
	if len(uris) > 0 {
		gm := &genai.GroundingMetadata{}
		for _, u := range uris {
			gm.GroundingChunks = append(gm.GroundingChunks, &genai.GroundingChunk{
				Web: &genai.GroundingChunkWeb{URI: u},
			})
		}
		cand.GroundingMetadata = gm
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{cand}}
}

// TestSourceURLs_DedupePreservesOrder tests that repeated citations collapse
// to first occurrence order
func TestSourceURLs_DedupePreservesOrder(t *testing.T) {
	resp := textResponse("{}",
		"https://a.example/box",
		"https://b.example/recap",
		"https://a.example/box",
		"https://c.example/stats",
		"https://b.example/recap",
	)

	assert.Equal(t, []string{
		"https://a.example/box",
		"https://b.example/recap",
		"https://c.example/stats",
	}, SourceURLs(resp))
}

// TestSourceURLs_MissingMetadata tests that ungrounded responses yield an
// empty, non-nil slice
func TestSourceURLs_MissingMetadata(t *testing.T) {
	got := SourceURLs(textResponse("{}"))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, SourceURLs(nil))
	assert.Empty(t, SourceURLs(&genai.GenerateContentResponse{}))
}

// TestSourceURLs_SkipsChunksWithoutURI tests that non-web chunks are ignored
func TestSourceURLs_SkipsChunksWithoutURI(t *testing.T) {
	resp := textResponse("{}")
	resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			nil,
			{Web: nil},
			{Web: &genai.GroundingChunkWeb{URI: ""}},
			{Web: &genai.GroundingChunkWeb{URI: "https://d.example/game"}},
		},
	}

	assert.Equal(t, []string{"https://d.example/game"}, SourceURLs(resp))
}
