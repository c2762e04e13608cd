package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// generatedFile is one file entry in the model's JSON payload.
type generatedFile struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// generationPayload is the JSON shape the prompt demands.
type generationPayload struct {
	Files       []generatedFile `json:"files"`
	Explanation string          `json:"explanation"`
}

var (
	fencedJSONBlock = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")
	fencedBlock     = regexp.MustCompile("```\\n([\\s\\S]*?)\\n```")
)

// parseGeneration extracts and validates the model's file payload. Candidates
// are tried in order: a ```json fenced block, a bare fenced block, then the
// whole reply. Anything that fails to parse, or parses into an invalid shape
// (no files, or a file without path or content), falls back to a single
// index.html holding the raw reply so the user always gets something.
func parseGeneration(reply string) *generationPayload {
	candidate := reply
	if m := fencedJSONBlock.FindStringSubmatch(reply); m != nil {
		candidate = m[1]
	} else if m := fencedBlock.FindStringSubmatch(reply); m != nil {
		candidate = m[1]
	}

	var payload generationPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err == nil && validPayload(&payload) {
		return &payload
	}

	return &generationPayload{
		Files: []generatedFile{{
			Path:     "index.html",
			Content:  reply,
			Language: "html",
		}},
		Explanation: "Generated project",
	}
}

func validPayload(p *generationPayload) bool {
	if len(p.Files) == 0 {
		return false
	}
	for _, f := range p.Files {
		if strings.TrimSpace(f.Path) == "" || f.Content == "" {
			return false
		}
	}
	return true
}
