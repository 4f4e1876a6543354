// Package trace reconstructs the traceability graph of a BRD: raw data
// sources, the objectives and requirements extracted from them, the tasks
// derived from those requirements, and coverage metrics over the whole.
//
// Everything in this package is a pure function of its inputs. The graph is
// never persisted; it is recomputed from the BRD and task records on every
// read, so identical inputs must always produce identical output.
package trace

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// SourceIDPrefix is prepended to the 1-based position of a raw source to
// form its registry identifier, e.g. "SRC-3".
const SourceIDPrefix = "SRC-"

// BuildRegistry assigns each raw source a stable sequential identifier and
// classifies its origin. Identifiers are derived from position in the input
// list, so appending new sources never renumbers existing ones; reordering
// the list is a breaking change to identifier stability.
func BuildRegistry(raws []model.RawSource) []model.DataSource {
	sources := make([]model.DataSource, 0, len(raws))
	for i, raw := range raws {
		sources = append(sources, model.DataSource{
			Identifier:  fmt.Sprintf("%s%d", SourceIDPrefix, i+1),
			OriginType:  normalizeOrigin(raw.Type),
			DisplayName: displayName(raw, i),
			RawContent:  raw.Content,
			Attributes:  stringAttributes(raw.Metadata),
		})
	}
	return sources
}

// normalizeOrigin maps the free-text type field onto a known origin type.
// Unknown or missing types degrade to the document category rather than
// failing; upstream ingesters are not trusted to send clean values.
func normalizeOrigin(typ string) model.OriginType {
	origin := model.OriginType(strings.ToLower(strings.TrimSpace(typ)))
	if !origin.IsValid() {
		return model.OriginDocument
	}
	return origin
}

// displayName picks a label for the source: explicit name, then the stored
// type text, then a synthesized "Source N".
func displayName(raw model.RawSource, index int) string {
	if name := strings.TrimSpace(raw.Name); name != "" {
		return name
	}
	if typ := strings.TrimSpace(raw.Type); typ != "" {
		return typ
	}
	return fmt.Sprintf("Source %d", index+1)
}

// stringAttributes extracts the string-valued entries of a source's metadata
// bag (workspace, channel, subject and the like). Non-string values are
// skipped; malformed metadata yields no attributes.
func stringAttributes(metadata json.RawMessage) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(metadata, &raw); err != nil {
		return nil
	}
	attrs := make(map[string]string)
	for k, v := range raw {
		if s, ok := v.(string); ok {
			attrs[k] = s
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
