package service

import (
	"testing"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证标题级别在文档往返中保持不变
func TestPropertyHeadingLevelRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("heading level survives document round trip", prop.ForAll(
		func(level int, text string) bool {
			node := &dto.DocumentNode{
				Type:    "heading",
				Attrs:   map[string]any{"level": float64(level)},
				Content: []*dto.DocumentNode{{Type: "text", Text: text}},
			}
			block := blockFromNode(node)
			if block == nil {
				return false
			}
			return headingLevel(block.Content) == level &&
				stripHeadingPrefix(block.Content) == text
		},
		gen.IntRange(1, 3),
		gen.RegexMatch(`[a-zA-Z][a-zA-Z0-9 ]{0,30}[a-zA-Z0-9]`),
	))

	properties.Property("todo checked flag survives document round trip", prop.ForAll(
		func(checked bool, text string) bool {
			node := &dto.DocumentNode{
				Type: "taskList",
				Content: []*dto.DocumentNode{{
					Type:    "taskItem",
					Attrs:   map[string]any{"checked": checked},
					Content: []*dto.DocumentNode{{Type: "text", Text: text}},
				}},
			}
			block := blockFromNode(node)
			if block == nil {
				return false
			}
			return block.Type == domain.BlockTypeTodo &&
				block.Completed == checked &&
				block.Content == text
		},
		gen.Bool(),
		gen.RegexMatch(`[a-zA-Z][a-zA-Z0-9 ]{0,30}[a-zA-Z0-9]`),
	))

	properties.TestingRun(t)
}
