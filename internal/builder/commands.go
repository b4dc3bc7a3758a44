package builder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// commentCommand is a presenter instruction embedded in an HTML comment.
type commentCommand interface {
	commentCommand()
}

type pauseCommand struct{}

type endSlideCommand struct{}

type resetLayoutCommand struct{}

type initColumnLayoutCommand struct {
	columns []int
}

type enterColumnCommand struct {
	column int
}

func (pauseCommand) commentCommand()            {}
func (endSlideCommand) commentCommand()         {}
func (resetLayoutCommand) commentCommand()      {}
func (initColumnLayoutCommand) commentCommand() {}
func (enterColumnCommand) commentCommand()      {}

var yamlLinePattern = regexp.MustCompile(`(?m)^\s*line \d+: `)

// cleanYAMLError strips the parser's positional prefixes so the message can
// be re-anchored to the comment's own line in the document.
func cleanYAMLError(err error) string {
	message := strings.TrimPrefix(err.Error(), "yaml: ")
	message = strings.TrimPrefix(message, "unmarshal errors:\n")
	message = yamlLinePattern.ReplaceAllString(message, "")
	return strings.TrimSpace(strings.ReplaceAll(message, "\n", "; "))
}

// parseCommentCommand decodes a comment body into a command. Commands are
// either bare words (pause, end_slide, reset_layout) or single-key mappings
// (column_layout, column).
func parseCommentCommand(comment string) (commentCommand, error) {
	var raw interface{}
	if err := yaml.Unmarshal([]byte(comment), &raw); err != nil {
		return nil, errors.New(cleanYAMLError(err))
	}
	switch value := raw.(type) {
	case string:
		switch value {
		case "pause":
			return pauseCommand{}, nil
		case "end_slide":
			return endSlideCommand{}, nil
		case "reset_layout":
			return resetLayoutCommand{}, nil
		default:
			return nil, fmt.Errorf("unknown command %q", value)
		}
	case map[interface{}]interface{}:
		if len(value) != 1 {
			return nil, errors.New("expected a single command")
		}
		for key, argument := range value {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("invalid command name %v", key)
			}
			switch name {
			case "column_layout":
				columns, err := parseColumns(argument)
				if err != nil {
					return nil, err
				}
				return initColumnLayoutCommand{columns: columns}, nil
			case "column":
				column, ok := argument.(int)
				if !ok {
					return nil, errors.New("column index must be an integer")
				}
				return enterColumnCommand{column: column}, nil
			default:
				return nil, fmt.Errorf("unknown command %q", name)
			}
		}
		return nil, errors.New("expected a single command")
	default:
		return nil, errors.New("expected a command")
	}
}

func parseColumns(argument interface{}) ([]int, error) {
	values, ok := argument.([]interface{})
	if !ok {
		return nil, errors.New("column_layout takes a list of column widths")
	}
	columns := make([]int, 0, len(values))
	for _, value := range values {
		width, ok := value.(int)
		if !ok {
			return nil, errors.New("column widths must be integers")
		}
		columns = append(columns, width)
	}
	return columns, nil
}

// shouldIgnoreComment reports whether a comment is not meant for us: plain
// multi line prose or another tool's fenced markers.
func shouldIgnoreComment(comment string) bool {
	return strings.Contains(comment, "\n") ||
		strings.Contains(comment, "{{{") ||
		strings.Contains(comment, "}}}")
}
