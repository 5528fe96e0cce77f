// ABOUTME: Slash-separated path lookup over the generic document tree
// ABOUTME: Also splits match-list entries into source path and target field

package datapath

import (
	"strconv"
	"strings"

	"recipe-cook-api/core/domain"
	"recipe-cook-api/core/errors"
)

// Separator splits path segments.
const Separator = "/"

// FieldSeparator splits a match entry into path and field.
const FieldSeparator = "@"

// GetValue walks path over node. Map nodes are indexed by key, list nodes by
// a 0-based numeric segment. An empty path returns node itself.
func GetValue(node *domain.Node, path string) (*domain.Node, error) {
	if node == nil {
		return nil, &errors.ValueNotFoundError{Path: path}
	}
	path = strings.Trim(path, Separator)
	if path == "" {
		return node, nil
	}

	current := node
	for _, segment := range strings.Split(path, Separator) {
		if segment == "" {
			continue
		}
		next, ok := step(current, segment)
		if !ok {
			return nil, &errors.ValueNotFoundError{Path: path, Segment: segment}
		}
		current = next
	}
	return current, nil
}

func step(node *domain.Node, segment string) (*domain.Node, bool) {
	switch node.Kind() {
	case domain.KindMap:
		return node.Get(segment)
	case domain.KindList:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, false
		}
		return node.Index(idx)
	}
	return nil, false
}

// SplitMatchEntry splits "<path>@<field>" at the last '@'. The path may be
// empty, meaning the matched node itself.
func SplitMatchEntry(entry string) (path, field string, err error) {
	idx := strings.LastIndex(entry, FieldSeparator)
	if idx < 0 || idx == len(entry)-1 {
		return "", "", &errors.InvalidParserRecipeError{
			Reason: "match entry " + strconv.Quote(entry) + " is not of the form <path>@<field>",
		}
	}
	return entry[:idx], entry[idx+1:], nil
}
