// Package docs holds the documentation topics of the balances command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing every other topic.
const Index = "readme"

// GetTopic returns the content of a documentation topic. The "*" topic is
// every topic, in name order.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, run 'balances topic' for the list: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, separated by a blank line.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the name of every topic but the index, sorted.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, file := range files {
		if name := strings.TrimSuffix(file, ".md"); name != Index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
