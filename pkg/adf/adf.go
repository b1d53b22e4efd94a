// Package adf builds and checks the minimal slice of the Atlassian Document
// Format the request pipeline needs: single-paragraph documents wrapping a
// rich-text answer, and the structural check the validator applies to
// caller-supplied documents.
package adf

import "encoding/json"

// Node is one content node of a document. Only the paragraph/text subset
// used by request payloads is modelled.
type Node struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Document is a rich-text document as the remote service accepts it.
type Document struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// NewDocument wraps plain text into a single-paragraph document.
func NewDocument(text string) Document {
	return Document{
		Version: 1,
		Type:    "doc",
		Content: []Node{
			{
				Type:    "paragraph",
				Content: []Node{{Type: "text", Text: text}},
			},
		},
	}
}

// Valid reports whether data is a JSON document whose top-level type is
// "doc" and whose content is an array. Anything stricter is left to the
// remote service.
func Valid(data []byte) bool {
	var doc struct {
		Type    string          `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	if doc.Type != "doc" {
		return false
	}
	var content []json.RawMessage
	return json.Unmarshal(doc.Content, &content) == nil
}
