// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"strings"

	"golang.org/x/net/html"
)

// # HTML helpers
//
// Small tree walkers over x/net/html used by the storefront scrapers.

func getAttr(node *html.Node, key string) string {
	for _, attribute := range node.Attr {
		if attribute.Key == key {
			return attribute.Val
		}
	}
	return ""
}

func hasClass(node *html.Node, class string) bool {
	for _, value := range strings.Fields(getAttr(node, "class")) {
		if value == class {
			return true
		}
	}
	return false
}

// matcher selects element nodes.
type matcher func(node *html.Node) bool

func element(tag string) matcher {
	return func(node *html.Node) bool {
		return node.Type == html.ElementNode && node.Data == tag
	}
}

func (match matcher) withClass(class string) matcher {
	return func(node *html.Node) bool {
		return match(node) && hasClass(node, class)
	}
}

func (match matcher) withAttr(key, value string) matcher {
	return func(node *html.Node) bool {
		if !match(node) {
			return false
		}
		for _, attribute := range node.Attr {
			if attribute.Key == key && (value == "" || attribute.Val == value) {
				return true
			}
		}
		return false
	}
}

// findAll returns every descendant of root that matches, in document order.
func findAll(root *html.Node, match matcher) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if match(node) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return found
}

// findFirst returns the first matching descendant of root, or nil.
func findFirst(root *html.Node, match matcher) *html.Node {
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// textContent joins every text node under node and collapses whitespace.
func textContent(node *html.Node) string {
	if node == nil {
		return ""
	}
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(current *html.Node) {
		if current.Type == html.TextNode {
			builder.WriteString(current.Data)
			builder.WriteByte(' ')
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.Join(strings.Fields(builder.String()), " ")
}

// findText is textContent of the first match, or "".
func findText(root *html.Node, match matcher) string {
	return textContent(findFirst(root, match))
}

// findAttr is an attribute of the first match, or "".
func findAttr(root *html.Node, match matcher, key string) string {
	node := findFirst(root, match)
	if node == nil {
		return ""
	}
	return getAttr(node, key)
}
