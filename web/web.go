// Package web embeds the static index pages served on GET /.
package web

import _ "embed"

//go:embed assistant.html
var AssistantIndex []byte

//go:embed sentiment.html
var SentimentIndex []byte
